// Package llm provides vendor adapters that translate canonical chat
// requests into each vendor's wire shape and normalize replies back.
package llm

import (
	"context"

	"github.com/snowgoose-ai/gateway/internal/model"
)

// Adapter is the common contract every vendor adapter implements. Send is
// synchronous: it blocks until the vendor responds or errors, and it never
// retries; retry policy, if any, belongs to the caller.
type Adapter interface {
	// Send dispatches a canonical request and normalizes the vendor reply.
	Send(ctx context.Context, req *model.ChatRequest) (*model.ChatReply, error)

	// Vendor returns the canonical vendor name.
	Vendor() string
}

// ImageGenerator is implemented by adapters whose vendor can generate
// images. In this gateway that is the OpenAI adapter only.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*model.GeneratedImage, error)
}

// splitSystem returns the leading system message's text and a new slice with
// that message excluded. The input slice is never mutated, so a canonical
// request stays valid if it is dispatched again.
func splitSystem(msgs []model.Message) (string, []model.Message) {
	if len(msgs) == 0 || msgs[0].Role != model.RoleSystem {
		return "", msgs
	}
	rest := make([]model.Message, len(msgs)-1)
	copy(rest, msgs[1:])
	return msgs[0].Content.Text, rest
}
