package llm

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/snowgoose-ai/gateway/internal/model"
	"github.com/snowgoose-ai/gateway/pkg/metrics"
)

// GoogleAdapter dispatches canonical requests to a Google generative-content
// API. The canonical message list is translated into the vendor's role+parts
// shape, with the system message passed as a separate system instruction.
type GoogleAdapter struct {
	client *genai.Client
}

// NewGoogleAdapter creates a new Google adapter.
func NewGoogleAdapter(ctx context.Context, apiKey string) (*GoogleAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("Google API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GoogleAdapter{client: client}, nil
}

// Vendor returns the canonical vendor name.
func (a *GoogleAdapter) Vendor() string {
	return model.VendorGoogle
}

// Send dispatches a chat request. Thinking-capable models return reasoning
// and answer as separate parts; those are folded into one labeled text reply.
func (a *GoogleAdapter) Send(ctx context.Context, req *model.ChatRequest) (*model.ChatReply, error) {
	system, rest := splitSystem(req.Messages)

	resp, err := a.client.Models.GenerateContent(
		ctx,
		req.Model.APIName,
		googleContents(rest),
		googleConfig(system),
	)
	if err != nil {
		return nil, &model.VendorError{Vendor: model.VendorGoogle, Err: err}
	}

	if usage := resp.UsageMetadata; usage != nil {
		metrics.RecordTokens(model.VendorGoogle, req.Model.APIName, int(usage.PromptTokenCount), int(usage.CandidatesTokenCount))
	}

	return &model.ChatReply{
		Role:    model.RoleAssistant,
		Content: model.PlainReply(googleReplyText(resp, req.Model.IsThinking)),
	}, nil
}

// googleContents renames content to parts and wraps each value in a
// single-element part array, mapping the assistant role to "model".
func googleContents(msgs []model.Message) []*genai.Content {
	contents := make([]*genai.Content, len(msgs))
	for i, msg := range msgs {
		role := genai.RoleUser
		if msg.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content.Text}},
		}
	}
	return contents
}

func googleConfig(system string) *genai.GenerateContentConfig {
	if system == "" {
		return nil
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
	}
}

// googleReplyText extracts the reply text. For thinking models the first
// part is reasoning and the second the final answer; both are kept, with the
// reasoning labeled.
func googleReplyText(resp *genai.GenerateContentResponse, thinking bool) string {
	if thinking {
		parts := candidateParts(resp)
		if len(parts) >= 2 {
			return "Inner Thoughts:\n" + parts[0] + "\n\n" + parts[1]
		}
	}
	return resp.Text()
}

func candidateParts(resp *genai.GenerateContentResponse) []string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var parts []string
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			parts = append(parts, p.Text)
		}
	}
	return parts
}
