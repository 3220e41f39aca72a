package llm

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/snowgoose-ai/gateway/internal/model"
	"github.com/snowgoose-ai/gateway/pkg/metrics"
)

// anthropicDefaultMaxTokens is used when the caller supplies no budget.
// Anthropic requires an explicit max_tokens value; there is no vendor
// default to fall back on.
const anthropicDefaultMaxTokens = 8192

// AnthropicAdapter dispatches canonical requests to an Anthropic-compatible
// messages API. The system message is stripped from the message list and
// passed as the top-level system field.
type AnthropicAdapter struct {
	client anthropic.Client
}

// NewAnthropicAdapter creates a new Anthropic adapter.
func NewAnthropicAdapter(apiKey string) (*AnthropicAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}
	return &AnthropicAdapter{client: anthropic.NewClient(option.WithAPIKey(apiKey))}, nil
}

// Vendor returns the canonical vendor name.
func (a *AnthropicAdapter) Vendor() string {
	return model.VendorAnthropic
}

// Send dispatches a chat request and normalizes the vendor's content blocks
// into the canonical reply shape.
func (a *AnthropicAdapter) Send(ctx context.Context, req *model.ChatRequest) (*model.ChatReply, error) {
	resp, err := a.client.Messages.New(ctx, buildAnthropicParams(req))
	if err != nil {
		return nil, &model.VendorError{Vendor: model.VendorAnthropic, Err: err}
	}

	metrics.RecordTokens(model.VendorAnthropic, req.Model.APIName, int(resp.Usage.InputTokens), int(resp.Usage.OutputTokens))

	return &model.ChatReply{
		Role:    model.RoleAssistant,
		Content: model.NewReplyContent(normalizeAnthropicContent(resp.Content)),
	}, nil
}

func buildAnthropicParams(req *model.ChatRequest) anthropic.MessageNewParams {
	system, rest := splitSystem(req.Messages)

	messages := make([]anthropic.MessageParam, 0, len(rest))
	for _, msg := range rest {
		block := anthropic.NewTextBlock(msg.Content.Text)
		if msg.Role == model.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(block))
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model.APIName),
		MaxTokens: int64(maxTokens),
		Messages:  messages,
	}

	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	if req.ThinkingBudget > 0 {
		params.Thinking = anthropic.ThinkingConfigParamOfEnabled(int64(req.ThinkingBudget))
	} else {
		params.Thinking = anthropic.ThinkingConfigParamUnion{
			OfDisabled: &anthropic.ThinkingConfigDisabledParam{},
		}
	}

	return params
}

// normalizeAnthropicContent maps vendor content blocks to canonical blocks.
// Thinking blocks keep their signature so a follow-up turn can echo them
// back; redacted thinking keeps the opaque data blob.
func normalizeAnthropicContent(content []anthropic.ContentBlockUnion) []model.ContentBlock {
	blocks := make([]model.ContentBlock, 0, len(content))
	for _, b := range content {
		switch b.Type {
		case "text":
			blocks = append(blocks, model.ContentBlock{
				Type: model.BlockTypeText,
				Text: b.Text,
			})
		case "thinking":
			blocks = append(blocks, model.ContentBlock{
				Type:      model.BlockTypeThinking,
				Thinking:  b.Thinking,
				Signature: b.Signature,
			})
		case "redacted_thinking":
			blocks = append(blocks, model.ContentBlock{
				Type: model.BlockTypeRedactedThinking,
				Data: b.Data,
			})
		}
	}
	return blocks
}
