package llm

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/snowgoose-ai/gateway/internal/model"
	"github.com/snowgoose-ai/gateway/pkg/metrics"
)

// visionMaxTokens is the fixed completion budget for vision turns. Non-vision
// requests omit max_tokens entirely and rely on the vendor default.
const visionMaxTokens = 1024

// imageModel is the fixed image-generation model.
const imageModel = openai.CreateImageModelDallE3

// OpenAIAdapter dispatches canonical requests to an OpenAI-compatible
// chat/completion API. The canonical message shape already matches OpenAI's,
// so messages pass through with only multimodal parts rewrapped.
type OpenAIAdapter struct {
	client *openai.Client
}

// NewOpenAIAdapter creates a new OpenAI adapter.
func NewOpenAIAdapter(apiKey string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	return &OpenAIAdapter{client: openai.NewClient(apiKey)}, nil
}

// Vendor returns the canonical vendor name.
func (a *OpenAIAdapter) Vendor() string {
	return model.VendorOpenAI
}

// Send dispatches a chat request and extracts choices[0].message as the
// canonical reply.
func (a *OpenAIAdapter) Send(ctx context.Context, req *model.ChatRequest) (*model.ChatReply, error) {
	resp, err := a.client.CreateChatCompletion(ctx, buildOpenAIRequest(req))
	if err != nil {
		return nil, &model.VendorError{Vendor: model.VendorOpenAI, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &model.VendorError{Vendor: model.VendorOpenAI, Err: errors.New("response contained no choices")}
	}

	metrics.RecordTokens(model.VendorOpenAI, req.Model.APIName, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	return &model.ChatReply{
		Role:    model.RoleAssistant,
		Content: model.PlainReply(resp.Choices[0].Message.Content),
	}, nil
}

// GenerateImage creates one standard-quality 1024x1024 image and returns the
// hosted URL alongside the vendor's revised prompt.
func (a *OpenAIAdapter) GenerateImage(ctx context.Context, prompt string) (*model.GeneratedImage, error) {
	resp, err := a.client.CreateImage(ctx, openai.ImageRequest{
		Model:   imageModel,
		Prompt:  prompt,
		Size:    openai.CreateImageSize1024x1024,
		Quality: openai.CreateImageQualityStandard,
		N:       1,
	})
	if err != nil {
		return nil, &model.VendorError{Vendor: model.VendorOpenAI, Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &model.VendorError{Vendor: model.VendorOpenAI, Err: errors.New("response contained no images")}
	}

	return &model.GeneratedImage{
		URL:           resp.Data[0].URL,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
	}, nil
}

func buildOpenAIRequest(req *model.ChatRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		out := openai.ChatCompletionMessage{Role: string(msg.Role)}
		if msg.Content.IsMultimodal() {
			parts := make([]openai.ChatMessagePart, len(msg.Content.Parts))
			for j, p := range msg.Content.Parts {
				if p.Type == model.PartTypeImageURL {
					parts[j] = openai.ChatMessagePart{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: p.ImageURL},
					}
					continue
				}
				parts[j] = openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeText,
					Text: p.Text,
				}
			}
			out.MultiContent = parts
		} else {
			out.Content = msg.Content.Text
		}
		messages[i] = out
	}

	oreq := openai.ChatCompletionRequest{
		Model:    req.Model.APIName,
		Messages: messages,
	}

	// Vision turns carry an explicit completion budget.
	if req.ImageData != "" {
		oreq.MaxTokens = req.MaxTokens
		if oreq.MaxTokens == 0 {
			oreq.MaxTokens = visionMaxTokens
		}
	}

	return oreq
}
