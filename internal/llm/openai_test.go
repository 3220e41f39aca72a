package llm

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowgoose-ai/gateway/internal/model"
)

func openaiModel() *model.Model {
	return &model.Model{
		ID:      1,
		APIName: "gpt-4o",
		Vendor:  &model.Vendor{ID: 1, Name: "OpenAI"},
	}
}

func TestBuildOpenAIRequestPassesMessagesThrough(t *testing.T) {
	req := &model.ChatRequest{
		Model: openaiModel(),
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: model.TextContent("be brief")},
			{Role: model.RoleUser, Content: model.TextContent("hello")},
			{Role: model.RoleAssistant, Content: model.TextContent("hi")},
		},
	}

	oreq := buildOpenAIRequest(req)

	assert.Equal(t, "gpt-4o", oreq.Model)
	require.Len(t, oreq.Messages, 3)
	assert.Equal(t, "system", oreq.Messages[0].Role)
	assert.Equal(t, "be brief", oreq.Messages[0].Content)
	assert.Equal(t, "user", oreq.Messages[1].Role)
	assert.Equal(t, "assistant", oreq.Messages[2].Role)
}

func TestBuildOpenAIRequestOmitsMaxTokensForTextTurns(t *testing.T) {
	req := &model.ChatRequest{
		Model:     openaiModel(),
		MaxTokens: 2000,
		Messages: []model.Message{
			{Role: model.RoleUser, Content: model.TextContent("hello")},
		},
	}

	oreq := buildOpenAIRequest(req)

	assert.Zero(t, oreq.MaxTokens)
}

func TestBuildOpenAIRequestVisionTokenBudget(t *testing.T) {
	req := &model.ChatRequest{
		Model:     openaiModel(),
		ImageData: "data:image/png;base64,abc",
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: model.TextContent("describe images")},
			{Role: model.RoleUser, Content: model.MessageContent{Parts: []model.ContentPart{
				{Type: model.PartTypeText, Text: "what is this?"},
				{Type: model.PartTypeImageURL, ImageURL: "data:image/png;base64,abc"},
			}}},
		},
	}

	oreq := buildOpenAIRequest(req)
	assert.Equal(t, visionMaxTokens, oreq.MaxTokens)

	req.MaxTokens = 500
	assert.Equal(t, 500, buildOpenAIRequest(req).MaxTokens)
}

func TestBuildOpenAIRequestWrapsMultimodalParts(t *testing.T) {
	req := &model.ChatRequest{
		Model:     openaiModel(),
		ImageData: "data:image/png;base64,abc",
		Messages: []model.Message{
			{Role: model.RoleUser, Content: model.MessageContent{Parts: []model.ContentPart{
				{Type: model.PartTypeText, Text: "what is this?"},
				{Type: model.PartTypeImageURL, ImageURL: "data:image/png;base64,abc"},
			}}},
		},
	}

	oreq := buildOpenAIRequest(req)

	require.Len(t, oreq.Messages, 1)
	msg := oreq.Messages[0]
	assert.Empty(t, msg.Content)
	require.Len(t, msg.MultiContent, 2)
	assert.Equal(t, openai.ChatMessagePartTypeText, msg.MultiContent[0].Type)
	assert.Equal(t, "what is this?", msg.MultiContent[0].Text)
	assert.Equal(t, openai.ChatMessagePartTypeImageURL, msg.MultiContent[1].Type)
	require.NotNil(t, msg.MultiContent[1].ImageURL)
	assert.Equal(t, "data:image/png;base64,abc", msg.MultiContent[1].ImageURL.URL)
}

func TestNewOpenAIAdapterRequiresKey(t *testing.T) {
	_, err := NewOpenAIAdapter("")
	assert.Error(t, err)
}
