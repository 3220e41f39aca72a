package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowgoose-ai/gateway/internal/model"
)

func chatModel() *model.Model {
	return &model.Model{
		ID:      1,
		APIName: "gpt-4o",
		Name:    "GPT-4o",
		Vendor:  &model.Vendor{ID: 1, Name: "OpenAI"},
	}
}

func TestComposeSystemPromptRequiresBothFragments(t *testing.T) {
	persona := &model.Persona{ID: 1, Name: "pirate", Prompt: "You are a pirate."}
	format := &model.OutputFormat{ID: 2, Name: "markdown", Prompt: "Respond in markdown."}

	tests := []struct {
		name    string
		persona *model.Persona
		format  *model.OutputFormat
		want    string
	}{
		{"both present", persona, format, "You are a pirate. Respond in markdown."},
		{"persona only", persona, nil, ""},
		{"format only", nil, format, ""},
		{"neither", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Compose(chatModel(), tt.persona, tt.format, nil, "hi", "", 0, 0)

			assert.Equal(t, tt.want, req.SystemPrompt)
			require.NotEmpty(t, req.Messages)
			assert.Equal(t, model.RoleSystem, req.Messages[0].Role)
			assert.Equal(t, tt.want, req.Messages[0].Content.Text)
		})
	}
}

func TestComposeAppendsHistoryAfterSystemMessage(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: model.TextContent("first question")},
		{Role: model.RoleAssistant, Content: model.TextContent("first answer")},
		{Role: model.RoleUser, Content: model.TextContent("second question")},
	}

	req := Compose(chatModel(), nil, nil, history, "second question", "", 0, 0)

	require.Len(t, req.Messages, 4)
	assert.Equal(t, model.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, "first question", req.Messages[1].Content.Text)
	assert.Equal(t, "first answer", req.Messages[2].Content.Text)
	assert.Equal(t, "second question", req.Messages[3].Content.Text)
}

func TestComposeRewritesSystemRoleForModelsWithoutOne(t *testing.T) {
	m := chatModel()
	m.APIName = "o1-mini"
	m.NoSystemRole = true

	persona := &model.Persona{Prompt: "You are terse."}
	format := &model.OutputFormat{Prompt: "Plain text only."}

	req := Compose(m, persona, format, nil, "hi", "", 0, 0)

	require.NotEmpty(t, req.Messages)
	assert.Equal(t, model.RoleUser, req.Messages[0].Role)
	assert.Equal(t, "You are terse. Plain text only.", req.Messages[0].Content.Text)
}

func TestComposeVisionOverrideReplacesPersonaAndHistory(t *testing.T) {
	m := chatModel()
	m.IsVision = true

	persona := &model.Persona{Prompt: "You are a pirate."}
	format := &model.OutputFormat{Prompt: "Respond in markdown."}
	history := []model.Message{
		{Role: model.RoleUser, Content: model.TextContent("earlier turn")},
	}

	req := Compose(m, persona, format, history, "what is in this image?", "data:image/png;base64,abc", 0, 0)

	assert.Equal(t, VisionSystemPrompt, req.SystemPrompt)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, model.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, VisionSystemPrompt, req.Messages[0].Content.Text)

	user := req.Messages[1]
	assert.Equal(t, model.RoleUser, user.Role)
	require.True(t, user.Content.IsMultimodal())
	require.Len(t, user.Content.Parts, 2)
	assert.Equal(t, model.PartTypeText, user.Content.Parts[0].Type)
	assert.Equal(t, "what is in this image?", user.Content.Parts[0].Text)
	assert.Equal(t, model.PartTypeImageURL, user.Content.Parts[1].Type)
	assert.Equal(t, "data:image/png;base64,abc", user.Content.Parts[1].ImageURL)
}

func TestComposeIgnoresImageDataForNonVisionModel(t *testing.T) {
	req := Compose(chatModel(), nil, nil, nil, "hi", "data:image/png;base64,abc", 0, 0)

	// The dispatcher rejects this combination before composition in
	// practice; the composer itself leaves the conversation untouched.
	require.Len(t, req.Messages, 1)
	assert.Equal(t, model.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, "", req.SystemPrompt)
}

func TestComposeImageGenerationShortCircuit(t *testing.T) {
	m := chatModel()
	m.APIName = "dall-e-3"
	m.IsImageGeneration = true

	req := Compose(m, &model.Persona{Prompt: "ignored"}, &model.OutputFormat{Prompt: "ignored"}, nil, "a red fox", "", 500, 0)

	assert.Equal(t, "a red fox", req.Prompt)
	assert.Empty(t, req.Messages)
	assert.Empty(t, req.SystemPrompt)
	assert.Zero(t, req.MaxTokens)
}

func TestComposeCarriesTokenBudgets(t *testing.T) {
	req := Compose(chatModel(), nil, nil, nil, "hi", "", 2048, 1024)

	assert.Equal(t, 2048, req.MaxTokens)
	assert.Equal(t, 1024, req.ThinkingBudget)
}
