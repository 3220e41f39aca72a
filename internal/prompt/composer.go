// Package prompt builds canonical chat requests from personas, output
// formats, and conversation history.
package prompt

import (
	"github.com/snowgoose-ai/gateway/internal/model"
)

// VisionSystemPrompt is the fixed instruction used for every vision turn.
// A vision request replaces the caller's persona and history entirely; it
// does not carry prior conversational context forward.
const VisionSystemPrompt = "You are a helpful assistant that can describe an image in detail."

// Compose builds the canonical vendor-neutral request.
//
// The system prompt is persona.prompt + " " + format.prompt only when both
// are present. Partial presence yields an empty system prompt; that mirrors
// how personas and output formats are selected together in the client and is
// intentional, not a fallback to whichever exists.
func Compose(
	m *model.Model,
	persona *model.Persona,
	format *model.OutputFormat,
	history []model.Message,
	userPrompt string,
	imageData string,
	maxTokens int,
	thinkingBudget int,
) *model.ChatRequest {
	// Image-generation models need only the prompt.
	if m.IsImageGeneration {
		return &model.ChatRequest{
			Model:  m,
			Prompt: userPrompt,
		}
	}

	systemPrompt := ""
	if persona != nil && format != nil {
		systemPrompt = persona.Prompt + " " + format.Prompt
	}

	lead := model.Message{Role: model.RoleSystem, Content: model.TextContent(systemPrompt)}
	if m.NoSystemRole {
		// o1-style models reject the system role outright.
		lead.Role = model.RoleUser
	}

	messages := make([]model.Message, 0, len(history)+1)
	messages = append(messages, lead)
	messages = append(messages, history...)

	if imageData != "" && m.IsVision {
		systemPrompt = VisionSystemPrompt
		messages = visionMessages(userPrompt, imageData)
	}

	return &model.ChatRequest{
		Model:          m,
		SystemPrompt:   systemPrompt,
		Messages:       messages,
		Prompt:         userPrompt,
		ImageData:      imageData,
		MaxTokens:      maxTokens,
		ThinkingBudget: thinkingBudget,
	}
}

// visionMessages builds the fixed two-message structure for a vision turn:
// the describe-an-image system message and a single user turn holding the
// caller's prompt plus the image.
func visionMessages(userPrompt, imageData string) []model.Message {
	return []model.Message{
		{Role: model.RoleSystem, Content: model.TextContent(VisionSystemPrompt)},
		{Role: model.RoleUser, Content: model.MessageContent{Parts: []model.ContentPart{
			{Type: model.PartTypeText, Text: userPrompt},
			{Type: model.PartTypeImageURL, ImageURL: imageData},
		}}},
	}
}
