// Package model defines data structures for the AI gateway.
package model

import (
	"encoding/json"
	"strings"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Content part types for multimodal user turns.
const (
	PartTypeText     = "text"
	PartTypeImageURL = "image_url"
)

// ContentPart is one element of a multimodal message: a text fragment or an
// image reference (data URI or URL). Vendor-specific wrapping happens in the
// adapters, not here.
type ContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// MessageContent is either plain text or an ordered list of parts. On the
// wire it serializes to a JSON string in the plain case and to an array in
// the multimodal case, matching what vendors and clients exchange.
type MessageContent struct {
	Text  string
	Parts []ContentPart
}

// TextContent wraps plain text as message content.
func TextContent(s string) MessageContent {
	return MessageContent{Text: s}
}

// IsMultimodal reports whether the content carries typed parts.
func (c MessageContent) IsMultimodal() bool {
	return c.Parts != nil
}

// MarshalJSON encodes plain content as a string and multimodal content as an
// array of parts.
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.Parts != nil {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts either a JSON string or an array of parts.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		c.Parts = nil
		return nil
	}
	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	c.Text = ""
	c.Parts = parts
	return nil
}

// Message is one turn of a conversation in the canonical, vendor-neutral
// shape.
type Message struct {
	Role    Role           `json:"role"`
	Content MessageContent `json:"content"`
}

// BlockType tags a normalized reply block.
type BlockType string

const (
	BlockTypeText             BlockType = "text"
	BlockTypeThinking         BlockType = "thinking"
	BlockTypeRedactedThinking BlockType = "redacted_thinking"
)

// ContentBlock is one normalized block of an assistant reply. Thinking blocks
// retain the opaque signature a follow-up turn must echo back; redacted
// thinking retains the opaque data blob.
type ContentBlock struct {
	Type      BlockType `json:"type"`
	Text      string    `json:"text,omitempty"`
	Thinking  string    `json:"thinking,omitempty"`
	Signature string    `json:"signature,omitempty"`
	Data      string    `json:"data,omitempty"`
}

// ReplyContent is the content of a canonical reply: a plain string when the
// vendor produced exactly one text block, otherwise the ordered block list.
type ReplyContent struct {
	Text   string
	Blocks []ContentBlock
}

// PlainReply wraps plain text as reply content.
func PlainReply(s string) ReplyContent {
	return ReplyContent{Text: s}
}

// NewReplyContent normalizes a block list, collapsing a single text block
// with no reasoning blocks into plain string content.
func NewReplyContent(blocks []ContentBlock) ReplyContent {
	if len(blocks) == 1 && blocks[0].Type == BlockTypeText {
		return ReplyContent{Text: blocks[0].Text}
	}
	return ReplyContent{Blocks: blocks}
}

// IsPlain reports whether the content collapsed to a plain string.
func (c ReplyContent) IsPlain() bool {
	return c.Blocks == nil
}

// PlainText returns the textual portion of the reply: the string itself in
// the plain case, or the concatenation of text blocks otherwise.
func (c ReplyContent) PlainText() string {
	if c.Blocks == nil {
		return c.Text
	}
	var b strings.Builder
	for _, blk := range c.Blocks {
		if blk.Type == BlockTypeText {
			b.WriteString(blk.Text)
		}
	}
	return b.String()
}

// MarshalJSON encodes plain content as a string and structured content as an
// array of blocks.
func (c ReplyContent) MarshalJSON() ([]byte, error) {
	if c.Blocks != nil {
		return json.Marshal(c.Blocks)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts either a JSON string or an array of blocks.
func (c *ReplyContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		c.Blocks = nil
		return nil
	}
	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	c.Text = ""
	c.Blocks = blocks
	return nil
}

// ChatReply is the canonical assistant reply every adapter normalizes to.
type ChatReply struct {
	Role    Role         `json:"role"`
	Content ReplyContent `json:"content"`
}

// ChatRequest is the canonical, vendor-neutral request built by the prompt
// composer and consumed by the vendor adapters. It is never persisted.
type ChatRequest struct {
	Model          *Model
	SystemPrompt   string
	Messages       []Message
	Prompt         string
	ImageData      string
	MaxTokens      int
	ThinkingBudget int
}

// ChatPayload is the raw chat request as supplied by the caller.
type ChatPayload struct {
	Model           string    `json:"model"`
	Prompt          string    `json:"prompt"`
	PersonaID       int       `json:"personaId,omitempty"`
	OutputFormatID  int       `json:"outputFormatId,omitempty"`
	ImageData       string    `json:"imageData,omitempty"`
	ResponseHistory []Message `json:"responseHistory,omitempty"`
	MaxTokens       int       `json:"maxTokens,omitempty"`
	BudgetTokens    int       `json:"budgetTokens,omitempty"`
}

// ImagePayload is the raw image-generation request.
type ImagePayload struct {
	Prompt string `json:"prompt"`
}

// GeneratedImage is the normalized result of an image-generation call.
type GeneratedImage struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}
