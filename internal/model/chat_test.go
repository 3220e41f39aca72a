package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReplyContentCollapsesSingleTextBlock(t *testing.T) {
	content := NewReplyContent([]ContentBlock{
		{Type: BlockTypeText, Text: "hello"},
	})

	assert.True(t, content.IsPlain())
	assert.Equal(t, "hello", content.Text)
	assert.Equal(t, "hello", content.PlainText())
}

func TestNewReplyContentKeepsThinkingBlocks(t *testing.T) {
	blocks := []ContentBlock{
		{Type: BlockTypeThinking, Thinking: "reasoning...", Signature: "sig"},
		{Type: BlockTypeText, Text: "the answer"},
	}

	content := NewReplyContent(blocks)

	assert.False(t, content.IsPlain())
	require.Len(t, content.Blocks, 2)
	assert.Equal(t, "the answer", content.PlainText())
}

func TestNewReplyContentSingleNonTextBlockStaysStructured(t *testing.T) {
	content := NewReplyContent([]ContentBlock{
		{Type: BlockTypeRedactedThinking, Data: "opaque"},
	})

	assert.False(t, content.IsPlain())
	assert.Equal(t, "", content.PlainText())
}

func TestReplyContentJSONShape(t *testing.T) {
	plain, err := json.Marshal(ChatReply{Role: RoleAssistant, Content: PlainReply("hi")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"assistant","content":"hi"}`, string(plain))

	structured, err := json.Marshal(ChatReply{
		Role: RoleAssistant,
		Content: NewReplyContent([]ContentBlock{
			{Type: BlockTypeThinking, Thinking: "t", Signature: "s"},
			{Type: BlockTypeText, Text: "a"},
		}),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"assistant","content":[{"type":"thinking","thinking":"t","signature":"s"},{"type":"text","text":"a"}]}`, string(structured))
}

func TestMessageContentAcceptsStringOrParts(t *testing.T) {
	var plain Message
	require.NoError(t, json.Unmarshal([]byte(`{"role":"user","content":"hello"}`), &plain))
	assert.False(t, plain.Content.IsMultimodal())
	assert.Equal(t, "hello", plain.Content.Text)

	var multimodal Message
	raw := `{"role":"user","content":[{"type":"text","text":"look"},{"type":"image_url","image_url":"data:image/png;base64,x"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &multimodal))
	require.True(t, multimodal.Content.IsMultimodal())
	require.Len(t, multimodal.Content.Parts, 2)
	assert.Equal(t, PartTypeImageURL, multimodal.Content.Parts[1].Type)

	out, err := json.Marshal(multimodal)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestVendorErrorUnwrapsToCause(t *testing.T) {
	cause := assert.AnError
	err := &VendorError{Vendor: VendorOpenAI, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), VendorOpenAI)
}
