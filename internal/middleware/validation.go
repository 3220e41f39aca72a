package middleware

import (
	"errors"
	"unicode/utf8"
)

// ValidatePrompt validates a chat or image prompt.
func ValidatePrompt(prompt string) error {
	if len(prompt) == 0 {
		return errors.New("prompt cannot be empty")
	}
	if len(prompt) > 100000 { // ~100KB limit
		return errors.New("prompt exceeds maximum length")
	}
	if !utf8.ValidString(prompt) {
		return errors.New("prompt must be valid UTF-8")
	}
	return nil
}

// ValidateName validates a persona or output format name.
func ValidateName(name string) error {
	if len(name) == 0 {
		return errors.New("name cannot be empty")
	}
	if len(name) > 255 {
		return errors.New("name exceeds maximum length")
	}
	if !utf8.ValidString(name) {
		return errors.New("name must be valid UTF-8")
	}
	return nil
}

// ValidateSystemPromptFragment validates persona and output format prompt
// text.
func ValidateSystemPromptFragment(prompt string) error {
	if len(prompt) == 0 {
		return errors.New("prompt cannot be empty")
	}
	if !utf8.ValidString(prompt) {
		return errors.New("prompt must be valid UTF-8")
	}
	return nil
}

// ValidateImageData validates an image attachment, which must be a data URI
// when present.
func ValidateImageData(imageData string) error {
	if imageData == "" {
		return nil
	}
	if len(imageData) > 20*1024*1024 {
		return errors.New("image data exceeds maximum size")
	}
	return nil
}
