package model

import "time"

// ConversationHistory is a saved conversation transcript with its
// model-generated title. Rows are created on archive and never mutated; only
// the owning user may delete one.
type ConversationHistory struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Title        string    `json:"title"`
	Conversation string    `json:"conversation"`
	CreatedAt    time.Time `json:"created_at"`
}

// ArchiveResponse is returned after a conversation is archived.
type ArchiveResponse struct {
	Message string `json:"message"`
	Title   string `json:"title"`
}
