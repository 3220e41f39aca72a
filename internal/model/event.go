package model

import "time"

// EventType represents the type of gateway event published to JetStream.
type EventType string

const (
	EventTypeChatDispatched       EventType = "chat_dispatched"
	EventTypeImageGenerated       EventType = "image_generated"
	EventTypeConversationArchived EventType = "conversation_archived"
	EventTypeDispatchFailed       EventType = "dispatch_failed"
)

// GatewayEvent records one dispatch through the gateway for downstream
// consumers (billing, analytics). Events are observational; dispatch never
// depends on them.
type GatewayEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Vendor    string         `json:"vendor,omitempty"`
	Model     string         `json:"model,omitempty"`
	UserID    int            `json:"user_id,omitempty"`
	Reason    string         `json:"reason,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
