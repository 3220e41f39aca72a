package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/snowgoose-ai/gateway/internal/model"
	"github.com/snowgoose-ai/gateway/pkg/logger"
	"github.com/snowgoose-ai/gateway/pkg/metrics"
)

// Dispatcher is the slice of ChatService the archiver needs.
type Dispatcher interface {
	ResolveModel(ctx context.Context, idOrAPIName string) (*model.Model, error)
	Dispatch(ctx context.Context, req *model.ChatRequest) (*model.ChatReply, error)
}

// HistoryStore persists archived conversations.
type HistoryStore interface {
	SaveConversation(ctx context.Context, userID int, title, conversation string) (int, error)
	ListHistory(ctx context.Context, userID int) ([]model.ConversationHistory, error)
	DeleteHistory(ctx context.Context, id, userID int) error
}

const (
	summarySystemPrompt = "You are an expert at taking in JSON chat transcripts and coming up with a brief one sentence title for the chat history."
	summaryUserPrompt   = "Give me a short, one sentence title for this chat history: "
)

// ArchiveService saves finished conversations. It asks a summarization model
// for a one-sentence title through the regular dispatch pipeline, then
// persists the transcript under that title.
type ArchiveService struct {
	dispatcher   Dispatcher
	history      HistoryStore
	events       EventPublisher
	summaryModel string
	logger       *logger.Logger
}

// NewArchiveService creates a new archive service. summaryModel is the
// logical model identifier used for title generation.
func NewArchiveService(
	dispatcher Dispatcher,
	history HistoryStore,
	events EventPublisher,
	summaryModel string,
	log *logger.Logger,
) *ArchiveService {
	return &ArchiveService{
		dispatcher:   dispatcher,
		history:      history,
		events:       events,
		summaryModel: summaryModel,
		logger:       log,
	}
}

// Archive titles and persists a finished conversation. A summarization
// failure fails the whole operation: no row is written without a title.
func (s *ArchiveService) Archive(ctx context.Context, userID int, conversation any) (string, error) {
	data, err := json.Marshal(conversation)
	if err != nil {
		return "", fmt.Errorf("failed to serialize conversation: %w", err)
	}
	transcript := string(data)

	m, err := s.dispatcher.ResolveModel(ctx, s.summaryModel)
	if err != nil {
		return "", fmt.Errorf("failed to resolve summary model: %w", err)
	}

	reply, err := s.dispatcher.Dispatch(ctx, &model.ChatRequest{
		Model:        m,
		SystemPrompt: summarySystemPrompt,
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: model.TextContent(summarySystemPrompt)},
			{Role: model.RoleUser, Content: model.TextContent(summaryUserPrompt + transcript)},
		},
	})
	if err != nil {
		metrics.ArchivesTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("title summarization failed: %w", err)
	}

	title := strings.TrimSpace(reply.Content.PlainText())

	if _, err := s.history.SaveConversation(ctx, userID, title, transcript); err != nil {
		metrics.ArchivesTotal.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.ArchivesTotal.WithLabelValues("success").Inc()
	if s.events != nil {
		event := &model.GatewayEvent{
			ID:        uuid.New().String(),
			Type:      model.EventTypeConversationArchived,
			UserID:    userID,
			Metadata:  map[string]any{"title": title},
			CreatedAt: time.Now(),
		}
		if err := s.events.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish archive event")
		}
	}

	return title, nil
}

// History lists a user's archived conversations, newest first.
func (s *ArchiveService) History(ctx context.Context, userID int) ([]model.ConversationHistory, error) {
	return s.history.ListHistory(ctx, userID)
}

// Delete removes one of the user's archived conversations.
func (s *ArchiveService) Delete(ctx context.Context, id, userID int) error {
	return s.history.DeleteHistory(ctx, id, userID)
}
