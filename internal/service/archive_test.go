package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowgoose-ai/gateway/internal/model"
)

type stubDispatcher struct {
	model    *model.Model
	reply    *model.ChatReply
	err      error
	lastSent *model.ChatRequest
}

func (d *stubDispatcher) ResolveModel(_ context.Context, _ string) (*model.Model, error) {
	if d.model == nil {
		return nil, model.ErrModelNotFound
	}
	return d.model, nil
}

func (d *stubDispatcher) Dispatch(_ context.Context, req *model.ChatRequest) (*model.ChatReply, error) {
	d.lastSent = req
	if d.err != nil {
		return nil, d.err
	}
	return d.reply, nil
}

type stubHistoryStore struct {
	saved []model.ConversationHistory
	err   error
}

func (s *stubHistoryStore) SaveConversation(_ context.Context, userID int, title, conversation string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.saved = append(s.saved, model.ConversationHistory{
		ID: len(s.saved) + 1, UserID: userID, Title: title, Conversation: conversation,
	})
	return len(s.saved), nil
}

func (s *stubHistoryStore) ListHistory(_ context.Context, userID int) ([]model.ConversationHistory, error) {
	var out []model.ConversationHistory
	for _, h := range s.saved {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *stubHistoryStore) DeleteHistory(_ context.Context, id, userID int) error {
	for i, h := range s.saved {
		if h.ID != id {
			continue
		}
		if h.UserID != userID {
			return model.ErrNotOwner
		}
		s.saved = append(s.saved[:i], s.saved[i+1:]...)
		return nil
	}
	return model.ErrHistoryNotFound
}

func summaryModelFixture() *model.Model {
	return &model.Model{
		ID: 1, APIName: "gpt-3.5-turbo",
		Vendor: &model.Vendor{ID: 1, Name: "OpenAI"},
	}
}

func TestArchiveTitlesAndPersists(t *testing.T) {
	dispatcher := &stubDispatcher{
		model: summaryModelFixture(),
		reply: &model.ChatReply{
			Role:    model.RoleAssistant,
			Content: model.PlainReply("  A chat about foxes.\n"),
		},
	}
	history := &stubHistoryStore{}
	events := &stubPublisher{}
	svc := NewArchiveService(dispatcher, history, events, "gpt-3.5-turbo", testLogger(t))

	conversation := []model.Message{
		{Role: model.RoleUser, Content: model.TextContent("tell me about foxes")},
	}
	title, err := svc.Archive(context.Background(), 7, conversation)

	require.NoError(t, err)
	assert.Equal(t, "A chat about foxes.", title)

	require.Len(t, history.saved, 1)
	assert.Equal(t, 7, history.saved[0].UserID)
	assert.Equal(t, "A chat about foxes.", history.saved[0].Title)
	assert.Contains(t, history.saved[0].Conversation, "tell me about foxes")

	require.Len(t, events.events, 1)
	assert.Equal(t, model.EventTypeConversationArchived, events.events[0].Type)
}

func TestArchiveSendsTranscriptToSummaryModel(t *testing.T) {
	dispatcher := &stubDispatcher{
		model: summaryModelFixture(),
		reply: &model.ChatReply{Content: model.PlainReply("Title")},
	}
	svc := NewArchiveService(dispatcher, &stubHistoryStore{}, nil, "gpt-3.5-turbo", testLogger(t))

	_, err := svc.Archive(context.Background(), 1, map[string]string{"q": "hello"})
	require.NoError(t, err)

	require.NotNil(t, dispatcher.lastSent)
	assert.Equal(t, summarySystemPrompt, dispatcher.lastSent.SystemPrompt)
	require.Len(t, dispatcher.lastSent.Messages, 2)
	assert.Equal(t, model.RoleSystem, dispatcher.lastSent.Messages[0].Role)
	assert.Contains(t, dispatcher.lastSent.Messages[1].Content.Text, `"q":"hello"`)
}

func TestArchiveSummarizationFailureWritesNothing(t *testing.T) {
	dispatcher := &stubDispatcher{
		model: summaryModelFixture(),
		err:   &model.VendorError{Vendor: model.VendorOpenAI, Err: errors.New("boom")},
	}
	history := &stubHistoryStore{}
	svc := NewArchiveService(dispatcher, history, nil, "gpt-3.5-turbo", testLogger(t))

	_, err := svc.Archive(context.Background(), 7, "transcript")

	require.Error(t, err)
	assert.Empty(t, history.saved)
}

func TestArchiveUnknownSummaryModelWritesNothing(t *testing.T) {
	history := &stubHistoryStore{}
	svc := NewArchiveService(&stubDispatcher{}, history, nil, "missing", testLogger(t))

	_, err := svc.Archive(context.Background(), 7, "transcript")

	assert.ErrorIs(t, err, model.ErrModelNotFound)
	assert.Empty(t, history.saved)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	history := &stubHistoryStore{saved: []model.ConversationHistory{
		{ID: 1, UserID: 7, Title: "mine"},
	}}
	svc := NewArchiveService(&stubDispatcher{}, history, nil, "gpt-3.5-turbo", testLogger(t))

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 8), model.ErrNotOwner)
	require.NoError(t, svc.Delete(context.Background(), 1, 7))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 7), model.ErrHistoryNotFound)
}
