package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowgoose-ai/gateway/internal/llm"
	"github.com/snowgoose-ai/gateway/internal/model"
	"github.com/snowgoose-ai/gateway/internal/service"
	"github.com/snowgoose-ai/gateway/pkg/logger"
)

type fixedModelStore struct {
	m *model.Model
}

func (s *fixedModelStore) ModelByID(_ context.Context, id int) (*model.Model, error) {
	if s.m != nil && s.m.ID == id {
		return s.m, nil
	}
	return nil, model.ErrModelNotFound
}

func (s *fixedModelStore) ModelByAPIName(_ context.Context, apiName string) (*model.Model, error) {
	if s.m != nil && s.m.APIName == apiName {
		return s.m, nil
	}
	return nil, model.ErrModelNotFound
}

type emptyPromptStore struct{}

func (emptyPromptStore) GetPersona(context.Context, int) (*model.Persona, error) {
	return nil, model.ErrPersonaNotFound
}

func (emptyPromptStore) GetOutputFormat(context.Context, int) (*model.OutputFormat, error) {
	return nil, model.ErrOutputFormatNotFound
}

type fixedAdapter struct {
	vendor string
	reply  *model.ChatReply
	err    error
}

func (a *fixedAdapter) Send(context.Context, *model.ChatRequest) (*model.ChatReply, error) {
	return a.reply, a.err
}

func (a *fixedAdapter) Vendor() string { return a.vendor }

func newTestChatHandler(t *testing.T, adapter llm.Adapter) *ChatHandler {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)

	store := &fixedModelStore{m: &model.Model{
		ID: 1, APIName: "gpt-4o",
		Vendor: &model.Vendor{ID: 1, Name: "OpenAI"},
	}}

	var adapters []llm.Adapter
	if adapter != nil {
		adapters = append(adapters, adapter)
	}
	svc := service.NewChatService(store, emptyPromptStore{}, adapters, nil, nil, log)
	return NewChatHandler(svc, log)
}

func TestChatHandlerSuccess(t *testing.T) {
	h := newTestChatHandler(t, &fixedAdapter{
		vendor: model.VendorOpenAI,
		reply:  &model.ChatReply{Role: model.RoleAssistant, Content: model.PlainReply("hello back")},
	})

	body := `{"model":"gpt-4o","prompt":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var reply model.ChatReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, model.RoleAssistant, reply.Role)
	assert.Equal(t, "hello back", reply.Content.PlainText())
}

func TestChatHandlerRejectsMissingFields(t *testing.T) {
	h := newTestChatHandler(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"no model", `{"prompt":"hello"}`},
		{"no prompt", `{"model":"gpt-4o"}`},
		{"bad json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Chat(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestChatHandlerUnknownModel(t *testing.T) {
	h := newTestChatHandler(t, nil)

	body := `{"model":"nope","prompt":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatHandlerVendorFailureIsBadGateway(t *testing.T) {
	h := newTestChatHandler(t, &fixedAdapter{
		vendor: model.VendorOpenAI,
		err:    &model.VendorError{Vendor: model.VendorOpenAI, Err: assert.AnError},
	})

	body := `{"model":"gpt-4o","prompt":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestChatHandlerNoAdapterConfigured(t *testing.T) {
	h := newTestChatHandler(t, nil)

	body := `{"model":"gpt-4o","prompt":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
