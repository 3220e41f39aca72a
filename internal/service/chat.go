// Package service provides business logic for the AI gateway.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snowgoose-ai/gateway/internal/llm"
	"github.com/snowgoose-ai/gateway/internal/model"
	"github.com/snowgoose-ai/gateway/internal/prompt"
	"github.com/snowgoose-ai/gateway/pkg/logger"
	"github.com/snowgoose-ai/gateway/pkg/metrics"
)

// ModelStore resolves logical models.
type ModelStore interface {
	ModelByID(ctx context.Context, id int) (*model.Model, error)
	ModelByAPIName(ctx context.Context, apiName string) (*model.Model, error)
}

// PromptStore resolves personas and output formats.
type PromptStore interface {
	GetPersona(ctx context.Context, id int) (*model.Persona, error)
	GetOutputFormat(ctx context.Context, id int) (*model.OutputFormat, error)
}

// EventPublisher publishes gateway events for downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *model.GatewayEvent) error
}

// ChatService is the dispatcher: it resolves the model, composes the
// canonical request, selects the vendor adapter, and normalizes failures.
// Each call is stateless; no conversation state is held between dispatches.
type ChatService struct {
	models   ModelStore
	prompts  PromptStore
	adapters map[string]llm.Adapter
	images   llm.ImageGenerator
	events   EventPublisher
	logger   *logger.Logger
}

// NewChatService creates a new chat service. Adapters are keyed by their
// vendor name; events may be nil when event publishing is disabled.
func NewChatService(
	models ModelStore,
	prompts PromptStore,
	adapters []llm.Adapter,
	images llm.ImageGenerator,
	events EventPublisher,
	log *logger.Logger,
) *ChatService {
	byVendor := make(map[string]llm.Adapter, len(adapters))
	for _, a := range adapters {
		byVendor[a.Vendor()] = a
	}
	return &ChatService{
		models:   models,
		prompts:  prompts,
		adapters: byVendor,
		images:   images,
		events:   events,
		logger:   log,
	}
}

// ResolveModel resolves a logical model by numeric id, or by the vendor
// api_name on the legacy lookup path. There is no default model: an unknown
// identifier fails the whole request.
func (s *ChatService) ResolveModel(ctx context.Context, idOrAPIName string) (*model.Model, error) {
	if id, err := strconv.Atoi(idOrAPIName); err == nil {
		return s.models.ModelByID(ctx, id)
	}
	return s.models.ModelByAPIName(ctx, idOrAPIName)
}

// Chat handles a raw chat request end to end: resolve, compose, dispatch.
func (s *ChatService) Chat(ctx context.Context, payload *model.ChatPayload) (*model.ChatReply, error) {
	m, err := s.ResolveModel(ctx, payload.Model)
	if err != nil {
		return nil, err
	}

	// The dispatcher trusts the capability flags: an image against a
	// non-vision model is a caller error, not a silent text fallback.
	if payload.ImageData != "" && !m.IsVision {
		return nil, model.ErrNotVisionCapable
	}

	var persona *model.Persona
	if payload.PersonaID != 0 {
		if persona, err = s.prompts.GetPersona(ctx, payload.PersonaID); err != nil {
			return nil, err
		}
	}

	var format *model.OutputFormat
	if payload.OutputFormatID != 0 {
		if format, err = s.prompts.GetOutputFormat(ctx, payload.OutputFormatID); err != nil {
			return nil, err
		}
	}

	req := prompt.Compose(
		m, persona, format,
		payload.ResponseHistory,
		payload.Prompt,
		payload.ImageData,
		payload.MaxTokens,
		payload.BudgetTokens,
	)

	return s.Dispatch(ctx, req)
}

// Dispatch sends a composed canonical request through the adapter selected
// by vendor. Vendor failures surface directly; there are no retries and no
// fallback vendor.
func (s *ChatService) Dispatch(ctx context.Context, req *model.ChatRequest) (*model.ChatReply, error) {
	adapter, err := s.selectAdapter(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	reply, err := adapter.Send(ctx, req)
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordDispatch(adapter.Vendor(), req.Model.APIName, "error", duration)
		s.publish(ctx, &model.GatewayEvent{
			ID:        uuid.New().String(),
			Type:      model.EventTypeDispatchFailed,
			Vendor:    adapter.Vendor(),
			Model:     req.Model.APIName,
			Reason:    err.Error(),
			CreatedAt: time.Now(),
		})
		return nil, err
	}

	metrics.RecordDispatch(adapter.Vendor(), req.Model.APIName, "success", duration)
	s.publish(ctx, &model.GatewayEvent{
		ID:        uuid.New().String(),
		Type:      model.EventTypeChatDispatched,
		Vendor:    adapter.Vendor(),
		Model:     req.Model.APIName,
		CreatedAt: time.Now(),
	})

	return reply, nil
}

// GenerateImage creates an image through the image-capable vendor.
func (s *ChatService) GenerateImage(ctx context.Context, promptText string) (*model.GeneratedImage, error) {
	if s.images == nil {
		return nil, fmt.Errorf("%w: no image-capable adapter configured", model.ErrUnknownVendor)
	}

	img, err := s.images.GenerateImage(ctx, promptText)
	if err != nil {
		metrics.ImageGenerationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.ImageGenerationsTotal.WithLabelValues("success").Inc()
	s.publish(ctx, &model.GatewayEvent{
		ID:        uuid.New().String(),
		Type:      model.EventTypeImageGenerated,
		Vendor:    model.VendorOpenAI,
		CreatedAt: time.Now(),
	})

	return img, nil
}

// selectAdapter picks the adapter for a request. Vision requests always take
// the OpenAI-compatible path regardless of the model's nominal vendor; all
// other requests match the vendor name against the closed vendor set.
func (s *ChatService) selectAdapter(req *model.ChatRequest) (llm.Adapter, error) {
	name := strings.ToLower(req.Model.VendorName())

	if req.ImageData != "" && req.Model.IsVision {
		name = model.VendorOpenAI
	}

	switch name {
	case model.VendorOpenAI, model.VendorAnthropic, model.VendorGoogle:
		if a, ok := s.adapters[name]; ok {
			return a, nil
		}
		return nil, fmt.Errorf("%w: no adapter configured for %q", model.ErrUnknownVendor, name)
	}

	return nil, fmt.Errorf("%w: %q", model.ErrUnknownVendor, req.Model.VendorName())
}

func (s *ChatService) publish(ctx context.Context, event *model.GatewayEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish gateway event",
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}
