package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/snowgoose-ai/gateway/internal/config"
	"github.com/snowgoose-ai/gateway/internal/handler"
	"github.com/snowgoose-ai/gateway/internal/llm"
	"github.com/snowgoose-ai/gateway/internal/middleware"
	"github.com/snowgoose-ai/gateway/internal/nats"
	"github.com/snowgoose-ai/gateway/internal/service"
	"github.com/snowgoose-ai/gateway/internal/store"
	"github.com/snowgoose-ai/gateway/pkg/logger"
	"github.com/snowgoose-ai/gateway/pkg/tracing"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "gateway-api", cfg.OTLPEndpoint)
		if err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tracing.Shutdown(shutdownCtx, tp)
		}()
	}

	st, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	var (
		natsClient *nats.Client
		events     service.EventPublisher
	)
	if cfg.NATSURL != "" {
		natsClient, err = nats.Connect(nats.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsClient.Close()

		publisher := nats.NewPublisher(natsClient)
		if err := publisher.EnsureStream(ctx); err != nil {
			return fmt.Errorf("failed to ensure event stream: %w", err)
		}
		events = publisher
	}

	adapters, images, err := buildAdapters(ctx, cfg)
	if err != nil {
		return err
	}

	chatService := service.NewChatService(st, st, adapters, images, events, log)
	archiveService := service.NewArchiveService(chatService, st, events, cfg.SummaryModel, log)

	chatHandler := handler.NewChatHandler(chatService, log)
	catalogHandler := handler.NewCatalogHandler(st, chatService, log)
	historyHandler := handler.NewHistoryHandler(archiveService, log)
	healthHandler := handler.NewHealthHandler(st, natsClient)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Correlation-ID"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Logging(log))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/chat", chatHandler.Chat)
		r.Post("/dalle", chatHandler.GenerateImage)

		r.Get("/models", catalogHandler.ListModels)
		r.Get("/models/{id}", catalogHandler.GetModel)

		r.Get("/personas", catalogHandler.ListPersonas)
		r.Get("/personas/{id}", catalogHandler.GetPersona)
		r.Get("/output-formats", catalogHandler.ListOutputFormats)
		r.Get("/output-formats/{id}", catalogHandler.GetOutputFormat)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireScope("admin"))
			r.Post("/personas", catalogHandler.CreatePersona)
			r.Delete("/personas/{id}", catalogHandler.DeletePersona)
			r.Post("/output-formats", catalogHandler.CreateOutputFormat)
			r.Delete("/output-formats/{id}", catalogHandler.DeleteOutputFormat)
		})

		r.Post("/history", historyHandler.Archive)
		r.Get("/history", historyHandler.List)
		r.Delete("/history/{id}", historyHandler.Delete)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// buildAdapters constructs one adapter per configured vendor. The OpenAI
// adapter doubles as the image generator when present.
func buildAdapters(ctx context.Context, cfg *config.Config) ([]llm.Adapter, llm.ImageGenerator, error) {
	var (
		adapters []llm.Adapter
		images   llm.ImageGenerator
	)

	if cfg.OpenAIAPIKey != "" {
		oa, err := llm.NewOpenAIAdapter(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OpenAI adapter: %w", err)
		}
		adapters = append(adapters, oa)
		images = oa
	}

	if cfg.AnthropicAPIKey != "" {
		aa, err := llm.NewAnthropicAdapter(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Anthropic adapter: %w", err)
		}
		adapters = append(adapters, aa)
	}

	if cfg.GoogleAPIKey != "" {
		ga, err := llm.NewGoogleAdapter(ctx, cfg.GoogleAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Google adapter: %w", err)
		}
		adapters = append(adapters, ga)
	}

	return adapters, images, nil
}
