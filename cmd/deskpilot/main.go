package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/apietra/deskpilot/internal/calllog"
	"github.com/apietra/deskpilot/internal/config"
	"github.com/apietra/deskpilot/internal/httpapi"
	"github.com/apietra/deskpilot/internal/knowledge"
	"github.com/apietra/deskpilot/internal/llm"
	"github.com/apietra/deskpilot/internal/observability"
	"github.com/apietra/deskpilot/internal/pipeline"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	backend, err := llm.New(llm.Config{
		Provider:        cfg.LLMProvider,
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		GenerationModel: cfg.GenerationModel,
		EmbeddingModel:  cfg.EmbeddingModel,
		EmbeddingDim:    cfg.EmbeddingDim,
	})
	if err != nil {
		log.Fatalf("llm backend init failed: %v", err)
	}

	ctx := context.Background()
	index, err := knowledge.NewIndex(ctx, cfg.DatabaseURL, cfg.EmbeddingDim)
	if err != nil {
		log.Fatalf("knowledge index init failed: %v", err)
	}
	defer index.Close()

	indexMode := "in-memory"
	if cfg.DatabaseURL != "" {
		indexMode = "postgres"
	}

	indexer := knowledge.NewIndexer(index, backend)
	if err := indexer.EnsureIndexed(ctx, cfg.KBDir); err != nil {
		log.Fatalf("knowledge base indexing failed: %v", err)
	}

	sink, err := calllog.NewSink(cfg.CallLogDir, cfg.CallLogDB)
	if err != nil {
		log.Fatalf("call log sink init failed: %v", err)
	}
	defer sink.Close()

	sinkMode := "file"
	if cfg.CallLogDB != "" {
		sinkMode = "sqlite"
	}

	svc := pipeline.NewService(
		knowledge.NewRetriever(index, backend),
		backend,
		sink,
		metrics,
		cfg.RetrieveMaxResults,
	)

	api := httpapi.New(cfg, svc, sinkMode, indexMode)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
