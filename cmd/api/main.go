package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movierec/internal/config"
	"movierec/internal/llm"
	"movierec/internal/recommend"
	"movierec/internal/server"
	"movierec/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	recLog := store.NewRecommendationLog(db)

	client, err := newProviderClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create provider client: %v", err)
	}
	if client == nil {
		log.Printf("No provider configured; serving fallback recommendations")
	} else {
		defer client.Close()
		log.Printf("Provider: %s (timeout %s)", client.Name(), cfg.LLM.Timeout)
	}

	resolver := recommend.NewResolver(client, recLog, recommend.ResolverConfig{
		Timeout:   cfg.LLM.Timeout,
		CacheSize: cfg.LLM.CacheSize,
	})

	handlers := server.NewHandlers(resolver, recLog, server.DebugEnv{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		KeyPrefix: keyPrefix(cfg.LLM.APIKey),
		KeyLength: len(cfg.LLM.APIKey),
		AppEnv:    cfg.Env,
	})
	srv := server.New(cfg.Port, server.NewMux(handlers, cfg.AllowedOrigins))

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// newProviderClient builds the configured provider, wrapped in logging
// and the optional rate limiter. A nil client means "not configured",
// which the pipeline treats as a normal fallback case.
func newProviderClient(cfg *config.Config) (llm.LLMClient, error) {
	var client llm.LLMClient
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		c, err := llm.NewGeminiClient(context.Background(), cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			return nil, err
		}
		client = c
	case config.ProviderOpenAI:
		client = llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
	case config.ProviderFake:
		client = llm.NewFakeClient("")
	default:
		return nil, nil
	}
	return llm.Wrap(client,
		llm.Logging(),
		llm.RateLimit(cfg.LLM.RPS, cfg.LLM.Burst),
	), nil
}

func keyPrefix(key string) string {
	if len(key) < 6 {
		return key
	}
	return key[:6]
}
