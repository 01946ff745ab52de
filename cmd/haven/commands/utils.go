// ABOUTME: Shared setup helpers for CLI commands
// ABOUTME: Environment loading, storage opening, and backend client construction

package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/havenjournal/haven/internal/config"
	"github.com/havenjournal/haven/internal/llm"
	"github.com/havenjournal/haven/internal/storage"
)

// loadConfig loads .env and the environment configuration
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

// newLLMClient builds the OpenAI client from configuration
func newLLMClient(cfg *config.Config) (*llm.Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
}

// openKV opens charm cloud storage. When fallback is set, a charm failure
// degrades to an in-memory KV (nothing persists) instead of an error, so
// chat still works without a charm account.
func openKV(cfg *config.Config, fallback bool) (storage.KV, func(), error) {
	charm, err := storage.OpenCharm(storage.CharmConfig{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDB,
		AutoSync: cfg.AutoSync,
	})
	if err == nil {
		return charm, func() { _ = charm.Close() }, nil
	}
	if !fallback {
		return nil, nil, fmt.Errorf("opening charm storage: %w", err)
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "Warning: charm storage unavailable (%v), nothing will be saved\n", err)
	}
	return storage.NewMemoryKV(), func() {}, nil
}
