// ABOUTME: Main entry point for the haven MCP server with stdio transport
// ABOUTME: Wires storage, the LLM client, and the chat pipeline into MCP tools

package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/havenjournal/haven/internal/config"
	"github.com/havenjournal/haven/internal/core"
	"github.com/havenjournal/haven/internal/extract"
	"github.com/havenjournal/haven/internal/llm"
	"github.com/havenjournal/haven/internal/mcp"
	"github.com/havenjournal/haven/internal/storage"
)

func main() {
	// Load .env if present (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	// Charm cloud KV; fall back to an ephemeral in-memory KV so the chat
	// tools still work without a charm account.
	var kv storage.KV
	charm, err := storage.OpenCharm(storage.CharmConfig{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDB,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		log.Printf("Warning: charm storage unavailable (%v), using in-memory storage", err)
		kv = storage.NewMemoryKV()
	} else {
		defer charm.Close()
		kv = charm
	}

	pipeline := core.NewPipeline(client)
	pipeline.SetAggregation(cfg.AggregationEnabled)

	server := mcpserver.NewMCPServer("haven journaling companion", "0.1.0")
	mcp.RegisterTools(server, pipeline, extract.NewExtractor(client), kv, cfg.DiaryContextEntries)

	log.Println("haven MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
