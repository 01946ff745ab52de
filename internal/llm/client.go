// ABOUTME: OpenAI-backed text-generation client for persona replies and structured extraction
// ABOUTME: Supports free-text and JSON-schema-constrained generation with retry/backoff
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/havenjournal/haven/internal/models"
	"github.com/havenjournal/haven/internal/util"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// DefaultChatModel is the default model for chat completions
const DefaultChatModel = "gpt-4o-mini"

// extractionTemperature keeps schema-constrained output stable
const extractionTemperature = 0.3

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey     string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultClientConfig returns the default client configuration
func DefaultClientConfig(apiKey string) *ClientConfig {
	chatModel := os.Getenv("HAVEN_OPENAI_MODEL")
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	return &ClientConfig{
		APIKey:     apiKey,
		ChatModel:  chatModel,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// Client wraps the OpenAI API with per-call timeouts and retry logic.
// Retry policy lives here, in the backend-calling collaborator; the
// routing core treats each call as a single attempt.
type Client struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a client with the given API key and default configuration
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultClientConfig(apiKey))
}

// NewClientWithConfig creates a client with custom configuration
func NewClientWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &Client{
		client:     openai.NewClient(cfg.APIKey),
		chatModel:  cfg.ChatModel,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Generate produces a free-text reply for the conversation under the given system prompt
func (c *Client) Generate(ctx context.Context, history []models.Message, systemPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: c.chatMessages(history, systemPrompt),
	}
	return c.complete(ctx, req)
}

// GenerateJSON produces schema-constrained JSON output for the conversation.
// The returned string is the raw JSON document; callers own parsing.
func (c *Client) GenerateJSON(ctx context.Context, history []models.Message, systemPrompt, schemaName string, schema *jsonschema.Definition) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    c.chatMessages(history, systemPrompt),
		Temperature: extractionTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
			},
		},
	}
	return c.complete(ctx, req)
}

// complete runs one chat completion with retries and exponential backoff
func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(util.Backoff(c.retryDelay, attempt)):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, req)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// chatMessages converts a conversation history into OpenAI chat messages,
// prepending the system prompt when present
func (c *Client) chatMessages(history []models.Message, systemPrompt string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)

	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}

	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: strings.TrimSpace(msg.Content),
		})
	}

	return messages
}
