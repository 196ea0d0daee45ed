// ABOUTME: OpenAI-backed narrative generator with retry and backoff
// ABOUTME: Each attempt is bounded by the caller's context plus a per-call timeout
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/edalab/eda-agent/internal/util"
)

// DefaultChatModel is the default model for chat completions.
const DefaultChatModel = "gpt-4o-mini"

// systemPrompt frames every narrative request.
const systemPrompt = "Você é um assistente de análise exploratória de dados. Responda de forma objetiva, em português, com base apenas no contexto fornecido."

// ClientConfig holds configuration for the OpenAI client.
type ClientConfig struct {
	APIKey     string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client wraps the OpenAI API client with retry logic. It implements the
// core's NarrativeGenerator contract.
type Client struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an OpenAI-backed generator.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	return &Client{
		client:     openai.NewClient(cfg.APIKey),
		chatModel:  cfg.ChatModel,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Generate sends the prompt as a chat completion and returns the model's
// text verbatim. Transient failures are retried with jittered exponential
// backoff; the last error is returned when all attempts fail.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0.3,
		})
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

	return "", fmt.Errorf("failed to generate narrative after %d attempts: %w", c.maxRetries+1, lastErr)
}
