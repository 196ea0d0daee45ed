// ABOUTME: Offline stub generator used when no API key is configured
// ABOUTME: Returns a deterministic echo of the prompt's head
package llm

import "context"

// stubPromptChars is how much of the prompt the stub echoes back.
const stubPromptChars = 300

// Stub is a deterministic, always-available narrative generator for
// development and tests.
type Stub struct{}

// Generate returns a simulated response embedding the prompt's head.
func (Stub) Generate(_ context.Context, prompt string) (string, error) {
	runes := []rune(prompt)
	if len(runes) > stubPromptChars {
		runes = runes[:stubPromptChars]
	}
	return "[Stub LLM] Resposta simulada para o prompt: " + string(runes) + "...", nil
}

// NewGenerator returns the OpenAI client when an API key is configured
// and the offline stub otherwise, mirroring the original hybrid setup.
func NewGenerator(cfg ClientConfig) (Generator, error) {
	if cfg.APIKey == "" {
		return Stub{}, nil
	}
	return NewClient(cfg)
}

// Generator is the narrative generation contract: prompt in, text out,
// or failure.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
