package completion

import (
	"context"
	"fmt"
	"time"

	"hsc-mapper/internal/config"
	"hsc-mapper/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAICompleter implements domain.TextCompleter against the OpenAI API.
type OpenAICompleter struct {
	llm         *openai.LLM
	temperature float64
	timeout     time.Duration
}

func NewOpenAICompleter(cfg config.LLMConfig) (*OpenAICompleter, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	model := cfg.OpenAIModel
	if model == "" {
		model = "gpt-4o-mini"
	}

	llm, err := openai.New(
		openai.WithToken(cfg.OpenAIKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai LLM client: %w", err)
	}

	return &OpenAICompleter{
		llm:         llm,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}, nil
}

// Complete implements domain.TextCompleter.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.llm.Call(ctx, prompt, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

var _ domain.TextCompleter = (*OpenAICompleter)(nil)
