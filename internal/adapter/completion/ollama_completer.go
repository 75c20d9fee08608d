// Package completion provides TextCompleter adapters over LangchainGo LLM
// clients. One blocking call per prompt, no streaming.
package completion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hsc-mapper/internal/config"
	"hsc-mapper/internal/domain"
	"hsc-mapper/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaCompleter implements domain.TextCompleter against a local Ollama
// server.
type OllamaCompleter struct {
	llm         *ollama.LLM
	temperature float64
	timeout     time.Duration
}

// NewOllamaCompleter creates the completer with a timeout-bounded HTTP
// client. A hung upstream call would otherwise stall a whole batch.
func NewOllamaCompleter(cfg config.LLMConfig) (*OllamaCompleter, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}

	llm, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama LLM client: %w", err)
	}

	return &OllamaCompleter{
		llm:         llm,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}, nil
}

// Complete implements domain.TextCompleter.
func (c *OllamaCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.llm.Call(ctx, prompt, llms.WithTemperature(c.temperature))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			logger.Get().Error("LLM request timed out", zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

var _ domain.TextCompleter = (*OllamaCompleter)(nil)
