package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/nvhoang/jira-assistant/internal/config"
	log "github.com/nvhoang/jira-assistant/internal/logging"
)

// Client defines the interface for interacting with LLM services. The
// assistant makes exactly one blocking completion call per invocation:
// no retries, no streaming, no conversation memory.
type Client interface {
	// Complete sends a prompt as a single user message and returns the
	// trimmed text of the first choice.
	Complete(ctx context.Context, prompt string) (string, error)
}

// completionClient implements Client using langchain-go
type completionClient struct {
	llm       llms.Model
	maxTokens int
	timeout   time.Duration
}

// NewClient creates a new LLM client based on the provided configuration
func NewClient(cfg *config.Config) (Client, error) {
	var llmModel llms.Model
	var err error

	switch cfg.LLMProvider {
	case "openai":
		llmModel, err = openai.New(
			openai.WithToken(cfg.LLMAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
	case "azure":
		llmModel, err = openai.New(
			openai.WithToken(cfg.LLMAPIKey),
			openai.WithModel(cfg.LLMModel),
			openai.WithBaseURL(cfg.LLMServiceURL),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &completionClient{
		llm:       llmModel,
		maxTokens: cfg.LLMMaxTokens,
		timeout:   time.Duration(cfg.LLMTimeout) * time.Second,
	}, nil
}

// Complete sends a prompt to the LLM and returns the completion
func (c *completionClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.llm == nil {
		return "", errors.New("LLM client not initialized")
	}

	log.Debugf("Sending prompt to LLM: %s", truncateForLogging(prompt))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithMaxTokens(c.maxTokens))
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}

	log.Debugf("Received response from LLM: %s", truncateForLogging(completion))

	return strings.TrimSpace(completion), nil
}

// truncateForLogging truncates a string to a reasonable length for logging
func truncateForLogging(s string) string {
	const maxLength = 500
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "... [truncated]"
}
