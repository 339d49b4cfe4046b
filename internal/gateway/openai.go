package gateway

import (
	"context"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/comigor/journey-go/internal/config"
	"github.com/comigor/journey-go/internal/llm"
	"github.com/comigor/journey-go/internal/logger"
)

// OpenAI generates replies through any OpenAI-compatible chat completion API.
type OpenAI struct {
	client llm.Client
	cfg    config.LLMConfig
	prompt *Prompt
}

// NewOpenAI creates a gateway over client. The API key in cfg is only checked,
// the client is expected to carry it already.
func NewOpenAI(client llm.Client, cfg config.LLMConfig, prompt *Prompt) *OpenAI {
	return &OpenAI{client: client, cfg: cfg, prompt: prompt}
}

// Generate implements Gateway.
func (g *OpenAI) Generate(ctx context.Context, userText string) (string, error) {
	if err := checkInput(userText); err != nil {
		return "", err
	}
	if g.cfg.APIKey == "" {
		observe(config.ProviderOpenAI, g.cfg.Model, statusConfigError, time.Time{})
		return "", &ConfigError{
			Setting: "llm.api_key",
			Hint:    "set API_KEY in the environment or .env",
			Err:     ErrMissingCredential,
		}
	}

	userMessage, err := g.prompt.UserMessage(userText)
	if err != nil {
		return "", err
	}

	messages := []openai.ChatCompletionMessage{}
	if g.prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: g.prompt.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage})

	started := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.cfg.Model,
		Messages: messages,
	})
	if err != nil {
		logger.L.Error("LLM call failed", "provider", config.ProviderOpenAI, "model", g.cfg.Model, "error", err)
		observe(config.ProviderOpenAI, g.cfg.Model, statusError, started)
		return "", &Error{Provider: config.ProviderOpenAI, Model: g.cfg.Model, Err: err}
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	reply, fellBack := g.prompt.Reply(content)
	if fellBack {
		logger.L.Warn("LLM returned an empty reply; using fallback", "model", g.cfg.Model)
		observe(config.ProviderOpenAI, g.cfg.Model, statusFallback, started)
	} else {
		observe(config.ProviderOpenAI, g.cfg.Model, statusSuccess, started)
	}
	logger.L.Debug("LLM response received", "model", g.cfg.Model, "length", len(reply), "usage", resp.Usage.TotalTokens)
	return reply, nil
}
