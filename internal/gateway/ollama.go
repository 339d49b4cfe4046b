package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/comigor/journey-go/internal/config"
	"github.com/comigor/journey-go/internal/logger"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama generates replies with a local Ollama server. No API key is needed.
type Ollama struct {
	client *api.Client
	model  string
	prompt *Prompt
}

// NewOllama creates a gateway talking to cfg.BaseURL (without any /v1 suffix).
func NewOllama(cfg config.LLMConfig, prompt *Prompt) (*Ollama, error) {
	base := cfg.BaseURL
	if base == "" || base == config.DefaultBaseURL {
		base = defaultOllamaURL
	}
	base = strings.TrimSuffix(strings.TrimSuffix(base, "/"), "/v1")

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, &ConfigError{Setting: "llm.base_url", Err: err}
	}

	httpClient := &http.Client{}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	logger.L.Info("ollama gateway created", "base_url", base, "model", cfg.Model)
	return &Ollama{
		client: api.NewClient(parsed, httpClient),
		model:  cfg.Model,
		prompt: prompt,
	}, nil
}

// Generate implements Gateway.
func (g *Ollama) Generate(ctx context.Context, userText string) (string, error) {
	if err := checkInput(userText); err != nil {
		return "", err
	}
	userMessage, err := g.prompt.UserMessage(userText)
	if err != nil {
		return "", err
	}

	messages := []api.Message{}
	if g.prompt.System != "" {
		messages = append(messages, api.Message{Role: "system", Content: g.prompt.System})
	}
	messages = append(messages, api.Message{Role: "user", Content: userMessage})

	stream := false
	req := &api.ChatRequest{
		Model:    g.model,
		Messages: messages,
		Stream:   &stream,
	}

	started := time.Now()
	var content strings.Builder
	err = g.client.Chat(ctx, req, func(r api.ChatResponse) error {
		content.WriteString(r.Message.Content)
		return nil
	})
	if err != nil {
		logger.L.Error("ollama call failed", "model", g.model, "error", err)
		observe(config.ProviderOllama, g.model, statusError, started)
		return "", &Error{Provider: config.ProviderOllama, Model: g.model, Err: fmt.Errorf("chat: %w", err)}
	}

	reply, fellBack := g.prompt.Reply(content.String())
	if fellBack {
		logger.L.Warn("ollama returned an empty reply; using fallback", "model", g.model)
		observe(config.ProviderOllama, g.model, statusFallback, started)
	} else {
		observe(config.ProviderOllama, g.model, statusSuccess, started)
	}
	return reply, nil
}
