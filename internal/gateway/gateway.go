// Package gateway wraps the single outbound call to the text generation model.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/comigor/journey-go/internal/config"
	"github.com/comigor/journey-go/internal/journey"
	"github.com/comigor/journey-go/internal/llm"
)

// Gateway turns a resident's story into a short reply. Implementations never
// retry and never touch the journey store.
type Gateway interface {
	Generate(ctx context.Context, userText string) (string, error)
}

// New builds the gateway for cfg.Provider.
func New(cfg config.LLMConfig, promptCfg config.PromptConfig) (Gateway, error) {
	prompt, err := NewPrompt(promptCfg)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Provider) {
	case "", config.ProviderOpenAI:
		return NewOpenAI(llm.NewClient(cfg), cfg, prompt), nil
	case config.ProviderOllama:
		return NewOllama(cfg, prompt)
	default:
		return nil, &ConfigError{
			Setting: "llm.provider",
			Hint:    fmt.Sprintf("%q is not one of %q, %q", cfg.Provider, config.ProviderOpenAI, config.ProviderOllama),
			Err:     ErrUnknownProvider,
		}
	}
}

func checkInput(userText string) error {
	if journey.IsBlank(userText) {
		return journey.ErrBlankText
	}
	return nil
}
