package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/comigor/journey-go/internal/config"
	"github.com/comigor/journey-go/internal/journey"
)

type mockLLM struct {
	reply    string
	err      error
	requests []openai.ChatCompletionRequest
}

func (m *mockLLM) CreateChatCompletion(ctx context.Context, r openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.requests = append(m.requests, r)
	if m.err != nil {
		return openai.ChatCompletionResponse{}, m.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: m.reply}}},
	}, nil
}

func defaultPrompt(t *testing.T) *Prompt {
	t.Helper()
	p, err := NewPrompt(config.PromptConfig{
		System:       config.DefaultSystemPrompt,
		UserTemplate: config.DefaultUserTemplate,
		Fallback:     config.DefaultFallback,
	})
	require.NoError(t, err)
	return p
}

func llmConfig() config.LLMConfig {
	return config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "dummy", Model: config.DefaultModel}
}

func TestOpenAIGenerate(t *testing.T) {
	m := &mockLLM{reply: "Wajar banget capek, lo udah kasih effort maksimal."}
	g := NewOpenAI(m, llmConfig(), defaultPrompt(t))

	out, err := g.Generate(context.Background(), "Hari ini capek banget di rapat Katar")
	require.NoError(t, err)
	require.Equal(t, "Wajar banget capek, lo udah kasih effort maksimal.", out)

	require.Len(t, m.requests, 1)
	req := m.requests[0]
	require.Equal(t, config.DefaultModel, req.Model)
	require.Len(t, req.Messages, 2)
	require.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	require.Equal(t, config.DefaultSystemPrompt, req.Messages[0].Content)
	require.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	require.True(t, strings.HasPrefix(req.Messages[1].Content,
		`Analisa cerita atau keluhan ini dari warga Jaticempaka: "Hari ini capek banget di rapat Katar".`))
}

func TestOpenAIGenerate_EmptyReplyUsesFallback(t *testing.T) {
	g := NewOpenAI(&mockLLM{reply: ""}, llmConfig(), defaultPrompt(t))
	out, err := g.Generate(context.Background(), "halo")
	require.NoError(t, err)
	require.Equal(t, config.DefaultFallback, out)
}

func TestOpenAIGenerate_WhitespaceReplyKept(t *testing.T) {
	g := NewOpenAI(&mockLLM{reply: "   \n"}, llmConfig(), defaultPrompt(t))
	out, err := g.Generate(context.Background(), "halo")
	require.NoError(t, err)
	require.Equal(t, "   \n", out)
}

func TestOpenAIGenerate_NoChoicesUsesFallback(t *testing.T) {
	g := NewOpenAI(noChoices{}, llmConfig(), defaultPrompt(t))
	out, err := g.Generate(context.Background(), "halo")
	require.NoError(t, err)
	require.Equal(t, config.DefaultFallback, out)
}

type noChoices struct{}

func (noChoices) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}

func TestOpenAIGenerate_TransportError(t *testing.T) {
	transport := errors.New("connection reset by peer")
	g := NewOpenAI(&mockLLM{err: transport}, llmConfig(), defaultPrompt(t))

	_, err := g.Generate(context.Background(), "halo")
	require.ErrorIs(t, err, ErrGeneration)
	require.ErrorIs(t, err, transport)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, config.ProviderOpenAI, gwErr.Provider)
	require.Contains(t, err.Error(), "connection reset by peer")
}

func TestOpenAIGenerate_MissingKeyFailsBeforeCall(t *testing.T) {
	m := &mockLLM{reply: "never"}
	cfg := llmConfig()
	cfg.APIKey = ""
	g := NewOpenAI(m, cfg, defaultPrompt(t))

	_, err := g.Generate(context.Background(), "halo")
	require.ErrorIs(t, err, ErrMissingCredential)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "llm.api_key", cfgErr.Setting)
	require.Empty(t, m.requests, "no network call without a credential")
}

func TestOpenAIGenerate_BlankInput(t *testing.T) {
	m := &mockLLM{reply: "never"}
	g := NewOpenAI(m, llmConfig(), defaultPrompt(t))

	_, err := g.Generate(context.Background(), " \t")
	require.ErrorIs(t, err, journey.ErrBlankText)
	require.Empty(t, m.requests)
}

func TestNew_Providers(t *testing.T) {
	promptCfg := config.PromptConfig{UserTemplate: config.DefaultUserTemplate}

	g, err := New(llmConfig(), promptCfg)
	require.NoError(t, err)
	require.IsType(t, &OpenAI{}, g)

	g, err = New(config.LLMConfig{Provider: "Ollama", Model: "llama3"}, promptCfg)
	require.NoError(t, err)
	require.IsType(t, &Ollama{}, g)

	_, err = New(config.LLMConfig{Provider: "carrier-pigeon"}, promptCfg)
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewPrompt(t *testing.T) {
	p, err := NewPrompt(config.PromptConfig{UserTemplate: "Cerita: {{.Text}}!"})
	require.NoError(t, err)
	require.Equal(t, config.DefaultFallback, p.Fallback, "blank fallback uses the default sentence")

	msg, err := p.UserMessage("hujan lagi")
	require.NoError(t, err)
	require.Equal(t, "Cerita: hujan lagi!", msg)

	_, err = NewPrompt(config.PromptConfig{UserTemplate: "{{.Text"})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "prompt.user_template", cfgErr.Setting)
}

func TestNewPrompt_RejectsUnusableTemplate(t *testing.T) {
	for name, tmpl := range map[string]string{
		"unknown field": "Cerita: {{.Story}}",
		"story dropped": "Tolong balas dengan ramah.",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewPrompt(config.PromptConfig{UserTemplate: tmpl})
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, "prompt.user_template", cfgErr.Setting)
		})
	}
}

func TestNew_UnusableTemplateIsConfigError(t *testing.T) {
	_, err := New(llmConfig(), config.PromptConfig{UserTemplate: "{{.Story}}"})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
