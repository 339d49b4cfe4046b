package gateway

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/comigor/journey-go/internal/config"
)

// Prompt is the persona sent with every story.
type Prompt struct {
	System   string
	Fallback string
	user     *template.Template
}

// NewPrompt parses the user template of cfg.
func NewPrompt(cfg config.PromptConfig) (*Prompt, error) {
	tmpl, err := template.New("user").Option("missingkey=error").Parse(cfg.UserTemplate)
	if err != nil {
		return nil, &ConfigError{Setting: "prompt.user_template", Err: err}
	}
	if err := checkTemplate(tmpl); err != nil {
		return nil, &ConfigError{Setting: "prompt.user_template", Hint: "the template must embed {{.Text}}", Err: err}
	}
	fallback := cfg.Fallback
	if strings.TrimSpace(fallback) == "" {
		fallback = config.DefaultFallback
	}
	return &Prompt{System: cfg.System, Fallback: fallback, user: tmpl}, nil
}

// storyMarker stands in for the story when the template is checked at load.
const storyMarker = "JOURNEY_STORY_MARKER"

// checkTemplate renders tmpl once so a template that fails, or that drops the
// story, is caught at startup instead of on every submission.
func checkTemplate(tmpl *template.Template) error {
	var b strings.Builder
	if err := tmpl.Execute(&b, struct{ Text string }{Text: storyMarker}); err != nil {
		return err
	}
	if !strings.Contains(b.String(), storyMarker) {
		return errors.New("template does not include the story")
	}
	return nil
}

// UserMessage renders the user template around the story.
func (p *Prompt) UserMessage(text string) (string, error) {
	var b strings.Builder
	if err := p.user.Execute(&b, struct{ Text string }{Text: text}); err != nil {
		return "", fmt.Errorf("render user prompt: %w", err)
	}
	return b.String(), nil
}

// Reply returns the generated text, or the fallback sentence when the model
// answered with nothing. Whitespace counts as an answer.
func (p *Prompt) Reply(generated string) (string, bool) {
	if generated == "" {
		return p.Fallback, true
	}
	return generated, false
}
