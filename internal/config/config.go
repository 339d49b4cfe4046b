package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	LLM     LLMConfig
	Prompt  PromptConfig
	Server  ServerConfig
	Log     LogConfig
	Journey JourneyConfig
}

// LLMConfig holds the LLM configuration
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// PromptConfig holds the persona handed to the model. UserTemplate is a
// text/template rendered with {{.Text}}.
type PromptConfig struct {
	System       string `mapstructure:"system"`
	UserTemplate string `mapstructure:"user_template"`
	Fallback     string `mapstructure:"fallback"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// JourneyConfig selects the journey store backend ("memory" or "sqlite").
type JourneyConfig struct {
	Backend string `mapstructure:"backend"`
}

// Load reads config.yaml from the working directory, or the file named by
// CONFIG_PATH. A missing file is fine: every setting has a default except the
// API key, which usually comes from the API_KEY environment variable.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("JOURNEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", "JOURNEY_LLM_API_KEY", "API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.timeout", DefaultTimeout)

	v.SetDefault("prompt.system", DefaultSystemPrompt)
	v.SetDefault("prompt.user_template", DefaultUserTemplate)
	v.SetDefault("prompt.fallback", DefaultFallback)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")

	v.SetDefault("log.level", "info")

	v.SetDefault("journey.backend", BackendMemory)
}
