package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrGeneration marks every failure of the remote model.
	ErrGeneration = errors.New("gateway: generation failed")
	// ErrMissingCredential is returned before any network call when no API key is configured.
	ErrMissingCredential = errors.New("gateway: API key is missing")
	ErrUnknownProvider   = errors.New("gateway: unknown provider")
)

// Error wraps a transport, authentication or service failure.
type Error struct {
	Provider string
	Model    string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s/%s generation failed: %v", e.Provider, e.Model, e.Err)
}

func (e *Error) Unwrap() []error { return []error{ErrGeneration, e.Err} }

// ConfigError reports a setting that prevents any generation attempt.
type ConfigError struct {
	Setting string
	Hint    string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("configuration: %s: %v", e.Setting, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }
