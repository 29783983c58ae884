// Package llm talks to external chat-completion services.
package llm

import (
	"context"
	"errors"
)

// Roles understood by chat-completion providers
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrMissingAPIKey is returned when a provider is built without a credential.
var ErrMissingAPIKey = errors.New("llm: missing API key")

// Message is a provider-agnostic chat turn
type Message struct {
	Role    string
	Content string
}

// Options tune a single chat call
type Options struct {
	Temperature float64
	Model       string
}

// Option sets a field on Options
type Option func(*Options)

// WithTemperature sets the sampling temperature
func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

// WithModel overrides the provider's default model
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider sends a message list to a model and returns the generated text.
// An empty string with a nil error means the provider returned no choices.
type Provider interface {
	Chat(ctx context.Context, history []Message, opts ...Option) (string, error)
}
