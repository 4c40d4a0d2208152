package client

import (
	"context"
	"fmt"
	"net/http"

	ai "github.com/zootherapy/menagerie"
	"github.com/zootherapy/menagerie/capability"
	"github.com/zootherapy/menagerie/internal/provider/anthropic"
	"github.com/zootherapy/menagerie/internal/provider/google"
	"github.com/zootherapy/menagerie/internal/provider/openai"
)

// BaseURLEnv overrides the OpenAI endpoint when resolving a selector.
const BaseURLEnv = "OPENAI_BASE_URL"

// Config holds what is needed to reach one provider.
type Config struct {
	// Provider selects the backend.
	Provider ai.Provider
	// APIKey authenticates with the provider.
	APIKey string
	// Model is the default model; requests may override it with ai.WithModel.
	Model string
	// BaseURL points the provider at a compatible endpoint. Optional.
	BaseURL string
	// HTTPClient replaces the SDK's HTTP client. Optional.
	HTTPClient *http.Client
}

// ErrMissingAPIKey is returned when no API key is configured for the
// provider a model needs.
type ErrMissingAPIKey struct {
	Provider ai.Provider
	Model    string
}

func (e *ErrMissingAPIKey) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("no API key configured for %s (required by model %q): set %s", e.Provider, e.Model, e.Provider.APIKeyEnv())
	}
	return fmt.Sprintf("no API key configured for %s: set %s", e.Provider, e.Provider.APIKeyEnv())
}

// ErrUnknownProvider is returned for a provider with no backend.
type ErrUnknownProvider struct {
	Provider ai.Provider
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Provider)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithMaxTokens(n))
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// Client is a chat provider bound to one backend and default model.
type Client struct {
	provider        ai.Provider
	model           string
	chat            ai.ChatProvider
	defaultChatOpts []ai.Option
}

// New creates a client for the configured provider.
func New(ctx context.Context, cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &ErrMissingAPIKey{Provider: cfg.Provider, Model: cfg.Model}
	}

	var chat ai.ChatProvider
	switch cfg.Provider {
	case ai.ProviderOpenAI:
		var po []openai.ClientOption
		if cfg.Model != "" {
			po = append(po, openai.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			po = append(po, openai.WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPClient != nil {
			po = append(po, openai.WithHTTPClient(cfg.HTTPClient))
		}
		chat = openai.New(cfg.APIKey, po...)
	case ai.ProviderAnthropic:
		var po []anthropic.ClientOption
		if cfg.Model != "" {
			po = append(po, anthropic.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			po = append(po, anthropic.WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPClient != nil {
			po = append(po, anthropic.WithHTTPClient(cfg.HTTPClient))
		}
		chat = anthropic.New(cfg.APIKey, po...)
	case ai.ProviderGoogle:
		var po []google.ClientOption
		if cfg.Model != "" {
			po = append(po, google.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			po = append(po, google.WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPClient != nil {
			po = append(po, google.WithHTTPClient(cfg.HTTPClient))
		}
		gc, err := google.New(ctx, cfg.APIKey, po...)
		if err != nil {
			return nil, fmt.Errorf("create google client: %w", err)
		}
		chat = gc
	default:
		return nil, &ErrUnknownProvider{Provider: cfg.Provider}
	}

	c := &Client{
		provider: cfg.Provider,
		model:    cfg.Model,
		chat:     chat,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ForSelector creates a client for a persona's model selector, reading the
// provider's API key from env.
func ForSelector(ctx context.Context, sel ai.ModelSelector, env capability.Environment, opts ...ClientOption) (*Client, error) {
	if !sel.Provider.Known() {
		return nil, &ErrUnknownProvider{Provider: sel.Provider}
	}
	if env == nil {
		env = capability.MapEnv{}
	}

	key, _ := env.Lookup(sel.Provider.APIKeyEnv())
	cfg := Config{
		Provider: sel.Provider,
		APIKey:   key,
		Model:    sel.Name,
	}
	if sel.Provider == ai.ProviderOpenAI {
		cfg.BaseURL, _ = env.Lookup(BaseURLEnv)
	}
	return New(ctx, cfg, opts...)
}

// Provider returns the backend this client talks to.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// Model returns the default model.
func (c *Client) Model() string {
	return c.model
}

// Chat sends a conversation to the provider. Client defaults are applied
// before the per-request options.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	if len(c.defaultChatOpts) > 0 {
		opts = append(append([]ai.Option{}, c.defaultChatOpts...), opts...)
	}
	return c.chat.Chat(ctx, messages, opts...)
}

var _ ai.ChatProvider = (*Client)(nil)
