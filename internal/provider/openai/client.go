package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	ai "github.com/zootherapy/menagerie"
)

// DefaultModel is used when neither the client nor the request names a model.
const DefaultModel = "gpt-4o-mini"

// Client wraps the OpenAI SDK to implement ai.ChatProvider.
type Client struct {
	client *openai.Client
	model  string
}

// ClientOption configures the OpenAI client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	model      string
	reqOptions []option.RequestOption
}

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.reqOptions = append(c.reqOptions, option.WithBaseURL(url))
	}
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.reqOptions = append(c.reqOptions, option.WithHTTPClient(hc))
	}
}

// WithMaxRetries sets the SDK's retry count.
func WithMaxRetries(n int) ClientOption {
	return func(c *clientConfig) {
		c.reqOptions = append(c.reqOptions, option.WithMaxRetries(n))
	}
}

// New creates a new OpenAI client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	cfg := &clientConfig{model: DefaultModel}
	for _, opt := range opts {
		opt(cfg)
	}

	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, cfg.reqOptions...)
	client := openai.NewClient(reqOpts...)
	return &Client{
		client: &client,
		model:  cfg.model,
	}
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	params, err := newParams(model, messages, options)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: response contained no choices")
	}

	return &ai.Response{
		Content:      resp.Choices[0].Message.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
		ToolCalls: extractToolCalls(resp.Choices[0].Message),
	}, nil
}

var _ ai.ChatProvider = (*Client)(nil)
