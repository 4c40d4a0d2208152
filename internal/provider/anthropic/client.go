package anthropic

import (
	"context"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	ai "github.com/zootherapy/menagerie"
)

// DefaultModel is used when neither the client nor the request names a model.
const DefaultModel = "claude-sonnet-4-5"

const defaultMaxTokens = 4096

// Client wraps the Anthropic SDK to implement ai.ChatProvider.
type Client struct {
	client *anthropic.Client
	model  string
}

// ClientOption configures the Anthropic client.
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

// WithBaseURL points the client at a different API endpoint.
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

// New creates a new Anthropic client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	cfg := &clientConfig{model: DefaultModel}
	for _, opt := range opts {
		opt(cfg)
	}

	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, cfg.reqOptions...)
	client := anthropic.NewClient(reqOpts...)
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

	maxTokens := int64(defaultMaxTokens)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	msgs, system := convertMessages(messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}
	if options.Temperature != nil {
		params.Temperature = anthropic.Float(*options.Temperature)
	}
	// ToolChoiceNone sends no tools at all.
	if len(options.Tools) > 0 && options.ToolChoice != ai.ToolChoiceNone {
		tools, err := convertTools(options.Tools)
		if err != nil {
			return nil, err
		}
		params.Tools = tools
		if options.ToolChoice != "" {
			params.ToolChoice = convertToolChoice(options.ToolChoice)
		}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return &ai.Response{
		Content:      content.String(),
		FinishReason: string(resp.StopReason),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
		ToolCalls: extractToolCalls(resp.Content),
	}, nil
}

var _ ai.ChatProvider = (*Client)(nil)
