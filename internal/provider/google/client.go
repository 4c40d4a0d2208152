package google

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/genai"

	ai "github.com/zootherapy/menagerie"
)

// DefaultModel is used when neither the client nor the request names a model.
const DefaultModel = "gemini-2.5-flash"

// Client wraps the Google GenAI SDK to implement ai.ChatProvider.
type Client struct {
	client *genai.Client
	model  string
}

// ClientOption configures the Google client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	model      string
	baseURL    string
	httpClient *http.Client
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
		c.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// New creates a new Gemini API client with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{model: DefaultModel}
	for _, opt := range opts {
		opt(cfg)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.httpClient,
	}
	if cfg.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: client,
		model:  cfg.model,
	}, nil
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	contents, system := convertMessages(messages)

	config := &genai.GenerateContentConfig{SystemInstruction: system}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if options.Temperature != nil {
		temp := float32(*options.Temperature)
		config.Temperature = &temp
	}
	if len(options.Tools) > 0 {
		tools, err := convertTools(options.Tools)
		if err != nil {
			return nil, err
		}
		config.Tools = tools
		if options.ToolChoice != "" {
			config.ToolConfig = convertToolChoice(options.ToolChoice)
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, wrapError(err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
	}

	var content strings.Builder
	var toolCalls []ai.ToolCall
	finishReason := ""
	if len(resp.Candidates) > 0 {
		cand := resp.Candidates[0]
		finishReason = string(cand.FinishReason)
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				content.WriteString(part.Text)
			}
			toolCalls = extractToolCalls(cand.Content.Parts)
		}
	}

	usage := ai.Usage{}
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return &ai.Response{
		Content:      content.String(),
		FinishReason: finishReason,
		Usage:        usage,
		ToolCalls:    toolCalls,
	}, nil
}

var _ ai.ChatProvider = (*Client)(nil)
