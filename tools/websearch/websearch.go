package websearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	ai "github.com/zootherapy/menagerie"
	"github.com/zootherapy/menagerie/capability"
)

const (
	// Name is the capability name personas list to enable web search.
	Name = "WebSearchTool"
	// OperationName is the tool name the model calls.
	OperationName = "web_search"
	// DefaultModel is the search-enabled chat model used for queries.
	DefaultModel = "gpt-4o-search-preview"

	apiKeyEnv  = "OPENAI_API_KEY"
	baseURLEnv = "OPENAI_BASE_URL"
)

// Descriptor returns the capability metadata.
func Descriptor() capability.Descriptor {
	return capability.Descriptor{
		Name:        Name,
		Description: "Searches the web and answers with current, cited information.",
		Dependencies: []capability.Dependency{
			{Name: "github.com/openai/openai-go", Version: "1.12.0", Ecosystem: capability.EcosystemGo},
		},
		Config: []capability.ConfigRequirement{
			{Key: apiKeyEnv, Description: "OpenAI API key", Required: true},
			{Key: baseURLEnv, Description: "Override for the OpenAI API base URL"},
		},
	}
}

// Args are the arguments of the web_search operation.
type Args struct {
	Query string `json:"query" jsonschema:"description=What to search the web for"`
}

// Tool performs web searches through an OpenAI search model.
// It holds only immutable settings; a new SDK client is created per call from
// the invocation's credentials.
type Tool struct {
	model       string
	contextSize string
	baseURL     string
	httpClient  *http.Client
	maxRetries  int
}

// Option configures a Tool.
type Option func(*Tool)

// WithModel overrides the search model.
func WithModel(model string) Option {
	return func(t *Tool) {
		t.model = model
	}
}

// WithSearchContextSize sets how much web context the model retrieves:
// "low", "medium" or "high". New rejects any other value.
func WithSearchContextSize(size string) Option {
	return func(t *Tool) {
		t.contextSize = size
	}
}

// WithBaseURL sets the API base URL, taking precedence over OPENAI_BASE_URL.
func WithBaseURL(url string) Option {
	return func(t *Tool) {
		t.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Tool) {
		t.httpClient = c
	}
}

// WithMaxRetries sets the SDK's retry count for failed requests.
// A negative value keeps the SDK default.
func WithMaxRetries(n int) Option {
	return func(t *Tool) {
		t.maxRetries = n
	}
}

// New creates a web search tool. It fails if an option value is out of range.
func New(opts ...Option) (*Tool, error) {
	t := &Tool{
		model:       DefaultModel,
		contextSize: "medium",
		maxRetries:  -1,
	}
	for _, opt := range opts {
		opt(t)
	}

	switch t.contextSize {
	case "low", "medium", "high":
	default:
		return nil, fmt.Errorf("websearch: unknown search context size %q (want low, medium or high)", t.contextSize)
	}
	if strings.TrimSpace(t.model) == "" {
		return nil, errors.New("websearch: model must not be empty")
	}
	return t, nil
}

// Operations implements capability.Capability.
func (t *Tool) Operations() []capability.Operation {
	return []capability.Operation{
		capability.Op(OperationName,
			"Search the web for up-to-date information. Returns a summary with source links.",
			t.search),
	}
}

// Register adds the web search capability to registry. Option errors surface
// when the capability is built.
func Register(registry *capability.Registry, opts ...Option) error {
	return registry.Register(Descriptor(), func() (capability.Capability, error) {
		return New(opts...)
	})
}

func (t *Tool) search(ctx context.Context, inv *capability.Invocation, args Args) (string, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return "", errors.New("query must not be empty")
	}

	apiKey, err := inv.Require(apiKeyEnv)
	if err != nil {
		return "", err
	}

	client := openai.NewClient(t.requestOptions(apiKey, inv)...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: t.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(query),
		},
		WebSearchOptions: openai.ChatCompletionNewParamsWebSearchOptions{
			SearchContextSize: t.contextSize,
		},
	})
	if err != nil {
		return "", wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("search returned no choices")
	}

	msg := resp.Choices[0].Message
	if strings.TrimSpace(msg.Content) == "" {
		if msg.Refusal != "" {
			return "", fmt.Errorf("search refused: %s", msg.Refusal)
		}
		return "", errors.New("search returned an empty answer")
	}
	return formatAnswer(msg), nil
}

func (t *Tool) requestOptions(apiKey string, inv *capability.Invocation) []option.RequestOption {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}

	baseURL := t.baseURL
	if baseURL == "" {
		baseURL, _ = inv.Lookup(baseURLEnv)
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if t.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(t.httpClient))
	}
	if t.maxRetries >= 0 {
		opts = append(opts, option.WithMaxRetries(t.maxRetries))
	}
	return opts
}

// formatAnswer appends the cited sources, deduplicated by URL, to the answer.
func formatAnswer(msg openai.ChatCompletionMessage) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(msg.Content))

	seen := make(map[string]bool)
	for _, a := range msg.Annotations {
		cite := a.URLCitation
		if cite.URL == "" || seen[cite.URL] {
			continue
		}
		if len(seen) == 0 {
			b.WriteString("\n\nSources:")
		}
		seen[cite.URL] = true

		title := cite.Title
		if title == "" {
			title = cite.URL
		}
		fmt.Fprintf(&b, "\n- %s (%s)", title, cite.URL)
	}
	return b.String()
}

// wrapError attaches a status-based category to API errors.
func wrapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return ai.NewError("", apiErr.StatusCode, err)
}
