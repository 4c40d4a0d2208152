package runner

import (
	"log/slog"
	"time"

	ai "github.com/zootherapy/menagerie"
)

// Options contains configuration for running conversation turns.
type Options struct {
	// MaxSteps limits the number of model calls per turn.
	// Set to 0 for unlimited (not recommended). Default is 10.
	MaxSteps int

	// HandlerTimeout sets the timeout for each individual tool call.
	// A value of 0 means no per-call timeout. Default is 30 seconds.
	HandlerTimeout time.Duration

	// ParallelToolCalls enables concurrent execution of multiple tool calls.
	// Default is true.
	ParallelToolCalls bool

	// Logger receives turn and tool call logs. Default is slog.Default().
	Logger *slog.Logger

	// ChatOptions are passed through to the underlying ChatProvider.
	ChatOptions []ai.Option
}

// Option is a functional option for configuring a Runner.
type Option func(*Options)

// WithMaxSteps sets the maximum number of model calls per turn.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		o.MaxSteps = n
	}
}

// WithHandlerTimeout sets the timeout for each individual tool call.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HandlerTimeout = d
	}
}

// WithParallelToolCalls enables or disables concurrent tool execution.
func WithParallelToolCalls(enabled bool) Option {
	return func(o *Options) {
		o.ParallelToolCalls = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithChatOptions passes options through to the ChatProvider.
// They are applied after the persona's model and tools, so they win.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxSteps:          10,
		HandlerTimeout:    30 * time.Second,
		ParallelToolCalls: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
