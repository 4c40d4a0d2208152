package menagerie

import "context"

// ChatProvider defines the interface for AI chat providers.
//
// Implementations live in internal/provider and are constructed through the
// client package.
type ChatProvider interface {
	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}
