package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	ai "github.com/zootherapy/menagerie"
	"github.com/zootherapy/menagerie/capability"
	"github.com/zootherapy/menagerie/persona"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	logger  *slog.Logger
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithLogger sets the logger for tool calls.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		c.logger = logger
	}
}

// NewServer creates an MCP server exposing every operation of a persona's
// capabilities as an MCP tool. The persona's instructions are advertised as
// the server instructions.
//
// Each call gets a fresh capability.Invocation whose session ID is the MCP
// client session, so configuration comes from env and never from the client.
//
// Example:
//
//	def, _ := persona.New(persona.Builtin()[4], registry)
//	s := mcp.NewServer(def, capability.OSEnv{}, mcp.WithVersion("1.2.0"))
//	server.ServeStdio(s)
func NewServer(def *persona.Definition, env capability.Environment, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "menagerie",
		version: "1.0.0",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if env == nil {
		env = capability.MapEnv{}
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
		server.WithInstructions(def.Instructions()),
	)

	logger := cfg.logger.With("persona", def.Name())
	for _, t := range def.Tools() {
		s.AddTool(ToMCPTool(t), createMCPHandler(def, env, t.Name, logger))
	}
	return s
}

// createMCPHandler routes an MCP tool call to the persona's capability.
func createMCPHandler(def *persona.Definition, env capability.Environment, toolName string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsJSON := "{}"
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			argsJSON = string(data)
		}

		inv := capability.NewInvocation(sessionID(ctx), env)
		call := ai.ToolCall{
			ID:        inv.RunID(),
			Name:      toolName,
			Arguments: argsJSON,
		}

		result := def.Execute(ctx, inv, call)
		if result.IsError {
			logger.Warn("tool call failed", "tool", toolName, "session", inv.SessionID(), "reason", result.Content)
		} else {
			logger.Debug("tool call succeeded", "tool", toolName, "session", inv.SessionID())
		}
		return ToMCPCallToolResult(result), nil
	}
}

// sessionID returns the MCP client session, or a new ID when the transport
// has none.
func sessionID(ctx context.Context) string {
	if session := server.ClientSessionFromContext(ctx); session != nil {
		if id := session.SessionID(); id != "" {
			return id
		}
	}
	return uuid.NewString()
}

// ServeStdio starts an MCP server for the persona on stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(def *persona.Definition, env capability.Environment, opts ...ServerOption) error {
	s := NewServer(def, env, opts...)
	return server.ServeStdio(s)
}
