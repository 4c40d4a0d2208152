// Package mcp exposes a persona's capabilities over the Model Context
// Protocol.
//
// MCP clients such as desktop assistants or IDEs can discover and call the
// persona's operations without running the conversation loop:
//
//	registry := capability.NewRegistry()
//	websearch.Register(registry)
//	def, err := persona.New(persona.Builtin()[4], registry)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := mcp.ServeStdio(def, capability.OSEnv{}); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/zootherapy/menagerie"
)

// ToMCPTool converts a Tool to an MCP Tool.
// The Tool.Parameters JSON schema is used as the MCP Tool's RawInputSchema.
func ToMCPTool(t ai.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// ToMCPCallToolResult converts a ToolResult to an MCP CallToolResult.
func ToMCPCallToolResult(result ai.ToolResult) *mcp.CallToolResult {
	if result.IsError {
		return mcp.NewToolResultError(result.Content)
	}
	return mcp.NewToolResultText(result.Content)
}
