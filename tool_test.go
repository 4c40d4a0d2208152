package menagerie

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolCallResults(t *testing.T) {
	call := ToolCall{ID: "call_1", Name: "web_search", Arguments: `{"query":"grounding"}`}

	t.Run("succeeded", func(t *testing.T) {
		res := call.Succeeded("found it")
		assert.Equal(t, ToolResult{ToolCallID: "call_1", Content: "found it"}, res)
	})

	t.Run("failed", func(t *testing.T) {
		res := call.Failed("unknown tool: %s", call.Name)
		assert.Equal(t, "call_1", res.ToolCallID)
		assert.Equal(t, "unknown tool: web_search", res.Content)
		assert.True(t, res.IsError)
	})

	t.Run("raw arguments", func(t *testing.T) {
		assert.JSONEq(t, `{"query":"grounding"}`, string(call.RawArguments()))
		assert.Equal(t, json.RawMessage("{}"), ToolCall{}.RawArguments())
	})
}

func TestToolSchema(t *testing.T) {
	t.Run("object schema", func(t *testing.T) {
		schema, err := Tool{Name: "web_search", Parameters: json.RawMessage(`{"type":"object","required":["query"]}`)}.Schema()
		require.NoError(t, err)
		assert.Equal(t, "object", schema["type"])
		assert.Equal(t, []any{"query"}, schema["required"])
	})

	t.Run("no parameters", func(t *testing.T) {
		schema, err := Tool{Name: "ping"}.Schema()
		require.NoError(t, err)
		assert.Nil(t, schema)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Tool{Name: "web_search", Parameters: json.RawMessage(`{"type":`)}.Schema()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "web_search")
	})

	t.Run("null", func(t *testing.T) {
		_, err := Tool{Name: "web_search", Parameters: json.RawMessage(`null`)}.Schema()
		require.Error(t, err)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := Tool{Name: "web_search", Parameters: json.RawMessage(`{"type":"string"}`)}.Schema()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must describe an object")
	})
}

func TestToolCallArgumentMap(t *testing.T) {
	args, err := ToolCall{Name: "web_search", Arguments: `{"query":"calm"}`}.ArgumentMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"query": "calm"}, args)

	args, err = ToolCall{Name: "web_search"}.ArgumentMap()
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = ToolCall{Name: "web_search", Arguments: "null"}.ArgumentMap()
	require.NoError(t, err)
	assert.NotNil(t, args)

	_, err = ToolCall{ID: "c1", Name: "web_search", Arguments: `{"query":`}.ArgumentMap()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c1")

	_, err = ToolCall{Name: "web_search", Arguments: `["query"]`}.ArgumentMap()
	require.Error(t, err)
}

func TestNewToolResultMessage(t *testing.T) {
	t.Run("creates message with results", func(t *testing.T) {
		msg := NewToolResultMessage(
			ToolResult{ToolCallID: "call_1", Content: "ok"},
			ToolResult{ToolCallID: "call_2", Content: "missing key", IsError: true},
		)

		assert.Equal(t, RoleTool, msg.Role)
		assert.Len(t, msg.ToolResults, 2)
		assert.True(t, msg.ToolResults[1].IsError)
	})

	t.Run("creates message with no results", func(t *testing.T) {
		msg := NewToolResultMessage()

		assert.Equal(t, RoleTool, msg.Role)
		assert.Empty(t, msg.ToolResults)
	})
}

func TestMessageHelpers(t *testing.T) {
	user := NewUserMessage("hello")
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "hello", user.Content)
	assert.Contains(t, user.ID, "msg-")

	sys := NewSystemMessage("be kind")
	assert.Equal(t, RoleSystem, sys.Role)
	assert.Empty(t, sys.ID)

	total := Usage{InputTokens: 1, OutputTokens: 2}.Add(Usage{InputTokens: 3, OutputTokens: 4})
	assert.Equal(t, Usage{InputTokens: 4, OutputTokens: 6}, total)
}
