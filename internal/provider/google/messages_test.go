package google

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	ai "github.com/zootherapy/menagerie"
)

func TestConvertMessages(t *testing.T) {
	contents, system := convertMessages([]ai.Message{
		ai.NewSystemMessage("Be kind."),
		ai.NewUserMessage("find me something"),
		{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{{ID: "c1", Name: "web_search", Arguments: `{"query":"kindness"}`}}},
		ai.NewToolResultMessage(
			ai.ToolResult{ToolCallID: "c1", Content: "plain text"},
			ai.ToolResult{ToolCallID: "c1", Content: "broken", IsError: true},
		),
	})

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	assert.Equal(t, "Be kind.", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)

	call := contents[1].Parts[0].FunctionCall
	require.NotNil(t, call)
	assert.Equal(t, "web_search", call.Name)
	assert.Equal(t, map[string]any{"query": "kindness"}, call.Args)

	require.Len(t, contents[2].Parts, 2)
	first := contents[2].Parts[0].FunctionResponse
	require.NotNil(t, first)
	assert.Equal(t, "web_search", first.Name)
	assert.Equal(t, map[string]any{"result": "plain text"}, first.Response)
	assert.Equal(t, map[string]any{"error": "broken"}, contents[2].Parts[1].FunctionResponse.Response)
}

func TestConvertMessagesWithoutSystem(t *testing.T) {
	contents, system := convertMessages([]ai.Message{ai.NewUserMessage("hi")})
	assert.Nil(t, system)
	assert.Len(t, contents, 1)
}

func TestConvertTools(t *testing.T) {
	tools, err := convertTools([]ai.Tool{{
		Name:        "web_search",
		Description: "Search",
		Parameters:  json.RawMessage(`{"type":"object","properties":{"query":{"type":"string","description":"q"}},"required":["query"]}`),
	}})
	require.NoError(t, err)

	require.Len(t, tools, 1)
	require.Len(t, tools[0].FunctionDeclarations, 1)
	decl := tools[0].FunctionDeclarations[0]
	assert.Equal(t, "web_search", decl.Name)
	require.NotNil(t, decl.Parameters)
	assert.Equal(t, genai.TypeObject, decl.Parameters.Type)
	assert.Equal(t, []string{"query"}, decl.Parameters.Required)
	assert.Equal(t, genai.TypeString, decl.Parameters.Properties["query"].Type)

	tools, err = convertTools(nil)
	require.NoError(t, err)
	assert.Nil(t, tools)
}

func TestConvertToolsRejectsUnusableSchemas(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		_, err := convertTools([]ai.Tool{{Name: "web_search", Parameters: json.RawMessage(`{"type":"object"`)}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "web_search")
	})

	t.Run("unsupported property type", func(t *testing.T) {
		_, err := convertTools([]ai.Tool{{
			Name:       "web_search",
			Parameters: json.RawMessage(`{"type":"object","properties":{"when":{"type":"date"}}}`),
		}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "when")
		assert.Contains(t, err.Error(), "date")
	})
}

func TestConvertSchemaNested(t *testing.T) {
	schema, err := convertSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "enum": []any{"calm", "focus"}},
			},
			"anything": true,
		},
	}, "")
	require.NoError(t, err)

	tags := schema.Properties["tags"]
	require.NotNil(t, tags)
	assert.Equal(t, genai.TypeArray, tags.Type)
	require.NotNil(t, tags.Items)
	assert.Equal(t, []string{"calm", "focus"}, tags.Items.Enum)
	assert.NotContains(t, schema.Properties, "anything")
}

func TestConvertMessagesMalformedArguments(t *testing.T) {
	contents, _ := convertMessages([]ai.Message{
		{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{{ID: "c1", Name: "web_search", Arguments: `{"query":`}}},
	})
	require.Len(t, contents, 1)
	assert.Equal(t, map[string]any{}, contents[0].Parts[0].FunctionCall.Args)
}

func TestConvertToolChoice(t *testing.T) {
	assert.Equal(t, genai.FunctionCallingConfigModeNone, convertToolChoice(ai.ToolChoiceNone).FunctionCallingConfig.Mode)
	assert.Equal(t, genai.FunctionCallingConfigModeAny, convertToolChoice(ai.ToolChoiceRequired).FunctionCallingConfig.Mode)
	assert.Equal(t, genai.FunctionCallingConfigModeAuto, convertToolChoice(ai.ToolChoiceAuto).FunctionCallingConfig.Mode)
}

func TestExtractToolCalls(t *testing.T) {
	calls := extractToolCalls([]*genai.Part{
		{Text: "thinking"},
		{FunctionCall: &genai.FunctionCall{Name: "web_search", Args: map[string]any{"query": "x"}}},
		{FunctionCall: &genai.FunctionCall{ID: "given", Name: "web_search"}},
	})

	require.Len(t, calls, 2)
	assert.Equal(t, "call_1_web_search", calls[0].ID)
	assert.JSONEq(t, `{"query":"x"}`, calls[0].Arguments)
	assert.Equal(t, "given", calls[1].ID)
}

func TestBlockedErrorIsUserInput(t *testing.T) {
	err := &BlockedError{Reason: "SAFETY"}
	assert.True(t, ai.IsUserInput(err))
	assert.Contains(t, err.Error(), "SAFETY")
}
