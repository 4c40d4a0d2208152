package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/zootherapy/menagerie"
)

func TestChat(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "model": "gpt-4o",
  "choices": [{
    "index": 0,
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": "",
      "tool_calls": [{"id": "call_1", "type": "function", "function": {"name": "web_search", "arguments": "{\"query\":\"calm\"}"}}]
    }
  }],
  "usage": {"prompt_tokens": 11, "completion_tokens": 3, "total_tokens": 14}
}`)
	}))
	defer srv.Close()

	c := New("sk-test", WithModel("gpt-4o-mini"), WithBaseURL(srv.URL+"/v1/"), WithMaxRetries(0))
	resp, err := c.Chat(context.Background(), []ai.Message{
		ai.NewSystemMessage("You search the web."),
		ai.NewUserMessage("help me calm down"),
	}, ai.WithModel("gpt-4o"), ai.WithTools([]ai.Tool{{
		Name:        "web_search",
		Description: "Search",
		Parameters:  json.RawMessage(`{"type":"object","properties":{"query":{"type":"string"}}}`),
	}}), ai.WithToolChoice(ai.ToolChoiceAuto))
	require.NoError(t, err)

	assert.Equal(t, "tool_calls", resp.FinishReason)
	assert.Equal(t, ai.Usage{InputTokens: 11, OutputTokens: 3}, resp.Usage)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, ai.ToolCall{ID: "call_1", Name: "web_search", Arguments: `{"query":"calm"}`}, resp.ToolCalls[0])

	assert.Equal(t, "gpt-4o", body["model"])
	assert.Equal(t, "auto", body["tool_choice"])
	messages := body["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	tools := body["tools"].([]any)
	require.Len(t, tools, 1)
}

func TestChatErrorIsCategorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"slow down","type":"rate_limit"}}`)
	}))
	defer srv.Close()

	c := New("sk-test", WithBaseURL(srv.URL+"/v1/"), WithMaxRetries(0))
	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")})
	require.Error(t, err)
	assert.True(t, ai.IsTransient(err))
	assert.Equal(t, http.StatusTooManyRequests, ai.StatusCodeOf(err))
	assert.Contains(t, err.Error(), "slow down")
}

func TestChatRejectsMalformedToolSchema(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New("sk-test", WithBaseURL(srv.URL+"/v1/"), WithMaxRetries(0))
	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")}, ai.WithTools([]ai.Tool{{
		Name:       "web_search",
		Parameters: json.RawMessage(`{"type":"object",`),
	}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "web_search")
	assert.Zero(t, calls)
}

func TestConvertTools(t *testing.T) {
	tools, err := convertTools([]ai.Tool{
		{Name: "web_search", Description: "Search", Parameters: json.RawMessage(`{"type":"object","properties":{"query":{"type":"string"}}}`)},
		{Name: "ping"},
	})
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "object", tools[0].Function.Parameters["type"])
	assert.Nil(t, tools[1].Function.Parameters)

	_, err = convertTools([]ai.Tool{{Name: "count", Parameters: json.RawMessage(`{"type":"integer"}`)}})
	require.Error(t, err)
}

func TestConvertMessages(t *testing.T) {
	msgs := convertMessages([]ai.Message{
		ai.NewSystemMessage("sys"),
		ai.NewUserMessage("question"),
		{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{{ID: "c1", Name: "web_search", Arguments: `{}`}}},
		ai.NewToolResultMessage(
			ai.ToolResult{ToolCallID: "c1", Content: "a"},
			ai.ToolResult{ToolCallID: "c2", Content: "b"},
		),
		{Role: ai.RoleAssistant, Content: "answer"},
		{Role: ai.RoleUser},
	})

	require.Len(t, msgs, 6)
	assert.NotNil(t, msgs[0].OfSystem)
	assert.NotNil(t, msgs[1].OfUser)
	require.NotNil(t, msgs[2].OfAssistant)
	assert.Len(t, msgs[2].OfAssistant.ToolCalls, 1)
	assert.NotNil(t, msgs[3].OfTool)
	assert.NotNil(t, msgs[4].OfTool)
	assert.NotNil(t, msgs[5].OfAssistant)
}

func TestConvertMessagesMarksFailedResults(t *testing.T) {
	msgs := convertMessages([]ai.Message{ai.NewToolResultMessage(
		ai.ToolResult{ToolCallID: "c1", Content: "WebSearchTool is not configured: set OPENAI_API_KEY", IsError: true},
		ai.ToolResult{ToolCallID: "c2", Content: "fine"},
	)})

	require.Len(t, msgs, 2)
	raw, err := json.Marshal(msgs[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"error: WebSearchTool is not configured: set OPENAI_API_KEY"`)

	raw, err = json.Marshal(msgs[1])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"fine"`)
	assert.NotContains(t, string(raw), "error:")
}
