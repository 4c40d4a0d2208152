package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
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
  "id": "msg_1",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-5",
  "stop_reason": "tool_use",
  "content": [
    {"type": "text", "text": "Let me look."},
    {"type": "tool_use", "id": "toolu_1", "name": "web_search", "input": {"query": "calm"}}
  ],
  "usage": {"input_tokens": 9, "output_tokens": 4}
}`)
	}))
	defer srv.Close()

	c := New("key", WithBaseURL(srv.URL), WithMaxRetries(0))
	resp, err := c.Chat(context.Background(), []ai.Message{
		ai.NewSystemMessage("Be calm."),
		ai.NewUserMessage("help"),
	}, ai.WithTools([]ai.Tool{{
		Name:       "web_search",
		Parameters: json.RawMessage(`{"type":"object","properties":{"query":{"type":"string"}},"required":["query"]}`),
	}}))
	require.NoError(t, err)

	assert.Equal(t, "Let me look.", resp.Content)
	assert.Equal(t, "tool_use", resp.FinishReason)
	assert.Equal(t, ai.Usage{InputTokens: 9, OutputTokens: 4}, resp.Usage)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "toolu_1", resp.ToolCalls[0].ID)
	assert.JSONEq(t, `{"query":"calm"}`, resp.ToolCalls[0].Arguments)

	assert.Equal(t, DefaultModel, body["model"])
	assert.NotNil(t, body["system"])
	assert.Len(t, body["messages"], 1)
	assert.Len(t, body["tools"], 1)
}

func TestChatErrorIsCategorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	}))
	defer srv.Close()

	c := New("bad", WithBaseURL(srv.URL), WithMaxRetries(0))
	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")})
	require.Error(t, err)
	assert.True(t, ai.IsPermanent(err))
	assert.Equal(t, http.StatusUnauthorized, ai.StatusCodeOf(err))
}

func TestConvertMessages(t *testing.T) {
	msgs, system := convertMessages([]ai.Message{
		ai.NewSystemMessage("one"),
		ai.NewSystemMessage(""),
		ai.NewUserMessage("question"),
		{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{{ID: "c1", Name: "web_search", Arguments: "not json"}}},
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "c1", Content: "failed", IsError: true}),
		{Role: ai.RoleAssistant},
	})

	assert.Len(t, system, 1)
	require.Len(t, msgs, 3)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[1].Role)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[2].Role)
}

func TestConvertTools(t *testing.T) {
	tools, err := convertTools([]ai.Tool{{
		Name:       "web_search",
		Parameters: json.RawMessage(`{"type":"object","properties":{"query":{"type":"string"}},"required":["query"]}`),
	}})
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.NotNil(t, tools[0].OfTool)
	assert.Equal(t, []string{"query"}, tools[0].OfTool.InputSchema.Required)

	_, err = convertTools([]ai.Tool{{Name: "web_search", Parameters: json.RawMessage(`{"type":`)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "web_search")
}

func TestChatRejectsMalformedToolSchema(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New("key", WithBaseURL(srv.URL), WithMaxRetries(0))
	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")}, ai.WithTools([]ai.Tool{{
		Name:       "web_search",
		Parameters: json.RawMessage(`"object"`),
	}}))
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestConvertToolChoice(t *testing.T) {
	assert.NotNil(t, convertToolChoice(ai.ToolChoiceRequired).OfAny)
	assert.NotNil(t, convertToolChoice(ai.ToolChoiceAuto).OfAuto)
}
