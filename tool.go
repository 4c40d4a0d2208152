package menagerie

import (
	"encoding/json"
	"fmt"
)

// Tool is an operation as advertised to a model: its name, a description the
// model reads when choosing, and a JSON Schema for the arguments.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Schema decodes the parameter schema for provider adapters that need it as
// a map. It returns nil for a tool without parameters and an error when the
// schema is not valid JSON or does not describe an object.
func (t Tool) Schema() (map[string]any, error) {
	if len(t.Parameters) == 0 {
		return nil, nil
	}
	var schema map[string]any
	if err := json.Unmarshal(t.Parameters, &schema); err != nil {
		return nil, fmt.Errorf("tool %s: parameter schema: %w", t.Name, err)
	}
	if schema == nil {
		return nil, fmt.Errorf("tool %s: parameter schema is null", t.Name)
	}
	if typ, ok := schema["type"]; ok && typ != "object" {
		return nil, fmt.Errorf("tool %s: parameter schema must describe an object, got type %v", t.Name, typ)
	}
	return schema, nil
}

// ToolCall is a model's request to run one operation.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // raw JSON object
}

// RawArguments returns the call arguments, substituting an empty object
// when the model sent none.
func (c ToolCall) RawArguments() json.RawMessage {
	if c.Arguments == "" {
		return json.RawMessage("{}")
	}
	return json.RawMessage(c.Arguments)
}

// ArgumentMap decodes the arguments as a JSON object.
func (c ToolCall) ArgumentMap() (map[string]any, error) {
	var args map[string]any
	if err := json.Unmarshal(c.RawArguments(), &args); err != nil {
		return nil, fmt.Errorf("tool call %s to %s: arguments: %w", c.ID, c.Name, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// ToolResult is the outcome of a ToolCall. Failures are carried in Content
// with IsError set rather than aborting the conversation.
type ToolResult struct {
	ToolCallID string `json:"toolCallId"`
	Content    string `json:"content"`
	IsError    bool   `json:"isError,omitempty"`
}

// Succeeded returns a successful result for c.
func (c ToolCall) Succeeded(content string) ToolResult {
	return ToolResult{ToolCallID: c.ID, Content: content}
}

// Failed returns an error result for c.
func (c ToolCall) Failed(format string, args ...any) ToolResult {
	return ToolResult{ToolCallID: c.ID, Content: fmt.Sprintf(format, args...), IsError: true}
}

// ToolChoice controls whether the model may, must or must not call tools.
type ToolChoice string

const (
	ToolChoiceAuto     ToolChoice = "auto"
	ToolChoiceNone     ToolChoice = "none"
	ToolChoiceRequired ToolChoice = "required"
)

// NewToolResultMessage wraps results in a tool-role message.
func NewToolResultMessage(results ...ToolResult) Message {
	return Message{
		Role:        RoleTool,
		ToolResults: results,
	}
}
