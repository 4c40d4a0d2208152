package openai

import (
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	ai "github.com/zootherapy/menagerie"
)

// newParams builds the completion request for one Chat call.
func newParams(model string, messages []ai.Message, options *ai.Options) (openai.ChatCompletionNewParams, error) {
	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: convertMessages(messages),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}
	if len(options.Tools) == 0 {
		return params, nil
	}

	tools, err := convertTools(options.Tools)
	if err != nil {
		return params, err
	}
	params.Tools = tools
	if options.ToolChoice != "" {
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String(string(toolChoice(options.ToolChoice))),
		}
	}
	return params, nil
}

// convertMessages maps a conversation onto chat completion messages. The
// API has no error flag on tool messages, so failed results are prefixed
// with "error: " for the model to tell them apart.
func convertMessages(messages []ai.Message) []openai.ChatCompletionMessageParamUnion {
	var out []openai.ChatCompletionMessageParamUnion
	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleSystem:
			if msg.Content != "" {
				out = append(out, openai.SystemMessage(msg.Content))
			}
		case ai.RoleAssistant:
			if len(msg.ToolCalls) == 0 {
				if msg.Content != "" {
					out = append(out, openai.AssistantMessage(msg.Content))
				}
				continue
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: assistantWithCalls(msg)})
		case ai.RoleTool:
			for _, tr := range msg.ToolResults {
				content := tr.Content
				if tr.IsError {
					content = "error: " + content
				}
				out = append(out, openai.ToolMessage(content, tr.ToolCallID))
			}
		default:
			if msg.Content != "" {
				out = append(out, openai.UserMessage(msg.Content))
			}
		}
	}
	return out
}

func assistantWithCalls(msg ai.Message) *openai.ChatCompletionAssistantMessageParam {
	calls := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
	for i, tc := range msg.ToolCalls {
		calls[i] = openai.ChatCompletionMessageToolCallParam{
			ID: tc.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Name,
				Arguments: string(tc.RawArguments()),
			},
		}
	}
	param := &openai.ChatCompletionAssistantMessageParam{ToolCalls: calls}
	if msg.Content != "" {
		param.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
			OfString: openai.String(msg.Content),
		}
	}
	return param
}

// convertTools fails on the first tool whose parameter schema is unusable
// rather than advertising it without parameters.
func convertTools(tools []ai.Tool) ([]openai.ChatCompletionToolParam, error) {
	out := make([]openai.ChatCompletionToolParam, len(tools))
	for i, t := range tools {
		schema, err := t.Schema()
		if err != nil {
			return nil, err
		}
		out[i] = openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  shared.FunctionParameters(schema),
			},
		}
	}
	return out, nil
}

func toolChoice(choice ai.ToolChoice) ai.ToolChoice {
	switch choice {
	case ai.ToolChoiceNone, ai.ToolChoiceRequired:
		return choice
	default:
		return ai.ToolChoiceAuto
	}
}

func extractToolCalls(msg openai.ChatCompletionMessage) []ai.ToolCall {
	if len(msg.ToolCalls) == 0 {
		return nil
	}
	calls := make([]ai.ToolCall, len(msg.ToolCalls))
	for i, tc := range msg.ToolCalls {
		calls[i] = ai.ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: tc.Function.Arguments}
	}
	return calls
}

// wrapError attaches a status-based category to API errors. Transport
// errors are returned unchanged.
func wrapError(err error) error {
	var apiErr *openai.Error
	if err == nil || !errors.As(err, &apiErr) {
		return err
	}
	msg := apiErr.Message
	if msg == "" {
		msg = "request failed"
	}
	return ai.NewError(fmt.Sprintf("openai: %s", msg), apiErr.StatusCode, err)
}
