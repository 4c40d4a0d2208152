package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"

	ai "github.com/zootherapy/menagerie"
)

// convertTools fails on the first tool whose parameter schema is unusable
// rather than advertising it without parameters.
func convertTools(tools []ai.Tool) ([]anthropic.ToolUnionParam, error) {
	result := make([]anthropic.ToolUnionParam, len(tools))
	for i, t := range tools {
		schema, err := t.Schema()
		if err != nil {
			return nil, err
		}

		var required []string
		if reqVal, ok := schema["required"].([]any); ok {
			for _, r := range reqVal {
				if s, ok := r.(string); ok {
					required = append(required, s)
				}
			}
		}

		toolParam := anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: schema["properties"],
				Required:   required,
			},
		}
		result[i] = anthropic.ToolUnionParam{OfTool: &toolParam}
	}
	return result, nil
}

func convertToolChoice(choice ai.ToolChoice) anthropic.ToolChoiceUnionParam {
	if choice == ai.ToolChoiceRequired {
		return anthropic.ToolChoiceUnionParam{OfAny: &anthropic.ToolChoiceAnyParam{}}
	}
	return anthropic.ToolChoiceUnionParam{OfAuto: &anthropic.ToolChoiceAutoParam{}}
}

func extractToolCalls(content []anthropic.ContentBlockUnion) []ai.ToolCall {
	var calls []ai.ToolCall
	for _, block := range content {
		if block.Type == "tool_use" {
			calls = append(calls, ai.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: string(block.Input),
			})
		}
	}
	return calls
}
