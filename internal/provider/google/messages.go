package google

import (
	"encoding/json"

	"google.golang.org/genai"

	ai "github.com/zootherapy/menagerie"
)

// convertMessages returns the conversation contents and the combined system
// instruction. Gemini matches function responses by function name, so tool
// results are resolved back to the name of the call they answer.
func convertMessages(messages []ai.Message) ([]*genai.Content, *genai.Content) {
	var contents []*genai.Content
	var system *genai.Content
	callNames := make(map[string]string)

	for _, msg := range messages {
		if msg.Role == ai.RoleSystem {
			if msg.Content != "" {
				if system == nil {
					system = &genai.Content{}
				}
				system.Parts = append(system.Parts, &genai.Part{Text: msg.Content})
			}
			continue
		}

		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "model"
		}

		var parts []*genai.Part
		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}

		for _, tc := range msg.ToolCalls {
			callNames[tc.ID] = tc.Name
			// Malformed arguments already failed the call with an
			// "invalid arguments" result; replay them as an empty object.
			args, err := tc.ArgumentMap()
			if err != nil {
				args = map[string]any{}
			}
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   tc.ID,
					Name: tc.Name,
					Args: args,
				},
			})
		}

		for _, tr := range msg.ToolResults {
			var result map[string]any
			if err := json.Unmarshal([]byte(tr.Content), &result); err != nil {
				result = map[string]any{"result": tr.Content}
			}
			if tr.IsError {
				result = map[string]any{"error": tr.Content}
			}
			name := callNames[tr.ToolCallID]
			if name == "" {
				name = tr.ToolCallID
			}
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       tr.ToolCallID,
					Name:     name,
					Response: result,
				},
			})
		}

		if len(parts) > 0 {
			contents = append(contents, &genai.Content{
				Role:  role,
				Parts: parts,
			})
		}
	}
	return contents, system
}
