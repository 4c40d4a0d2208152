package google

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	ai "github.com/zootherapy/menagerie"
)

// convertTools fails on the first tool whose parameter schema is unusable
// rather than advertising it without parameters.
func convertTools(tools []ai.Tool) ([]*genai.Tool, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	funcs := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		schema, err := t.Schema()
		if err != nil {
			return nil, err
		}
		params, err := convertSchema(schema, "")
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", t.Name, err)
		}
		funcs[i] = &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  params,
		}
	}
	return []*genai.Tool{{FunctionDeclarations: funcs}}, nil
}

var schemaTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// convertSchema maps the subset of JSON Schema that operation parameter
// reflection produces onto a genai Schema. Other keywords are dropped. path
// names the property being converted in errors.
func convertSchema(schema map[string]any, path string) (*genai.Schema, error) {
	if schema == nil {
		return nil, nil
	}
	out := &genai.Schema{}

	if typ, ok := schema["type"]; ok {
		name, _ := typ.(string)
		t, known := schemaTypes[name]
		if !known {
			return nil, fmt.Errorf("parameter schema%s: unsupported type %v", pathSuffix(path), typ)
		}
		out.Type = t
	}
	if desc, ok := schema["description"].(string); ok {
		out.Description = desc
	}
	for _, e := range anySlice(schema["enum"]) {
		if s, ok := e.(string); ok {
			out.Enum = append(out.Enum, s)
		}
	}
	for _, r := range anySlice(schema["required"]) {
		if s, ok := r.(string); ok {
			out.Required = append(out.Required, s)
		}
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, prop := range props {
			propMap, _ := prop.(map[string]any)
			converted, err := convertSchema(propMap, path+"."+name)
			if err != nil {
				return nil, err
			}
			if converted != nil {
				out.Properties[name] = converted
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		converted, err := convertSchema(items, path+"[]")
		if err != nil {
			return nil, err
		}
		out.Items = converted
	}
	return out, nil
}

func anySlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func pathSuffix(path string) string {
	if path == "" {
		return ""
	}
	return " at " + path[1:]
}

func convertToolChoice(choice ai.ToolChoice) *genai.ToolConfig {
	mode := genai.FunctionCallingConfigModeAuto
	switch choice {
	case ai.ToolChoiceNone:
		mode = genai.FunctionCallingConfigModeNone
	case ai.ToolChoiceRequired:
		mode = genai.FunctionCallingConfigModeAny
	}
	return &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: mode},
	}
}

// extractToolCalls uses the call ID from the API when present and otherwise
// synthesizes one from the part position.
func extractToolCalls(parts []*genai.Part) []ai.ToolCall {
	var calls []ai.ToolCall
	for i, part := range parts {
		if part.FunctionCall == nil {
			continue
		}
		args, _ := json.Marshal(part.FunctionCall.Args)
		id := part.FunctionCall.ID
		if id == "" {
			id = fmt.Sprintf("call_%d_%s", i, part.FunctionCall.Name)
		}
		calls = append(calls, ai.ToolCall{
			ID:        id,
			Name:      part.FunctionCall.Name,
			Arguments: string(args),
		})
	}
	return calls
}
