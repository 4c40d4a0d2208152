// Package websearch provides the WebSearchTool capability, which answers a
// query using OpenAI's search-enabled chat models.
//
// The tool requires OPENAI_API_KEY at invocation time and honours
// OPENAI_BASE_URL when set. Register it once at startup:
//
//	registry := capability.NewRegistry()
//	if err := websearch.Register(registry); err != nil {
//	    return err
//	}
package websearch
