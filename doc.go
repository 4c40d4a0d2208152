// Package menagerie provides the shared conversation types used to declare
// conversational personas and the capabilities they can call.
//
// A persona is plain data: a display name, a welcome line, system
// instructions, a model selector such as "openai/gpt-4o-mini", and an ordered
// list of capabilities. Capabilities are self-describing: before a capability
// is exposed to a persona it is registered with a descriptor listing its
// external dependencies and the configuration keys it needs.
//
// The root package holds the types every other package speaks:
//
//   - [Message], [Response] and [Usage] for conversations
//   - [Tool], [ToolCall] and [ToolResult] for tool dispatch
//   - [ChatProvider] implemented by the provider adapters
//   - [ModelSelector] for "provider/model" strings
//   - [SchemaFor] for operation parameter schemas
//
// # Packages
//
//   - [github.com/zootherapy/menagerie/capability]: descriptors, registry, invocation context
//   - [github.com/zootherapy/menagerie/persona]: persona definitions and catalogs
//   - [github.com/zootherapy/menagerie/tools/websearch]: web search capability
//   - [github.com/zootherapy/menagerie/runner]: tool-calling conversation loop and REPL
//   - [github.com/zootherapy/menagerie/mcp]: expose a persona's operations over MCP
//   - [github.com/zootherapy/menagerie/client]: chat provider construction
//
// # Basic Usage
//
//	registry := capability.NewRegistry()
//	if err := websearch.Register(registry); err != nil {
//	    log.Fatal(err)
//	}
//
//	def, err := persona.New(persona.Spec{
//	    Name:         "Strategy Agent",
//	    Instructions: "You search the web for therapeutical strategies tailored to a certain prompt.",
//	    Model:        "openai/gpt-4o-mini",
//	    Capabilities: []string{websearch.Name},
//	}, registry)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	chat, err := client.ForSelector(ctx, def.Model(), env)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := runner.New(chat, def, env)
//	r.REPL(ctx, os.Stdin, os.Stdout)
package menagerie
