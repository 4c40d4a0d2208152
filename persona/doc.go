// Package persona declares conversational personas as data.
//
// A persona is a name, an optional welcome message, the system instructions,
// a model selector and the capabilities it may call. Definitions are passive:
// they validate on construction and expose their fields to whatever runs the
// conversation (see the runner and mcp packages).
//
// # Declaring personas
//
//	registry := capability.NewRegistry()
//	websearch.Register(registry)
//
//	def, err := persona.New(persona.Spec{
//	    Name:         "Strategy Agent",
//	    Instructions: "You search the web for therapeutical strategies tailored to a certain prompt.",
//	    Model:        "openai/gpt-4o-mini",
//	    Capabilities: []string{"WebSearchTool"},
//	}, registry)
//
// Every listed capability is constructed through the registry when the
// definition is built, so an unregistered name fails immediately with
// *capability.NotFoundError.
//
// # Catalogs
//
// Builtin returns the stock personas. LoadSpecsFile reads additional ones from
// YAML and BuildCatalog turns a list of specs into a Catalog.
package persona
