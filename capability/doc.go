// Package capability declares self-describing capabilities and the registry
// that resolves them by name.
//
// A capability is registered with a [Descriptor] listing its external
// dependencies and the configuration keys it needs, together with a
// [Constructor]. Personas build [Instance] values from the [Registry] and call
// operations through [Instance.Invoke], passing a fresh [Invocation] for
// every call.
//
// # Registration
//
//	registry := capability.NewRegistry()
//	err := registry.Register(capability.Descriptor{
//	    Name: "WebSearchTool",
//	    Dependencies: []capability.Dependency{
//	        {Name: "github.com/openai/openai-go", Version: "1.12.0", Ecosystem: capability.EcosystemGo},
//	    },
//	    Config: []capability.ConfigRequirement{
//	        {Key: "OPENAI_API_KEY", Description: "OpenAI API key", Required: true},
//	    },
//	}, newWebSearch)
//
// # Errors
//
// Registration fails with [InvalidDescriptorError] or [DuplicateNameError].
// Lookup fails with [NotFoundError]. Invocation fails with
// [MissingConfigError] when required configuration is absent, and with
// [OperationError] for anything that goes wrong inside the operation. Neither
// invocation error is fatal: callers report it back into the conversation.
package capability
