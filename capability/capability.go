package capability

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/zootherapy/menagerie"
)

// Capability is a unit of externally callable functionality.
//
// Operations is called once when the capability is bound to an Instance; the
// returned list is fixed for the lifetime of that instance.
type Capability interface {
	Operations() []Operation
}

// Constructor creates a Capability. It must not perform I/O and should only
// fail on in-memory setup errors.
type Constructor func() (Capability, error)

// OperationFunc executes one operation call.
// The args parameter is the raw JSON arguments supplied by the model.
type OperationFunc func(ctx context.Context, inv *Invocation, args json.RawMessage) (string, error)

// TypedOperationFunc executes one operation call with decoded arguments.
type TypedOperationFunc[T any] func(ctx context.Context, inv *Invocation, args T) (string, error)

// Operation is one callable exposed by a capability.
type Operation struct {
	// Name is the tool name the model uses to call the operation.
	Name string
	// Description tells the model when to use the operation.
	Description string
	// Parameters is the JSON Schema of the arguments object.
	Parameters json.RawMessage
	// Handler runs the operation.
	Handler OperationFunc

	schemaErr error
}

// Tool returns the operation's tool definition.
func (o Operation) Tool() ai.Tool {
	return ai.Tool{
		Name:        o.Name,
		Description: o.Description,
		Parameters:  o.Parameters,
	}
}

// Op creates an Operation from a typed handler. The parameter schema is
// generated from T and the raw arguments are decoded into T before fn runs.
// If T has no object schema the failure is reported by NewInstance.
//
// Example:
//
//	type SearchArgs struct {
//	    Query string `json:"query" jsonschema:"description=Search query"`
//	}
//
//	op := capability.Op("web_search", "Search the web",
//	    func(ctx context.Context, inv *capability.Invocation, args SearchArgs) (string, error) {
//	        return search(ctx, args.Query)
//	    })
func Op[T any](name, description string, fn TypedOperationFunc[T]) Operation {
	params, err := ai.SchemaFor[T]()
	return Operation{
		Name:        name,
		Description: description,
		Parameters:  params,
		schemaErr:   err,
		Handler: func(ctx context.Context, inv *Invocation, raw json.RawMessage) (string, error) {
			var args T
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &args); err != nil {
					return "", fmt.Errorf("invalid arguments: %w", err)
				}
			}
			return fn(ctx, inv, args)
		},
	}
}

// Operations is a Capability made of a fixed list of operations.
type Operations []Operation

// Operations returns the list itself.
func (ops Operations) Operations() []Operation {
	return ops
}

// Static returns a Constructor that always yields c.
func Static(c Capability) Constructor {
	return func() (Capability, error) {
		return c, nil
	}
}
