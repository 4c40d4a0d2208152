package capability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	ai "github.com/zootherapy/menagerie"
)

// Instance is a constructed capability bound to its descriptor.
//
// The operation list is captured when the instance is created and never
// changes afterwards. Invoke is safe for concurrent use as long as the
// underlying operations are.
type Instance struct {
	desc Descriptor
	impl Capability
	ops  []Operation
}

// NewInstance binds a constructed capability to its descriptor.
// Returns *InvalidDescriptorError if an operation has no name, handler or
// parameter schema, if two operations share a name, or if listing the
// operations panics.
func NewInstance(desc Descriptor, impl Capability) (*Instance, error) {
	if impl == nil {
		return nil, &InvalidDescriptorError{Name: desc.Name, Reason: "constructor returned nil capability"}
	}

	ops, err := listOperations(desc.Name, impl)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(ops))
	for i, op := range ops {
		if op.Name == "" {
			return nil, &InvalidDescriptorError{Name: desc.Name, Reason: fmt.Sprintf("operation %d has no name", i)}
		}
		if op.Handler == nil {
			return nil, &InvalidDescriptorError{Name: desc.Name, Reason: fmt.Sprintf("operation %s has no handler", op.Name)}
		}
		if op.schemaErr != nil {
			return nil, &InvalidDescriptorError{Name: desc.Name, Reason: fmt.Sprintf("operation %s parameters: %v", op.Name, op.schemaErr)}
		}
		if seen[op.Name] {
			return nil, &InvalidDescriptorError{Name: desc.Name, Reason: fmt.Sprintf("duplicate operation %s", op.Name)}
		}
		seen[op.Name] = true
	}

	return &Instance{
		desc: desc.clone(),
		impl: impl,
		ops:  ops,
	}, nil
}

func listOperations(name string, impl Capability) (ops []Operation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InvalidDescriptorError{Name: name, Reason: fmt.Sprintf("listing operations panicked: %v", r)}
		}
	}()
	return slices.Clone(impl.Operations()), nil
}

// Name returns the capability name.
func (c *Instance) Name() string {
	return c.desc.Name
}

// Descriptor returns a copy of the capability's descriptor.
func (c *Instance) Descriptor() Descriptor {
	return c.desc.clone()
}

// Operations returns a copy of the operation list.
func (c *Instance) Operations() []Operation {
	return slices.Clone(c.ops)
}

// OperationNames returns the operation names in order.
func (c *Instance) OperationNames() []string {
	names := make([]string, len(c.ops))
	for i, op := range c.ops {
		names[i] = op.Name
	}
	return names
}

// Has reports whether the capability exposes the named operation.
func (c *Instance) Has(operation string) bool {
	_, ok := c.operation(operation)
	return ok
}

// Tools returns tool definitions for every operation.
func (c *Instance) Tools() []ai.Tool {
	tools := make([]ai.Tool, len(c.ops))
	for i, op := range c.ops {
		tools[i] = op.Tool()
	}
	return tools
}

// CheckConfig verifies every required configuration key resolves through inv.
func (c *Instance) CheckConfig(inv *Invocation) error {
	bound := inv.bind(c.desc.Name)
	for _, key := range c.desc.RequiredKeys() {
		if _, err := bound.Require(key); err != nil {
			return err
		}
	}
	return nil
}

// Invoke runs the named operation.
//
// Required configuration is checked before the handler runs, so a missing key
// yields *MissingConfigError without any side effect. Unknown operations yield
// *NotFoundError. Any other failure, including a panic in the handler, is
// returned as *OperationError. Invoke itself never panics.
func (c *Instance) Invoke(ctx context.Context, inv *Invocation, operation string, args json.RawMessage) (result string, err error) {
	op, ok := c.operation(operation)
	if !ok {
		return "", &NotFoundError{Name: c.desc.Name, Operation: operation}
	}

	if inv == nil {
		inv = NewInvocation("", nil)
	}
	if err := c.CheckConfig(inv); err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = &OperationError{
				Capability: c.desc.Name,
				Operation:  operation,
				Cause:      fmt.Errorf("panic: %v", r),
			}
		}
	}()

	out, err := op.Handler(ctx, inv.bind(c.desc.Name), args)
	if err != nil {
		var missing *MissingConfigError
		var opErr *OperationError
		switch {
		case errors.As(err, &missing):
			return "", missing
		case errors.As(err, &opErr):
			return "", opErr
		default:
			return "", &OperationError{Capability: c.desc.Name, Operation: operation, Cause: err}
		}
	}
	return out, nil
}

func (c *Instance) operation(name string) (Operation, bool) {
	for _, op := range c.ops {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}
