package persona

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	ai "github.com/zootherapy/menagerie"
	"github.com/zootherapy/menagerie/capability"
)

// Spec is the declarative form of a persona, as written in code or in a
// catalog file.
type Spec struct {
	Name         string   `json:"name" yaml:"name"`
	Welcome      string   `json:"welcome,omitempty" yaml:"welcome,omitempty"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	Model        string   `json:"model" yaml:"model"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// Definition is a validated persona bound to constructed capabilities.
// It holds no conversation state and is safe to share between sessions.
type Definition struct {
	name         string
	welcome      string
	instructions string
	model        ai.ModelSelector
	caps         []*capability.Instance
	byOperation  map[string]*capability.Instance
}

// New validates spec and builds every capability it lists through registry.
//
// An unregistered capability name yields *capability.NotFoundError. A
// malformed spec yields *ValidationError.
func New(spec Spec, registry *capability.Registry) (*Definition, error) {
	if strings.TrimSpace(spec.Instructions) == "" {
		return nil, &ValidationError{Persona: spec.Name, Field: "instructions", Reason: "must not be empty"}
	}
	model, err := ai.ParseModel(spec.Model)
	if err != nil {
		return nil, &ValidationError{Persona: spec.Name, Field: "model", Reason: err.Error(), Cause: err}
	}

	caps := make([]*capability.Instance, 0, len(spec.Capabilities))
	for _, name := range spec.Capabilities {
		if registry == nil {
			return nil, &capability.NotFoundError{Name: name}
		}
		inst, err := registry.Build(name)
		if err != nil {
			return nil, err
		}
		caps = append(caps, inst)
	}

	return NewDefinition(spec.Name, spec.Welcome, spec.Instructions, model, caps...)
}

// NewDefinition creates a persona from already constructed capabilities.
// Operation names must be unique across all capabilities since they become
// the tool names the model sees.
func NewDefinition(name, welcome, instructions string, model ai.ModelSelector, caps ...*capability.Instance) (*Definition, error) {
	if strings.TrimSpace(instructions) == "" {
		return nil, &ValidationError{Persona: name, Field: "instructions", Reason: "must not be empty"}
	}

	byOp := make(map[string]*capability.Instance)
	for i, inst := range caps {
		if inst == nil {
			return nil, &ValidationError{Persona: name, Field: "capabilities", Reason: fmt.Sprintf("capability %d is nil", i)}
		}
		for _, op := range inst.OperationNames() {
			if prev, ok := byOp[op]; ok {
				return nil, &ValidationError{
					Persona: name,
					Field:   "capabilities",
					Reason:  fmt.Sprintf("operation %s is exposed by both %s and %s", op, prev.Name(), inst.Name()),
				}
			}
			byOp[op] = inst
		}
	}

	return &Definition{
		name:         name,
		welcome:      welcome,
		instructions: instructions,
		model:        model,
		caps:         slices.Clone(caps),
		byOperation:  byOp,
	}, nil
}

// Name returns the display name.
func (d *Definition) Name() string { return d.name }

// Welcome returns the greeting shown when a session starts. May be empty.
func (d *Definition) Welcome() string { return d.welcome }

// Instructions returns the system prompt.
func (d *Definition) Instructions() string { return d.instructions }

// Model returns the model selector.
func (d *Definition) Model() ai.ModelSelector { return d.model }

// Capabilities returns the bound capabilities in declaration order.
func (d *Definition) Capabilities() []*capability.Instance {
	return slices.Clone(d.caps)
}

// CapabilityNames returns the names of the bound capabilities.
func (d *Definition) CapabilityNames() []string {
	names := make([]string, len(d.caps))
	for i, c := range d.caps {
		names[i] = c.Name()
	}
	return names
}

// Tools returns the tool definitions of every operation the persona exposes.
func (d *Definition) Tools() []ai.Tool {
	var tools []ai.Tool
	for _, c := range d.caps {
		tools = append(tools, c.Tools()...)
	}
	return tools
}

// Spec returns the declarative form of the definition.
func (d *Definition) Spec() Spec {
	return Spec{
		Name:         d.name,
		Welcome:      d.welcome,
		Instructions: d.instructions,
		Model:        d.model.String(),
		Capabilities: d.CapabilityNames(),
	}
}

// Execute dispatches a tool call to the capability exposing the operation.
//
// Failures never escape as errors: unknown tools, missing configuration and
// operation failures are all reported as a ToolResult with IsError set, so the
// conversation can continue. A nil inv is replaced by a fresh invocation with
// an empty environment.
func (d *Definition) Execute(ctx context.Context, inv *capability.Invocation, call ai.ToolCall) ai.ToolResult {
	inst, ok := d.byOperation[call.Name]
	if !ok {
		return call.Failed("unknown tool: %s", call.Name)
	}

	if inv == nil {
		inv = capability.NewInvocation("", nil)
	}

	out, err := inst.Invoke(ctx, inv, call.Name, call.RawArguments())
	if err != nil {
		return call.Failed("%s", DescribeError(err))
	}
	return call.Succeeded(out)
}

// DescribeError renders a capability failure as text fit for the model or an
// end user.
func DescribeError(err error) string {
	var missing *capability.MissingConfigError
	var opErr *capability.OperationError
	switch {
	case errors.As(err, &missing):
		return fmt.Sprintf("%s is not configured: set %s", missing.Capability, missing.Key)
	case errors.As(err, &opErr):
		reason := opErr.Reason()
		if opErr.Cause != nil {
			if d := ai.Describe(opErr.Cause); d != "" {
				reason = d
			}
		}
		return fmt.Sprintf("%s failed: %s", opErr.Operation, reason)
	default:
		return err.Error()
	}
}
