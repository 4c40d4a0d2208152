package persona

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zootherapy/menagerie/capability"
)

// Names of the built-in personas.
const (
	MainAgent     = "Main Agent"
	EmpathyAgent  = "Empathy Agent"
	IntentAgent   = "Intent Agent"
	EvalAgent     = "Eval Agent"
	StrategyAgent = "Strategy Agent"
)

// Builtin returns the specs of the built-in personas, main agent first.
// The strategy persona needs the WebSearchTool capability to be registered.
func Builtin() []Spec {
	return []Spec{
		{
			Name:         MainAgent,
			Instructions: "You are a helpful assistant.",
			Model:        "openai/gpt-4o-mini",
		},
		{
			Name:         EmpathyAgent,
			Instructions: "Evaluate the most likely emotions that the person who said the given prompt is feeling.",
			Model:        "openai/gpt-4o-mini",
		},
		{
			Name:         IntentAgent,
			Instructions: "Evaluate the most likely intent and meaning behind this message.",
			Model:        "openai/gpt-4o",
		},
		{
			Name:         EvalAgent,
			Instructions: "You are a helpful assistant.",
			Model:        "openai/gpt-4o",
		},
		{
			Name:         StrategyAgent,
			Instructions: "You search the web for therapeutical strategies tailored to a certain prompt.",
			Model:        "openai/gpt-4o-mini",
			Capabilities: []string{"WebSearchTool"},
		},
	}
}

// Catalog is an ordered collection of persona definitions.
// Names are not required to be unique; lookups return the first match.
type Catalog struct {
	defs []*Definition
}

// NewCatalog creates a catalog holding defs in order.
func NewCatalog(defs ...*Definition) *Catalog {
	c := &Catalog{}
	for _, d := range defs {
		c.Add(d)
	}
	return c
}

// Add appends a definition. Nil definitions are ignored.
func (c *Catalog) Add(def *Definition) {
	if def != nil {
		c.defs = append(c.defs, def)
	}
}

// Get returns the first definition whose name matches, ignoring case.
func (c *Catalog) Get(name string) (*Definition, bool) {
	for _, d := range c.defs {
		if strings.EqualFold(d.Name(), name) {
			return d, true
		}
	}
	return nil, false
}

// Names returns the persona names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.defs))
	for i, d := range c.defs {
		names[i] = d.Name()
	}
	return names
}

// Definitions returns the definitions in catalog order.
func (c *Catalog) Definitions() []*Definition {
	return slices.Clone(c.defs)
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// BuildCatalog builds every spec against registry, stopping at the first
// failure.
func BuildCatalog(specs []Spec, registry *capability.Registry) (*Catalog, error) {
	c := &Catalog{defs: make([]*Definition, 0, len(specs))}
	for _, spec := range specs {
		def, err := New(spec, registry)
		if err != nil {
			return nil, fmt.Errorf("build persona %q: %w", spec.Name, err)
		}
		c.Add(def)
	}
	return c, nil
}

type catalogFile struct {
	Personas []Spec `yaml:"personas"`
}

// LoadSpecs decodes a YAML persona catalog of the form:
//
//	personas:
//	  - name: Strategy Agent
//	    instructions: You search the web for therapeutical strategies.
//	    model: openai/gpt-4o-mini
//	    capabilities: [WebSearchTool]
//
// Unknown fields are rejected.
func LoadSpecs(r io.Reader) ([]Spec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("decode persona catalog: empty document")
		}
		return nil, fmt.Errorf("decode persona catalog: %w", err)
	}
	if len(file.Personas) == 0 {
		return nil, fmt.Errorf("decode persona catalog: no personas defined")
	}
	return file.Personas, nil
}

// LoadSpecsFile reads a YAML persona catalog from path.
func LoadSpecsFile(path string) ([]Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open persona catalog: %w", err)
	}
	defer f.Close()

	return LoadSpecs(f)
}
