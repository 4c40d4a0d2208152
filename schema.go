package menagerie

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor generates a JSON Schema object describing the struct type T.
//
// Property names come from json tags. Fields without omitempty are required.
// Descriptions and enums use the jsonschema tag, for example:
//
//	type SearchArgs struct {
//	    Query string `json:"query" jsonschema:"description=What to search for"`
//	    Depth string `json:"depth,omitempty" jsonschema:"enum=low,enum=medium,enum=high"`
//	}
//
// Tool arguments are always a JSON object, so a T that does not reflect to an
// object schema (a string, a slice) is an error.
func SchemaFor[T any]() (raw json.RawMessage, err error) {
	var zero T
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("schema for %T: %v", zero, r)
		}
	}()

	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	s := r.Reflect(&zero)
	if s.Type != "object" {
		return nil, fmt.Errorf("schema for %T: arguments must be an object, got %q", zero, s.Type)
	}
	// Tool parameter schemas are embedded in provider requests; the
	// meta-schema pointer is noise there.
	s.Version = ""

	return json.Marshal(s)
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}
