package menagerie

import (
	"fmt"
	"strings"
)

// ModelSelector identifies a model as "provider/model-name".
type ModelSelector struct {
	Provider Provider
	Name     string
}

// ModelSelectorError is returned when a model selector cannot be parsed.
type ModelSelectorError struct {
	Selector string
	Reason   string
}

// Error returns a formatted error message including the selector.
func (e *ModelSelectorError) Error() string {
	return fmt.Sprintf("model selector %q: %s", e.Selector, e.Reason)
}

// ParseModel parses a selector such as "openai/gpt-4o-mini".
// Only the first slash separates provider from model, so model names may
// themselves contain slashes.
func ParseModel(selector string) (ModelSelector, error) {
	s := strings.TrimSpace(selector)
	if s == "" {
		return ModelSelector{}, &ModelSelectorError{Selector: selector, Reason: "empty"}
	}

	provider, name, ok := strings.Cut(s, "/")
	if !ok {
		return ModelSelector{}, &ModelSelectorError{Selector: selector, Reason: "expected provider/model"}
	}
	if provider == "" || name == "" {
		return ModelSelector{}, &ModelSelectorError{Selector: selector, Reason: "provider and model must be non-empty"}
	}

	p := Provider(strings.ToLower(provider))
	if !p.Known() {
		return ModelSelector{}, &ModelSelectorError{Selector: selector, Reason: "unknown provider " + provider}
	}

	return ModelSelector{Provider: p, Name: name}, nil
}

// MustParseModel is like ParseModel but panics on error.
func MustParseModel(selector string) ModelSelector {
	m, err := ParseModel(selector)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the selector in "provider/model" form.
func (m ModelSelector) String() string {
	if m.Provider == "" && m.Name == "" {
		return ""
	}
	return string(m.Provider) + "/" + m.Name
}

// IsZero reports whether the selector is unset.
func (m ModelSelector) IsZero() bool {
	return m.Provider == "" && m.Name == ""
}
