package capability

import (
	"log/slog"
	"slices"
	"sync"
)

// registration combines a descriptor with its constructor.
type registration struct {
	desc Descriptor
	ctor Constructor
}

// Registry maps capability names to descriptors and constructors.
// It is append-only and safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	caps   map[string]registration
	order  []string
	logger *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used to report rejected registrations.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty capability registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		caps:   make(map[string]registration),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a capability descriptor with its constructor.
//
// The descriptor is validated first; a malformed descriptor is logged,
// skipped and returned as *InvalidDescriptorError. A name that is already
// registered returns *DuplicateNameError and leaves the existing entry intact.
func (r *Registry) Register(desc Descriptor, ctor Constructor) error {
	if err := desc.Validate(); err != nil {
		r.logger.Warn("skipping invalid capability", "name", desc.Name, "error", err)
		return err
	}
	if ctor == nil {
		err := &InvalidDescriptorError{Name: desc.Name, Reason: "constructor is nil"}
		r.logger.Warn("skipping invalid capability", "name", desc.Name, "error", err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.caps[desc.Name]; exists {
		return &DuplicateNameError{Name: desc.Name}
	}

	r.caps[desc.Name] = registration{desc: desc.clone(), ctor: ctor}
	r.order = append(r.order, desc.Name)
	r.logger.Debug("registered capability",
		"name", desc.Name,
		"dependencies", len(desc.Dependencies),
		"required_config", desc.RequiredKeys(),
	)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(desc Descriptor, ctor Constructor) {
	if err := r.Register(desc, ctor); err != nil {
		panic(err)
	}
}

// Lookup returns the constructor registered under name, or *NotFoundError.
func (r *Registry) Lookup(name string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.caps[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return reg.ctor, nil
}

// Descriptor returns a copy of the descriptor registered under name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.caps[name]
	if !ok {
		return Descriptor{}, false
	}
	return reg.desc.clone(), true
}

// Descriptors returns copies of all descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descs := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		descs = append(descs, r.caps[name].desc.clone())
	}
	return descs
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.caps)
}

// Build constructs a new instance of the named capability.
// The registry lock is not held while the constructor runs.
func (r *Registry) Build(name string) (*Instance, error) {
	r.mu.RLock()
	reg, ok := r.caps[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	impl, err := reg.ctor()
	if err != nil {
		return nil, &InvalidDescriptorError{Name: name, Reason: "constructor failed: " + err.Error()}
	}
	return NewInstance(reg.desc, impl)
}

// Missing returns, for the named capability, the required configuration keys
// env cannot resolve. It lets a runtime validate configuration at startup.
func (r *Registry) Missing(name string, env Environment) ([]string, error) {
	desc, ok := r.Descriptor(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	inv := NewInvocation("", env).bind(name)
	var missing []string
	for _, key := range desc.RequiredKeys() {
		if _, err := inv.Require(key); err != nil {
			missing = append(missing, key)
		}
	}
	return missing, nil
}
