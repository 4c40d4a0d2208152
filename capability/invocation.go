package capability

import (
	"strings"

	"github.com/google/uuid"
)

// Invocation is the per-call handle passed to every capability operation.
//
// It carries the caller's session identity and read-only access to
// configuration. A new Invocation is created for each operation call and must
// not be retained after the call returns or shared between concurrent calls.
type Invocation struct {
	sessionID  string
	runID      string
	capability string
	env        Environment
}

// NewInvocation creates an invocation for one operation call in the given
// session. A nil env behaves as an empty environment.
func NewInvocation(sessionID string, env Environment) *Invocation {
	if env == nil {
		env = MapEnv{}
	}
	return &Invocation{
		sessionID: sessionID,
		runID:     uuid.NewString(),
		env:       env,
	}
}

// SessionID returns the conversation session the call belongs to.
func (i *Invocation) SessionID() string {
	return i.sessionID
}

// RunID returns the identifier unique to this call.
func (i *Invocation) RunID() string {
	return i.runID
}

// Capability returns the name of the capability being invoked, once bound.
func (i *Invocation) Capability() string {
	return i.capability
}

// Lookup returns the configuration value for key.
func (i *Invocation) Lookup(key string) (string, bool) {
	return i.env.Lookup(key)
}

// Require returns the configuration value for key or a *MissingConfigError if
// it is absent or blank.
func (i *Invocation) Require(key string) (string, error) {
	v, ok := i.env.Lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", &MissingConfigError{Key: key, Capability: i.capability}
	}
	return v, nil
}

// bind returns a copy of the invocation scoped to a capability.
func (i *Invocation) bind(capability string) *Invocation {
	bound := *i
	bound.capability = capability
	return &bound
}
