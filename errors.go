package sparsecs

import "github.com/rotisserie/eris"

// Precondition violations panic with one of these errors wrapped by eris, so a
// caller that recovers can match them with eris.Is. Stale identities are never
// reported as errors: the operations that accept them are silent no-ops.
var (
	ErrCapacityExceeded       = eris.New("entity capacity exceeded")
	ErrTooManyComponentTypes  = eris.New("too many component types")
	ErrComponentExists        = eris.New("component already on entity")
	ErrComponentMissing       = eris.New("component not on entity")
	ErrSystemNotFound         = eris.New("system not found")
	ErrDuplicateComponentType = eris.New("duplicate component type in view")
	ErrInvalidConfig          = eris.New("invalid registry config")
	ErrTooManyEventTypes      = eris.New("too many event types")
)
