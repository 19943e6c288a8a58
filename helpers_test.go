package sparsecs

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test components.
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	HP int
}

type Sprite struct {
	Name string
}

// requirePanicsWith runs fn and checks that it panics with an error wrapping
// target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		rec := recover()
		require.NotNil(t, rec, "expected a panic wrapping %v", target)
		err, ok := rec.(error)
		require.True(t, ok, "panic value is %T, not an error", rec)
		assert.True(t, eris.Is(err, target), "got %v, want %v", err, target)
	}()
	fn()
}

// newTestRegistry returns a registry with a small capacity so capacity tests
// stay fast.
func newTestRegistry(t *testing.T, maxEntities uint32) *Registry {
	t.Helper()
	cfg := DefaultConfig()
	cfg.MaxEntities = maxEntities
	cfg.PageSize = 64
	return NewRegistry(WithConfig(cfg))
}
