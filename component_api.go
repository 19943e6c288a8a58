package sparsecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// RegisterComponent assigns T a component ID in r, if it has none yet, and
// returns it. Registering more than Config.MaxComponents types panics with
// ErrTooManyComponentTypes.
func RegisterComponent[T any](r *Registry) ComponentID {
	return r.components.id(reflect.TypeFor[T]())
}

// ComponentIDOf returns the ID of T without registering it.
func ComponentIDOf[T any](r *Registry) (ComponentID, bool) {
	return r.components.lookup(reflect.TypeFor[T]())
}

// PoolOf returns the pool of T, or nil if no component of that type was ever
// added.
func PoolOf[T any](r *Registry) *Pool[T] {
	id, ok := ComponentIDOf[T](r)
	if !ok {
		return nil
	}
	p, _ := r.components.pools[id].(*Pool[T])
	return p
}

// ensurePool returns the pool of T, creating it on first use.
func ensurePool[T any](r *Registry) (*Pool[T], ComponentID) {
	t := reflect.TypeFor[T]()
	id := r.components.id(t)
	if s := r.components.pools[id]; s != nil {
		return s.(*Pool[T]), id
	}
	p := NewPool[T](r.cfg.PoolCapacity, r.cfg.PageSize, r.cfg.MaxEntities)
	r.components.pools[id] = p
	r.log.Debug().Str("component", t.String()).Uint8("id", uint8(id)).Msg("pool created")
	return p, id
}

// AddComponent stores v as the T component of e and returns a pointer to the
// stored value, valid until the next structural change of the pool. It returns
// nil and does nothing if e is no longer valid.
//
// Entities already active in systems are not re-evaluated: add components
// between CreateEntity and the Update that activates the entity.
func AddComponent[T any](r *Registry, e Entity, v T) *T {
	if !r.IsValid(e) {
		return nil
	}
	p, id := ensurePool[T](r)
	ptr := p.Add(e, v)
	r.entities.slots[e.Slot()].signature.Set(id)
	return ptr
}

// SetComponent replaces the T component of e, or adds it if missing.
func SetComponent[T any](r *Registry, e Entity, v T) *T {
	if !r.IsValid(e) {
		return nil
	}
	p, id := ensurePool[T](r)
	ptr := p.Set(e, v)
	r.entities.slots[e.Slot()].signature.Set(id)
	return ptr
}

// RemoveComponent drops the T component of e. Missing components, unknown
// types and invalid entities are ignored.
func RemoveComponent[T any](r *Registry, e Entity) {
	if !r.IsValid(e) {
		return
	}
	id, ok := ComponentIDOf[T](r)
	if !ok {
		return
	}
	meta := &r.entities.slots[e.Slot()]
	if !meta.signature.Has(id) {
		return
	}
	if p := r.components.pools[id]; p != nil {
		p.Remove(e.Slot())
	}
	meta.signature.Unset(id)
}

// HasComponent reports whether e is valid and holds a T component.
func HasComponent[T any](r *Registry, e Entity) bool {
	if !r.IsValid(e) {
		return false
	}
	id, ok := ComponentIDOf[T](r)
	return ok && r.signature(e).Has(id)
}

// GetComponent returns the T component of e. Calling it when
// HasComponent[T](r, e) is false panics with ErrComponentMissing.
func GetComponent[T any](r *Registry, e Entity) *T {
	c, ok := LookupComponent[T](r, e)
	if !ok {
		panic(eris.Wrapf(ErrComponentMissing, "%s on entity %s", reflect.TypeFor[T](), e))
	}
	return c
}

// LookupComponent returns the T component of e, if e is valid and has one.
func LookupComponent[T any](r *Registry, e Entity) (*T, bool) {
	if !HasComponent[T](r, e) {
		return nil, false
	}
	return PoolOf[T](r).Get(e.Slot()), true
}
