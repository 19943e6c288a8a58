package sparsecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// System is the base every user system embeds. It holds the component
// signature the system requires and the entities currently matching it. Only
// the Registry mutates the entity list.
//
//	type Movement struct {
//	    sparsecs.System
//	}
//
//	m := sparsecs.AddSystem(r, &Movement{})
//	sparsecs.RequireComponent[Position](&m.System)
type System struct {
	signature Signature
	entities  []Entity
	index     map[Entity]int
	pending   []reflect.Type
	registry  *Registry
}

// Systemer is implemented by every type that embeds System.
type Systemer interface {
	systemBase() *System
}

// EntityAddedHook is implemented by systems that want to know when an entity
// joins them.
type EntityAddedHook interface {
	OnEntityAdded(e Entity)
}

// EntityRemovedHook is implemented by systems that want to know when an
// entity leaves them.
type EntityRemovedHook interface {
	OnEntityRemoved(e Entity)
}

func (s *System) systemBase() *System { return s }

// GetSystemEntities returns the entities currently matching the system. The
// slice is owned by the system; copy it to keep it across an Update.
func (s *System) GetSystemEntities() []Entity { return s.entities }

// GetComponentSignature returns the signature the system requires.
func (s *System) GetComponentSignature() Signature { return s.signature }

// RequireComponent adds T to the signature of s. Signatures must be complete
// before the entities they should match are activated by Update, because
// membership is only evaluated at activation.
func RequireComponent[T any](s *System) {
	t := reflect.TypeFor[T]()
	if s.registry == nil {
		s.pending = append(s.pending, t)
		return
	}
	s.signature.Set(s.registry.components.id(t))
}

func (s *System) add(e Entity) bool {
	if _, ok := s.index[e]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[Entity]int)
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	return true
}

// remove swaps the last entity into the removed position.
func (s *System) remove(e Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.index[moved] = i
	}
	s.entities = s.entities[:last]
	delete(s.index, e)
	return true
}

func (s *System) reset() {
	s.entities = s.entities[:0]
	clear(s.index)
}

// systemSet stores systems keyed by their concrete type. Removed positions
// are recycled, and iteration follows slot order so updates are
// deterministic.
type systemSet struct {
	items   []Systemer
	types   map[reflect.Type]int
	freeIDs []int
}

func (ss *systemSet) add(t reflect.Type, s Systemer) (Systemer, bool) {
	if ss.types == nil {
		ss.types = make(map[reflect.Type]int)
	}
	if id, ok := ss.types[t]; ok {
		return ss.items[id], false
	}
	var id int
	if len(ss.freeIDs) > 0 {
		id = ss.freeIDs[len(ss.freeIDs)-1]
		ss.freeIDs = ss.freeIDs[:len(ss.freeIDs)-1]
		ss.items[id] = s
	} else {
		ss.items = append(ss.items, s)
		id = len(ss.items) - 1
	}
	ss.types[t] = id
	return s, true
}

func (ss *systemSet) get(t reflect.Type) (Systemer, bool) {
	id, ok := ss.types[t]
	if !ok {
		return nil, false
	}
	return ss.items[id], true
}

func (ss *systemSet) remove(t reflect.Type) (Systemer, bool) {
	id, ok := ss.types[t]
	if !ok {
		return nil, false
	}
	s := ss.items[id]
	delete(ss.types, t)
	ss.items[id] = nil
	ss.freeIDs = append(ss.freeIDs, id)
	return s, true
}

// each calls fn for every registered system.
func (ss *systemSet) each(fn func(Systemer)) {
	for _, s := range ss.items {
		if s != nil {
			fn(s)
		}
	}
}

// AddSystem registers s under its concrete type S and resolves the
// components it required before being attached. If a system of type S is
// already registered, that one is kept and returned.
func AddSystem[S Systemer](r *Registry, s S) S {
	t := reflect.TypeFor[S]()
	stored, added := r.systems.add(t, s)
	if !added {
		r.log.Debug().Str("system", t.String()).Msg("system already registered")
		return stored.(S)
	}
	base := s.systemBase()
	base.registry = r
	for _, pt := range base.pending {
		base.signature.Set(r.components.id(pt))
	}
	base.pending = nil
	r.log.Debug().Str("system", t.String()).Uint32("signature", uint32(base.signature)).Msg("system added")
	return s
}

// RemoveSystem unregisters the system of type S and empties its entity list.
// The required component types are kept by type, not by ID, so the system can
// be added again to this or another registry.
func RemoveSystem[S Systemer](r *Registry) {
	t := reflect.TypeFor[S]()
	s, ok := r.systems.remove(t)
	if !ok {
		return
	}
	base := s.systemBase()
	base.reset()
	base.signature.Each(func(id ComponentID) {
		base.pending = append(base.pending, r.components.idToType[id])
	})
	base.signature = 0
	base.registry = nil
	r.log.Debug().Str("system", t.String()).Msg("system removed")
}

// HasSystem reports whether a system of type S is registered.
func HasSystem[S Systemer](r *Registry) bool {
	_, ok := r.systems.get(reflect.TypeFor[S]())
	return ok
}

// LookupSystem returns the system of type S if one is registered.
func LookupSystem[S Systemer](r *Registry) (S, bool) {
	s, ok := r.systems.get(reflect.TypeFor[S]())
	if !ok {
		var zero S
		return zero, false
	}
	return s.(S), true
}

// GetSystem returns the system of type S. The system must be registered;
// otherwise GetSystem panics with ErrSystemNotFound.
func GetSystem[S Systemer](r *Registry) S {
	s, ok := LookupSystem[S](r)
	if !ok {
		panic(eris.Wrapf(ErrSystemNotFound, "%s", reflect.TypeFor[S]()))
	}
	return s
}
