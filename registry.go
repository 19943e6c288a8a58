package sparsecs

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// slotMeta holds the per-slot state of the slot table.
type slotMeta struct {
	generation uint32    // current generation, compared against Entity.Generation
	signature  Signature // components currently held
	alive      bool      // between CreateEntity and the Update that kills it
}

// componentRegistry assigns component IDs and owns one pool per ID.
type componentRegistry struct {
	typeMap  map[reflect.Type]ComponentID
	idToType [MaxComponentTypes]reflect.Type
	pools    [MaxComponentTypes]componentStorage
	next     int
	max      int
}

// entityRegistry is the slot table with its FIFO free list.
type entityRegistry struct {
	slots []slotMeta
	free  []uint32 // recycled slots, reused oldest first
	alive int
	max   uint32
}

// entityQueue is an insertion-ordered set of entities.
type entityQueue struct {
	list []Entity
	set  map[Entity]struct{}
}

func (q *entityQueue) push(e Entity) bool {
	if _, ok := q.set[e]; ok {
		return false
	}
	if q.set == nil {
		q.set = make(map[Entity]struct{})
	}
	q.set[e] = struct{}{}
	q.list = append(q.list, e)
	return true
}

func (q *entityQueue) reset() {
	q.list = q.list[:0]
	clear(q.set)
}

// Registry owns the slot table, every component pool, every system, the tag
// and group indices and the deferred creation/kill queues.
type Registry struct {
	id         uuid.UUID
	cfg        Config
	log        zerolog.Logger
	events     *EventBus
	components componentRegistry
	entities   entityRegistry
	systems    systemSet
	tags       tagIndex
	groups     groupIndex

	toAdd  entityQueue
	toKill entityQueue
	// Update swaps these in while it processes a snapshot, so entities queued
	// from hooks land in the live queues for the next Update.
	addSpare  entityQueue
	killSpare entityQueue
}

// Option configures a Registry.
type Option func(*Registry)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(r *Registry) { r.cfg = cfg }
}

// WithLogger sets the logger used for lifecycle diagnostics. The registry adds
// its own ID to every record.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// NewRegistry creates an empty Registry. An invalid configuration is a fatal
// setup error and panics with ErrInvalidConfig.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		id:     uuid.New(),
		cfg:    DefaultConfig(),
		log:    zerolog.Nop(),
		events: &EventBus{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.cfg.Validate(); err != nil {
		panic(err)
	}
	r.log = r.log.With().Str("registry", r.id.String()).Logger()
	r.components = componentRegistry{
		typeMap: make(map[reflect.Type]ComponentID, 16),
		max:     r.cfg.MaxComponents,
	}
	r.entities.max = r.cfg.MaxEntities
	return r
}

// ID returns the unique identifier of this registry instance.
func (r *Registry) ID() uuid.UUID { return r.id }

// Config returns the configuration the registry was built with.
func (r *Registry) Config() Config { return r.cfg }

// Events returns the bus on which Update publishes EntityActivated and
// EntityDestroyed.
func (r *Registry) Events() *EventBus { return r.events }

// AliveCount returns the number of valid entities, including those still
// waiting for activation.
func (r *Registry) AliveCount() int { return r.entities.alive }

// id registers or fetches the component ID of t.
func (c *componentRegistry) id(t reflect.Type) ComponentID {
	if id, ok := c.typeMap[t]; ok {
		return id
	}
	if c.next >= c.max {
		panic(eris.Wrapf(ErrTooManyComponentTypes, "cannot register %s: limit is %d", t, c.max))
	}
	id := ComponentID(c.next)
	c.typeMap[t] = id
	c.idToType[id] = t
	c.next++
	return id
}

// lookup fetches the component ID of t without registering it.
func (c *componentRegistry) lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := c.typeMap[t]
	return id, ok
}

// CreateEntity allocates a slot and returns the new identity at once, so
// components can be attached before activation. The entity joins systems on
// the next Update.
//
// Creating more than Config.MaxEntities live slots panics with
// ErrCapacityExceeded.
func (r *Registry) CreateEntity() Entity {
	var slot uint32
	if len(r.entities.free) > 0 {
		slot = r.entities.free[0]
		r.entities.free = r.entities.free[1:]
	} else {
		n := len(r.entities.slots)
		if uint64(n) >= uint64(r.entities.max) {
			err := eris.Wrapf(ErrCapacityExceeded, "max entities is %d", r.entities.max)
			r.log.Error().Err(err).Msg("cannot create entity")
			panic(err)
		}
		slot = uint32(n)
		r.entities.slots = append(r.entities.slots, slotMeta{})
	}
	meta := &r.entities.slots[slot]
	meta.alive = true
	r.entities.alive++
	e := EncodeEntity(slot, meta.generation)
	r.toAdd.push(e)
	return e
}

// KillEntity queues e for destruction on the next Update. It does nothing if
// e is already invalid, and queueing the same entity twice is harmless.
func (r *Registry) KillEntity(e Entity) {
	if !r.IsValid(e) {
		return
	}
	r.toKill.push(e)
}

// IsValid reports whether e still refers to the current occupant of its
// slot. Killed identities become invalid once Update has processed them.
func (r *Registry) IsValid(e Entity) bool {
	slot := e.Slot()
	if slot >= uint32(len(r.entities.slots)) {
		return false
	}
	meta := &r.entities.slots[slot]
	return meta.alive && meta.generation == e.Generation()
}

// signature returns the signature of a valid entity.
func (r *Registry) signature(e Entity) Signature {
	return r.entities.slots[e.Slot()].signature
}

// Update applies the queued creations, then the queued kills. Newly created
// entities join every system whose signature their own contains. Killed
// entities leave every system and lose their components, tag and groups, and
// their slot is recycled under a new generation. Both queues are emptied even
// for entries that were skipped as invalid.
func (r *Registry) Update() {
	r.toAdd, r.addSpare = r.addSpare, r.toAdd
	r.toKill, r.killSpare = r.killSpare, r.toKill
	added, killed := r.addSpare.list, r.killSpare.list

	activated := 0
	for _, e := range added {
		if !r.IsValid(e) {
			continue
		}
		r.addToSystems(e)
		activated++
		Publish(r.events, EntityActivated{Entity: e})
	}

	destroyed := 0
	for _, e := range killed {
		if !r.IsValid(e) {
			continue
		}
		r.destroy(e)
		destroyed++
		Publish(r.events, EntityDestroyed{Entity: e})
	}

	r.addSpare.reset()
	r.killSpare.reset()
	if activated > 0 || destroyed > 0 {
		r.log.Debug().Int("activated", activated).Int("destroyed", destroyed).Int("alive", r.entities.alive).Msg("registry update")
	}
}

func (r *Registry) addToSystems(e Entity) {
	sig := r.signature(e)
	r.systems.each(func(s Systemer) {
		base := s.systemBase()
		if !sig.Contains(base.signature) {
			return
		}
		if base.add(e) {
			if h, ok := s.(EntityAddedHook); ok {
				h.OnEntityAdded(e)
			}
		}
	})
}

func (r *Registry) removeFromSystems(e Entity) {
	r.systems.each(func(s Systemer) {
		if s.systemBase().remove(e) {
			if h, ok := s.(EntityRemovedHook); ok {
				h.OnEntityRemoved(e)
			}
		}
	})
}

// destroy frees a valid entity immediately.
func (r *Registry) destroy(e Entity) {
	slot := e.Slot()
	r.removeFromSystems(e)

	meta := &r.entities.slots[slot]
	meta.signature.Each(func(id ComponentID) {
		if p := r.components.pools[id]; p != nil {
			p.Remove(slot)
		}
	})
	meta.signature = 0

	r.RemoveEntityTag(e)
	r.RemoveEntityGroups(e)

	meta.generation++
	meta.alive = false
	r.entities.alive--
	r.entities.free = append(r.entities.free, slot)
}

// Reset destroys every entity at once without running hooks or publishing
// events: pools, system lists, tags, groups and both queues are cleared, and
// every live slot moves to a new generation and back onto the free list.
// Registered systems and component IDs are kept.
func (r *Registry) Reset() {
	for _, p := range r.components.pools {
		if p != nil {
			p.Clear()
		}
	}
	r.systems.each(func(s Systemer) { s.systemBase().reset() })
	r.tags.reset()
	r.groups.reset()
	r.toAdd.reset()
	r.toKill.reset()

	r.entities.free = r.entities.free[:0]
	for i := range r.entities.slots {
		meta := &r.entities.slots[i]
		if meta.alive {
			meta.generation++
			meta.alive = false
		}
		meta.signature = 0
		r.entities.free = append(r.entities.free, uint32(i))
	}
	r.entities.alive = 0
	r.log.Debug().Int("slots", len(r.entities.slots)).Msg("registry reset")
}
