package sparsecs

// Handle pairs an Entity with the Registry that issued it, for call sites that
// prefer method syntax. It does not own the entity; copying a Handle is free.
type Handle struct {
	Entity
	registry *Registry
}

// Handle wraps e with r.
func (r *Registry) Handle(e Entity) Handle {
	return Handle{Entity: e, registry: r}
}

// Registry returns the registry the handle dispatches to.
func (h Handle) Registry() *Registry { return h.registry }

// Kill queues the entity for destruction on the next Update.
func (h Handle) Kill() { h.registry.KillEntity(h.Entity) }

// Valid reports whether the entity is still alive.
func (h Handle) Valid() bool { return h.registry.IsValid(h.Entity) }

// Tag gives the entity tag, taking it from any previous holder.
func (h Handle) Tag(tag string) { h.registry.TagEntity(h.Entity, tag) }

// HasTag reports whether the entity holds tag.
func (h Handle) HasTag(tag string) bool { return h.registry.EntityHasTag(h.Entity, tag) }

// Group adds the entity to the named group.
func (h Handle) Group(name string) { h.registry.GroupEntity(h.Entity, name) }

// Ungroup removes the entity from the named group.
func (h Handle) Ungroup(name string) { h.registry.UngroupEntity(h.Entity, name) }

// BelongsToGroup reports whether the entity is in the named group.
func (h Handle) BelongsToGroup(name string) bool {
	return h.registry.EntityBelongsToGroup(h.Entity, name)
}
