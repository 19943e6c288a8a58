package sparsecs

// Builder creates entities that start with a T component. It resolves the
// component ID and pool once, so creating many entities of the same shape
// skips the per-call type lookup.
type Builder[T any] struct {
	registry *Registry
	pool     *Pool[T]
	id       ComponentID
}

// NewBuilder registers T in r and returns a builder for it.
func NewBuilder[T any](r *Registry) *Builder[T] {
	p, id := ensurePool[T](r)
	return &Builder[T]{registry: r, pool: p, id: id}
}

// NewEntity creates an entity holding v. Like CreateEntity, the entity joins
// systems on the next Update.
func (b *Builder[T]) NewEntity(v T) Entity {
	e := b.registry.CreateEntity()
	b.pool.Add(e, v)
	b.registry.entities.slots[e.Slot()].signature.Set(b.id)
	return e
}

// NewEntities creates count entities holding v and returns them.
func (b *Builder[T]) NewEntities(count int, v T) []Entity {
	out := make([]Entity, 0, count)
	for range count {
		out = append(out, b.NewEntity(v))
	}
	return out
}

// Set adds or replaces the T component of e. Invalid entities are ignored.
func (b *Builder[T]) Set(e Entity, v T) {
	if !b.registry.IsValid(e) {
		return
	}
	b.pool.Set(e, v)
	b.registry.entities.slots[e.Slot()].signature.Set(b.id)
}

// Get returns the T component of e, or nil if e is invalid or has none.
func (b *Builder[T]) Get(e Entity) *T {
	if !b.registry.IsValid(e) {
		return nil
	}
	row := b.pool.row(e.Slot())
	if row == absentRow {
		return nil
	}
	return &b.pool.data[row]
}

// Builder2 is Builder for entities that start with an A and a B component.
type Builder2[A, B any] struct {
	registry *Registry
	poolA    *Pool[A]
	poolB    *Pool[B]
	mask     Signature
}

// NewBuilder2 registers A and B in r and returns a builder for them.
func NewBuilder2[A, B any](r *Registry) *Builder2[A, B] {
	pa, ida := ensurePool[A](r)
	pb, idb := ensurePool[B](r)
	if ida == idb {
		checkDistinct(r.components.idToType[ida], r.components.idToType[idb])
	}
	var mask Signature
	mask.Set(ida)
	mask.Set(idb)
	return &Builder2[A, B]{registry: r, poolA: pa, poolB: pb, mask: mask}
}

// NewEntity creates an entity holding a and b.
func (b *Builder2[A, B]) NewEntity(a A, bv B) Entity {
	e := b.registry.CreateEntity()
	b.poolA.Add(e, a)
	b.poolB.Add(e, bv)
	b.registry.entities.slots[e.Slot()].signature |= b.mask
	return e
}

// Set adds or replaces both components of e. Invalid entities are ignored.
func (b *Builder2[A, B]) Set(e Entity, a A, bv B) {
	if !b.registry.IsValid(e) {
		return
	}
	b.poolA.Set(e, a)
	b.poolB.Set(e, bv)
	b.registry.entities.slots[e.Slot()].signature |= b.mask
}

// Get returns both components of e. Either pointer is nil when e is invalid
// or lacks that component.
func (b *Builder2[A, B]) Get(e Entity) (*A, *B) {
	if !b.registry.IsValid(e) {
		return nil, nil
	}
	var pa *A
	var pb *B
	slot := e.Slot()
	if row := b.poolA.row(slot); row != absentRow {
		pa = &b.poolA.data[row]
	}
	if row := b.poolB.row(slot); row != absentRow {
		pb = &b.poolB.data[row]
	}
	return pa, pb
}
