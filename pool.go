package sparsecs

import "github.com/rotisserie/eris"

// absentRow marks a sparse entry whose slot holds no component.
const absentRow = -1

// componentStorage is the part of a Pool the Registry needs without knowing
// the component type.
type componentStorage interface {
	Has(slot uint32) bool
	Remove(slot uint32)
	Clear()
	Len() int
}

// Pool is a sparse-set store for one component type. Component values live
// contiguously in data, packed holds the owning entity of each row, and the
// paged sparse index maps a slot to its row. Removal swaps the last row into
// the hole, so rows never have gaps.
type Pool[T any] struct {
	data     []T
	packed   []Entity
	sparse   [][]int32 // page -> slot offset -> row, nil page = never allocated
	live     []int32   // live rows per page
	pageSize uint32
	maxSlots uint32
}

// NewPool creates a pool that reserves capacity rows and allocates sparse
// pages of pageSize slots on demand. Slots at or above maxEntities are
// rejected.
func NewPool[T any](capacity, pageSize int, maxEntities uint32) *Pool[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Pool[T]{
		data:     make([]T, 0, capacity),
		packed:   make([]Entity, 0, capacity),
		pageSize: uint32(pageSize),
		maxSlots: maxEntities,
	}
}

// Len returns the number of components stored in the pool.
func (p *Pool[T]) Len() int { return len(p.data) }

// IsEmpty reports whether the pool holds no component.
func (p *Pool[T]) IsEmpty() bool { return len(p.data) == 0 }

// Data returns the packed component slice. The slice is owned by the pool
// and is invalidated by the next Add or Remove.
func (p *Pool[T]) Data() []T { return p.data }

// Entities returns the entity owning each packed row, in row order. The slice
// is owned by the pool and is invalidated by the next Add or Remove.
func (p *Pool[T]) Entities() []Entity { return p.packed }

// At returns the component stored at a packed row.
func (p *Pool[T]) At(row int) *T { return &p.data[row] }

// row returns the packed row of slot, or absentRow.
func (p *Pool[T]) row(slot uint32) int32 {
	page := slot / p.pageSize
	if page >= uint32(len(p.sparse)) || p.sparse[page] == nil {
		return absentRow
	}
	return p.sparse[page][slot%p.pageSize]
}

// Has reports whether the slot currently holds a component.
func (p *Pool[T]) Has(slot uint32) bool {
	return p.row(slot) != absentRow
}

// Add appends v for entity e and returns a pointer to the stored value. The
// pointer stays valid until the next Add or Remove on this pool.
//
// Adding a component to a slot that already has one is a precondition
// violation and panics with ErrComponentExists.
func (p *Pool[T]) Add(e Entity, v T) *T {
	slot := e.Slot()
	if slot >= p.maxSlots {
		panic(eris.Wrapf(ErrCapacityExceeded, "slot %d is beyond max entities %d", slot, p.maxSlots))
	}
	page, offset := slot/p.pageSize, slot%p.pageSize
	if page >= uint32(len(p.sparse)) {
		p.sparse = append(p.sparse, make([][]int32, int(page)+1-len(p.sparse))...)
		p.live = append(p.live, make([]int32, int(page)+1-len(p.live))...)
	}
	if p.sparse[page] == nil {
		entries := make([]int32, p.pageSize)
		for i := range entries {
			entries[i] = absentRow
		}
		p.sparse[page] = entries
	}
	if p.sparse[page][offset] != absentRow {
		panic(eris.Wrapf(ErrComponentExists, "slot %d", slot))
	}
	p.data = append(p.data, v)
	p.packed = append(p.packed, e)
	p.sparse[page][offset] = int32(len(p.data) - 1)
	p.live[page]++
	return &p.data[len(p.data)-1]
}

// Set replaces the component of e if it has one, or adds it otherwise.
func (p *Pool[T]) Set(e Entity, v T) *T {
	if row := p.row(e.Slot()); row != absentRow {
		p.data[row] = v
		p.packed[row] = e
		return &p.data[row]
	}
	return p.Add(e, v)
}

// Remove deletes the component of slot, moving the last row into its place.
// It does nothing if the slot holds no component.
func (p *Pool[T]) Remove(slot uint32) {
	row := p.row(slot)
	if row == absentRow {
		return
	}
	last := int32(len(p.data) - 1)
	if row != last {
		moved := p.packed[last]
		p.data[row] = p.data[last]
		p.packed[row] = moved
		ms := moved.Slot()
		p.sparse[ms/p.pageSize][ms%p.pageSize] = row
	}
	var zero T
	p.data[last] = zero
	p.data = p.data[:last]
	p.packed = p.packed[:last]

	page := slot / p.pageSize
	p.sparse[page][slot%p.pageSize] = absentRow
	p.live[page]--
	if p.live[page] == 0 {
		p.sparse[page] = nil
	}
}

// Get returns the component of slot. The slot must hold one; otherwise Get
// panics with ErrComponentMissing.
func (p *Pool[T]) Get(slot uint32) *T {
	row := p.row(slot)
	if row == absentRow {
		panic(eris.Wrapf(ErrComponentMissing, "slot %d", slot))
	}
	return &p.data[row]
}

// Clear drops every row and every sparse page.
func (p *Pool[T]) Clear() {
	clear(p.data)
	p.data = p.data[:0]
	p.packed = p.packed[:0]
	clear(p.sparse)
	p.sparse = p.sparse[:0]
	p.live = p.live[:0]
}
