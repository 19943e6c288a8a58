// Package sparsecs implements a sparse-set Entity Component System for Go.
//
// Features:
//   - Versioned 64-bit entity identities (generation:32 | slot:32).
//   - One densely packed, paged sparse-set Pool per component type.
//   - Registry with deferred creation/destruction applied by Update.
//   - Signature-based system routing, tags and groups.
//
// A Registry is not safe for concurrent use. Drive it from one goroutine, or
// serialize the whole update cycle with an external lock.
package sparsecs

import "fmt"

const (
	entitySlotMask       = 0x00000000FFFFFFFF
	entityGenerationMask = 0xFFFFFFFF00000000
	entityGenerationBits = 32
)

// Entity is an opaque identity handed out by a Registry. It packs the slot
// index in the low 32 bits and the slot's generation in the high 32 bits, so
// an identity whose slot was recycled no longer compares equal to the new one.
type Entity uint64

// EncodeEntity packs a slot index and generation into an Entity.
func EncodeEntity(slot, generation uint32) Entity {
	return Entity(uint64(generation)<<entityGenerationBits | uint64(slot))
}

// SlotOf returns the slot index half of e.
func SlotOf(e Entity) uint32 {
	return uint32(uint64(e) & entitySlotMask)
}

// GenerationOf returns the generation half of e.
func GenerationOf(e Entity) uint32 {
	return uint32((uint64(e) & entityGenerationMask) >> entityGenerationBits)
}

// Slot returns the slot index of the entity.
func (e Entity) Slot() uint32 { return SlotOf(e) }

// Generation returns the generation counter of the entity.
func (e Entity) Generation() uint32 { return GenerationOf(e) }

// String formats the entity as "slot:generation".
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Slot(), e.Generation())
}
