package sparsecs

import "hash/fnv"

// HashString returns the 32-bit FNV-1a hash used to key tags and groups.
// Distinct names that collide are treated as the same name; there is no
// collision detection.
func HashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

type slotTag struct {
	hash uint32
	set  bool
}

// tagIndex maps each slot to at most one tag, and each tag to one entity.
type tagIndex struct {
	bySlot []slotTag
	byHash map[uint32]Entity
}

func (ti *tagIndex) reset() {
	clear(ti.bySlot)
	clear(ti.byHash)
}

func (ti *tagIndex) clearSlot(slot uint32) {
	if slot < uint32(len(ti.bySlot)) {
		ti.bySlot[slot] = slotTag{}
	}
}

// TagEntity gives e the tag name. An entity holds one tag and a tag names one
// entity: retagging drops the entity's previous tag, and a tag already held by
// another entity moves to e. Invalid entities are ignored.
func (r *Registry) TagEntity(e Entity, tag string) {
	if !r.IsValid(e) {
		return
	}
	ti := &r.tags
	slot := e.Slot()
	hash := HashString(tag)

	r.RemoveEntityTag(e)
	if prev, ok := ti.byHash[hash]; ok {
		ti.clearSlot(prev.Slot())
	}

	if slot >= uint32(len(ti.bySlot)) {
		ti.bySlot = append(ti.bySlot, make([]slotTag, int(slot)+1-len(ti.bySlot))...)
	}
	ti.bySlot[slot] = slotTag{hash: hash, set: true}
	if ti.byHash == nil {
		ti.byHash = make(map[uint32]Entity)
	}
	ti.byHash[hash] = e
}

// EntityHasTag reports whether e currently holds tag.
func (r *Registry) EntityHasTag(e Entity, tag string) bool {
	if !r.IsValid(e) {
		return false
	}
	slot := e.Slot()
	if slot >= uint32(len(r.tags.bySlot)) {
		return false
	}
	st := r.tags.bySlot[slot]
	return st.set && st.hash == HashString(tag)
}

// GetEntityByTag returns the entity holding tag, if any.
func (r *Registry) GetEntityByTag(tag string) (Entity, bool) {
	e, ok := r.tags.byHash[HashString(tag)]
	return e, ok
}

// RemoveEntityTag drops the tag of e, if it has one.
func (r *Registry) RemoveEntityTag(e Entity) {
	ti := &r.tags
	slot := e.Slot()
	if !r.IsValid(e) || slot >= uint32(len(ti.bySlot)) {
		return
	}
	st := ti.bySlot[slot]
	if !st.set {
		return
	}
	if holder, ok := ti.byHash[st.hash]; ok && holder.Slot() == slot {
		delete(ti.byHash, st.hash)
	}
	ti.bySlot[slot] = slotTag{}
}
