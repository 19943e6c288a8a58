package sparsecs

// group is a packed list of members with swap-and-pop removal.
type group struct {
	entities []Entity
	index    map[Entity]int
}

func (g *group) remove(e Entity) bool {
	i, ok := g.index[e]
	if !ok {
		return false
	}
	last := len(g.entities) - 1
	if i != last {
		moved := g.entities[last]
		g.entities[i] = moved
		g.index[moved] = i
	}
	g.entities = g.entities[:last]
	delete(g.index, e)
	return true
}

// groupIndex holds every group plus, per slot, the hashes of the groups the
// slot's entity belongs to.
type groupIndex struct {
	byHash map[uint32]*group
	bySlot [][]uint32
}

func (gi *groupIndex) reset() {
	clear(gi.byHash)
	for i := range gi.bySlot {
		gi.bySlot[i] = gi.bySlot[i][:0]
	}
}

// GroupEntity adds e to the named group. Adding an entity twice to the same
// group has no effect. Invalid entities are ignored.
func (r *Registry) GroupEntity(e Entity, name string) {
	if !r.IsValid(e) {
		return
	}
	gi := &r.groups
	hash := HashString(name)
	if gi.byHash == nil {
		gi.byHash = make(map[uint32]*group)
	}
	g, ok := gi.byHash[hash]
	if !ok {
		g = &group{index: make(map[Entity]int)}
		gi.byHash[hash] = g
	}
	if _, member := g.index[e]; member {
		return
	}
	g.index[e] = len(g.entities)
	g.entities = append(g.entities, e)

	slot := e.Slot()
	if slot >= uint32(len(gi.bySlot)) {
		gi.bySlot = append(gi.bySlot, make([][]uint32, int(slot)+1-len(gi.bySlot))...)
	}
	gi.bySlot[slot] = append(gi.bySlot[slot], hash)
}

// EntityBelongsToGroup reports whether e is a member of the named group.
func (r *Registry) EntityBelongsToGroup(e Entity, name string) bool {
	g, ok := r.groups.byHash[HashString(name)]
	if !ok {
		return false
	}
	_, member := g.index[e]
	return member
}

// GetEntitiesByGroup returns the members of the named group, or nil if the
// group has never been used. The slice is owned by the registry and changes
// with the group.
func (r *Registry) GetEntitiesByGroup(name string) []Entity {
	g, ok := r.groups.byHash[HashString(name)]
	if !ok {
		return nil
	}
	return g.entities
}

// UngroupEntity removes e from the named group only.
func (r *Registry) UngroupEntity(e Entity, name string) {
	if !r.IsValid(e) {
		return
	}
	gi := &r.groups
	hash := HashString(name)
	g, ok := gi.byHash[hash]
	if !ok || !g.remove(e) {
		return
	}
	slot := e.Slot()
	hashes := gi.bySlot[slot]
	for i, h := range hashes {
		if h == hash {
			hashes[i] = hashes[len(hashes)-1]
			gi.bySlot[slot] = hashes[:len(hashes)-1]
			break
		}
	}
}

// RemoveEntityGroups removes e from every group it belongs to. Invalid
// entities are ignored, so a stale identity never touches the groups of the
// slot's current occupant.
func (r *Registry) RemoveEntityGroups(e Entity) {
	if !r.IsValid(e) {
		return
	}
	gi := &r.groups
	slot := e.Slot()
	if slot >= uint32(len(gi.bySlot)) {
		return
	}
	for _, hash := range gi.bySlot[slot] {
		if g, ok := gi.byHash[hash]; ok {
			g.remove(e)
		}
	}
	gi.bySlot[slot] = gi.bySlot[slot][:0]
}
