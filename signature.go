package sparsecs

import "math/bits"

// MaxComponentTypes is the hard upper bound on component types per Registry.
// It is the width of Signature.
const MaxComponentTypes = 32

// ComponentID is the small integer a Registry assigns to a component type.
type ComponentID uint8

// Signature represents a set of up to 32 component IDs. Each entity slot owns
// one, and every System carries the signature it requires. A bit is set
// exactly while the entity holds a component of that type.
type Signature uint32

// Set enables the bit for id.
func (s *Signature) Set(id ComponentID) {
	*s |= 1 << (id & (MaxComponentTypes - 1))
}

// Unset disables the bit for id.
func (s *Signature) Unset(id ComponentID) {
	*s &^= 1 << (id & (MaxComponentTypes - 1))
}

// Has reports whether the bit for id is set.
func (s Signature) Has(id ComponentID) bool {
	return s&(1<<(id&(MaxComponentTypes-1))) != 0
}

// Contains reports whether every bit set in sub is also set in s. This is the
// membership rule between an entity signature and a system signature.
func (s Signature) Contains(sub Signature) bool {
	return s&sub == sub
}

// Count returns the number of bits set.
func (s Signature) Count() int {
	return bits.OnesCount32(uint32(s))
}

// IsEmpty reports whether no bit is set.
func (s Signature) IsEmpty() bool {
	return s == 0
}

// Each calls fn for every set bit, lowest ID first.
func (s Signature) Each(fn func(ComponentID)) {
	for rest := uint32(s); rest != 0; rest &= rest - 1 {
		fn(ComponentID(bits.TrailingZeros32(rest)))
	}
}
