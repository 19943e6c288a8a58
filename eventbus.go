package sparsecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// MaxEventTypes defines the maximum number of unique event types that can be
// registered in one EventBus.
const MaxEventTypes = 256

// EntityActivated is published by Update once a newly created entity has been
// placed into every matching system.
type EntityActivated struct {
	Entity Entity
}

// EntityDestroyed is published by Update once a killed entity has left every
// system and lost its components, tag and groups. Entity is the identity as it
// was before the slot was recycled, so it is no longer valid.
type EntityDestroyed struct {
	Entity Entity
}

// EventBus is a synchronous, type-keyed publish/subscribe hub. Every Registry
// owns one and announces entity lifecycle transitions on it; applications may
// publish their own event types on the same bus.
//
// Publish does not allocate.
type EventBus struct {
	typeIDs  map[reflect.Type]uint8
	handlers [MaxEventTypes][]any
	count    int
}

// Subscribe registers handler for events of type T. Handlers run in
// subscription order.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	id := bus.typeID(reflect.TypeFor[T]())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]any, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish calls every handler subscribed to T with event, synchronously.
// Publishing a type nobody subscribed to does nothing.
func Publish[T any](bus *EventBus, event T) {
	id, ok := bus.typeIDs[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	for _, h := range bus.handlers[id] {
		h.(func(T))(event)
	}
}

// HasSubscribers reports whether at least one handler listens for T.
func HasSubscribers[T any](bus *EventBus) bool {
	id, ok := bus.typeIDs[reflect.TypeFor[T]()]
	return ok && len(bus.handlers[id]) > 0
}

func (bus *EventBus) typeID(t reflect.Type) uint8 {
	if bus.typeIDs == nil {
		bus.typeIDs = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.typeIDs[t]; ok {
		return id
	}
	if bus.count >= MaxEventTypes {
		panic(eris.Wrapf(ErrTooManyEventTypes, "cannot subscribe to %s", t))
	}
	id := uint8(bus.count)
	bus.count++
	bus.typeIDs[t] = id
	return id
}
