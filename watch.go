package ecsquery

import "reflect"

// maxWatchEventTypes bounds the watch bus the same way the teacher's
// EventBus bounds its own event table (eventbus.go).
const maxWatchEventTypes = 64

// watchBus is a small generic publish/subscribe dispatcher, adapted from
// the teacher's EventBus: a reflect.Type-keyed map assigns each event type
// a slot in a fixed-size handler table. Component storage mutation itself is out of
// scope for this core (see spec.md §1) — the bus only carries the
// notification a host mutation layer is expected to raise.
type watchBus struct {
	typeSlots map[reflect.Type]uint8
	handlers  [maxWatchEventTypes][]interface{}
	next      uint8
}

func newWatchBus() *watchBus {
	return &watchBus{typeSlots: make(map[reflect.Type]uint8, 4)}
}

func (b *watchBus) slotFor(t reflect.Type) uint8 {
	if id, ok := b.typeSlots[t]; ok {
		return id
	}
	if int(b.next) >= maxWatchEventTypes {
		panic("ecsquery: too many watch event types")
	}
	id := b.next
	b.next++
	b.typeSlots[t] = id
	return id
}

// SubscribeWatch registers handler for events of type T published on w.
func SubscribeWatch[T any](w *World, handler func(T)) {
	id := w.bus.slotFor(reflect.TypeFor[T]())
	w.bus.handlers[id] = append(w.bus.handlers[id], handler)
}

func publishWatch[T any](b *watchBus, event T) {
	id, ok := b.typeSlots[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	for _, h := range b.handlers[id] {
		h.(func(T))(event)
	}
}

// Invalidated is published when a watched entity's components are
// mutated by the host. Queries holding a Reference to that entity should
// treat any MatchedTable whose References[i].Entity == Entity as needing
// a fresh Ptr (handled lazily anyway via the table version counter —
// Invalidated exists for hosts that want eager notification instead of
// lazily calling Reference.Ptr on next read).
type Invalidated struct {
	Entity Entity
}

// NotifyMutated is the hook an out-of-scope component-mutation layer
// calls after writing to e's components. It is a no-op unless e was
// previously flagged via SetWatch.
func (w *World) NotifyMutated(e Entity) {
	if !w.IsWatched(e) {
		return
	}
	publishWatch(w.bus, Invalidated{Entity: e})
}
