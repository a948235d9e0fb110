package ecsquery

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ComponentID names a component. A component is itself an Entity, so a
// ComponentID doubles as the Entity that carries the component's marker
// record (see Data Model, entity.go).
type ComponentID = Entity

// componentMeta is the well-known marker record every component carries.
// Size == 0 identifies a tag: presence-only, no column storage.
type componentMeta struct {
	typ  reflect.Type
	size uintptr
}

// IsTag reports whether a component carries no data.
func (w *World) IsTag(c ComponentID) bool {
	return w.componentSize(c) == 0
}

// componentSize returns the registered size of c, or 0 if c was never
// registered as a component (which also reads as "tag" to callers that
// only care about storage width).
func (w *World) componentSize(c ComponentID) uintptr {
	if m, ok := w.components[c]; ok {
		return m.size
	}
	return 0
}

// RegisterComponent registers a component type against w and returns its
// ComponentID. Registering the same Go type twice returns the same ID.
// Panics if the maximum number of component types for w is exceeded.
func RegisterComponent[T any](w *World) ComponentID {
	var zero T
	typ := reflect.TypeOf(zero)

	if id, ok := w.compTypeCache[typ]; ok {
		return id
	}
	if len(w.compTypeCache) >= maxComponentTypes {
		panic(fmt.Sprintf("ecsquery: cannot register component %s: maximum number of component types (%d) reached", typ, maxComponentTypes))
	}

	id := w.newEntity()
	size := unsafe.Sizeof(zero)
	if typ == nil {
		size = 0
	}
	w.components[id] = componentMeta{typ: typ, size: size}
	w.compTypeCache[typ] = id
	return id
}

// GetID returns the ComponentID previously registered for T.
// Panics if T was never registered against w.
func GetID[T any](w *World) ComponentID {
	id, ok := TryGetID[T](w)
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecsquery: component type %s not registered", reflect.TypeOf(zero)))
	}
	return id
}

// TryGetID returns the ComponentID for T and whether it was found.
func TryGetID[T any](w *World) (ComponentID, bool) {
	var zero T
	typ := reflect.TypeOf(zero)
	id, ok := w.compTypeCache[typ]
	return id, ok
}

// RegisterTag registers a zero-size marker component (e.g. Disabled,
// Prefab) that carries no storage.
func (w *World) RegisterTag() ComponentID {
	id := w.newEntity()
	w.components[id] = componentMeta{typ: nil, size: 0}
	return id
}
