package ecsquery

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Type is a canonicalised, ascending-sorted sequence of entity identifiers
// (component ids, possibly CHILDOF/INSTANCEOF-tagged). Types are immutable
// after construction; Add produces a new Type rather than mutating self.
//
// The sorted slice gives the canonical ordering and positional lookup the
// spec requires (IndexOf); the roaring64 bitmap mirrors the same ids for
// fast membership tests in the match predicate's hot path, where a table's
// type is checked against a query's summary accumulators many times over.
type Type struct {
	ids  []Entity
	bits *roaring64.Bitmap
}

// TypeStore resolves an entity to its own Type. It is the minimal capability
// the type algebra and prefab lookup need from the host world — see the
// "Global world pointer" design note: passing this instead of a full *World
// keeps the algebra decoupled from entity/table storage.
type TypeStore interface {
	TypeOf(e Entity) Type
}

// NewType builds a canonical Type from an arbitrary (possibly unsorted,
// possibly duplicated) list of entity ids.
func NewType(ids ...Entity) Type {
	cp := append([]Entity(nil), ids...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	cp = dedupSorted(cp)

	bits := roaring64.New()
	for _, id := range cp {
		bits.Add(uint64(id))
	}
	return Type{ids: cp, bits: bits}
}

func dedupSorted(ids []Entity) []Entity {
	if len(ids) < 2 {
		return ids
	}
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of ids in the type.
func (t Type) Len() int { return len(t.ids) }

// IDs returns the canonical, read-only backing slice.
func (t Type) IDs() []Entity { return t.ids }

// Has reports direct (non-prefab) membership.
func (t Type) Has(id Entity) bool {
	return t.bits != nil && t.bits.Contains(uint64(id))
}

// IndexOf returns the position of component in the canonical order, or -1.
func (t Type) IndexOf(component Entity) int {
	i := sort.Search(len(t.ids), func(i int) bool { return t.ids[i] >= component })
	if i < len(t.ids) && t.ids[i] == component {
		return i
	}
	return -1
}

// Add returns a new Type with id inserted in canonical order. Adding an id
// already present returns t unchanged (types are sets, not multisets).
func (t Type) Add(id Entity) Type {
	if t.Has(id) {
		return t
	}
	ns := make([]Entity, len(t.ids)+1)
	i := sort.Search(len(t.ids), func(i int) bool { return t.ids[i] >= id })
	copy(ns, t.ids[:i])
	ns[i] = id
	copy(ns[i+1:], t.ids[i:])

	bits := t.bits.Clone()
	bits.Add(uint64(id))
	return Type{ids: ns, bits: bits}
}

// contains returns a witness component from sub present in super, honouring
// matchAll and searchPrefabs. With matchAll, every element of sub must be
// present and the witness is the last matched; otherwise the first match
// suffices. With searchPrefabs, INSTANCEOF links embedded in super are
// transparently followed (the caller guarantees the inheritance DAG is
// acyclic, so the recursive prefab walk always terminates).
func contains(super, sub Type, matchAll, searchPrefabs bool, store TypeStore) (Entity, bool) {
	if matchAll {
		var witness Entity
		found := false
		for _, c := range sub.ids {
			if containsOne(super, c, searchPrefabs, store) {
				witness = c
				found = true
			} else {
				return 0, false
			}
		}
		return witness, found
	}
	for _, c := range sub.ids {
		if containsOne(super, c, searchPrefabs, store) {
			return c, true
		}
	}
	return 0, false
}

// containsOne reports whether component is reachable from super, optionally
// walking INSTANCEOF edges embedded in super's own ids.
func containsOne(super Type, component Entity, searchPrefabs bool, store TypeStore) bool {
	if super.Has(component) {
		return true
	}
	if !searchPrefabs || store == nil {
		return false
	}
	for _, e := range super.ids {
		if !e.IsInstanceOf() {
			continue
		}
		prefabType := store.TypeOf(e.ID())
		if containsOne(prefabType, component, true, store) {
			return true
		}
	}
	return false
}

// indexOf is the package-level form of Type.IndexOf, named to match the
// spec's operation names in prose.
func indexOf(t Type, component Entity) int {
	return t.IndexOf(component)
}

// hasEntityIntern is a fast boolean wrapper around containsOne.
func hasEntityIntern(t Type, entity Entity, searchPrefabs bool, store TypeStore) bool {
	return containsOne(t, entity, searchPrefabs, store)
}
