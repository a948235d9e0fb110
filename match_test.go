package ecsquery

import "testing"

type health struct{ HP int }

func newQuery(t *testing.T, w *World, sig Signature, system Entity) *Query {
	t.Helper()
	q := &Query{Signature: sig, System: system, matchedIdx: make(map[*Table]int)}
	postprocess(q, w)
	return q
}

func TestMatchTableRejectsDisabledByDefault(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[position](w)
	e := w.NewEntityIn(NewType(pos, w.Disabled()))
	tbl, _, _ := w.GetRecord(e)

	q := newQuery(t, w, Signature{Columns: []Column{AndSelf(pos)}}, InvalidEntity)
	if matchTable(q, w, tbl) {
		t.Errorf("expected disabled table to be rejected")
	}
}

func TestMatchTableIncludesDisabledWhenOptedIn(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[position](w)
	e := w.NewEntityIn(NewType(pos, w.Disabled()))
	tbl, _, _ := w.GetRecord(e)

	q := newQuery(t, w, Signature{Columns: []Column{AndSelf(pos)}}, InvalidEntity)
	q.IncludeDisabledAndPrefab()
	if !matchTable(q, w, tbl) {
		t.Errorf("expected disabled table to match once opted in")
	}
}

func TestMatchTableAndSelfRejectsMissingComponent(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[position](w)
	vel := RegisterComponent[velocity](w)
	e := w.NewEntityIn(NewType(pos))
	tbl, _, _ := w.GetRecord(e)

	q := newQuery(t, w, Signature{Columns: []Column{AndSelf(pos), AndSelf(vel)}}, InvalidEntity)
	if matchTable(q, w, tbl) {
		t.Errorf("expected table missing velocity to be rejected")
	}
}

func TestMatchTableNotSelfRejectsPresentComponent(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[position](w)
	hp := RegisterComponent[health](w)
	e := w.NewEntityIn(NewType(pos, hp))
	tbl, _, _ := w.GetRecord(e)

	q := newQuery(t, w, Signature{Columns: []Column{AndSelf(pos), NotSelf(hp)}}, InvalidEntity)
	if matchTable(q, w, tbl) {
		t.Errorf("expected NotSelf(health) to reject a table carrying health")
	}
}

// TestMatchTableSharedRejectsOwned mirrors spec.md §4.4's and_from_shared
// rule: a Shared term requires the component be reachable only through
// inheritance. A table that owns the component directly does not satisfy
// it ("owned would override" — the caller should have written a Self/Owned
// term for that case instead).
func TestMatchTableSharedRejectsOwned(t *testing.T) {
	w := NewWorld()
	hp := RegisterComponent[health](w)
	e := w.NewEntityIn(NewType(hp))
	tbl, _, _ := w.GetRecord(e)

	q := newQuery(t, w, Signature{Columns: []Column{AndShared(hp)}}, InvalidEntity)
	if matchTable(q, w, tbl) {
		t.Errorf("expected AndShared to reject a table that owns the component directly")
	}
}

func TestMatchTableSharedViaPrefab(t *testing.T) {
	w := NewWorld()
	hp := RegisterComponent[health](w)
	prefab := w.NewEntityIn(NewType(hp, w.PrefabMarker()))
	e := w.NewEntityIn(NewType(InstanceOf(prefab)))
	tbl, _, _ := w.GetRecord(e)

	q := newQuery(t, w, Signature{Columns: []Column{AndShared(hp)}}, InvalidEntity)
	if !matchTable(q, w, tbl) {
		t.Errorf("expected AndShared to accept a component inherited from a prefab")
	}
}

func TestMatchTableContainerRequiresParentComponent(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[position](w)
	transform := RegisterComponent[velocity](w)
	parent := w.NewEntityIn(NewType(transform))
	child := w.NewEntityIn(NewType(pos, ChildOf(parent)))
	tbl, _, _ := w.GetRecord(child)

	q := newQuery(t, w, Signature{Columns: []Column{AndSelf(pos), AndContainer(transform)}}, InvalidEntity)
	if !matchTable(q, w, tbl) {
		t.Errorf("expected container term to match via parent")
	}

	orphan := w.NewEntityIn(NewType(pos))
	orphanTbl, _, _ := w.GetRecord(orphan)
	if matchTable(q, w, orphanTbl) {
		t.Errorf("expected container term to reject an entity with no qualifying parent")
	}
}
