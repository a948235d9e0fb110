package ecsquery

import "testing"

func TestWithDisabledAndIsDisabledTable(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[position](w)
	typ := WithDisabled(w, NewType(pos))
	e := w.NewEntityIn(typ)
	tbl, _, _ := w.GetRecord(e)

	if !IsDisabledTable(w, tbl) {
		t.Errorf("expected table built via WithDisabled to report IsDisabledTable")
	}
	if IsPrefabTable(w, tbl) {
		t.Errorf("did not expect IsPrefabTable to be true")
	}
}

func TestWithPrefabAndIsPrefabTable(t *testing.T) {
	w := NewWorld()
	hp := RegisterComponent[health](w)
	typ := WithPrefab(w, NewType(hp))
	e := w.NewEntityIn(typ)
	tbl, _, _ := w.GetRecord(e)

	if !IsPrefabTable(w, tbl) {
		t.Errorf("expected table built via WithPrefab to report IsPrefabTable")
	}
}
