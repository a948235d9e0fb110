package ecsquery

// Table is an archetype: the home of every entity whose component multiset
// equals typ exactly. It owns one byte-column per component; a tag column
// is allocated empty (stride 0) and never grows.
type Table struct {
	typ           Type
	entities      []Entity      // conceptually column 0 of the spec's data model
	componentIDs  []Entity      // == typ.IDs(), kept alongside for iteration order
	componentData [][]byte      // column i holds componentIDs[i]'s packed rows
	slots         map[Entity]int // component id -> column index, -1 absent

	// version is bumped whenever a column slice is reallocated to a new
	// backing array. References cache a pointer into column storage and
	// must be re-resolved once this counter moves past the value they
	// were captured at (see the "version counter" design note).
	version uint64
}

// getSlot finds the column index of a component id, or -1.
func (t *Table) getSlot(id Entity) int {
	if i, ok := t.slots[id]; ok {
		return i
	}
	return -1
}

// appendEntity appends e to the entity column (column 0), doubling the
// backing array when it's full, and returns the row e landed on.
func (t *Table) appendEntity(e Entity) int {
	row := len(t.entities)
	if row == cap(t.entities) {
		newCap := 2 * cap(t.entities)
		if newCap == 0 {
			newCap = 1
		}
		grown := make([]Entity, row, newCap)
		copy(grown, t.entities)
		t.entities = grown
	}
	t.entities = append(t.entities, e)
	return row
}

// growColumn extends component column i by one row of size bytes. If the
// column's backing array has to be reallocated to fit, version is bumped
// so outstanding Reference pointers into it know to re-resolve.
func (t *Table) growColumn(i, size int) {
	data := t.componentData[i]
	newLen := len(data) + size
	if cap(data) >= newLen {
		t.componentData[i] = data[:newLen]
		return
	}
	newCap := 2 * cap(data)
	if newCap < newLen {
		newCap = newLen
	}
	nd := make([]byte, newLen, newCap)
	copy(nd, data)
	t.componentData[i] = nd
	t.version++
}

// Type returns the table's archetype type.
func (t *Table) Type() Type { return t.typ }

// Len returns the number of entities (rows) currently stored.
func (t *Table) Len() int { return len(t.entities) }

// Version returns the current column-reallocation counter.
func (t *Table) Version() uint64 { return t.version }

// HasPrefabReference reports whether the table's type embeds an INSTANCEOF
// edge to some prefab.
func (t *Table) HasPrefabReference() bool {
	for _, id := range t.componentIDs {
		if id.IsInstanceOf() {
			return true
		}
	}
	return false
}

// childOfParents returns every CHILDOF-tagged entity embedded in the
// table's type, in type order.
func (t *Table) childOfParents() []Entity {
	var parents []Entity
	for _, id := range t.componentIDs {
		if id.IsChildOf() {
			parents = append(parents, id.ID())
		}
	}
	return parents
}

// instanceOfPrefabs returns every INSTANCEOF-tagged entity embedded in the
// table's type, in type order.
func (t *Table) instanceOfPrefabs() []Entity {
	var prefabs []Entity
	for _, id := range t.componentIDs {
		if id.IsInstanceOf() {
			prefabs = append(prefabs, id.ID())
		}
	}
	return prefabs
}
