package ecsquery

// addTable builds the per-column access plan for a table already known to
// satisfy q's signature (matchTable must have returned true). It does not
// record t in q.Matched and keeps no memory of earlier calls: calling it
// twice on the same table builds a second, independent plan. The registry
// appends the plan to q.Matched and is responsible for doing so at most
// once per table (see registry.go and the idempotence property in
// spec.md §8).
func addTable(q *Query, w *World, t *Table) *MatchedTable {
	tableType := t.typ
	n := len(q.Signature.Columns)
	mt := &MatchedTable{
		Table:      t,
		Columns:    make([]ColumnPlan, n),
		Components: make([]Entity, n),
	}

	for i, col := range q.Signature.Columns {
		resolveColumn(q, w, tableType, mt, i, col)
	}
	return mt
}

// resolveColumn fills mt.Columns[i]/mt.Components[i], appending a
// Reference to mt.References when the component can't be read directly
// out of the table.
func resolveColumn(q *Query, w *World, tableType Type, mt *MatchedTable, i int, col Column) {
	if col.Op == OpNot {
		mt.Columns[i] = ColumnPlan{Kind: ColumnTag}
		mt.Components[i] = col.Component
		return
	}
	if col.From == FromEmpty {
		mt.Columns[i] = ColumnPlan{Kind: ColumnTag}
		return
	}

	component, rawEntity, found := resolveTermTarget(w, tableType, col)
	mt.Components[i] = component

	// Tags never occupy a column and never become references, regardless
	// of source (spec.md §8 property 5).
	if component != InvalidEntity && w.IsTag(component) {
		mt.Columns[i] = ColumnPlan{Kind: ColumnTag}
		return
	}

	if rawEntity == InvalidEntity {
		if idx := indexOf(tableType, component); idx >= 0 {
			mt.Columns[i] = ColumnPlan{Kind: ColumnDirect, Offset: idx}
			return
		}
		if col.Op == OpOptional && !found {
			mt.Columns[i] = ColumnPlan{Kind: ColumnTag}
			return
		}
		// Not present directly: component.size > 0 and not in the
		// table's own columns means it must be inherited from a prefab.
	} else if col.Op == OpOptional && !found {
		mt.Columns[i] = ColumnPlan{Kind: ColumnTag}
		return
	}

	var owner Entity
	switch col.From {
	case FromEntity, FromCascade:
		owner = rawEntity
	default:
		owner = findOwningEntity(w, rawEntity, tableType, component)
	}

	if owner == InvalidEntity {
		if col.Op == OpOptional {
			mt.Columns[i] = ColumnPlan{Kind: ColumnTag}
			return
		}
		if col.From != FromCascade {
			panicUnresolvedReference(component)
		}
		// An unresolved, non-optional Cascade term with no owner is a
		// benign miss: there's nothing to cascade by.
		mt.Columns[i] = ColumnPlan{Kind: ColumnTag}
		return
	}

	ref := Reference{Entity: owner, Component: component, cachedPtr: w.GetPtr(owner, component)}
	if ownerTable, _, ok := w.GetRecord(owner); ok {
		ref.ownerTable = ownerTable
		ref.capturedAt = ownerTable.version
	}
	w.SetWatch(owner)

	mt.References = append(mt.References, ref)
	mt.Columns[i] = ColumnPlan{Kind: ColumnRef, Offset: len(mt.References) - 1}
	q.hasRefs = true
}

// resolveTermTarget implements the "from/op" table of spec.md §4.5,
// returning the term's component, an explicit owning entity if the term
// names one directly (Container/Cascade/Entity/System), and whether an Or
// alternative (or a Container lookup) actually found a witness.
func resolveTermTarget(w *World, tableType Type, col Column) (component, rawEntity Entity, found bool) {
	switch {
	case col.From == FromSelf && col.Op == OpOr:
		c, ok := contains(tableType, col.OrType, false, true, w)
		return c, InvalidEntity, ok

	case col.From == FromContainer && col.Op == OpOr:
		c, owner, ok := componentsContains(w, tableType, col.OrType, false)
		return c, owner, ok

	case col.From == FromContainer:
		owner := findContainerOwner(w, tableType, col.Component)
		return col.Component, owner, owner != InvalidEntity

	case col.From == FromCascade:
		owner := findContainerOwner(w, tableType, col.Component)
		return col.Component, owner, owner != InvalidEntity

	case col.From == FromEntity:
		return col.Component, col.Source, col.Source != InvalidEntity

	case col.From == FromSystem:
		return col.Component, w.systemEntityFor(col), true

	default: // Self, Owned, Shared — And/Optional
		return col.Component, InvalidEntity, true
	}
}

// findContainerOwner returns the CHILDOF parent (if any) whose own type
// directly contains component.
func findContainerOwner(w *World, tableType Type, component Entity) Entity {
	_, owner, ok := componentsContains(w, tableType, NewType(component), false)
	if !ok {
		return InvalidEntity
	}
	return owner
}

// systemEntityFor resolves the entity a From=System term reads off. It is
// a tiny seam (rather than reaching into q directly) so tests can plan a
// single column without constructing a whole Query.
func (w *World) systemEntityFor(col Column) Entity {
	if col.Source != InvalidEntity {
		return col.Source
	}
	return w.defaultSystem
}
