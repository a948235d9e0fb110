package ecsquery

// matchTable decides whether t satisfies q's signature. Checks run in the
// order the spec lays out for efficient rejection: reserved markers, then
// the AND/NOT bulk accumulators from postprocess, then whatever couldn't
// be folded into a bulk (FromContainer/FromEntity/Or terms).
//
// and_from_system is deliberately never checked here: a System-sourced
// term reads off the system entity, not off the table, so it can never
// reject a table (it only shapes the plan, in addTable).
func matchTable(q *Query, w *World, t *Table) bool {
	tableType := t.typ

	if !q.includeDisabledPrefab {
		if tableType.Has(w.Disabled()) || tableType.Has(w.PrefabMarker()) {
			return false
		}
	}

	if q.andFromSelf.Len() > 0 {
		if _, ok := contains(tableType, q.andFromSelf, true, true, w); !ok {
			return false
		}
	}
	if q.andFromOwned.Len() > 0 {
		if _, ok := contains(tableType, q.andFromOwned, true, false, w); !ok {
			return false
		}
	}
	if q.andFromShared.Len() > 0 {
		if _, owned := contains(tableType, q.andFromShared, true, false, w); owned {
			return false // owned overrides shared
		}
		if _, inherited := contains(tableType, q.andFromShared, true, true, w); !inherited {
			return false
		}
	}

	if q.notFromSelf.Len() > 0 {
		if _, ok := contains(tableType, q.notFromSelf, false, true, w); ok {
			return false
		}
	}
	if q.notFromOwned.Len() > 0 {
		if _, ok := contains(tableType, q.notFromOwned, false, false, w); ok {
			return false
		}
	}
	if q.notFromShared.Len() > 0 {
		// Dual of the and_from_shared rule: an excluded component only
		// violates the query if it is inheritable without being owned.
		for _, c := range q.notFromShared.IDs() {
			single := NewType(c)
			if _, owned := contains(tableType, single, true, false, w); owned {
				continue
			}
			if _, inherited := contains(tableType, single, true, true, w); inherited {
				return false
			}
		}
	}
	if q.notFromComponent.Len() > 0 {
		if _, _, ok := componentsContains(w, tableType, q.notFromComponent, false); ok {
			return false
		}
	}

	for _, col := range q.Signature.Columns {
		switch {
		case col.Op == OpAnd && col.From == FromContainer:
			if _, _, ok := componentsContains(w, tableType, NewType(col.Component), false); !ok {
				return false
			}
		case col.Op == OpAnd && col.From == FromCascade:
			if _, _, ok := componentsContains(w, tableType, NewType(col.Component), false); !ok {
				return false
			}
		case col.Op == OpAnd && col.From == FromEntity:
			if !w.TypeOf(col.Source).Has(col.Component) {
				return false
			}
		case col.Op == OpOr && col.From == FromSelf:
			if _, ok := contains(tableType, col.OrType, false, true, w); !ok {
				return false
			}
		case col.Op == OpOr && col.From == FromContainer:
			if _, _, ok := componentsContains(w, tableType, col.OrType, false); !ok {
				return false
			}
		case col.Op == OpNot && col.From == FromEntity:
			if w.TypeOf(col.Source).Has(col.Component) {
				return false
			}
		}
	}

	return true
}
