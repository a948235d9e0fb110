package ecsquery

// findOwningEntity walks from startEntity (or, when startEntity is
// InvalidEntity, searches the table type directly) through INSTANCEOF
// links to locate the entity whose own type actually contains component.
// Returns InvalidEntity if no such entity exists. The walk is bounded by
// the caller's guarantee that the inheritance DAG is acyclic.
func findOwningEntity(store TypeStore, startEntity Entity, tableType Type, component Entity) Entity {
	if startEntity != InvalidEntity {
		ownType := store.TypeOf(startEntity)
		if ownType.Has(component) {
			return startEntity
		}
		for _, id := range ownType.IDs() {
			if !id.IsInstanceOf() {
				continue
			}
			if owner := findOwningEntity(store, id.ID(), Type{}, component); owner != InvalidEntity {
				return owner
			}
		}
		return InvalidEntity
	}

	for _, id := range tableType.IDs() {
		if !id.IsInstanceOf() {
			continue
		}
		if owner := findOwningEntity(store, id.ID(), Type{}, component); owner != InvalidEntity {
			return owner
		}
	}
	return InvalidEntity
}

// componentsContains implements the FromContainer/Cascade lookup: for each
// CHILDOF edge embedded in tableType, it dereferences the parent's own type
// and applies contains (without prefab search — containers are a distinct
// relation from inheritance). On success it returns the witness component
// and the owning parent entity.
func componentsContains(store TypeStore, tableType, subType Type, matchAll bool) (component Entity, owner Entity, ok bool) {
	for _, id := range tableType.IDs() {
		if !id.IsChildOf() {
			continue
		}
		parent := id.ID()
		parentType := store.TypeOf(parent)
		if c, found := contains(parentType, subType, matchAll, false, store); found {
			return c, parent, true
		}
	}
	return 0, InvalidEntity, false
}
