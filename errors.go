package ecsquery

import "fmt"

// This core has no user-visible error codes (spec.md §7): programming
// errors abort via panic, allocation failure surfaces as a nil/zero
// return for the caller to propagate, and every other failure mode is a
// benign negative handled locally (a collapsed tag column, a missing
// optional reference). These helpers just keep the panic messages
// consistent across world.go/signature.go/plan.go.

func panicMultiplePrefabs(ids []Entity) {
	panic(fmt.Sprintf("ecsquery: table type %v carries more than one INSTANCEOF prefab edge", ids))
}

func panicUnresolvedReference(component Entity) {
	panic(fmt.Sprintf("ecsquery: unresolved reference for component %d: no owning entity found", component))
}

func panicNotTermSource(from FromKind) {
	panic(fmt.Sprintf("ecsquery: Not term with unsupported source %v", from))
}
