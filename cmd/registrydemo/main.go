// Command registrydemo builds a small world with a container (CHILDOF)
// relationship, registers one query against it, and prints the resulting
// per-table plans. It exists as a smoke test for Registry/Query wiring,
// in place of the profiling mains this module doesn't carry.
package main

import (
	"fmt"

	"github.com/edwinsyarief/ecsquery"
)

type Position struct {
	X, Y float64
}

type Transform struct {
	Scale float64
}

func main() {
	w := ecsquery.NewWorld()
	log := ecsquery.NewDevelopmentLogger()
	defer log.Sync()

	position := ecsquery.RegisterComponent[Position](w)
	transform := ecsquery.RegisterComponent[Transform](w)

	parent := w.NewEntityIn(ecsquery.NewType(transform))
	ecsquery.SetComponent(w, parent, transform, Transform{Scale: 2})

	child := w.NewEntityIn(ecsquery.NewType(position, ecsquery.ChildOf(parent)))
	ecsquery.SetComponent(w, child, position, Position{X: 1, Y: 1})

	reg := ecsquery.NewRegistry(w, ecsquery.RegistryOptions{Logger: log})

	sig := ecsquery.Signature{Columns: []ecsquery.Column{
		ecsquery.AndSelf(position),
		ecsquery.AndContainer(transform),
	}}
	q := reg.NewQuery(sig, ecsquery.InvalidEntity)

	for _, mt := range q.Matched {
		fmt.Printf("table entities=%d columns=%v references=%d\n",
			mt.Table.Len(), mt.Columns, len(mt.References))
	}
}
