package ecsquery

import (
	"unsafe"

	"github.com/google/uuid"
)

// FromKind names a signature column's source.
type FromKind int

const (
	FromSelf FromKind = iota
	FromOwned
	FromShared
	FromContainer
	FromEntity
	FromSystem
	FromEmpty
	FromCascade
)

// OpKind names a signature column's operator.
type OpKind int

const (
	OpAnd OpKind = iota
	OpOr
	OpOptional
	OpNot
)

// Column is one term of a query signature. Component is the payload for a
// single-component term; OrType is the payload for an Or term (a small set
// of alternatives, any one of which satisfies the term). Source is read
// only when From == FromEntity (the entity the term reads off) or
// From == FromSystem (overrides World.SetDefaultSystem when set).
type Column struct {
	From      FromKind
	Op        OpKind
	Component Entity
	OrType    Type
	Source    Entity
}

// Signature is the parsed, uninterpreted list of query terms. Compiling a
// Signature into a Query is the job of NewQuery/postprocess.
type Signature struct {
	Columns []Column
}

// Convenience constructors for building signatures by hand (this core
// never parses signatures from text — see spec.md §1 non-goals).

func AndSelf(c Entity) Column      { return Column{From: FromSelf, Op: OpAnd, Component: c} }
func AndOwned(c Entity) Column     { return Column{From: FromOwned, Op: OpAnd, Component: c} }
func AndShared(c Entity) Column    { return Column{From: FromShared, Op: OpAnd, Component: c} }
func AndContainer(c Entity) Column { return Column{From: FromContainer, Op: OpAnd, Component: c} }
func AndSystem(c Entity) Column    { return Column{From: FromSystem, Op: OpAnd, Component: c} }
func AndEntity(source, c Entity) Column {
	return Column{From: FromEntity, Op: OpAnd, Component: c, Source: source}
}
func AndCascade(c Entity) Column { return Column{From: FromCascade, Op: OpAnd, Component: c} }
func Optional(col Column) Column { col.Op = OpOptional; return col }
func NotSelf(c Entity) Column    { return Column{From: FromSelf, Op: OpNot, Component: c} }
func NotOwned(c Entity) Column   { return Column{From: FromOwned, Op: OpNot, Component: c} }
func NotShared(c Entity) Column  { return Column{From: FromShared, Op: OpNot, Component: c} }
func NotContainer(c Entity) Column {
	return Column{From: FromContainer, Op: OpNot, Component: c}
}
func NotEntity(source, c Entity) Column {
	return Column{From: FromEntity, Op: OpNot, Component: c, Source: source}
}
func OrSelf(alts Type) Column      { return Column{From: FromSelf, Op: OpOr, OrType: alts} }
func OrContainer(alts Type) Column { return Column{From: FromContainer, Op: OpOr, OrType: alts} }
func EmptyTerm() Column            { return Column{From: FromEmpty, Op: OpAnd} }

// Reference is a plan entry naming an external entity from which a
// column's data must be fetched. cachedPtr is a borrowed pointer into the
// owning table's column, captured alongside the table's version counter so
// staleness after a column reallocation can be detected (see the "version
// counter" design note — this replaces the original's should_resolve
// back-channel).
type Reference struct {
	Entity     Entity
	Component  Entity
	ownerTable *Table
	cachedPtr  unsafe.Pointer
	capturedAt uint64
}

// Ptr returns the reference's cached pointer, re-resolving it first if the
// owning table's columns have been reallocated since it was captured.
func (r *Reference) Ptr(w *World) unsafe.Pointer {
	if r.ownerTable != nil && r.ownerTable.version != r.capturedAt {
		r.cachedPtr = w.GetPtr(r.Entity, r.Component)
		if t, _, ok := w.GetRecord(r.Entity); ok {
			r.ownerTable = t
			r.capturedAt = t.version
		}
	}
	return r.cachedPtr
}

// ColumnKind tags how a matched table resolves one signature column. This
// is the tagged-variant replacement for the original design's tri-state
// integer (columns[c] > 0 / == 0 / < 0) — see the design notes.
type ColumnKind int

const (
	// ColumnTag: tag, Empty handle-only term, or a missing Optional. No
	// storage to read.
	ColumnTag ColumnKind = iota
	// ColumnDirect: component stored directly in this table.
	ColumnDirect
	// ColumnRef: resolved through References[Offset].
	ColumnRef
)

// ColumnPlan is the per-column resolution for one matched table.
type ColumnPlan struct {
	Kind   ColumnKind
	Offset int // table column index (Direct) or References index (Ref)
}

// MatchedTable is a query's per-column access plan for one table that
// satisfies its signature.
type MatchedTable struct {
	Table      *Table
	Columns    []ColumnPlan
	Components []Entity
	References []Reference
}

// Query holds a compiled signature: the original columns, the
// precomputed summary accumulators used for fast table rejection, and
// the growing list of tables that match.
type Query struct {
	ID        uuid.UUID
	Signature Signature
	System    Entity

	andFromSelf      Type
	andFromOwned     Type
	andFromShared    Type
	andFromSystem    Type
	notFromSelf      Type
	notFromOwned     Type
	notFromShared    Type
	notFromComponent Type

	// cascadeBy is the 1-based column index of the last Cascade term, or
	// 0 if there is none. Multiple Cascade terms are ambiguous per
	// spec.md §9; "last wins" is the resolution this module implements.
	cascadeBy int

	hasRefs               bool
	includeDisabledPrefab bool

	Matched    []*MatchedTable
	matchedIdx map[*Table]int
}

// IncludeDisabledAndPrefab opts a query out of the default rejection of
// tables carrying the reserved Disabled/Prefab markers (match.go step 1).
func (q *Query) IncludeDisabledAndPrefab() { q.includeDisabledPrefab = true }

// HasRefs reports whether any matched table required at least one
// reference.
func (q *Query) HasRefs() bool { return q.hasRefs }

// CascadeColumn returns the 1-based column index of the query's Cascade
// term, or 0 if it has none.
func (q *Query) CascadeColumn() int { return q.cascadeBy }

// postprocess reduces sig into the per-kind summary accumulators used by
// matchTable, and registers watches for FromEntity terms. It runs exactly
// once, at query creation.
func postprocess(q *Query, w *World) {
	q.andFromSelf = NewType()
	q.andFromOwned = NewType()
	q.andFromShared = NewType()
	q.andFromSystem = NewType()
	q.notFromSelf = NewType()
	q.notFromOwned = NewType()
	q.notFromShared = NewType()
	q.notFromComponent = NewType()
	q.cascadeBy = 0

	for i, col := range q.Signature.Columns {
		switch col.Op {
		case OpAnd:
			// Optional terms never reject a table (spec.md §4.3: only
			// "And" terms feed the summary bulks match_table rejects
			// on) — they're resolved per-table in addTable instead.
			switch col.From {
			case FromSelf:
				q.andFromSelf = q.andFromSelf.Add(col.Component)
			case FromOwned:
				q.andFromOwned = q.andFromOwned.Add(col.Component)
			case FromShared:
				q.andFromShared = q.andFromShared.Add(col.Component)
			case FromSystem:
				q.andFromSystem = q.andFromSystem.Add(col.Component)
			}
		case OpNot:
			switch col.From {
			case FromSelf:
				q.notFromSelf = q.notFromSelf.Add(col.Component)
			case FromOwned:
				q.notFromOwned = q.notFromOwned.Add(col.Component)
			case FromShared:
				q.notFromShared = q.notFromShared.Add(col.Component)
			case FromContainer:
				q.notFromComponent = q.notFromComponent.Add(col.Component)
			case FromEntity:
				// Checked inline during matching; not summarized.
			default:
				panicNotTermSource(col.From)
			}
		}

		if col.From == FromEntity && col.Source != InvalidEntity {
			w.SetWatch(col.Source)
		}
		if col.From == FromCascade {
			q.cascadeBy = i + 1
		}
	}
}
