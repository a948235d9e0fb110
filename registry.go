package ecsquery

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegistryOptions configures a Registry. See config.go for loading one
// from TOML.
type RegistryOptions struct {
	// Logger is used for query lifecycle and plan-building diagnostics.
	// A nil Logger is replaced with zap.NewNop().
	Logger *zap.Logger
}

// Registry owns the set of live queries compiled against a World and
// keeps each one's Matched list current as new tables are created. It is
// the thing a host process constructs once at startup and holds for the
// process lifetime.
type Registry struct {
	world   *World
	log     *zap.Logger
	queries map[uuid.UUID]*Query
}

// NewRegistry creates a Registry bound to w.
func NewRegistry(w *World, opts RegistryOptions) *Registry {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		world:   w,
		log:     log,
		queries: make(map[uuid.UUID]*Query, 8),
	}
	w.Subscribe(r.onNewTable)
	return r
}

// NewQuery compiles sig into a live Query: it is matched against every
// table that already exists, then kept current as new tables appear.
func (r *Registry) NewQuery(sig Signature, system Entity) *Query {
	q := &Query{
		ID:         uuid.New(),
		Signature:  sig,
		System:     system,
		matchedIdx: make(map[*Table]int, 8),
	}
	postprocess(q, r.world)
	r.queries[q.ID] = q

	log := r.log.With(zap.String("query_id", q.ID.String()))
	log.Debug("query registered", zap.Int("columns", len(sig.Columns)))

	for _, t := range r.world.Tables() {
		r.tryMatch(q, t, log)
	}
	return q
}

// FreeQuery removes q from the registry. Further table creation no
// longer updates it.
func (r *Registry) FreeQuery(q *Query) {
	delete(r.queries, q.ID)
	r.log.Debug("query freed", zap.String("query_id", q.ID.String()))
}

// onNewTable is the World.Subscribe callback: every live query is
// offered the new table exactly once.
func (r *Registry) onNewTable(t *Table) {
	for _, q := range r.queries {
		r.tryMatch(q, t, r.log.With(zap.String("query_id", q.ID.String())))
	}
}

// tryMatch runs matchTable/addTable for (q, t), guarding the idempotence
// rule from spec.md §8: a table is added to q.Matched at most once.
func (r *Registry) tryMatch(q *Query, t *Table, log *zap.Logger) {
	if _, already := q.matchedIdx[t]; already {
		return
	}
	if !matchTable(q, r.world, t) {
		return
	}
	mt := addTable(q, r.world, t)
	q.matchedIdx[t] = len(q.Matched)
	q.Matched = append(q.Matched, mt)
	log.Debug("table matched",
		zap.Int("entities", t.Len()),
		zap.Int("references", len(mt.References)))
}
