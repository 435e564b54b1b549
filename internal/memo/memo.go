// Package memo is the demand-driven computation substrate (§2 "Interner /
// memoization substrate", §5): inputs are settable slots; derived values are
// computed on demand and cached until the database's revision advances past
// the revision they were computed at. There is no per-input dependency
// tracking — every Input.Set bumps one global revision counter, so
// invalidation is coarse (a whole generation, not a dependency subgraph).
// That is deliberately simpler than true incremental-computation systems:
// the processor is single-threaded within one mutation-or-query cycle
// (§5), so a coarse generation counter is sufficient to satisfy incremental
// correctness (§8 invariant 7) without needing fine-grained read-set
// tracking this package has no compiler-checked way to verify.
package memo

// Revision is a monotonically increasing generation counter (§5).
type Revision int64

// Database owns the single global revision counter every Input bumps and
// every Query checks against.
type Database struct {
	rev Revision
}

// NewDatabase returns a fresh database at revision 0.
func NewDatabase() *Database {
	return &Database{}
}

// Revision returns the database's current generation.
func (db *Database) Revision() Revision { return db.rev }

func (db *Database) bump() { db.rev++ }

// Input is a settable input slot (style, references, cluster order, §6).
// Writing through Set invalidates every Query in the database.
type Input[T any] struct {
	db    *Database
	value T
	set   Revision
}

// NewInput returns an Input holding initial, stamped at db's current revision.
func NewInput[T any](db *Database, initial T) *Input[T] {
	return &Input[T]{db: db, value: initial, set: db.rev}
}

// Get returns the input's current value.
func (in *Input[T]) Get() T { return in.value }

// Set replaces the input's value and bumps the database's revision,
// invalidating every Query reachable from it.
func (in *Input[T]) Set(v T) {
	in.value = v
	in.db.bump()
	in.set = in.db.rev
}

// Revision returns the generation this input was last written at.
func (in *Input[T]) Revision() Revision { return in.set }
