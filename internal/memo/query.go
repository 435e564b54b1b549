package memo

// entry is one cached (value, generation-it-was-computed-at) pair.
type entry[V any] struct {
	value    V
	computed Revision
}

// Query memoizes a derived computation keyed by K (a cite id, cluster id, or
// similar), re-running compute only when the database's revision has moved
// past the revision the cached value was computed at (§2, §5).
type Query[K comparable, V any] struct {
	db      *Database
	compute func(K) V
	cache   map[K]entry[V]
}

// NewQuery returns a Query backed by db, computing misses with compute.
func NewQuery[K comparable, V any](db *Database, compute func(K) V) *Query[K, V] {
	return &Query[K, V]{db: db, compute: compute, cache: make(map[K]entry[V])}
}

// Get returns the memoized value for k, computing and caching it if absent
// or stale.
func (q *Query[K, V]) Get(k K) V {
	if e, ok := q.cache[k]; ok && e.computed == q.db.rev {
		return e.value
	}
	v := q.compute(k)
	q.cache[k] = entry[V]{value: v, computed: q.db.rev}
	return v
}

// Invalidate drops the cached value for k, without bumping the database's
// global revision — used when a caller knows only k's own dependency
// changed (e.g. a single cluster's cite list was edited in place) and wants
// to avoid invalidating every other Query sharing this database.
func (q *Query[K, V]) Invalidate(k K) {
	delete(q.cache, k)
}

// InvalidateAll drops every cached value for this query.
func (q *Query[K, V]) InvalidateAll() {
	q.cache = make(map[K]entry[V])
}
