// Package pool implements the engine's two hash-backed name registries
// (spec.md §3, §9): the resource pool, a process-wide string→handle
// registry of databases, and the variable pool, a per-session registry of
// transient result vectors produced by query kernels. Tables and columns
// are not registered in the resource pool; they are looked up by walking
// their database in internal/catalog.
//
// The source this engine is modeled on (src/hash_map.c, src/var_store.c)
// hand-rolls a chained-bucket hash table because C has no map literal; the
// idiomatic Go equivalent — the one the teacher itself reaches for whenever
// it needs a name→value registry — is a built-in map guarded by a mutex,
// which is what both pools use here.
package pool
