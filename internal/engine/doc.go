// Package engine is the column-store engine's core: the operator
// descriptor a planner hands it (spec.md §6), and the query kernels that
// execute one — insert, fetch, predicate scan (with or without a usable
// index), aggregates, vector arithmetic, and tuple materialization
// (spec.md §4.5-§4.8).
//
// Every kernel is a plain function over *catalog.Table / *value.Column and
// writes its result either back into persistent column state (INSERT) or
// into the variable pool under a caller-supplied name (everything else),
// per spec.md §3's ownership rule: intermediate result vectors live in the
// variable pool, never in the resource pool.
package engine
