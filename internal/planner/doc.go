// Package planner turns one line of the engine's command language into
// either a direct catalog/resource-pool mutation (CREATE of a database,
// table, or column — administrative operations spec.md §6 never names as
// operator-descriptor kinds) or a validated *engine.Operator for Dispatch to
// execute, DROP of a table included (spec.md §1: "the command language, regex dispatch,
// and query planner... produce a validated operator descriptor; the core
// does not care how").
//
// Dispatch (regex matching against command groups, then per-group argument
// parsing) mirrors src/dsl.c/src/parser.c's two-phase design, realized with
// the standard library's regexp package rather than a hand-rolled matcher,
// since spec.md §9 itself calls this mechanism "regex dispatch".
package planner
