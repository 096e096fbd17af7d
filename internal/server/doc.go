// Package server runs coldbd's accept loop: a single-threaded,
// one-connection-at-a-time listener over a Unix domain socket, grounded on
// original_source/src/server.c's setup_server/handle_client pair.
//
// Each connection gets its own session (internal/pool.VariablePool), per
// spec.md §5's "variable pool is logically per-session and must be cleared
// at session end" — here that is automatic, since the pool is a local to
// handleSession and is dropped when the connection closes. The resource
// pool and catalog are process-wide shared state, matching spec.md §5's
// single-threaded exclusive-access model: the accept loop never starts a
// new goroutine per connection, so no additional locking is needed beyond
// what internal/pool and internal/catalog already carry.
package server
