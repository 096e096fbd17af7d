// Package catalog implements the engine's Table and Database containers —
// the column collection with an optional cluster column, and the
// fixed-capacity, doubling-growth collections that own them — together with
// the clustering reorder protocol (spec.md §4.4).
//
// The containment shape (Database owns Tables, Table owns Columns) is the
// one part of this engine's data model that survives from
// _examples/Pieczasz-smf/internal/core/schema.go; everything about what a
// Column actually stores (tagged 64-bit values, indexes, clustering) is
// specific to this system and lives in internal/value and internal/index.
package catalog
