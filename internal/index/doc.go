// Package index implements the engine's two secondary-index families — the
// sorted twin-vector index and the bulk-loadable B+-tree — plus the
// discriminated-union wrapper (ColumnIndex) a column attaches one of them
// through.
//
// Both index kinds map a key (a column value) to a position (a row index
// into the base column). For a clustered column the sorted index is
// degenerate: its "sorted data" is the base column itself, under the
// identity permutation, so no auxiliary positions array is kept.
package index
