// Package persist implements the engine's on-disk lifecycle (spec.md §4.9):
// a per-database metadata text file plus one binary `<column>.data` file per
// column, and the load/sync round-trip between that layout and a
// catalog.Database. It also owns the system-wide catalog of which databases
// exist, a small TOML document read at startup before any per-database
// metadata file is touched.
//
// Endianness is native-little-endian throughout; this engine makes no claim
// of cross-host portability, matching the source's raw struct dumps.
package persist
