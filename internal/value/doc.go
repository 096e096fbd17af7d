// Package value implements the engine's fixed-width tagged datum and the
// growable columnar vector built on top of it.
//
// A Value is a single 64-bit word whose interpretation — 32-bit signed
// integer, 64-bit signed integer, or double — is carried by the owning
// Column's Type, never by the Value itself. A Column is a named, typed,
// growable slice of Values: capacity grows by doubling plus one (starting at
// 1024), and insertion at an arbitrary position shifts the suffix right by
// one, exactly as the engine's on-disk and index-maintenance code expects.
package value
