package value

// InitialCapacity is the capacity a freshly created Column starts with.
// coldbd overrides it at startup from the server config's
// index.column_initial_capacity.
var InitialCapacity = 1024

// Column is a named, growable vector of Values. A Column with an empty Name
// is a transient result vector: it was produced by a query kernel and never
// registered in the resource pool.
type Column struct {
	Name string
	Type Type

	data []Value

	// idx holds an opaque handle to this column's index, if any. It is typed
	// any rather than a concrete index type to avoid internal/value importing
	// internal/index, which itself needs to refer to Column and Value while
	// building indexes. Callers that need the concrete type (internal/index,
	// internal/engine, internal/persist) type-assert it themselves.
	idx any
}

// New creates an empty, named column of the given type with capacity
// InitialCapacity.
func New(name string, typ Type) *Column {
	return &Column{
		Name: name,
		Type: typ,
		data: make([]Value, 0, InitialCapacity),
	}
}

// NewTransient creates an unnamed result column, as query kernels do.
func NewTransient(typ Type) *Column {
	return New("", typ)
}

// FromValues wraps an existing slice as a transient column, taking ownership
// of the slice. Used by kernels that build a result in one pass.
func FromValues(typ Type, data []Value) *Column {
	return &Column{Type: typ, data: data}
}

// NewWithData wraps an existing slice as a named, persistent column, taking
// ownership of the slice. Used when loading a column straight from its data
// file, where the values are already materialized in one read.
func NewWithData(name string, typ Type, data []Value) *Column {
	return &Column{Name: name, Type: typ, data: data}
}

// Count is the column's logical length.
func (c *Column) Count() int { return len(c.data) }

// Capacity is the column's allocated length.
func (c *Column) Capacity() int { return cap(c.data) }

// At returns the value at the given position.
func (c *Column) At(pos int) Value { return c.data[pos] }

// Set overwrites the value at the given position.
func (c *Column) Set(pos int, v Value) { c.data[pos] = v }

// Data returns the column's backing slice. Callers must not retain it across
// a mutation of the column (Insert/InsertAt may reallocate).
func (c *Column) Data() []Value { return c.data }

// Index returns the column's index handle, or nil if the column is not
// indexed.
func (c *Column) Index() any { return c.idx }

// SetIndex attaches (or clears, with nil) an index handle to the column.
func (c *Column) SetIndex(idx any) { c.idx = idx }

// HasIndex reports whether the column carries an index.
func (c *Column) HasIndex() bool { return c.idx != nil }

// grow doubles capacity plus one, matching the engine's on-disk and
// maintenance code, which assumes this exact growth policy.
func grow(data []Value, minCap int) []Value {
	newCap := 2*cap(data) + 1
	if newCap < minCap {
		newCap = minCap
	}
	if newCap < InitialCapacity {
		newCap = InitialCapacity
	}
	grown := make([]Value, len(data), newCap)
	copy(grown, data)
	return grown
}

// Insert appends v at the end of the column.
func (c *Column) Insert(v Value) {
	c.InsertAt(len(c.data), v)
}

// InsertAt inserts v at pos, shifting the suffix right by one. pos must be
// in [0, Count()].
func (c *Column) InsertAt(pos int, v Value) {
	if len(c.data) == cap(c.data) {
		c.data = grow(c.data, len(c.data)+1)
	}
	c.data = c.data[:len(c.data)+1]
	copy(c.data[pos+1:], c.data[pos:len(c.data)-1])
	c.data[pos] = v
}

// ReplaceData swaps in a new backing slice, taking ownership of it. Used by
// the clustering reorder protocol, which rebuilds every column's data in
// the cluster column's sort order.
func (c *Column) ReplaceData(data []Value) { c.data = data }

// Clone returns a deep copy of the column, including its name and type but
// not its index (an index belongs to exactly one column). Used as a
// defensive snapshot before a destructive in-place reorder.
func (c *Column) Clone() *Column {
	data := make([]Value, len(c.data))
	copy(data, c.data)
	return &Column{Name: c.Name, Type: c.Type, data: data}
}

// Fetch returns a new transient column whose i-th entry is c[positions[i]].
// c is not mutated.
func (c *Column) Fetch(positions []int) *Column {
	out := make([]Value, len(positions))
	for i, p := range positions {
		out[i] = c.data[p]
	}
	return FromValues(c.Type, out)
}
