package catalog

import (
	"fmt"

	"coldb/internal/value"
)

// ErrColumnExists is returned by CreateColumn when a column of that name
// already exists in the table.
type ErrColumnExists struct {
	Table, Column string
}

func (e *ErrColumnExists) Error() string {
	return fmt.Sprintf("catalog: column %q already exists in table %q", e.Column, e.Table)
}

// ErrNotOwned is returned when a column passed as a cluster-column
// candidate does not belong to the table.
type ErrNotOwned struct {
	Table, Column string
}

func (e *ErrNotOwned) Error() string {
	return fmt.Sprintf("catalog: column %q is not owned by table %q", e.Column, e.Table)
}

// Table is a named, owned collection of columns, fixed-capacity on
// creation and growing by doubling plus one, with an optional cluster
// column that all sibling columns are kept ordered by (spec.md §3).
type Table struct {
	Name string

	columns       []*value.Column
	clusterColumn *value.Column
}

// NewTable creates an empty table with room for numColumns columns.
func NewTable(name string, numColumns int) *Table {
	capHint := numColumns
	if capHint < 1 {
		capHint = 1
	}
	return &Table{Name: name, columns: make([]*value.Column, 0, capHint)}
}

// CreateColumn adds a new, empty column of the given name and type.
func (t *Table) CreateColumn(name string, typ value.Type) (*value.Column, error) {
	if _, ok := t.Column(name); ok {
		return nil, &ErrColumnExists{Table: t.Name, Column: name}
	}
	col := value.New(name, typ)
	t.columns = appendGrow(t.columns, col)
	return col, nil
}

// AddLoadedColumn installs an already-materialized column (data and index
// both populated, typically by internal/persist reading it off disk)
// directly into the table, rather than allocating an empty one the way
// CreateColumn does.
func (t *Table) AddLoadedColumn(col *value.Column) error {
	if _, ok := t.Column(col.Name); ok {
		return &ErrColumnExists{Table: t.Name, Column: col.Name}
	}
	t.columns = appendGrow(t.columns, col)
	return nil
}

// Columns returns the table's columns in creation order.
func (t *Table) Columns() []*value.Column { return t.columns }

// Column looks up a column by name.
func (t *Table) Column(name string) (*value.Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ClusterColumn returns the table's cluster column, or nil if none is set.
func (t *Table) ClusterColumn() *value.Column { return t.clusterColumn }

// SetClusterColumn designates col, which must already belong to the table,
// as the table's cluster column. It does not itself reorder any data; call
// Cluster (clustering.go) to do that.
func (t *Table) SetClusterColumn(col *value.Column) error {
	for _, c := range t.columns {
		if c == col {
			t.clusterColumn = col
			return nil
		}
	}
	return &ErrNotOwned{Table: t.Name, Column: col.Name}
}

// RowCount is the table's row count: the Count of any column, since the
// table invariant requires they all match.
func (t *Table) RowCount() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Count()
}

// appendGrow appends v to s, growing capacity by doubling plus one when
// full, matching the growth policy used throughout this engine's containers
// (spec.md §3-§4.1).
func appendGrow[T any](s []T, v T) []T {
	if len(s) == cap(s) {
		newCap := 2*cap(s) + 1
		grown := make([]T, len(s), newCap)
		copy(grown, s)
		s = grown
	}
	return append(s, v)
}
