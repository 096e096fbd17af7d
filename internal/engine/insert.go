package engine

import (
	"coldb/internal/catalog"
	"coldb/internal/index"
	"coldb/internal/value"
)

// InsertRow appends one row to every column of tbl, in column order, then
// maintains each column's index if it has one (spec.md §4.1). It is not
// transactional: if index maintenance fails partway through (only possible
// for a full B+-tree leaf, spec.md §4.3), the row's values are already
// committed to every column and only the index is left out of sync; the
// caller gets back the first such error.
func InsertRow(tbl *catalog.Table, values []value.Value) error {
	cols := tbl.Columns()
	if len(values) != len(cols) {
		return NewError(CodeInvalidOperand, "engine: insert expects %d values for table %q, got %d", len(cols), tbl.Name, len(values))
	}

	pos := tbl.RowCount()
	var first error
	for i, col := range cols {
		col.Insert(values[i])
		if err := maintainIndex(col, pos, values[i]); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func maintainIndex(col *value.Column, pos int, v value.Value) error {
	ci, ok := col.Index().(*index.ColumnIndex)
	if !ok {
		return nil
	}
	switch ci.Kind() {
	case index.KindSorted:
		ci.Sorted().InsertMaintain(pos, v)
		return nil
	case index.KindBTree:
		if err := ci.BTree().Insert(v, pos); err != nil {
			return NewError(CodeUnimplemented, "engine: column %q: %v", col.Name, err)
		}
		return nil
	}
	return nil
}

// Fetch gathers col's values at the given positions into a new transient
// column (spec.md §4.7), wrapping value.Column.Fetch so callers working
// purely in terms of engine kernels never need to reach into internal/value.
func Fetch(col *value.Column, positions []int) *value.Column {
	return col.Fetch(positions)
}
