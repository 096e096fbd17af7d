package catalog

import "fmt"

// ErrTableExists is returned by CreateTable when a table of that name
// already exists in the database.
type ErrTableExists struct {
	Database, Table string
}

func (e *ErrTableExists) Error() string {
	return fmt.Sprintf("catalog: table %q already exists in database %q", e.Table, e.Database)
}

// Database is a named, owned collection of tables, growing identically to
// Table (spec.md §3).
type Database struct {
	Name string

	tables []*Table
}

// NewDatabase creates an empty, named database.
func NewDatabase(name string) *Database {
	return &Database{Name: name, tables: make([]*Table, 0, 1)}
}

// CreateTable adds a new, empty table with room for numColumns columns.
func (d *Database) CreateTable(name string, numColumns int) (*Table, error) {
	if _, ok := d.Table(name); ok {
		return nil, &ErrTableExists{Database: d.Name, Table: name}
	}
	tbl := NewTable(name, numColumns)
	d.tables = appendGrow(d.tables, tbl)
	return tbl, nil
}

// Tables returns the database's tables in creation order.
func (d *Database) Tables() []*Table { return d.tables }

// Table looks up a table by name.
func (d *Database) Table(name string) (*Table, bool) {
	for _, t := range d.tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// DropTable removes a table from the database. Resources owned by the
// table (its columns and their indexes) are discarded along with it
// (SPEC_FULL.md §C.3).
func (d *Database) DropTable(name string) bool {
	for i, t := range d.tables {
		if t.Name == name {
			d.tables = append(d.tables[:i], d.tables[i+1:]...)
			return true
		}
	}
	return false
}
