package persist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"coldb/internal/catalog"
	"coldb/internal/index"
	"coldb/internal/value"
)

// columnMeta is one column's entry in a table's metadata line.
//
// spec.md §4.9 names three fields per column (name, count, index_kind); none
// of those lets a loader recover a column's Value interpretation (INT vs
// LONGINT vs DOUBLE), which spec.md §3 requires every column to carry. A
// fourth token, the type name, is appended after index_kind to resolve that
// silence without disturbing the three fields spec.md does name (see
// DESIGN.md Open Question decisions).
type columnMeta struct {
	Name      string
	Count     int
	IndexKind string
	Type      string
}

type tableMeta struct {
	Name          string
	ColCount      int
	ClusterColumn string // "null" if none
	Columns       []columnMeta
}

type databaseMeta struct {
	Name   string
	Tables []tableMeta
}

// writeMetadata serializes db's schema as spec.md §4.9 describes: a first
// line of database name and table count, then one line per table (table
// name, column count, cluster column name or "null", followed by a
// name/count/index_kind/type quadruple per column).
func writeMetadata(w io.Writer, db *catalog.Database) error {
	tables := db.Tables()
	if _, err := fmt.Fprintf(w, "%s %d\n", db.Name, len(tables)); err != nil {
		return err
	}

	for _, tbl := range tables {
		cols := tbl.Columns()
		cluster := "null"
		if cc := tbl.ClusterColumn(); cc != nil {
			cluster = cc.Name
		}
		if _, err := fmt.Fprintf(w, "%s %d %s", tbl.Name, len(cols), cluster); err != nil {
			return err
		}
		for _, col := range cols {
			kind := index.KindUnsorted
			if ci, ok := col.Index().(*index.ColumnIndex); ok {
				kind = ci.Kind()
			}
			if _, err := fmt.Fprintf(w, " %s %d %s %s", col.Name, col.Count(), kind, col.Type); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// readMetadata parses the format writeMetadata produces. It tokenizes on
// whitespace exactly as the source's fscanf(" %s ", ...) calls do: newlines
// carry no structural meaning beyond separating tables for a human reader.
func readMetadata(r io.Reader) (*databaseMeta, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}
	nextInt := func() (int, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		return strconv.Atoi(tok)
	}

	meta := &databaseMeta{}
	var err error
	if meta.Name, err = next(); err != nil {
		return nil, fmt.Errorf("persist: read database name: %w", err)
	}
	tableCount, err := nextInt()
	if err != nil {
		return nil, fmt.Errorf("persist: read table count: %w", err)
	}

	meta.Tables = make([]tableMeta, tableCount)
	for i := range meta.Tables {
		tm := &meta.Tables[i]
		if tm.Name, err = next(); err != nil {
			return nil, fmt.Errorf("persist: read table name: %w", err)
		}
		if tm.ColCount, err = nextInt(); err != nil {
			return nil, fmt.Errorf("persist: read column count for table %q: %w", tm.Name, err)
		}
		if tm.ClusterColumn, err = next(); err != nil {
			return nil, fmt.Errorf("persist: read cluster column for table %q: %w", tm.Name, err)
		}
		tm.Columns = make([]columnMeta, tm.ColCount)
		for j := range tm.Columns {
			cm := &tm.Columns[j]
			if cm.Name, err = next(); err != nil {
				return nil, fmt.Errorf("persist: read column name in table %q: %w", tm.Name, err)
			}
			if cm.Count, err = nextInt(); err != nil {
				return nil, fmt.Errorf("persist: read column count for %q.%q: %w", tm.Name, cm.Name, err)
			}
			if cm.IndexKind, err = next(); err != nil {
				return nil, fmt.Errorf("persist: read index kind for %q.%q: %w", tm.Name, cm.Name, err)
			}
			if cm.Type, err = next(); err != nil {
				return nil, fmt.Errorf("persist: read type for %q.%q: %w", tm.Name, cm.Name, err)
			}
		}
	}
	return meta, nil
}

func parseValueType(s string) (value.Type, error) {
	switch s {
	case "int":
		return value.TypeInt, nil
	case "long":
		return value.TypeLong, nil
	case "double":
		return value.TypeDouble, nil
	default:
		return 0, fmt.Errorf("persist: unknown column type %q", s)
	}
}
