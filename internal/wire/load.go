package wire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"coldb/internal/catalog"
	"coldb/internal/value"
)

// LoadHeader is the first message of a LOAD stream: the fully-qualified
// ("db.table.column") names of every column the following rows fill in,
// in column order.
type LoadHeader struct {
	ColumnNames []string
}

// ParseLoadHeader splits a comma-separated header line.
func ParseLoadHeader(payload string) LoadHeader {
	names := strings.Split(payload, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return LoadHeader{ColumnNames: names}
}

// ParseLoadRow splits one CSV row into int64s, in column order, matching
// the plain-integer-valued data model spec.md §3 describes.
func ParseLoadRow(payload string) ([]int64, error) {
	fields := strings.Split(payload, ",")
	out := make([]int64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("wire: load row field %q is not an integer", f)
		}
		out[i] = n
	}
	return out, nil
}

// IngestRow appends one already-parsed row to the named columns, resolved
// from a single table since a LOAD stream fills in one table's columns at
// a time (spec.md §6: "invokes cluster_table on the inferred table" —
// singular).
func IngestRow(tbl *catalog.Table, cols []*value.Column, row []int64) error {
	if len(row) != len(cols) {
		return fmt.Errorf("wire: load row has %d fields, table %q expects %d", len(row), tbl.Name, len(cols))
	}
	for i, col := range cols {
		if col.Type == value.TypeInt {
			col.Insert(value.IntValue(int32(row[i])))
		} else {
			col.Insert(value.LongValue(row[i]))
		}
	}
	return nil
}

// ResolveLoadColumns looks up each fully-qualified ("db.table.column")
// name in header against db, returning the columns in header order plus
// the single table they all must belong to.
func ResolveLoadColumns(db *catalog.Database, header LoadHeader) (*catalog.Table, []*value.Column, error) {
	if len(header.ColumnNames) == 0 {
		return nil, nil, fmt.Errorf("wire: load header names no columns")
	}
	var tbl *catalog.Table
	cols := make([]*value.Column, len(header.ColumnNames))
	for i, fq := range header.ColumnNames {
		parts := strings.Split(fq, ".")
		if len(parts) != 3 {
			return nil, nil, fmt.Errorf("wire: load column %q must be db.table.column", fq)
		}
		t, ok := db.Table(parts[1])
		if !ok {
			return nil, nil, fmt.Errorf("wire: load: no table %q", parts[1])
		}
		if tbl == nil {
			tbl = t
		} else if tbl != t {
			return nil, nil, fmt.Errorf("wire: load header spans more than one table")
		}
		c, ok := t.Column(parts[2])
		if !ok {
			return nil, nil, fmt.Errorf("wire: load: no column %q in table %q", parts[2], parts[1])
		}
		cols[i] = c
	}
	return tbl, cols, nil
}

// StreamLoadFile drives the client side of the LOAD mini-protocol: it reads
// lines from r (a local file already opened by the caller, whose first
// line is the comma-separated column-name header and whose remaining
// lines are CSV rows) and writes one Frame per non-blank line, with
// surrounding whitespace trimmed, followed by the LoadEOF sentinel; blank
// lines are skipped.
func StreamLoadFile(w io.Writer, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := WriteFrame(w, Frame{Status: StatusOKWaitForResponse, Payload: line}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("wire: read load file: %w", err)
	}
	return WriteFrame(w, Frame{Status: StatusOKWaitForResponse, Payload: LoadEOF})
}
