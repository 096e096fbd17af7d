package persist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"coldb/internal/index"
	"coldb/internal/value"
)

// columnDataFile returns the path of col's binary data file within dir
// (spec.md §4.9: "<col_name>.data").
func columnDataFile(dir, name string) string {
	return filepath.Join(dir, name+".data")
}

// writeColumn writes col's raw data, followed by its index payload if it
// has one: a secondary sorted index's (sorted_data, positions) pair, or a
// B+-tree's pre-order node dump. A clustered sorted index writes nothing
// extra, since its sorted_data degenerately is the base column itself.
func writeColumn(dir string, col *value.Column) error {
	f, err := os.Create(columnDataFile(dir, col.Name))
	if err != nil {
		return fmt.Errorf("persist: create data file for column %q: %w", col.Name, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeValues(w, col.Data()); err != nil {
		return fmt.Errorf("persist: write data for column %q: %w", col.Name, err)
	}

	ci, hasIndex := col.Index().(*index.ColumnIndex)
	if hasIndex {
		switch ci.Kind() {
		case index.KindSorted:
			if !ci.Clustered() {
				sorted := ci.Sorted()
				if err := writeValues(w, sorted.SortedData()); err != nil {
					return fmt.Errorf("persist: write sorted data for column %q: %w", col.Name, err)
				}
				positions := make([]value.Value, sorted.Len())
				for i := range positions {
					positions[i] = value.LongValue(int64(sorted.PositionAt(i)))
				}
				if err := writeValues(w, positions); err != nil {
					return fmt.Errorf("persist: write sorted positions for column %q: %w", col.Name, err)
				}
			}
		case index.KindBTree:
			if _, err := ci.BTree().WriteTo(w); err != nil {
				return fmt.Errorf("persist: write btree for column %q: %w", col.Name, err)
			}
		}
	}

	return w.Flush()
}

// readColumn loads a column's data file and, per the declared index kind,
// its trailing index payload, reconstructing the column exactly as
// writeColumn left it (spec.md §4.9 load order).
func readColumn(dir, name string, typ value.Type, count int, kind index.Kind, clustered bool) (*value.Column, error) {
	f, err := os.Open(columnDataFile(dir, name))
	if err != nil {
		return nil, fmt.Errorf("persist: open data file for column %q: %w", name, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	data, err := readValues(r, count)
	if err != nil {
		return nil, fmt.Errorf("persist: read data for column %q: %w", name, err)
	}
	col := value.NewWithData(name, typ, data)

	switch kind {
	case index.KindUnsorted:
		// no index payload to read
	case index.KindSorted:
		if clustered {
			col.SetIndex(index.NewSortedColumnIndex(index.NewClustered(col)))
			break
		}
		sortedData, err := readValues(r, count)
		if err != nil {
			return nil, fmt.Errorf("persist: read sorted data for column %q: %w", name, err)
		}
		posValues, err := readValues(r, count)
		if err != nil {
			return nil, fmt.Errorf("persist: read sorted positions for column %q: %w", name, err)
		}
		positions := make([]int, count)
		for i, v := range posValues {
			positions[i] = int(v.Long())
		}
		col.SetIndex(index.NewSortedColumnIndex(index.NewSortedIndexFromParts(col, sortedData, positions)))
	case index.KindBTree:
		tree, err := index.ReadBPlusTreeFrom(r)
		if err != nil {
			return nil, fmt.Errorf("persist: read btree for column %q: %w", name, err)
		}
		col.SetIndex(index.NewBTreeColumnIndex(tree, clustered))
	default:
		return nil, fmt.Errorf("persist: unknown index kind %d for column %q", kind, name)
	}

	return col, nil
}

func writeValues(w io.Writer, vs []value.Value) error {
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, int64(v)); err != nil {
			return err
		}
	}
	return nil
}

func readValues(r io.Reader, n int) ([]value.Value, error) {
	out := make([]value.Value, n)
	for i := range out {
		var raw int64
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, err
		}
		out[i] = value.FromRaw(raw)
	}
	return out, nil
}
