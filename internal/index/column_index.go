package index

import (
	"fmt"
)

// Kind names the index family backing a ColumnIndex, used both for the
// in-memory discriminated union and for the on-disk index_kind tag
// (spec.md §4.9).
type Kind int

const (
	KindUnsorted Kind = iota // no index
	KindSorted
	KindBTree
)

func (k Kind) String() string {
	switch k {
	case KindSorted:
		return "sorted"
	case KindBTree:
		return "btree"
	default:
		return "unsorted"
	}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "sorted":
		return KindSorted, nil
	case "btree":
		return KindBTree, nil
	case "unsorted":
		return KindUnsorted, nil
	default:
		return KindUnsorted, fmt.Errorf("index: unknown index kind %q", s)
	}
}

// ColumnIndex is the discriminated union over the engine's two index
// families, plus the clustered-vs-secondary flag. An index belongs to
// exactly one column; dropping the column destroys its index.
type ColumnIndex struct {
	kind      Kind
	clustered bool
	sorted    *SortedIndex
	btree     *BPlusTree
}

func NewSortedColumnIndex(s *SortedIndex) *ColumnIndex {
	return &ColumnIndex{kind: KindSorted, clustered: s.Clustered(), sorted: s}
}

func NewBTreeColumnIndex(t *BPlusTree, clustered bool) *ColumnIndex {
	return &ColumnIndex{kind: KindBTree, clustered: clustered, btree: t}
}

func (ci *ColumnIndex) Kind() Kind            { return ci.kind }
func (ci *ColumnIndex) Clustered() bool       { return ci.clustered }
func (ci *ColumnIndex) Sorted() *SortedIndex  { return ci.sorted }
func (ci *ColumnIndex) BTree() *BPlusTree     { return ci.btree }

// ReplaceSorted and ReplaceBTree swap in a freshly rebuilt index of the same
// kind, used after clustering reorders a secondary-indexed column (spec.md
// §4.4 step 3). catalog.ConvertIndex does not use them; it attaches a new
// ColumnIndex instead.
func (ci *ColumnIndex) ReplaceSorted(s *SortedIndex) { ci.sorted = s; ci.kind = KindSorted; ci.clustered = s.Clustered() }
func (ci *ColumnIndex) ReplaceBTree(t *BPlusTree, clustered bool) {
	ci.btree = t
	ci.kind = KindBTree
	ci.clustered = clustered
}
