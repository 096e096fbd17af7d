package catalog

import (
	"coldb/internal/index"
	"coldb/internal/value"
)

// Cluster applies the table's cluster column, if set and non-empty,
// physically sorting every column by it (spec.md §4.4). It is a no-op when
// no cluster column is set, matching "clustering is invoked explicitly";
// callers (typically the end of a bulk load) decide when to call it.
func Cluster(t *Table) error {
	cc := t.ClusterColumn()
	if cc == nil || cc.Count() == 0 {
		return nil
	}

	sortedVals, perm := index.SortPermutation(cc.Data())

	for _, col := range t.Columns() {
		if col == cc {
			col.ReplaceData(sortedVals)
			continue
		}
		reordered := col.Fetch(perm)
		col.ReplaceData(reordered.Data())
		if col.HasIndex() {
			rebuildIndex(col)
		}
	}
	return nil
}

// rebuildIndex discards and rebuilds a non-cluster column's secondary
// index against its freshly reordered data (spec.md §4.4 step 3).
func rebuildIndex(col *value.Column) {
	ci, ok := col.Index().(*index.ColumnIndex)
	if !ok {
		return
	}
	switch ci.Kind() {
	case index.KindSorted:
		ci.ReplaceSorted(index.BuildSorted(col))
	case index.KindBTree:
		sortedVals, positions := index.SortPermutation(col.Data())
		ci.ReplaceBTree(index.BuildBPlusTree(sortedVals, positions), false)
	}
}

// ConvertIndex rebuilds col's index under a different kind, e.g. sorted to
// B+-tree or back (the source's recluster_col/recluster, dropped from the
// distilled spec and added back per SPEC_FULL.md §C.1). It snapshots col
// defensively before touching anything, since an index belongs to exactly
// one column and a bad kind request should leave the original untouched.
func ConvertIndex(col *value.Column, kind index.Kind) error {
	snapshot := col.Clone()
	ci, hasIndex := col.Index().(*index.ColumnIndex)

	clustered := hasIndex && ci.Clustered()

	switch kind {
	case index.KindSorted:
		if clustered {
			col.SetIndex(index.NewSortedColumnIndex(index.NewClustered(col)))
			return nil
		}
		col.SetIndex(index.NewSortedColumnIndex(index.BuildSorted(snapshot)))
	case index.KindBTree:
		sortedVals, positions := index.SortPermutation(snapshot.Data())
		col.SetIndex(index.NewBTreeColumnIndex(index.BuildBPlusTree(sortedVals, positions), clustered))
	case index.KindUnsorted:
		col.SetIndex(nil)
	}
	return nil
}
