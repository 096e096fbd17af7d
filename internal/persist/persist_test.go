package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldb/internal/catalog"
	"coldb/internal/index"
	"coldb/internal/value"
)

func buildFixtureDB(t *testing.T) *catalog.Database {
	t.Helper()
	db := catalog.NewDatabase("d")
	tbl, err := db.CreateTable("t", 2)
	require.NoError(t, err)

	a, err := tbl.CreateColumn("a", value.TypeInt)
	require.NoError(t, err)
	b, err := tbl.CreateColumn("b", value.TypeLong)
	require.NoError(t, err)

	for _, row := range [][2]int64{{3, 30}, {1, 10}, {2, 20}} {
		a.Insert(value.IntValue(int32(row[0])))
		b.Insert(value.LongValue(row[1]))
	}
	require.NoError(t, tbl.SetClusterColumn(a))
	require.NoError(t, catalog.Cluster(tbl))

	sorted := index.BuildSorted(b)
	b.SetIndex(index.NewSortedColumnIndex(sorted))
	a.SetIndex(index.NewSortedColumnIndex(index.NewClustered(a)))

	return db
}

func TestSyncThenLoadRoundTrip(t *testing.T) {
	db := buildFixtureDB(t)
	dir := t.TempDir()

	require.NoError(t, SyncDatabase(dir, db))
	loaded, err := LoadDatabase(dir, "d")
	require.NoError(t, err)

	assert.Equal(t, "d", loaded.Name)
	tbl, ok := loaded.Table("t")
	require.True(t, ok)

	a, ok := tbl.Column("a")
	require.True(t, ok)
	b, ok := tbl.Column("b")
	require.True(t, ok)

	assert.Equal(t, []int32{1, 2, 3}, intsOf(a))
	assert.Equal(t, []int64{10, 20, 30}, longsOf(b))

	aIdx, ok := a.Index().(*index.ColumnIndex)
	require.True(t, ok)
	assert.True(t, aIdx.Clustered())
	assert.Equal(t, index.KindSorted, aIdx.Kind())

	bIdx, ok := b.Index().(*index.ColumnIndex)
	require.True(t, ok)
	assert.False(t, bIdx.Clustered())
	assert.Equal(t, index.KindSorted, bIdx.Kind())
	for i := 0; i < bIdx.Sorted().Len(); i++ {
		assert.Equal(t, b.At(bIdx.Sorted().PositionAt(i)), bIdx.Sorted().SortedData()[i])
	}
}

func TestSyncThenLoadWithBTreeIndex(t *testing.T) {
	db := catalog.NewDatabase("d2")
	tbl, err := db.CreateTable("t", 1)
	require.NoError(t, err)
	c, err := tbl.CreateColumn("c", value.TypeLong)
	require.NoError(t, err)
	for i := 0; i < 5000; i++ {
		c.Insert(value.LongValue(int64(4999 - i)))
	}
	sortedVals, positions := index.SortPermutation(c.Data())
	c.SetIndex(index.NewBTreeColumnIndex(index.BuildBPlusTree(sortedVals, positions), false))

	dir := t.TempDir()
	require.NoError(t, SyncDatabase(dir, db))
	loaded, err := LoadDatabase(dir, "d2")
	require.NoError(t, err)

	tbl2, ok := loaded.Table("t")
	require.True(t, ok)
	c2, ok := tbl2.Column("c")
	require.True(t, ok)

	ci, ok := c2.Index().(*index.ColumnIndex)
	require.True(t, ok)
	assert.Equal(t, index.KindBTree, ci.Kind())

	out := ci.BTree().RangeScan(value.LongValue(100), value.LongValue(200))
	assert.Len(t, out, 100)
}

func TestSystemCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cat := &SystemCatalog{Databases: []DatabaseEntry{{Name: "d", TableCount: 1}}}
	require.NoError(t, WriteSystemCatalog(dir, cat))

	loaded, err := LoadSystemCatalog(dir)
	require.NoError(t, err)
	assert.Equal(t, cat.Databases, loaded.Databases)
}

func TestLoadSystemCatalogMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	cat, err := LoadSystemCatalog(dir)
	require.NoError(t, err)
	assert.Empty(t, cat.Databases)
}

func intsOf(c *value.Column) []int32 {
	out := make([]int32, c.Count())
	for i := range out {
		out[i] = c.At(i).Int()
	}
	return out
}

func longsOf(c *value.Column) []int64 {
	out := make([]int64, c.Count())
	for i := range out {
		out[i] = c.At(i).Long()
	}
	return out
}
