package engine

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldb/internal/catalog"
	"coldb/internal/index"
	"coldb/internal/value"
)

// buildClusteredTable mirrors spec.md §8 scenario 1.
func buildClusteredTable(t *testing.T) (*catalog.Table, *value.Column, *value.Column) {
	t.Helper()
	tbl := catalog.NewTable("t", 2)
	a, err := tbl.CreateColumn("a", value.TypeInt)
	require.NoError(t, err)
	b, err := tbl.CreateColumn("b", value.TypeInt)
	require.NoError(t, err)

	rows := [][2]int32{{3, 30}, {1, 10}, {2, 20}}
	for _, r := range rows {
		require.NoError(t, InsertRow(tbl, []value.Value{value.IntValue(r[0]), value.IntValue(r[1])}))
	}
	require.NoError(t, tbl.SetClusterColumn(a))
	require.NoError(t, catalog.Cluster(tbl))
	return tbl, a, b
}

func TestScenario1ClusteringReordersRows(t *testing.T) {
	_, a, b := buildClusteredTable(t)
	assert.Equal(t, []int32{1, 2, 3}, intsOf(a))
	assert.Equal(t, []int32{10, 20, 30}, intsOf(b))
}

// TestScenario2SelectThenFetch mirrors spec.md §8 scenario 2: on the
// clustered table, select(a >= 2) must return positions {1,2}; fetch(b, p)
// must return [20,30].
func TestScenario2SelectThenFetch(t *testing.T) {
	_, a, b := buildClusteredTable(t)
	a.SetIndex(index.NewSortedColumnIndex(index.NewClustered(a)))

	cmp := Comparator{{Kind: CmpGreaterEqual, Operand: value.IntValue(2), Junction: JunctionNone}}
	positions, err := ColScan(cmp, a, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, positions)

	fetched := Fetch(b, positions)
	assert.Equal(t, []int32{20, 30}, intsOf(fetched))
}

// TestScenario3BTreeRangeScan mirrors spec.md §8 scenario 3.
func TestScenario3BTreeRangeScan(t *testing.T) {
	const n = 100000
	base := make([]value.Value, n)
	perm := rand.New(rand.NewSource(1)).Perm(n)
	for i, v := range perm {
		base[i] = value.LongValue(int64(v))
	}
	col := value.FromValues(value.TypeLong, base)

	sortedVals, positions := index.SortPermutation(col.Data())
	tree := index.BuildBPlusTree(sortedVals, positions)
	col.SetIndex(index.NewBTreeColumnIndex(tree, false))

	cmp := Comparator{
		{Kind: CmpGreaterEqual, Operand: value.LongValue(25000), Junction: JunctionAnd},
		{Kind: CmpLess, Operand: value.LongValue(75000), Junction: JunctionNone},
	}
	out, err := ColScan(cmp, col, nil)
	require.NoError(t, err)
	assert.Len(t, out, 50000)
	for _, p := range out {
		v := col.At(p).Long()
		assert.GreaterOrEqual(t, v, int64(25000))
		assert.Less(t, v, int64(75000))
	}
}

// TestScenario4Average mirrors spec.md §8 scenario 4.
func TestScenario4Average(t *testing.T) {
	vec := value.FromValues(value.TypeInt, []value.Value{
		value.IntValue(1), value.IntValue(2), value.IntValue(3), value.IntValue(4),
	})
	avg, err := Average(vec)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, avg.At(0).Double(), 1e-12)
}

// TestScenario5ExtremeWithIndex mirrors spec.md §8 scenario 5.
func TestScenario5ExtremeWithIndex(t *testing.T) {
	vals := value.FromValues(value.TypeInt, []value.Value{
		value.IntValue(9), value.IntValue(5), value.IntValue(7), value.IntValue(1), value.IntValue(8),
	})

	val, pos := ExtremeWithIndex(vals, nil, ExtremeMin)
	assert.Equal(t, int32(1), val.At(0).Int())
	assert.Equal(t, int64(3), pos.At(0).Long())

	posVec := value.FromValues(value.TypeLong, []value.Value{
		value.LongValue(10), value.LongValue(11), value.LongValue(12), value.LongValue(13), value.LongValue(14),
	})
	val2, pos2 := ExtremeWithIndex(vals, posVec, ExtremeMin)
	assert.Equal(t, int32(1), val2.At(0).Int())
	assert.Equal(t, int64(13), pos2.At(0).Long())
}

func TestVectorOpAddSub(t *testing.T) {
	a := value.FromValues(value.TypeInt, []value.Value{value.IntValue(1), value.IntValue(2)})
	b := value.FromValues(value.TypeInt, []value.Value{value.IntValue(10), value.IntValue(20)})

	sum, err := VectorOp(a, b, VectorAdd)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 22}, longsOf(sum))

	diff, err := VectorOp(a, b, VectorSub)
	require.NoError(t, err)
	assert.Equal(t, []int64{-9, -18}, longsOf(diff))
}

func TestVectorOpLengthMismatch(t *testing.T) {
	a := value.FromValues(value.TypeInt, []value.Value{value.IntValue(1)})
	b := value.FromValues(value.TypeInt, []value.Value{value.IntValue(1), value.IntValue(2)})
	_, err := VectorOp(a, b, VectorAdd)
	assert.Error(t, err)
}

func TestMaterializeFormatting(t *testing.T) {
	ints := value.FromValues(value.TypeInt, []value.Value{value.IntValue(1), value.IntValue(2)})
	doubles := value.FromValues(value.TypeDouble, []value.Value{value.DoubleValue(1.5), value.DoubleValue(2.25)})

	var buf bytes.Buffer
	require.NoError(t, Materialize(&buf, []*value.Column{ints, doubles}))
	assert.Equal(t, "1,1.500000000000\n2,2.250000000000\n", buf.String())
}

func TestMaterializeRejectsUnequalLength(t *testing.T) {
	a := value.FromValues(value.TypeInt, []value.Value{value.IntValue(1)})
	b := value.FromValues(value.TypeInt, []value.Value{value.IntValue(1), value.IntValue(2)})
	var buf bytes.Buffer
	assert.Error(t, Materialize(&buf, []*value.Column{a, b}))
}

func TestColScanIntersectsWithInPositions(t *testing.T) {
	col := value.FromValues(value.TypeInt, []value.Value{
		value.IntValue(5), value.IntValue(1), value.IntValue(5), value.IntValue(5), value.IntValue(2),
	})
	sorted := index.BuildSorted(col)
	col.SetIndex(index.NewSortedColumnIndex(sorted))

	cmp := Comparator{{Kind: CmpEqual, Operand: value.IntValue(5), Junction: JunctionNone}}
	// equality isn't a range bound, so bounds() reports the chain as not
	// reducible to an interval and IndexScan falls back to a full walk
	// restricted to in_positions.
	out, err := ColScan(cmp, col, []int{0, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, out)
}

func TestInsertMaintainsBTreeIndex(t *testing.T) {
	tbl := catalog.NewTable("t", 1)
	c, err := tbl.CreateColumn("a", value.TypeLong)
	require.NoError(t, err)

	sortedVals, positions := index.SortPermutation(c.Data())
	c.SetIndex(index.NewBTreeColumnIndex(index.BuildBPlusTree(sortedVals, positions), false))

	require.NoError(t, InsertRow(tbl, []value.Value{value.LongValue(42)}))

	ci := c.Index().(*index.ColumnIndex)
	leaf, slot := ci.BTree().Find(value.LongValue(42))
	assert.Equal(t, 0, ci.BTree().MinValue())
	_ = leaf
	_ = slot
	assert.Equal(t, int64(42), c.At(0).Long())
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
