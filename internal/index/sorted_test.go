package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldb/internal/value"
)

func TestBuildSortedIsPermutationSatisfyingInvariant(t *testing.T) {
	col := value.New("a", value.TypeInt)
	for _, v := range []int32{30, 10, 20, 10} {
		col.Insert(value.IntValue(v))
	}

	idx := BuildSorted(col)
	require.Equal(t, 4, idx.Len())

	data := idx.SortedData()
	for i := 1; i < len(data); i++ {
		assert.LessOrEqual(t, data[i-1], data[i])
	}
	for i := 0; i < idx.Len(); i++ {
		assert.Equal(t, col.At(idx.PositionAt(i)), data[i])
	}
}

func TestSortedIndexClusteredIsDegenerate(t *testing.T) {
	col := value.New("a", value.TypeInt)
	col.Insert(value.IntValue(1))
	col.Insert(value.IntValue(2))

	idx := NewClustered(col)
	assert.True(t, idx.Clustered())
	assert.Equal(t, col.Data(), idx.SortedData())
	assert.Equal(t, 0, idx.PositionAt(0))
	assert.Equal(t, 1, idx.PositionAt(1))
}

func TestSortedIndexLowerUpperBound(t *testing.T) {
	col := value.New("a", value.TypeInt)
	for _, v := range []int32{1, 3, 3, 5, 7} {
		col.Insert(value.IntValue(v))
	}
	idx := BuildSorted(col)

	assert.Equal(t, 1, idx.LowerBound(value.IntValue(3)))
	assert.Equal(t, 3, idx.UpperBound(value.IntValue(3)))
}
