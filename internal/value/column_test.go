package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnInsertAppend(t *testing.T) {
	c := New("a", TypeInt)
	for i := 0; i < 5; i++ {
		c.Insert(IntValue(int32(i)))
	}
	require.Equal(t, 5, c.Count())
	for i := 0; i < 5; i++ {
		assert.Equal(t, int32(i), c.At(i).Int())
	}
}

func TestColumnInsertAtShiftsSuffix(t *testing.T) {
	c := New("a", TypeInt)
	c.Insert(IntValue(1))
	c.Insert(IntValue(2))
	c.Insert(IntValue(3))

	c.InsertAt(1, IntValue(99))

	require.Equal(t, 4, c.Count())
	assert.Equal(t, []int32{1, 99, 2, 3}, collectInts(c))
}

func TestColumnGrowsByDoublingPlusOne(t *testing.T) {
	c := New("a", TypeInt)
	for i := 0; i < InitialCapacity; i++ {
		c.Insert(IntValue(int32(i)))
	}
	require.Equal(t, InitialCapacity, c.Capacity())
	c.Insert(IntValue(-1)) // the column is full, so this insert grows it

	assert.Equal(t, 2*InitialCapacity+1, c.Capacity())
	assert.Equal(t, InitialCapacity+1, c.Count())
}

func TestColumnFetchDoesNotMutateSource(t *testing.T) {
	c := New("a", TypeLong)
	for i := 0; i < 5; i++ {
		c.Insert(LongValue(int64(i * 10)))
	}

	fetched := c.Fetch([]int{4, 0, 2})
	assert.Equal(t, []int64{40, 0, 20}, collectLongs(fetched))
	assert.Equal(t, 5, c.Count())
	assert.Equal(t, "", fetched.Name)
}

func TestDoubleValueRoundTrips(t *testing.T) {
	v := DoubleValue(2.5)
	assert.InDelta(t, 2.5, v.Double(), 1e-12)
}

func collectInts(c *Column) []int32 {
	out := make([]int32, c.Count())
	for i := range out {
		out[i] = c.At(i).Int()
	}
	return out
}

func collectLongs(c *Column) []int64 {
	out := make([]int64, c.Count())
	for i := range out {
		out[i] = c.At(i).Long()
	}
	return out
}
