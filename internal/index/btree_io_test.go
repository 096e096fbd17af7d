package index

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldb/internal/value"
)

func TestBPlusTreeWriteReadRoundTrip(t *testing.T) {
	tree, keys := buildShuffled(t, 20000)

	var buf bytes.Buffer
	_, err := tree.WriteTo(&buf)
	require.NoError(t, err)

	loaded, err := ReadBPlusTreeFrom(&buf)
	require.NoError(t, err)

	assert.Equal(t, tree.MinKey(), loaded.MinKey())
	assert.Equal(t, tree.MaxKey(), loaded.MaxKey())

	wantKeys, wantPositions := tree.ExtractAll()
	gotKeys, gotPositions := loaded.ExtractAll()
	assert.Equal(t, wantKeys, gotKeys)
	assert.Equal(t, wantPositions, gotPositions)

	out := loaded.RangeScan(value.IntValue(100), value.IntValue(200))
	for _, p := range out {
		v := keys[p]
		assert.GreaterOrEqual(t, v, value.IntValue(100))
		assert.Less(t, v, value.IntValue(200))
	}
}
