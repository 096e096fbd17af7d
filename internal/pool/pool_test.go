package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldb/internal/value"
)

func TestVariablePoolPutGetClear(t *testing.T) {
	vars := NewVariablePool()
	col := value.FromValues(value.TypeInt, []value.Value{value.IntValue(7)})
	vars.Put("r0", col)

	got, err := vars.Get("r0")
	require.NoError(t, err)
	assert.Equal(t, col, got)

	vars.Clear()
	_, err = vars.Get("r0")
	assert.Error(t, err)
}

func TestVariablePoolMissingName(t *testing.T) {
	vars := NewVariablePool()
	_, err := vars.Get("missing")
	assert.Error(t, err)
}

func TestResourcePoolCreateGetDrop(t *testing.T) {
	res := NewResourcePool()
	db, err := res.Create("db1")
	require.NoError(t, err)
	assert.Equal(t, "db1", db.Name)

	_, err = res.Create("db1")
	assert.Error(t, err)

	got, err := res.Get("db1")
	require.NoError(t, err)
	assert.Same(t, db, got)

	assert.True(t, res.Drop("db1"))
	assert.False(t, res.Drop("db1"))
}
