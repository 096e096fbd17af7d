package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("verbose")
	assert.Error(t, err)
}

func TestNewAndNamed(t *testing.T) {
	base, err := New("info")
	require.NoError(t, err)
	require.NotNil(t, base)

	child := Named(base, "server")
	assert.NotNil(t, child)
}
