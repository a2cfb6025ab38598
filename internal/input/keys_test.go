package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStrings(t *testing.T) {
	assert.Equal(t, "space", Space.String())
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "down", Down.String())
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "key(99)", Key(99).String())
}

func TestNewLogBackend(t *testing.T) {
	inj, err := New("log")
	require.NoError(t, err)
	assert.NoError(t, inj.Press(Space))
	assert.NoError(t, inj.Release(Space))
	assert.NoError(t, inj.Close())
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("telekinesis")
	assert.Error(t, err)
}
