package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	_, err = uuid.Parse(first)
	assert.NoError(t, err)
}

func TestSequence(t *testing.T) {
	t.Parallel()

	seq := &Sequence{Prefix: "fx-"}
	a, _ := seq.NewID()
	b, _ := seq.NewID()
	assert.Equal(t, "fx-1", a)
	assert.Equal(t, "fx-2", b)
}
