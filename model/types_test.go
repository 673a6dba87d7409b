package model

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemSet(t *testing.T) {
	t.Run("SortedAndDeduplicated", func(t *testing.T) {
		s := NewItemSet(5, 1, 3, 1, 5)
		assert.Equal(t, []ItemIndex{1, 3, 5}, s.Slice())
		assert.Equal(t, 3, s.Len())
		assert.True(t, s.Contains(3))
		assert.False(t, s.Contains(2))
	})

	t.Run("Max", func(t *testing.T) {
		_, ok := NewItemSet().Max()
		assert.False(t, ok)

		m, ok := NewItemSet(7, 2).Max()
		require.True(t, ok)
		assert.Equal(t, ItemIndex(7), m)
	})

	t.Run("UnionAndClone", func(t *testing.T) {
		a := NewItemSet(1, 2)
		b := a.Clone()
		b.Union(NewItemSet(2, 9))
		assert.Equal(t, []ItemIndex{1, 2}, a.Slice())
		assert.Equal(t, []ItemIndex{1, 2, 9}, b.Slice())
	})

	t.Run("All", func(t *testing.T) {
		got := slices.Collect(NewItemSet(4, 0, 2).All())
		assert.Equal(t, []ItemIndex{0, 2, 4}, got)
	})

	t.Run("Nil", func(t *testing.T) {
		var s *ItemSet
		assert.True(t, s.IsEmpty())
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Contains(0))
		assert.Nil(t, s.Slice())
	})
}

func TestMalformedInputError(t *testing.T) {
	err := NewMalformedInputError(3, "index", "abc", nil)
	assert.True(t, errors.Is(err, ErrNotAnIDList))
	assert.Contains(t, err.Error(), `column "index" at row 3`)

	var mie *MalformedInputError
	require.True(t, errors.As(error(err), &mie))
	assert.Equal(t, "abc", mie.Value)

	noRow := NewMalformedInputError(-1, "index", 1.5, nil)
	assert.NotContains(t, noRow.Error(), "row")
}
