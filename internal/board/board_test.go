package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
)

func TestNew(t *testing.T) {
	// When: creating a new board
	b := New(10)

	// Then: every cell must start open
	require.Len(t, b.Cells, 10)
	for _, row := range b.Cells {
		require.Len(t, row, 10)
		for _, cell := range row {
			assert.Equal(t, Open, cell)
		}
	}
}

func TestBoard_GetSet(t *testing.T) {
	t.Run("Set then Get round-trips a cell state", func(t *testing.T) {
		// Given: an empty board
		b := New(8)

		// When: setting a cell
		require.NoError(t, b.Set(3, 4, "X"))

		// Then: reading it back yields the same state
		state, err := b.Get(3, 4)
		require.NoError(t, err)
		assert.Equal(t, "X", state)
	})

	t.Run("Returns ErrOutOfBounds outside the grid", func(t *testing.T) {
		b := New(8)

		for _, coord := range []Coord{{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 8, Col: 0}, {Row: 0, Col: 8}} {
			_, err := b.Get(coord.Row, coord.Col)
			assert.ErrorIs(t, err, apperror.ErrOutOfBounds)

			err = b.Set(coord.Row, coord.Col, "X")
			assert.ErrorIs(t, err, apperror.ErrOutOfBounds)
		}
	})
}

func TestBoard_IsFull(t *testing.T) {
	// Given: a 2x2 board with one open cell
	b := New(2)
	require.NoError(t, b.Set(0, 0, "X"))
	require.NoError(t, b.Set(0, 1, "O"))
	require.NoError(t, b.Set(1, 0, "X"))

	// Then: the board is not full yet
	assert.False(t, b.IsFull())

	// When: filling the last cell
	require.NoError(t, b.Set(1, 1, "O"))

	// Then: the board is full
	assert.True(t, b.IsFull())
}

func TestBoard_Rows(t *testing.T) {
	// Given: a small board with a few marks
	b := New(3)
	require.NoError(t, b.Set(0, 0, "X"))
	require.NoError(t, b.Set(1, 1, "O"))

	// When: rendering line-per-row with a placeholder
	rows := b.Rows(".")

	// Then: open cells show the placeholder
	assert.Equal(t, []string{"X..", ".O.", "..."}, rows)
}
