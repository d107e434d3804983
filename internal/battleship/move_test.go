package battleship

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/board"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		move string
		want board.Coord
	}{
		{"A1", board.Coord{Row: 0, Col: 0}},
		{"a1", board.Coord{Row: 0, Col: 0}},
		{"A10", board.Coord{Row: 0, Col: 9}},
		{"B5", board.Coord{Row: 1, Col: 4}},
		{"j10", board.Coord{Row: 9, Col: 9}},
		{"E7", board.Coord{Row: 4, Col: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.move, func(t *testing.T) {
			got, err := ParseMove(tt.move)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMove_Invalid(t *testing.T) {
	for _, move := range []string{"", "K1", "A11", "A0", "5A", "A", "10", "A1 ", " A1", "AA1", "A1B", "A15"} {
		t.Run(fmt.Sprintf("%q", move), func(t *testing.T) {
			_, err := ParseMove(move)
			assert.ErrorIs(t, err, apperror.ErrInvalidMoveSyntax)
		})
	}
}

func TestFormatMove_RoundTrip(t *testing.T) {
	// Every cell of the 10x10 board must survive format-then-parse.
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			move := FormatMove(board.Coord{Row: row, Col: col})

			got, err := ParseMove(move)
			require.NoError(t, err, "move %q", move)
			assert.Equal(t, board.Coord{Row: row, Col: col}, got)
		}
	}
}
