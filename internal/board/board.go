package board

import (
	"fmt"
	"strings"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
)

// Open is the state of a cell that has not been claimed by any game piece.
const Open = ""

// Coord addresses a single cell, [row][col], both 0-indexed.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Board is a square grid of cell states. Cells are mutated only through
// the game operations that own the board, never directly by callers.
type Board struct {
	Size  int        `json:"size"`
	Cells [][]string `json:"cells"`
}

func New(size int) *Board {
	cells := make([][]string, size)
	for row := range cells {
		cells[row] = make([]string, size)
	}

	return &Board{
		Size:  size,
		Cells: cells,
	}
}

// Contains reports whether the coordinate is on the board.
func (that *Board) Contains(row, col int) bool {
	return row >= 0 && row < that.Size && col >= 0 && col < that.Size
}

func (that *Board) Get(row, col int) (string, error) {
	if !that.Contains(row, col) {
		return "", fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	return that.Cells[row][col], nil
}

func (that *Board) Set(row, col int, state string) error {
	if !that.Contains(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	that.Cells[row][col] = state

	return nil
}

// IsFull reports whether no cell remains open.
func (that *Board) IsFull() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == Open {
				return false
			}
		}
	}

	return true
}

// Rows returns a line-per-row view of the grid with open cells rendered as
// the given placeholder. The external layer formats this into a message.
func (that *Board) Rows(placeholder string) []string {
	rows := make([]string, 0, that.Size)
	for _, row := range that.Cells {
		var b strings.Builder
		for _, cell := range row {
			if cell == Open {
				b.WriteString(placeholder)
				continue
			}
			b.WriteString(cell)
		}
		rows = append(rows, b.String())
	}

	return rows
}
