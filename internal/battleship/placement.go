package battleship

import (
	"fmt"
	"math/rand"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/board"
)

// maxPlacementAttempts bounds the rejection sampling per ship so a
// crowded board fails with a defined error instead of looping forever.
const maxPlacementAttempts = 10000

// RandomPlace places every ship of the fleet at a random valid location
// on the board, in declared fleet order, without overlaps.
func RandomPlace(fleet []*Ship, b *board.Board) error {
	for _, ship := range fleet {
		if err := randomPlaceShip(ship, b); err != nil {
			return fmt.Errorf("placing ship of size %d: %w", ship.Size, err)
		}
	}

	return nil
}

func randomPlaceShip(ship *Ship, b *board.Board) error {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		row := rand.Intn(b.Size)        //nolint:gosec // layout randomness only
		col := rand.Intn(b.Size)        //nolint:gosec // layout randomness only
		horizontal := rand.Intn(2) == 0 //nolint:gosec // layout randomness only

		if !isValidLocation(b, ship, row, col, horizontal) {
			continue
		}

		return commitShip(b, ship, row, col, horizontal)
	}

	return fmt.Errorf("%w after %d attempts", apperror.ErrPlacementImpossible, maxPlacementAttempts)
}

// isValidLocation reports whether every one of the ship's cells, laid out
// from (row, col) in the given orientation, is in-bounds and open.
func isValidLocation(b *board.Board, ship *Ship, row, col int, horizontal bool) bool {
	dRow, dCol := 1, 0
	if horizontal {
		dRow, dCol = 0, 1
	}

	for i := 0; i < ship.Size; i++ {
		cellRow, cellCol := row+dRow*i, col+dCol*i
		state, err := b.Get(cellRow, cellCol)
		if err != nil || state != board.Open {
			return false
		}
	}

	return true
}

func commitShip(b *board.Board, ship *Ship, row, col int, horizontal bool) error {
	dRow, dCol := 1, 0
	if horizontal {
		dRow, dCol = 0, 1
	}

	segments := make([]board.Coord, 0, ship.Size)
	for i := 0; i < ship.Size; i++ {
		segments = append(segments, board.Coord{Row: row + dRow*i, Col: col + dCol*i})
	}

	if err := ship.Place(segments); err != nil {
		return fmt.Errorf("failed to place ship: %w", err)
	}

	for _, segment := range segments {
		if err := b.Set(segment.Row, segment.Col, CellShip); err != nil {
			return fmt.Errorf("failed to mark ship cell: %w", err)
		}
	}

	return nil
}
