package battleship

import (
	"errors"
	"fmt"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/board"
)

var (
	ErrShipAlreadyPlaced = errors.New("ship is already placed")
	ErrWrongSegmentCount = errors.New("segment count does not match ship size")
)

// Ship tracks per-segment health across the coordinates it occupies.
// Segments and Health stay parallel: Health[i] belongs to Segments[i].
type Ship struct {
	Size     int           `json:"size"`
	Class    string        `json:"class,omitempty"`
	Name     string        `json:"name,omitempty"`
	Segments []board.Coord `json:"segments,omitempty"`
	Health   []bool        `json:"health,omitempty"`
}

func NewShip(size int) *Ship {
	return &Ship{Size: size}
}

// Placed reports whether the ship has been committed to a board.
func (that *Ship) Placed() bool {
	return len(that.Segments) > 0
}

// Place records the ship's occupied coordinates and resets its health.
// A ship is placed exactly once and never resized afterwards.
func (that *Ship) Place(segments []board.Coord) error {
	if that.Placed() {
		return ErrShipAlreadyPlaced
	}

	if len(segments) != that.Size {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongSegmentCount, len(segments), that.Size)
	}

	that.Segments = append([]board.Coord(nil), segments...)

	that.Health = make([]bool, that.Size)
	for i := range that.Health {
		that.Health[i] = true
	}

	return nil
}

// TakeDamageAt marks the segment at the coordinate as damaged. Hitting an
// already damaged segment is a no-op.
func (that *Ship) TakeDamageAt(row, col int) error {
	for i, segment := range that.Segments {
		if segment.Row == row && segment.Col == col {
			that.Health[i] = false
			return nil
		}
	}

	return fmt.Errorf("%w: (%d, %d)", apperror.ErrSegmentNotFound, row, col)
}

// Occupies reports whether the ship has a segment at the coordinate.
func (that *Ship) Occupies(row, col int) bool {
	for _, segment := range that.Segments {
		if segment.Row == row && segment.Col == col {
			return true
		}
	}

	return false
}

// IsSunk reports whether every segment has recorded damage.
func (that *Ship) IsSunk() bool {
	if len(that.Health) == 0 {
		return false
	}

	for _, alive := range that.Health {
		if alive {
			return false
		}
	}

	return true
}
