package battleship

import (
	"math/rand"

	"github.com/gamesroomio/minigames-backend/internal/board"
	"github.com/gamesroomio/minigames-backend/internal/entity"
)

// Board cell states. An open cell is board.Open.
const (
	CellShip = "ship"
	CellHit  = "hit"
	CellMiss = "miss"
)

// BoardSize is the fixed grid size for both the fleet and tracking boards.
const BoardSize = 10

// FleetSizes lists the ship sizes every player starts with, smallest first.
var FleetSizes = []int{2, 3, 3, 4, 5}

// FleetClasses names the ship class for each fleet slot, parallel to FleetSizes.
var FleetClasses = []string{"patrol boat", "submarine", "destroyer", "battleship", "carrier"}

// Player owns a fleet, a board holding its ships, and a tracking board
// recording the player's own hits and misses on the opponent.
type Player struct {
	Info     *entity.Player `json:"info"`
	Fleet    []*Ship        `json:"fleet"`
	Board    *board.Board   `json:"board"`
	Tracking *board.Board   `json:"tracking"`
}

func NewPlayer(info *entity.Player) *Player {
	fleet := make([]*Ship, 0, len(FleetSizes))
	for i, size := range FleetSizes {
		ship := NewShip(size)
		ship.Class = FleetClasses[i]
		fleet = append(fleet, ship)
	}

	return &Player{
		Info:     info,
		Fleet:    fleet,
		Board:    board.New(BoardSize),
		Tracking: board.New(BoardSize),
	}
}

// IsDefeated reports whether every ship in the player's fleet is sunk.
func (that *Player) IsDefeated() bool {
	for _, ship := range that.Fleet {
		if !ship.IsSunk() {
			return false
		}
	}

	return true
}

// ShipAt returns the fleet ship occupying the coordinate, if any.
func (that *Player) ShipAt(row, col int) *Ship {
	for _, ship := range that.Fleet {
		if ship.Occupies(row, col) {
			return ship
		}
	}

	return nil
}

// SetShipNames assigns each ship a random name from the candidates for its
// class. Classes without candidates keep an empty name.
func (that *Player) SetShipNames(names map[string][]string) {
	for _, ship := range that.Fleet {
		candidates := names[ship.Class]
		if len(candidates) == 0 {
			continue
		}
		ship.Name = candidates[rand.Intn(len(candidates))] //nolint:gosec // cosmetic choice
	}
}
