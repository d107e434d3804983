package battleship

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/board"
	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/internal/eventlog"
)

// placeTestFleet lays every ship of the player horizontally: ship i on
// row i starting at column 0. Both fleets occupy rows 0-4 only.
func placeTestFleet(t *testing.T, player *Player) {
	t.Helper()

	for i, ship := range player.Fleet {
		segments := make([]board.Coord, 0, ship.Size)
		for col := 0; col < ship.Size; col++ {
			segments = append(segments, board.Coord{Row: i, Col: col})
		}

		require.NoError(t, ship.Place(segments))
		for _, segment := range segments {
			require.NoError(t, player.Board.Set(segment.Row, segment.Col, CellShip))
		}
	}
}

// newTestGame builds an in-progress game with deterministic fleet layouts.
func newTestGame(t *testing.T, secondKind string) *Game {
	t.Helper()

	game := NewGame("g1",
		&entity.Player{ID: "p1", Name: "alice", Kind: entity.KindHuman},
		&entity.Player{ID: "p2", Name: "bob", Kind: secondKind},
	)

	placeTestFleet(t, game.Player1)
	placeTestFleet(t, game.Player2)

	game.AttackerID = game.Player1.Info.ID
	game.Status = entity.StatusInProgress
	game.Log.Add([]string{"alice", "bob"}, eventlog.EventStartGame)

	return game
}

func TestGame_Setup(t *testing.T) {
	// Given: a fresh game
	game := NewGame("g1",
		&entity.Player{ID: "p1", Name: "alice", Kind: entity.KindHuman},
		&entity.Player{ID: "p2", Name: "bob", Kind: entity.KindHuman},
	)
	require.Equal(t, entity.StatusSetup, game.Status)

	// When: running setup with ship names
	names := map[string][]string{"carrier": {"Invincible"}}
	require.NoError(t, game.Setup(names))

	// Then: player 1 opens, both fleets are placed, start event logged
	assert.Equal(t, "p1", game.AttackerID)
	assert.Equal(t, entity.StatusInProgress, game.Status)
	for _, player := range []*Player{game.Player1, game.Player2} {
		for _, ship := range player.Fleet {
			assert.True(t, ship.Placed())
		}
		assert.Equal(t, "Invincible", player.Fleet[4].Name)
	}

	last, ok := game.Log.Last()
	require.True(t, ok)
	assert.Equal(t, eventlog.EventStartGame, last.Type)
}

func TestGame_Attack_Validation(t *testing.T) {
	t.Run("Rejects a move before setup", func(t *testing.T) {
		game := NewGame("g1", &entity.Player{ID: "p1"}, &entity.Player{ID: "p2"})

		_, err := game.Attack("p1", "A1")
		assert.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Rejects a move from the defender", func(t *testing.T) {
		game := newTestGame(t, entity.KindHuman)

		_, err := game.Attack("p2", "A1")
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)

		// Then: the turn did not advance
		assert.Equal(t, "p1", game.AttackerID)
	})

	t.Run("Rejects bad syntax and logs an invalid attack", func(t *testing.T) {
		game := newTestGame(t, entity.KindHuman)

		_, err := game.Attack("p1", "Z42")
		assert.ErrorIs(t, err, apperror.ErrInvalidMoveSyntax)

		last, ok := game.Log.Last()
		require.True(t, ok)
		assert.Equal(t, eventlog.EventInvalidAttack, last.Type)
		assert.Equal(t, "p1", game.AttackerID)
	})
}

func TestGame_Attack_Resolution(t *testing.T) {
	t.Run("Miss marks the tracking board only", func(t *testing.T) {
		// Given: an in-progress game; row 9 holds no ships
		game := newTestGame(t, entity.KindHuman)

		// When: player 1 attacks an empty cell
		outcome, err := game.Attack("p1", "J10")
		require.NoError(t, err)

		// Then: a miss, turn passes to player 2
		assert.False(t, outcome.Attack.Hit)
		assert.False(t, outcome.Attack.Sunk)
		assert.Equal(t, "p2", outcome.NextID)

		state, err := game.Player1.Tracking.Get(9, 9)
		require.NoError(t, err)
		assert.Equal(t, CellMiss, state)

		state, err = game.Player2.Board.Get(9, 9)
		require.NoError(t, err)
		assert.Equal(t, board.Open, state)
	})

	t.Run("Hit damages the struck ship on both boards", func(t *testing.T) {
		game := newTestGame(t, entity.KindHuman)

		// When: player 1 hits the size-2 ship at A1
		outcome, err := game.Attack("p1", "A1")
		require.NoError(t, err)

		// Then: a hit but not a sinking
		assert.True(t, outcome.Attack.Hit)
		assert.False(t, outcome.Attack.Sunk)

		state, err := game.Player1.Tracking.Get(0, 0)
		require.NoError(t, err)
		assert.Equal(t, CellHit, state)

		state, err = game.Player2.Board.Get(0, 0)
		require.NoError(t, err)
		assert.Equal(t, CellHit, state)

		assert.Equal(t, []bool{false, true}, game.Player2.Fleet[0].Health)
	})

	t.Run("Second attack on the same cell is rejected without mutation", func(t *testing.T) {
		game := newTestGame(t, entity.KindHuman)

		_, err := game.Attack("p1", "J10")
		require.NoError(t, err)
		_, err = game.Attack("p2", "J10")
		require.NoError(t, err)

		before := fmt.Sprintf("%v%v", game.Player1.Tracking.Cells, game.Player2.Board.Cells)

		// When: player 1 re-attacks J10
		_, err = game.Attack("p1", "J10")

		// Then: rejected, boards untouched, still player 1's turn
		assert.ErrorIs(t, err, apperror.ErrAlreadyAttacked)
		after := fmt.Sprintf("%v%v", game.Player1.Tracking.Cells, game.Player2.Board.Cells)
		assert.Equal(t, before, after)
		assert.Equal(t, "p1", game.AttackerID)
	})
}

func TestGame_TurnAlternation(t *testing.T) {
	// Given: an in-progress two-human game
	game := newTestGame(t, entity.KindHuman)
	require.Equal(t, "p1", game.AttackerID)

	// When: two non-terminal turns resolve
	_, err := game.Attack("p1", "J1")
	require.NoError(t, err)
	assert.Equal(t, "p2", game.AttackerID)

	_, err = game.Attack("p2", "J1")
	require.NoError(t, err)

	// Then: the attacker is player 1 again
	assert.Equal(t, "p1", game.AttackerID)
}

func TestGame_BotRepliesSynchronously(t *testing.T) {
	// Given: a game against the bot
	game := newTestGame(t, entity.KindBot)

	// When: the human resolves a move
	outcome, err := game.Attack("p1", "J10")
	require.NoError(t, err)

	// Then: the bot's reply is part of the same outcome and the turn
	// is back with the human
	require.Len(t, outcome.BotAttacks, 1)
	assert.Equal(t, "p2", outcome.BotAttacks[0].AttackerID)
	assert.Equal(t, "p1", game.AttackerID)

	// Then: the bot's move landed on its tracking board
	move := outcome.BotAttacks[0].Move
	state, err := game.Player2.Tracking.Get(move.Row, move.Col)
	require.NoError(t, err)
	assert.Contains(t, []string{CellHit, CellMiss}, state)
}

func TestGame_EndToEnd_SinkingFleetWins(t *testing.T) {
	// Given: a two-human game with known layouts; player 2 will sink
	// player 1's entire fleet while player 1 keeps missing
	game := newTestGame(t, entity.KindHuman)

	var targets []board.Coord
	for _, ship := range game.Player1.Fleet {
		targets = append(targets, ship.Segments...)
	}
	require.Len(t, targets, 17)

	misses := make([]board.Coord, 0, len(targets))
	for row := 5; row < 7; row++ {
		for col := 0; col < BoardSize; col++ {
			misses = append(misses, board.Coord{Row: row, Col: col})
		}
	}

	for i, target := range targets {
		// When: player 1 misses
		outcome, err := game.Attack("p1", FormatMove(misses[i]))
		require.NoError(t, err)
		require.False(t, outcome.Attack.Hit)

		// When: player 2 hits the next fleet cell
		outcome, err = game.Attack("p2", FormatMove(target))
		require.NoError(t, err)
		require.True(t, outcome.Attack.Hit)

		if i < len(targets)-1 {
			require.Equal(t, entity.StatusInProgress, game.Status)
			continue
		}

		// Then: the final hit ends the game with player 2 as winner
		assert.Equal(t, entity.StatusFinished, outcome.Status)
		assert.Equal(t, "p2", outcome.WinnerID)
		assert.True(t, outcome.Attack.Sunk)
	}

	assert.True(t, game.Player1.IsDefeated())
	assert.Equal(t, "p2", game.WinnerID)

	// Then: exactly one finished_game event, and it is the last entry
	finished := 0
	for _, event := range game.Log.Events {
		if event.Type == eventlog.EventFinishedGame {
			finished++
		}
	}
	assert.Equal(t, 1, finished)

	last, ok := game.Log.Last()
	require.True(t, ok)
	assert.Equal(t, eventlog.EventFinishedGame, last.Type)

	// Then: no further moves are accepted
	_, err := game.Attack("p2", "J9")
	assert.ErrorIs(t, err, apperror.ErrGameFinished)
}
