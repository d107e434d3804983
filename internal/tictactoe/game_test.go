package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/internal/eventlog"
)

func newStartedGame(t *testing.T) *Game {
	t.Helper()

	game := NewGame("g1",
		&entity.Player{ID: "p1", Name: "alice", Kind: entity.KindHuman},
		&entity.Player{ID: "p2", Name: "bob", Kind: entity.KindHuman},
	)

	outcome := game.Setup()
	require.Empty(t, outcome.BotMoves)
	require.Equal(t, "p1", game.CurrentID)

	return game
}

func TestGame_Setup(t *testing.T) {
	t.Run("Two humans keep fixed marks and X opens", func(t *testing.T) {
		game := newStartedGame(t)

		assert.Equal(t, MarkX, game.Player1.Mark)
		assert.Equal(t, MarkO, game.Player2.Mark)
		assert.Equal(t, entity.StatusInProgress, game.Status)

		last, ok := game.Log.Last()
		require.True(t, ok)
		assert.Equal(t, eventlog.EventStartGame, last.Type)
	})

	t.Run("A bot holding X opens during setup", func(t *testing.T) {
		// Marks are shuffled against a bot, so try until the bot gets X.
		for i := 0; i < 100; i++ {
			game := NewGame("g1",
				&entity.Player{ID: "p1", Name: "alice", Kind: entity.KindHuman},
				entity.NewBotPlayer("p2"),
			)

			outcome := game.Setup()
			if game.Player2.Mark != MarkX {
				assert.Empty(t, outcome.BotMoves)
				continue
			}

			// Then: the bot already moved and the human is up
			require.Len(t, outcome.BotMoves, 1)
			assert.Equal(t, "p2", outcome.BotMoves[0].PlayerID)
			assert.Equal(t, "p1", game.CurrentID)
			return
		}

		t.Fatal("bot never drew X in 100 setups")
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Marks the cell and passes the turn", func(t *testing.T) {
		game := newStartedGame(t)

		outcome, err := game.MakeTurn("p1", 4)
		require.NoError(t, err)

		assert.Equal(t, MarkX, game.Board[4])
		assert.Equal(t, "p2", outcome.NextID)
		assert.Equal(t, "p2", game.CurrentID)
	})

	t.Run("Rejects an out-of-turn move", func(t *testing.T) {
		game := newStartedGame(t)

		_, err := game.MakeTurn("p2", 0)
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		game := newStartedGame(t)

		_, err := game.MakeTurn("p1", 0)
		require.NoError(t, err)

		_, err = game.MakeTurn("p2", 0)
		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Rejects an out-of-range cell", func(t *testing.T) {
		game := newStartedGame(t)

		_, err := game.MakeTurn("p1", 9)
		assert.ErrorIs(t, err, ErrInvalidCell)

		_, err = game.MakeTurn("p1", -1)
		assert.ErrorIs(t, err, ErrInvalidCell)
	})
}

func TestGame_WinAndDraw(t *testing.T) {
	t.Run("Completing a row wins", func(t *testing.T) {
		game := newStartedGame(t)

		moves := []struct {
			player string
			cell   int
		}{
			{"p1", 0}, {"p2", 3}, {"p1", 1}, {"p2", 4},
		}
		for _, move := range moves {
			_, err := game.MakeTurn(move.player, move.cell)
			require.NoError(t, err)
		}

		// When: X completes the top row
		outcome, err := game.MakeTurn("p1", 2)
		require.NoError(t, err)

		// Then: finished with player 1 as winner
		assert.Equal(t, entity.StatusFinished, outcome.Status)
		assert.Equal(t, "p1", outcome.WinnerID)

		last, ok := game.Log.Last()
		require.True(t, ok)
		assert.Equal(t, eventlog.EventFinishedGame, last.Type)

		_, err = game.MakeTurn("p2", 5)
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("A full board without a winner is a draw", func(t *testing.T) {
		game := newStartedGame(t)

		// X X O / O O X / X O X, played in a legal order
		moves := []struct {
			player string
			cell   int
		}{
			{"p1", 0}, {"p2", 2}, {"p1", 1}, {"p2", 3},
			{"p1", 5}, {"p2", 4}, {"p1", 6}, {"p2", 7},
		}
		for _, move := range moves {
			_, err := game.MakeTurn(move.player, move.cell)
			require.NoError(t, err)
		}

		outcome, err := game.MakeTurn("p1", 8)
		require.NoError(t, err)

		assert.Equal(t, entity.StatusFinished, outcome.Status)
		assert.True(t, outcome.Draw)
		assert.Empty(t, outcome.WinnerID)
	})
}

func TestGame_BotRepliesSynchronously(t *testing.T) {
	// Try until the human draws X so the first move is theirs.
	for i := 0; i < 100; i++ {
		game := NewGame("g1",
			&entity.Player{ID: "p1", Name: "alice", Kind: entity.KindHuman},
			entity.NewBotPlayer("p2"),
		)
		game.Setup()
		if game.Player1.Mark != MarkX {
			continue
		}

		outcome, err := game.MakeTurn("p1", 4)
		require.NoError(t, err)

		// Then: the bot replied in the same outcome on an open cell
		require.Len(t, outcome.BotMoves, 1)
		assert.NotEqual(t, 4, outcome.BotMoves[0].Cell)
		assert.Equal(t, game.Player2.Mark, game.Board[outcome.BotMoves[0].Cell])
		assert.Equal(t, "p1", game.CurrentID)
		return
	}

	t.Fatal("human never drew X in 100 setups")
}
