package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesroomio/minigames-backend/internal/battleship"
	"github.com/gamesroomio/minigames-backend/internal/connectfour"
	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/testing/suite"
)

func TestGameRepository(t *testing.T) {
	ctx, s := suite.New(t)
	repo := NewGameRepository(s.Storage)

	t.Run("Round-trips a battleship game with its full state", func(t *testing.T) {
		// Given: a set-up battleship game
		game := battleship.NewGame("game1",
			&entity.Player{ID: "p1", Name: "alice", Kind: entity.KindHuman},
			&entity.Player{ID: "p2", Name: "bob", Kind: entity.KindBot},
		)
		require.NoError(t, game.Setup(nil))

		record := &GameRecord{ID: "game1", Kind: entity.GameBattleship, Battleship: game}

		// When: saving and loading the record
		require.NoError(t, repo.CreateOrUpdate(ctx, record))

		loaded, err := repo.GetByID(ctx, "game1")
		require.NoError(t, err)

		// Then: fleet placement and log survive serialization
		require.Equal(t, entity.GameBattleship, loaded.Kind)
		require.NotNil(t, loaded.Battleship)
		assert.Equal(t, game.AttackerID, loaded.Battleship.AttackerID)
		assert.Equal(t, game.Status, loaded.Battleship.Status)
		for i, ship := range game.Player1.Fleet {
			assert.Equal(t, ship.Segments, loaded.Battleship.Player1.Fleet[i].Segments)
		}
		assert.Equal(t, game.Log.Len(), loaded.EventLog().Len())

		// Then: the loaded game keeps playing
		_, err = loaded.Battleship.Attack("p1", "A1")
		require.NoError(t, err)
	})

	t.Run("Round-trips a connect-four game", func(t *testing.T) {
		game := connectfour.NewGame("game2",
			&entity.Player{ID: "p1", Name: "alice", Kind: entity.KindHuman},
			&entity.Player{ID: "p2", Name: "bob", Kind: entity.KindHuman},
		)
		game.Setup()

		_, err := game.Drop("p1", 4)
		require.NoError(t, err)

		record := &GameRecord{ID: "game2", Kind: entity.GameConnectFour, ConnectFour: game}
		require.NoError(t, repo.CreateOrUpdate(ctx, record))

		loaded, err := repo.GetByID(ctx, "game2")
		require.NoError(t, err)
		require.NotNil(t, loaded.ConnectFour)
		assert.Equal(t, connectfour.SymbolBlue, loaded.ConnectFour.Board.Cells[connectfour.BoardSize-1][3])
		assert.Equal(t, "p2", loaded.ConnectFour.CurrentID)
	})

	t.Run("GetByID returns ErrGameNotFound for unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID removes the record", func(t *testing.T) {
		record := &GameRecord{ID: "game3", Kind: entity.GameConnectFour}
		require.NoError(t, repo.CreateOrUpdate(ctx, record))

		require.NoError(t, repo.DeleteByID(ctx, "game3"))

		_, err := repo.GetByID(ctx, "game3")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}
