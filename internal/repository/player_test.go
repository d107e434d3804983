package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/testing/suite"
)

func TestPlayerRepository(t *testing.T) {
	ctx, s := suite.New(t)
	repo := NewPlayerRepository(s.Storage)

	t.Run("CreateOrUpdate then GetByID round-trips a player", func(t *testing.T) {
		// Given: a player bound to a game
		player := &entity.Player{
			ID:       "player123",
			Name:     "alice",
			Kind:     entity.KindHuman,
			GameID:   "game42",
			GameKind: entity.GameBattleship,
		}

		// When: saving and loading it
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		loaded, err := repo.GetByID(ctx, "player123")
		require.NoError(t, err)

		// Then: all fields survive the round trip
		assert.Equal(t, player, loaded)
	})

	t.Run("GetByID returns ErrPlayerNotFound for unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("CreateOrUpdate overwrites an existing player", func(t *testing.T) {
		player := &entity.Player{ID: "player456", Name: "bob"}
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		player.GameID = "game77"
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		loaded, err := repo.GetByID(ctx, "player456")
		require.NoError(t, err)
		assert.Equal(t, "game77", loaded.GameID)
	})
}
