package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gamesroomio/minigames-backend/internal/battleship"
	"github.com/gamesroomio/minigames-backend/internal/connectfour"
	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/internal/eventlog"
	"github.com/gamesroomio/minigames-backend/internal/tictactoe"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrUnknownGameKind = errors.New("unknown game kind")
)

// GameRecord is the stored form of one active game; exactly one of the
// kind-specific fields is set, matching Kind.
type GameRecord struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Battleship  *battleship.Game  `json:"battleship,omitempty"`
	ConnectFour *connectfour.Game `json:"connectfour,omitempty"`
	TicTacToe   *tictactoe.Game   `json:"tictactoe,omitempty"`
}

// IsFinished reports whether the wrapped game reached a terminal state.
func (that *GameRecord) IsFinished() bool {
	switch that.Kind {
	case entity.GameBattleship:
		return that.Battleship.IsFinished()
	case entity.GameConnectFour:
		return that.ConnectFour.IsFinished()
	case entity.GameTicTacToe:
		return that.TicTacToe.IsFinished()
	default:
		return false
	}
}

// Players returns both participants of the wrapped game.
func (that *GameRecord) Players() []*entity.Player {
	switch that.Kind {
	case entity.GameBattleship:
		return []*entity.Player{that.Battleship.Player1.Info, that.Battleship.Player2.Info}
	case entity.GameConnectFour:
		return []*entity.Player{that.ConnectFour.Player1, that.ConnectFour.Player2}
	case entity.GameTicTacToe:
		return []*entity.Player{that.TicTacToe.Player1, that.TicTacToe.Player2}
	default:
		return nil
	}
}

// EventLog returns the wrapped game's event log.
func (that *GameRecord) EventLog() *eventlog.Log {
	switch that.Kind {
	case entity.GameBattleship:
		return that.Battleship.Log
	case entity.GameConnectFour:
		return that.ConnectFour.Log
	case entity.GameTicTacToe:
		return that.TicTacToe.Log
	default:
		return nil
	}
}

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *GameRecord) error
	GetByID(ctx context.Context, id string) (*GameRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *GameRecord) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	gameKey := "game:" + game.ID
	err = that.client.Set(ctx, gameKey, gameJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*GameRecord, error) {
	gameKey := "game:" + id

	response, err := that.client.Get(ctx, gameKey).Result()

	if errors.Is(err, redis.Nil) {
		return &GameRecord{}, ErrGameNotFound
	}

	if err != nil {
		return &GameRecord{}, fmt.Errorf("failed to get game by ID: %w", err)
	}

	var existingGame GameRecord
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return &GameRecord{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	gameKey := "game:" + id

	err := that.client.Del(ctx, gameKey).Err()
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	return nil
}
