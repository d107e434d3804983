package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/battleship"
	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/internal/repository"
	"github.com/gamesroomio/minigames-backend/internal/tictactoe"
)

func (that *Server) handleConnect(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	id, name := "", ""
	if payloadReq.Player != nil {
		id, name = payloadReq.Player.ID, payloadReq.Player.Name
	}

	player, err := that.uGame.GetOrCreatePlayer(ctx, id, name)
	if err != nil {
		log.Error("failed to get or create player", "error", err)

		return that.sendErrorResponse(sess, msg.Action, "failed to create a new player")
	}

	if sess.client != nil {
		that.hub.unregister(sess.playerID, sess.client)
	}

	sess.playerID = player.ID
	sess.client = that.hub.register(player.ID, sess.bufrw)

	log.Info("player connected", "player_id", player.ID)

	return that.sendResponse(sess, msg.Action, Payload{Player: player})
}

func (that *Server) handleNewGame(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	if sess.playerID == "" {
		return that.sendErrorResponse(sess, msg.Action, "connect first")
	}

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	record, err := that.uGame.StartGame(ctx, payloadReq.Kind, sess.playerID, payloadReq.OpponentID)
	if errors.Is(err, apperror.ErrGameAlreadyExists) || errors.Is(err, apperror.ErrSelfOpponent) || errors.Is(err, repository.ErrUnknownGameKind) {
		return that.sendErrorResponse(sess, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to start game", "error", err)

		return that.sendErrorResponse(sess, msg.Action, "failed to start the game")
	}

	return that.sendResponse(sess, msg.Action, Payload{Game: maskGame(record, sess.playerID)})
}

func (that *Server) handleGameTurn(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	if sess.playerID == "" {
		return that.sendErrorResponse(sess, msg.Action, "connect first")
	}

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	report, err := that.uGame.MakeTurn(ctx, sess.playerID, payloadReq.Move)
	if isTurnError(err) {
		return that.sendErrorResponse(sess, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to make turn", "error", err)

		return that.sendErrorResponse(sess, msg.Action, "failed to make the turn")
	}

	return that.sendResponse(sess, msg.Action, Payload{Report: report})
}

func (that *Server) handleGameLog(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameLog")

	if sess.playerID == "" {
		return that.sendErrorResponse(sess, msg.Action, "connect first")
	}

	pages, err := that.uGame.GameLog(ctx, sess.playerID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(sess, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to get game log", "error", err)

		return that.sendErrorResponse(sess, msg.Action, "failed to get the game log")
	}

	return that.sendResponse(sess, msg.Action, Payload{Pages: pages})
}

func (that *Server) handleGameLeave(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameLeave")

	if sess.playerID == "" {
		return that.sendErrorResponse(sess, msg.Action, "connect first")
	}

	err := that.uGame.AbandonGame(ctx, sess.playerID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(sess, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to abandon game", "error", err)

		return that.sendErrorResponse(sess, msg.Action, "failed to leave the game")
	}

	return that.sendResponse(sess, msg.Action, Payload{})
}

// isTurnError reports whether the error is the player's fault and should
// go back to them verbatim.
func isTurnError(err error) bool {
	if err == nil {
		return false
	}

	for _, known := range []error{
		apperror.ErrNoActiveGames,
		apperror.ErrGameIsNotStarted,
		apperror.ErrGameFinished,
		apperror.ErrNotYourTurn,
		apperror.ErrInvalidMoveSyntax,
		apperror.ErrAlreadyAttacked,
		apperror.ErrOutOfBounds,
		apperror.ErrInvalidColumn,
		apperror.ErrColumnFull,
		apperror.ErrCellOccupied,
		tictactoe.ErrInvalidCell,
	} {
		if errors.Is(err, known) {
			return true
		}
	}

	return false
}

func (that *Server) sendResponse(sess *session, action string, payload Payload) error {
	if sess.client != nil {
		return sess.client.send(action, payload)
	}

	return sendMessage(sess.bufrw, action, payload)
}

func (that *Server) sendErrorResponse(sess *session, action, message string) error {
	return that.sendResponse(sess, action, Payload{Error: message})
}

// maskGame hides the parts of a game state the requesting player must not
// see, which for battleship is the opponent's board and fleet.
func maskGame(record *repository.GameRecord, playerID string) *repository.GameRecord {
	if record.Kind != entity.GameBattleship || record.Battleship == nil {
		return record
	}

	game := *record.Battleship
	if game.Player1.Info.ID != playerID {
		game.Player1 = concealed(game.Player1)
	}
	if game.Player2.Info.ID != playerID {
		game.Player2 = concealed(game.Player2)
	}

	masked := *record
	masked.Battleship = &game

	return &masked
}

func concealed(player *battleship.Player) *battleship.Player {
	return &battleship.Player{Info: player.Info, Tracking: player.Tracking}
}
