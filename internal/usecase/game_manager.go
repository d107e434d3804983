package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/assets"
	"github.com/gamesroomio/minigames-backend/internal/battleship"
	"github.com/gamesroomio/minigames-backend/internal/connectfour"
	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/internal/eventlog"
	"github.com/gamesroomio/minigames-backend/internal/pkg"
	"github.com/gamesroomio/minigames-backend/internal/repository"
	"github.com/gamesroomio/minigames-backend/internal/tictactoe"
)

const logPageSize = 10

// openCellGlyph stands in for open cells in rendered board rows.
const openCellGlyph = "."

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *repository.GameRecord) error
	GetByID(ctx context.Context, id string) (*repository.GameRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultStore interface {
	Record(ctx context.Context, result repository.MatchResult) error
}

// Notifier receives game lifecycle callbacks as turns resolve. The
// transport layer plugs in here to push updates out to participants.
type Notifier interface {
	GameStarted(gameID, kind string, playerIDs []string)
	TurnAdvanced(gameID, nextPlayerID string)
	GameFinished(gameID, winnerID string, draw bool)
}

// NopNotifier discards all callbacks.
type NopNotifier struct{}

func (NopNotifier) GameStarted(_, _ string, _ []string) {}
func (NopNotifier) TurnAdvanced(_, _ string)            {}
func (NopNotifier) GameFinished(_, _ string, _ bool)    {}

// TurnReport is what one accepted turn produced, with the outcome field
// matching Kind set and an optional bot quip for flavor.
type TurnReport struct {
	GameID      string                   `json:"game_id"`
	Kind        string                   `json:"kind"`
	Battleship  *battleship.TurnOutcome  `json:"battleship,omitempty"`
	ConnectFour *connectfour.TurnOutcome `json:"connectfour,omitempty"`
	TicTacToe   *tictactoe.TurnOutcome   `json:"tictactoe,omitempty"`
	BoardRows   []string                 `json:"board_rows,omitempty"`
	BotQuip     string                   `json:"bot_quip,omitempty"`
}

type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	results    resultStore

	assets   *assets.Library
	notifier Notifier
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, results resultStore, library *assets.Library, notifier Notifier) *GameManager {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		results:    results,

		assets:   library,
		notifier: notifier,
	}
}

// GetOrCreatePlayer resolves a participant by id, creating a fresh one
// when the id is empty or unknown.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id, name string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		player = &entity.Player{ID: id, Name: name, Kind: entity.KindHuman}
		if err = that.updatePlayer(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to update player: %w", err)
		}

		return player, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if name != "" && player.Name != name {
		player.Name = name
		if err = that.updatePlayer(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to update player: %w", err)
		}
	}

	return player, nil
}

// StartGame creates a game of the given kind between the player and an
// opponent. An empty opponentID pairs the player against the bot. Each
// participant can be in at most one game at a time.
func (that *GameManager) StartGame(ctx context.Context, kind, playerID, opponentID string) (*repository.GameRecord, error) {
	player, err := that.GetOrCreatePlayer(ctx, playerID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.InGame() {
		return nil, fmt.Errorf("%w: player %s is in game %s", apperror.ErrGameAlreadyExists, player.ID, player.GameID)
	}

	if opponentID == player.ID {
		return nil, fmt.Errorf("%w: player %s", apperror.ErrSelfOpponent, player.ID)
	}

	gameID := pkg.GenerateGameID()

	var opponent *entity.Player
	if opponentID == "" {
		opponent = entity.NewBotPlayer("bot:" + gameID)
	} else {
		opponent, err = that.GetOrCreatePlayer(ctx, opponentID, "")
		if err != nil {
			return nil, fmt.Errorf("failed to get opponent by id: %w", err)
		}

		if opponent.InGame() {
			return nil, fmt.Errorf("%w: player %s is in game %s", apperror.ErrGameAlreadyExists, opponent.ID, opponent.GameID)
		}
	}

	record, err := that.createGame(gameID, kind, player, opponent)
	if err != nil {
		return nil, err
	}

	player.GameID, player.GameKind = gameID, kind
	opponent.GameID, opponent.GameKind = gameID, kind

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if !opponent.IsBot() {
		if err = that.updatePlayer(ctx, opponent); err != nil {
			return nil, fmt.Errorf("failed to update opponent: %w", err)
		}
	}

	if err = that.updateGame(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.notifier.GameStarted(gameID, kind, []string{player.ID, opponent.ID})
	that.logger.Info("game started", "game_id", gameID, "kind", kind, "player_id", player.ID, "opponent_id", opponent.ID)

	return record, nil
}

func (that *GameManager) createGame(gameID, kind string, player, opponent *entity.Player) (*repository.GameRecord, error) {
	record := &repository.GameRecord{ID: gameID, Kind: kind}

	switch kind {
	case entity.GameBattleship:
		game := battleship.NewGame(gameID, player, opponent)

		var names map[string][]string
		if that.assets != nil {
			names = that.assets.ShipNames
		}

		if err := game.Setup(names); err != nil {
			return nil, fmt.Errorf("failed to set up battleship game: %w", err)
		}

		record.Battleship = game
	case entity.GameConnectFour:
		game := connectfour.NewGame(gameID, player, opponent)
		game.Setup()
		record.ConnectFour = game
	case entity.GameTicTacToe:
		game := tictactoe.NewGame(gameID, player, opponent)
		game.Setup()
		record.TicTacToe = game
	default:
		return nil, fmt.Errorf("%w: %q", repository.ErrUnknownGameKind, kind)
	}

	return record, nil
}

// MakeTurn applies one raw move for the player's active game. The input
// grammar depends on the game kind: a coordinate like "B7" for
// battleship, a 1-based column for connect four, a 0-based cell for
// tic-tac-toe.
func (that *GameManager) MakeTurn(ctx context.Context, playerID, input string) (*TurnReport, error) {
	player, record, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	report := &TurnReport{GameID: record.ID, Kind: record.Kind}

	switch record.Kind {
	case entity.GameBattleship:
		outcome, err := record.Battleship.Attack(player.ID, input)
		if errors.Is(err, apperror.ErrInvalidMoveSyntax) || errors.Is(err, apperror.ErrAlreadyAttacked) {
			// rejected attempts still land in the event log
			if updateErr := that.updateGame(ctx, record); updateErr != nil {
				that.logger.Error("failed to update game", "error", updateErr, "game_id", record.ID)
			}

			return nil, err
		}

		if err != nil {
			return nil, err
		}

		report.Battleship = outcome
		report.BotQuip = that.battleshipQuip(outcome)
	case entity.GameConnectFour:
		column, err := strconv.Atoi(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMoveSyntax, input)
		}

		outcome, err := record.ConnectFour.Drop(player.ID, column)
		if err != nil {
			return nil, err
		}

		report.ConnectFour = outcome
		report.BoardRows = record.ConnectFour.Board.Rows(openCellGlyph)
		if len(outcome.BotDrops) > 0 {
			report.BotQuip = that.quip("bot_thinking")
		}
	case entity.GameTicTacToe:
		cell, err := strconv.Atoi(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMoveSyntax, input)
		}

		outcome, err := record.TicTacToe.MakeTurn(player.ID, cell)
		if err != nil {
			return nil, err
		}

		report.TicTacToe = outcome
		if len(outcome.BotMoves) > 0 {
			report.BotQuip = that.quip("bot_thinking")
		}
	default:
		return nil, fmt.Errorf("%w: %q", repository.ErrUnknownGameKind, record.Kind)
	}

	if record.IsFinished() {
		that.finishGame(ctx, record)
		report.BotQuip = that.finishQuip(record, report.BotQuip)

		return report, nil
	}

	if err = that.updateGame(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.notifier.TurnAdvanced(record.ID, that.nextPlayerID(report))

	return report, nil
}

// GameLog returns the player's active game log rendered as pages of
// human-readable lines.
func (that *GameManager) GameLog(ctx context.Context, playerID string) ([][]string, error) {
	_, record, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	log := record.EventLog()
	if log == nil {
		return nil, fmt.Errorf("%w: %q", repository.ErrUnknownGameKind, record.Kind)
	}

	pages := make([][]string, 0, (log.Len()+logPageSize-1)/logPageSize)
	for _, events := range log.Pages(logPageSize) {
		lines := make([]string, 0, len(events))
		for _, event := range events {
			lines = append(lines, eventlog.Describe(event))
		}

		pages = append(pages, lines)
	}

	return pages, nil
}

// AbandonGame forfeits the player's active game; the opponent wins.
func (that *GameManager) AbandonGame(ctx context.Context, playerID string) error {
	player, record, err := that.activeGame(ctx, playerID)
	if err != nil {
		return err
	}

	var winner *entity.Player
	for _, participant := range record.Players() {
		if participant.ID != player.ID {
			winner = participant
		}
	}

	result := repository.MatchResult{
		GameID: record.ID,
		Kind:   record.Kind,
	}
	result.Player1, result.Player2 = that.participantNames(record)
	if winner != nil {
		result.Winner = resultName(winner)
	}

	if err = that.results.Record(ctx, result); err != nil {
		that.logger.Error("failed to record match result", "error", err, "game_id", record.ID)
	}

	that.deleteGame(ctx, record)

	winnerID := ""
	if winner != nil {
		winnerID = winner.ID
	}
	that.notifier.GameFinished(record.ID, winnerID, false)
	that.logger.Info("game abandoned", "game_id", record.ID, "player_id", player.ID)

	return nil
}

// activeGame resolves the player's bound game, or ErrNoActiveGames.
func (that *GameManager) activeGame(ctx context.Context, playerID string) (*entity.Player, *repository.GameRecord, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if !player.InGame() {
		return nil, nil, apperror.ErrNoActiveGames
	}

	record, err := that.gameRepo.GetByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		// stale binding, the game is already gone
		player.ReleaseFromGame()
		if updateErr := that.updatePlayer(ctx, player); updateErr != nil {
			that.logger.Error("failed to release player", "error", updateErr, "player_id", player.ID)
		}

		return nil, nil, apperror.ErrNoActiveGames
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return player, record, nil
}

func (that *GameManager) finishGame(ctx context.Context, record *repository.GameRecord) {
	result := repository.MatchResult{
		GameID: record.ID,
		Kind:   record.Kind,
	}
	result.Player1, result.Player2 = that.participantNames(record)

	winnerID, draw := finalOutcome(record)
	for _, participant := range record.Players() {
		if participant.ID == winnerID {
			result.Winner = resultName(participant)
		}
	}
	result.Draw = draw

	if err := that.results.Record(ctx, result); err != nil {
		that.logger.Error("failed to record match result", "error", err, "game_id", record.ID)
	}

	that.deleteGame(ctx, record)
	that.notifier.GameFinished(record.ID, winnerID, draw)
}

func (that *GameManager) deleteGame(ctx context.Context, record *repository.GameRecord) {
	log := that.logger.With("method", "deleteGame")

	if err := that.gameRepo.DeleteByID(ctx, record.ID); err != nil {
		log.Error("failed to delete game", "error", err, "game_id", record.ID)
	}

	for _, participant := range record.Players() {
		if participant.IsBot() {
			continue
		}

		participant.ReleaseFromGame()
		if err := that.playerRepo.CreateOrUpdate(ctx, participant); err != nil {
			log.Error("failed to update player", "error", err, "player_id", participant.ID)
		}
	}

	log.Info("game deleted", "game_id", record.ID)
}

func (that *GameManager) createPlayer(ctx context.Context, name string) (*entity.Player, error) {
	player := &entity.Player{
		ID:   pkg.GenerateNewSessionID(),
		Name: name,
		Kind: entity.KindHuman,
	}

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, record *repository.GameRecord) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, record); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) nextPlayerID(report *TurnReport) string {
	switch report.Kind {
	case entity.GameBattleship:
		return report.Battleship.NextID
	case entity.GameConnectFour:
		return report.ConnectFour.NextID
	case entity.GameTicTacToe:
		return report.TicTacToe.NextID
	default:
		return ""
	}
}

func (that *GameManager) battleshipQuip(outcome *battleship.TurnOutcome) string {
	if len(outcome.BotAttacks) == 0 {
		return ""
	}

	last := outcome.BotAttacks[len(outcome.BotAttacks)-1]
	switch {
	case last.Sunk:
		return that.quip("bot_sank")
	case last.Hit:
		return that.quip("bot_hit")
	default:
		return that.quip("bot_miss")
	}
}

func (that *GameManager) finishQuip(record *repository.GameRecord, current string) string {
	winnerID, draw := finalOutcome(record)
	if draw {
		return current
	}

	for _, participant := range record.Players() {
		if participant.ID != winnerID {
			continue
		}

		if participant.IsBot() {
			return that.quip("bot_won")
		}

		if that.hasBot(record) {
			return that.quip("bot_lost")
		}
	}

	return current
}

func (that *GameManager) hasBot(record *repository.GameRecord) bool {
	for _, participant := range record.Players() {
		if participant.IsBot() {
			return true
		}
	}

	return false
}

func (that *GameManager) quip(key string) string {
	if that.assets == nil {
		return ""
	}

	return that.assets.RandomQuip(key)
}

func (that *GameManager) participantNames(record *repository.GameRecord) (string, string) {
	players := record.Players()
	if len(players) != 2 {
		return "", ""
	}

	return resultName(players[0]), resultName(players[1])
}

func finalOutcome(record *repository.GameRecord) (winnerID string, draw bool) {
	switch record.Kind {
	case entity.GameBattleship:
		return record.Battleship.WinnerID, false
	case entity.GameConnectFour:
		return record.ConnectFour.WinnerID, record.ConnectFour.Draw
	case entity.GameTicTacToe:
		return record.TicTacToe.WinnerID, record.TicTacToe.Draw
	default:
		return "", false
	}
}

func resultName(player *entity.Player) string {
	if player.Name != "" {
		return player.Name
	}

	return player.ID
}
