package tictactoe

import (
	"fmt"
	"math/rand"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/board"
	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/internal/eventlog"
)

const (
	MarkX = "X"
	MarkO = "O"

	boardCells = 9
)

var (
	ErrInvalidCell = fmt.Errorf("invalid cell index")

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// MoveResult reports one mark placed on the board.
type MoveResult struct {
	PlayerID string `json:"player_id"`
	Cell     int    `json:"cell"`
}

// TurnOutcome is the product of one accepted move, including any bot
// reply resolved synchronously afterwards.
type TurnOutcome struct {
	Move     MoveResult   `json:"move"`
	BotMoves []MoveResult `json:"bot_moves,omitempty"`
	Status   string       `json:"status"`
	NextID   string       `json:"next_id,omitempty"`
	WinnerID string       `json:"winner_id,omitempty"`
	Draw     bool         `json:"draw,omitempty"`
}

// Game holds one tic-tac-toe match on a flat 3x3 board, cells 0-8.
type Game struct {
	ID        string              `json:"id"`
	Player1   *entity.Player      `json:"player_1"`
	Player2   *entity.Player      `json:"player_2"`
	Board     [boardCells]string  `json:"board"`
	CurrentID string              `json:"current_id"`
	Status    string              `json:"status"`
	WinnerID  string              `json:"winner_id,omitempty"`
	Draw      bool                `json:"draw,omitempty"`
	Log       *eventlog.Log       `json:"log"`
}

func NewGame(id string, playerOne, playerTwo *entity.Player) *Game {
	return &Game{
		ID:      id,
		Player1: playerOne,
		Player2: playerTwo,
		Status:  entity.StatusSetup,
		Log:     eventlog.New(),
	}
}

// Setup assigns marks and opens the game with X to move. Against a bot
// the marks are shuffled, and a bot holding X opens before Setup returns.
func (that *Game) Setup() *TurnOutcome {
	that.Player1.Mark, that.Player2.Mark = MarkX, MarkO
	if that.Player2.IsBot() && rand.Intn(2) == 0 { //nolint:gosec // mark shuffle only
		that.Player1.Mark, that.Player2.Mark = MarkO, MarkX
	}

	that.CurrentID = that.playerByMark(MarkX).ID
	that.Status = entity.StatusInProgress
	that.Log.Add([]string{that.Player1.Name, that.Player2.Name}, eventlog.EventStartGame)

	outcome := &TurnOutcome{Status: that.Status, NextID: that.CurrentID}
	if current := that.PlayerByID(that.CurrentID); current.IsBot() {
		outcome.BotMoves = append(outcome.BotMoves, that.botMove(current))
		that.advanceTurn(outcome)
	}

	return outcome
}

func (that *Game) PlayerByID(id string) *entity.Player {
	if that.Player1.ID == id {
		return that.Player1
	}
	if that.Player2.ID == id {
		return that.Player2
	}

	return nil
}

func (that *Game) Opponent(id string) *entity.Player {
	if that.Player1.ID == id {
		return that.Player2
	}

	return that.Player1
}

func (that *Game) playerByMark(mark string) *entity.Player {
	if that.Player1.Mark == mark {
		return that.Player1
	}

	return that.Player2
}

func (that *Game) IsFinished() bool {
	return that.Status == entity.StatusFinished
}

// MakeTurn resolves one move by the current player on the 0-indexed cell,
// then advances the turn; a bot opponent replies before returning.
func (that *Game) MakeTurn(playerID string, cell int) (*TurnOutcome, error) {
	if err := that.confirmInProgress(); err != nil {
		return nil, err
	}

	if playerID != that.CurrentID {
		return nil, apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= boardCells {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCell, cell)
	}

	if that.Board[cell] != board.Open {
		return nil, fmt.Errorf("%w: %d", apperror.ErrCellOccupied, cell)
	}

	player := that.PlayerByID(playerID)
	that.mark(player, cell)

	outcome := &TurnOutcome{
		Move: MoveResult{PlayerID: playerID, Cell: cell},
	}

	that.advanceTurn(outcome)

	return outcome, nil
}

func (that *Game) confirmInProgress() error {
	switch that.Status {
	case entity.StatusSetup:
		return apperror.ErrGameIsNotStarted
	case entity.StatusFinished:
		return apperror.ErrGameFinished
	default:
		return nil
	}
}

func (that *Game) mark(player *entity.Player, cell int) {
	that.Board[cell] = player.Mark
	that.Log.Add(that.turnParticipants(), eventlog.EventMarkedCell, cellCoord(cell))
}

// advanceTurn checks the terminal condition, otherwise passes the turn;
// a bot then moves immediately.
func (that *Game) advanceTurn(outcome *TurnOutcome) {
	switch winner := that.determineResult(); {
	case winner == MarkX || winner == MarkO:
		that.Status = entity.StatusFinished
		that.WinnerID = that.playerByMark(winner).ID
		that.CurrentID = that.WinnerID
		that.Log.Add(that.turnParticipants(), eventlog.EventFinishedGame)

		outcome.Status = that.Status
		outcome.WinnerID = that.WinnerID
		return
	case winner == "draw":
		that.Status = entity.StatusFinished
		that.Draw = true
		that.Log.Add(that.turnParticipants(), eventlog.EventFinishedGame)

		outcome.Status = that.Status
		outcome.Draw = true
		return
	}

	that.CurrentID = that.Opponent(that.CurrentID).ID
	that.Log.Add(that.turnParticipants(), eventlog.EventNextTurn)

	next := that.PlayerByID(that.CurrentID)
	if !next.IsBot() {
		outcome.Status = that.Status
		outcome.NextID = that.CurrentID
		return
	}

	outcome.BotMoves = append(outcome.BotMoves, that.botMove(next))
	that.advanceTurn(outcome)
}

// determineResult returns the winning mark, "draw" on a full board, or ""
// while the game continues.
func (that *Game) determineResult() string {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != board.Open && a == b && b == c {
			return a
		}
	}

	for _, cell := range that.Board {
		if cell == board.Open {
			return ""
		}
	}

	return "draw"
}

// botMove picks a uniformly random open cell.
func (that *Game) botMove(bot *entity.Player) MoveResult {
	open := make([]int, 0, boardCells)
	for cell, state := range that.Board {
		if state == board.Open {
			open = append(open, cell)
		}
	}

	cell := open[rand.Intn(len(open))] //nolint:gosec // gameplay randomness
	that.mark(bot, cell)

	return MoveResult{PlayerID: bot.ID, Cell: cell}
}

func (that *Game) turnParticipants() []string {
	current := that.PlayerByID(that.CurrentID)
	opponent := that.Opponent(that.CurrentID)

	return []string{current.Name, opponent.Name}
}

func cellCoord(cell int) board.Coord {
	return board.Coord{Row: cell / 3, Col: cell % 3}
}
