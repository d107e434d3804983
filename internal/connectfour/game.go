package connectfour

import (
	"fmt"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/board"
	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/internal/eventlog"
)

// BoardSize is the fixed grid size; pieces fall to the lowest open row.
const BoardSize = 8

const (
	SymbolBlue = "B"
	SymbolRed  = "R"

	ColorBlue = "blue"
	ColorRed  = "red"
)

// connectLength is how many aligned pieces win the game.
const connectLength = 4

// DropResult reports where one piece landed.
type DropResult struct {
	PlayerID string      `json:"player_id"`
	Cell     board.Coord `json:"cell"`
}

// TurnOutcome is the product of one accepted drop, including any bot
// replies resolved synchronously afterwards.
type TurnOutcome struct {
	Drop     DropResult   `json:"drop"`
	BotDrops []DropResult `json:"bot_drops,omitempty"`
	Status   string       `json:"status"`
	NextID   string       `json:"next_id,omitempty"`
	WinnerID string       `json:"winner_id,omitempty"`
	Draw     bool         `json:"draw,omitempty"`
}

// Game holds one connect-four match over a single shared board.
type Game struct {
	ID        string         `json:"id"`
	Player1   *entity.Player `json:"player_1"`
	Player2   *entity.Player `json:"player_2"`
	Board     *board.Board   `json:"board"`
	CurrentID string         `json:"current_id"`
	Status    string         `json:"status"`
	WinnerID  string         `json:"winner_id,omitempty"`
	Draw      bool           `json:"draw,omitempty"`
	Log       *eventlog.Log  `json:"log"`
}

func NewGame(id string, playerOne, playerTwo *entity.Player) *Game {
	playerOne.Mark, playerOne.Color = SymbolBlue, ColorBlue
	playerTwo.Mark, playerTwo.Color = SymbolRed, ColorRed

	return &Game{
		ID:      id,
		Player1: playerOne,
		Player2: playerTwo,
		Board:   board.New(BoardSize),
		Status:  entity.StatusSetup,
		Log:     eventlog.New(),
	}
}

// Setup opens the game with player 1 to move.
func (that *Game) Setup() {
	that.CurrentID = that.Player1.ID
	that.Status = entity.StatusInProgress
	that.Log.Add([]string{that.Player1.Name, that.Player2.Name}, eventlog.EventStartGame)
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

func (that *Game) IsFinished() bool {
	return that.Status == entity.StatusFinished
}

// NextOpenRow returns the lowest open row of the column, scanning from the
// bottom up.
func NextOpenRow(b *board.Board, col int) (int, error) {
	if col < 0 || col >= b.Size {
		return 0, fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, col)
	}

	for row := b.Size - 1; row >= 0; row-- {
		if b.Cells[row][col] == board.Open {
			return row, nil
		}
	}

	return 0, fmt.Errorf("%w: %d", apperror.ErrColumnFull, col)
}

// IsWinner scans every position for four consecutive cells of the symbol
// along a row, a column, or either diagonal.
func IsWinner(b *board.Board, symbol string) bool {
	directions := []board.Coord{
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
		{Row: 1, Col: 1},
		{Row: 1, Col: -1},
	}

	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			for _, dir := range directions {
				if runMatches(b, row, col, dir, symbol) {
					return true
				}
			}
		}
	}

	return false
}

func runMatches(b *board.Board, row, col int, dir board.Coord, symbol string) bool {
	for i := 0; i < connectLength; i++ {
		cellRow, cellCol := row+dir.Row*i, col+dir.Col*i
		if !b.Contains(cellRow, cellCol) || b.Cells[cellRow][cellCol] != symbol {
			return false
		}
	}

	return true
}

// Drop resolves one move by the current player. The column is 1-based as
// submitted externally. A bot opponent replies before Drop returns.
func (that *Game) Drop(playerID string, column int) (*TurnOutcome, error) {
	if err := that.confirmInProgress(); err != nil {
		return nil, err
	}

	if playerID != that.CurrentID {
		return nil, apperror.ErrNotYourTurn
	}

	player := that.PlayerByID(playerID)

	cell, err := that.dropPiece(player, column-1)
	if err != nil {
		return nil, err
	}

	outcome := &TurnOutcome{
		Drop: DropResult{PlayerID: playerID, Cell: cell},
	}

	that.endTurn(outcome)

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

// dropPiece validates the column and commits the piece; nothing is
// written when validation fails.
func (that *Game) dropPiece(player *entity.Player, col int) (board.Coord, error) {
	row, err := NextOpenRow(that.Board, col)
	if err != nil {
		return board.Coord{}, err
	}

	cell := board.Coord{Row: row, Col: col}
	_ = that.Board.Set(row, col, player.Mark)
	that.Log.Add(that.turnParticipants(), eventlog.EventDroppedPiece, cell)

	return cell, nil
}

// endTurn checks for a win or a full board, otherwise passes the turn;
// a bot then computes and resolves its move immediately.
func (that *Game) endTurn(outcome *TurnOutcome) {
	current := that.PlayerByID(that.CurrentID)

	if IsWinner(that.Board, current.Mark) {
		that.Status = entity.StatusFinished
		that.WinnerID = current.ID
		that.Log.Add(that.turnParticipants(), eventlog.EventFinishedGame)

		outcome.Status = that.Status
		outcome.WinnerID = that.WinnerID
		return
	}

	if that.Board.IsFull() {
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

	outcome.BotDrops = append(outcome.BotDrops, that.botDrop(next))
	that.endTurn(outcome)
}

func (that *Game) botDrop(bot *entity.Player) DropResult {
	opponent := that.Opponent(bot.ID)

	col := ChooseColumn(that.Board, bot.Mark, opponent.Mark)
	row, _ := NextOpenRow(that.Board, col)

	cell := board.Coord{Row: row, Col: col}
	_ = that.Board.Set(row, col, bot.Mark)
	that.Log.Add(that.turnParticipants(), eventlog.EventDroppedPiece, cell)

	return DropResult{PlayerID: bot.ID, Cell: cell}
}

// turnParticipants orders participants current-player-first.
func (that *Game) turnParticipants() []string {
	current := that.PlayerByID(that.CurrentID)
	opponent := that.Opponent(that.CurrentID)

	return []string{current.Name, opponent.Name}
}
