package battleship

import (
	"fmt"
	"math/rand"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/board"
	"github.com/gamesroomio/minigames-backend/internal/entity"
	"github.com/gamesroomio/minigames-backend/internal/eventlog"
)

// AttackResult reports the resolution of a single attack.
type AttackResult struct {
	AttackerID string      `json:"attacker_id"`
	Move       board.Coord `json:"move"`
	Hit        bool        `json:"hit"`
	Sunk       bool        `json:"sunk"`
	SunkShip   string      `json:"sunk_ship,omitempty"`
}

// TurnOutcome is what one accepted move produced: the attack itself, any
// bot replies that ran synchronously afterwards, and the resulting state.
type TurnOutcome struct {
	Attack     AttackResult   `json:"attack"`
	BotAttacks []AttackResult `json:"bot_attacks,omitempty"`
	Status     string         `json:"status"`
	NextID     string         `json:"next_id,omitempty"`
	WinnerID   string         `json:"winner_id,omitempty"`
}

// Game holds the full state of one battleship match. A game is owned and
// mutated by a single turn-handling flow; there is no internal locking.
type Game struct {
	ID         string        `json:"id"`
	Player1    *Player       `json:"player_1"`
	Player2    *Player       `json:"player_2"`
	AttackerID string        `json:"attacker_id"`
	Status     string        `json:"status"`
	WinnerID   string        `json:"winner_id,omitempty"`
	Log        *eventlog.Log `json:"log"`
}

func NewGame(id string, playerOne, playerTwo *entity.Player) *Game {
	return &Game{
		ID:      id,
		Player1: NewPlayer(playerOne),
		Player2: NewPlayer(playerTwo),
		Status:  entity.StatusSetup,
		Log:     eventlog.New(),
	}
}

// Setup randomly places both fleets, names the ships, and opens the game
// with player 1 attacking first.
func (that *Game) Setup(shipNames map[string][]string) error {
	if err := RandomPlace(that.Player1.Fleet, that.Player1.Board); err != nil {
		return fmt.Errorf("player 1 setup: %w", err)
	}

	if err := RandomPlace(that.Player2.Fleet, that.Player2.Board); err != nil {
		return fmt.Errorf("player 2 setup: %w", err)
	}

	if shipNames != nil {
		that.Player1.SetShipNames(shipNames)
		that.Player2.SetShipNames(shipNames)
	}

	that.AttackerID = that.Player1.Info.ID
	that.Status = entity.StatusInProgress
	that.Log.Add(that.participants(), eventlog.EventStartGame)

	return nil
}

// PlayerByID returns the game participant with the given id, if any.
func (that *Game) PlayerByID(id string) *Player {
	if that.Player1.Info.ID == id {
		return that.Player1
	}
	if that.Player2.Info.ID == id {
		return that.Player2
	}

	return nil
}

// Opponent returns the other participant.
func (that *Game) Opponent(id string) *Player {
	if that.Player1.Info.ID == id {
		return that.Player2
	}

	return that.Player1
}

func (that *Game) IsFinished() bool {
	return that.Status == entity.StatusFinished
}

// Attack resolves one move by the current attacker, then advances the turn.
// If the new attacker is a bot its reply is computed and resolved before
// returning. The error cases never leave the boards half-updated.
func (that *Game) Attack(playerID, move string) (*TurnOutcome, error) {
	if err := that.confirmInProgress(); err != nil {
		return nil, err
	}

	if playerID != that.AttackerID {
		return nil, apperror.ErrNotYourTurn
	}

	attacker := that.PlayerByID(playerID)
	defender := that.Opponent(playerID)

	coord, err := ParseMove(move)
	if err != nil {
		that.Log.Add(that.turnParticipants(), eventlog.EventInvalidAttack)
		return nil, err
	}

	if that.alreadyAttacked(attacker, coord) {
		that.Log.Add(that.turnParticipants(), eventlog.EventInvalidAttack, coord)
		return nil, fmt.Errorf("%w: %s", apperror.ErrAlreadyAttacked, move)
	}

	outcome := &TurnOutcome{
		Attack: that.resolveAttack(attacker, defender, coord),
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

// alreadyAttacked checks the attacker's own tracking board: a position may
// only be attacked once.
func (that *Game) alreadyAttacked(attacker *Player, coord board.Coord) bool {
	state, err := attacker.Tracking.Get(coord.Row, coord.Col)
	if err != nil {
		return false
	}

	return state == CellHit || state == CellMiss
}

// resolveAttack marks hit or miss on both boards and damages the struck
// ship. The coordinate is validated before any cell is written.
func (that *Game) resolveAttack(attacker, defender *Player, coord board.Coord) AttackResult {
	result := AttackResult{
		AttackerID: attacker.Info.ID,
		Move:       coord,
	}

	state, _ := defender.Board.Get(coord.Row, coord.Col)
	if state != CellShip {
		_ = attacker.Tracking.Set(coord.Row, coord.Col, CellMiss)
		that.Log.Add(that.turnParticipants(), eventlog.EventAttackMiss, coord)
		return result
	}

	result.Hit = true
	_ = attacker.Tracking.Set(coord.Row, coord.Col, CellHit)
	_ = defender.Board.Set(coord.Row, coord.Col, CellHit)
	that.Log.Add(that.turnParticipants(), eventlog.EventAttackHit, coord)

	ship := defender.ShipAt(coord.Row, coord.Col)
	if ship == nil {
		return result
	}

	_ = ship.TakeDamageAt(coord.Row, coord.Col)
	if ship.IsSunk() {
		result.Sunk = true
		result.SunkShip = ship.Name
		that.Log.Add(that.turnParticipants(), eventlog.EventSank, ship.Segments...)
	}

	return result
}

// endTurn checks the terminal condition and either closes the game or
// passes the turn; a bot attacker then moves immediately.
func (that *Game) endTurn(outcome *TurnOutcome) {
	if that.Player1.IsDefeated() || that.Player2.IsDefeated() {
		that.finish(outcome)
		return
	}

	that.AttackerID = that.Opponent(that.AttackerID).Info.ID
	that.Log.Add(that.turnParticipants(), eventlog.EventNextTurn)

	next := that.PlayerByID(that.AttackerID)
	if !next.Info.IsBot() {
		outcome.Status = that.Status
		outcome.NextID = that.AttackerID
		return
	}

	outcome.BotAttacks = append(outcome.BotAttacks, that.botAttack(next))
	that.endTurn(outcome)
}

func (that *Game) finish(outcome *TurnOutcome) {
	that.Status = entity.StatusFinished
	that.WinnerID = that.AttackerID
	that.Log.Add(that.turnParticipants(), eventlog.EventFinishedGame)

	outcome.Status = that.Status
	outcome.WinnerID = that.WinnerID
}

// botAttack samples random coordinates until one passes the same validity
// check a human move goes through, then resolves it the same way.
func (that *Game) botAttack(bot *Player) AttackResult {
	defender := that.Opponent(bot.Info.ID)

	for {
		coord := board.Coord{
			Row: rand.Intn(BoardSize), //nolint:gosec // gameplay randomness
			Col: rand.Intn(BoardSize), //nolint:gosec // gameplay randomness
		}
		if that.alreadyAttacked(bot, coord) {
			continue
		}

		return that.resolveAttack(bot, defender, coord)
	}
}

func (that *Game) participants() []string {
	return []string{that.Player1.Info.Name, that.Player2.Info.Name}
}

// turnParticipants orders participants attacker-first for event records.
func (that *Game) turnParticipants() []string {
	attacker := that.PlayerByID(that.AttackerID)
	defender := that.Opponent(that.AttackerID)

	return []string{attacker.Info.Name, defender.Info.Name}
}
