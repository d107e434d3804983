package eventlog

import (
	"fmt"
	"strings"

	"github.com/gamesroomio/minigames-backend/internal/board"
)

type EventType string

const (
	EventStartGame     EventType = "start_game"
	EventAttackHit     EventType = "attack_hit"
	EventAttackMiss    EventType = "attack_miss"
	EventSank          EventType = "sank"
	EventInvalidAttack EventType = "invalid_attack"
	EventNextTurn      EventType = "next_turn"
	EventFinishedGame  EventType = "finished_game"
	EventDroppedPiece  EventType = "dropped_piece"
	EventMarkedCell    EventType = "marked_cell"
)

// Event is a single immutable record in a game's log. Participants are
// ordered: the first entry is the acting player, the second the opponent.
type Event struct {
	ID           int           `json:"id"`
	Participants []string      `json:"participants"`
	Type         EventType     `json:"type"`
	Cells        []board.Coord `json:"cells,omitempty"`
}

// Log is an append-only ordered record of game events with strictly
// increasing ids. Events are never mutated or removed.
type Log struct {
	Events []Event `json:"events"`
	NextID int     `json:"next_id"`
}

func New() *Log {
	return &Log{NextID: 1}
}

// Add appends a new event and returns it.
func (that *Log) Add(participants []string, eventType EventType, cells ...board.Coord) Event {
	event := Event{
		ID:           that.NextID,
		Participants: participants,
		Type:         eventType,
		Cells:        cells,
	}

	that.Events = append(that.Events, event)
	that.NextID++

	return event
}

func (that *Log) Len() int {
	return len(that.Events)
}

// Last returns the most recent event, if any.
func (that *Log) Last() (Event, bool) {
	if len(that.Events) == 0 {
		return Event{}, false
	}

	return that.Events[len(that.Events)-1], true
}

// Pages slices the log into ordered groups of at most perPage events
// for paginated display.
func (that *Log) Pages(perPage int) [][]Event {
	if perPage <= 0 || len(that.Events) == 0 {
		return nil
	}

	pages := make([][]Event, 0, (len(that.Events)+perPage-1)/perPage)
	for start := 0; start < len(that.Events); start += perPage {
		end := start + perPage
		if end > len(that.Events) {
			end = len(that.Events)
		}
		pages = append(pages, that.Events[start:end])
	}

	return pages
}

// Describe renders a stable textual description of the event.
func Describe(event Event) string {
	actor, opponent := participantPair(event.Participants)

	var text string
	switch event.Type {
	case EventStartGame:
		text = fmt.Sprintf("a new game started between %s and %s", actor, opponent)
	case EventAttackHit:
		text = fmt.Sprintf("%s hit %s's ship by attacking %s", actor, opponent, cellList(event.Cells))
	case EventAttackMiss:
		text = fmt.Sprintf("%s missed by attacking %s", actor, cellList(event.Cells))
	case EventSank:
		text = fmt.Sprintf("%s sank %s's ship at %s", actor, opponent, cellList(event.Cells))
	case EventInvalidAttack:
		text = fmt.Sprintf("%s input an invalid attack", actor)
	case EventNextTurn:
		text = fmt.Sprintf("it is %s's turn", actor)
	case EventFinishedGame:
		text = fmt.Sprintf("%s won the game against %s", actor, opponent)
	case EventDroppedPiece:
		text = fmt.Sprintf("%s dropped a piece at %s", actor, cellList(event.Cells))
	case EventMarkedCell:
		text = fmt.Sprintf("%s marked the cell at %s", actor, cellList(event.Cells))
	default:
		text = fmt.Sprintf("unknown event %q", event.Type)
	}

	return fmt.Sprintf("%d) %s.", event.ID, text)
}

func participantPair(participants []string) (string, string) {
	actor, opponent := "?", "?"
	if len(participants) > 0 {
		actor = participants[0]
	}
	if len(participants) > 1 {
		opponent = participants[1]
	}

	return actor, opponent
}

func cellList(cells []board.Coord) string {
	if len(cells) == 0 {
		return "(?)"
	}

	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		parts = append(parts, cell.String())
	}

	return strings.Join(parts, ", ")
}
