package eventlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesroomio/minigames-backend/internal/board"
)

func TestLog_Add(t *testing.T) {
	// Given: an empty log
	log := New()

	// When: appending three events
	first := log.Add([]string{"alice", "bob"}, EventStartGame)
	second := log.Add([]string{"alice", "bob"}, EventAttackMiss, board.Coord{Row: 0, Col: 0})
	third := log.Add([]string{"bob", "alice"}, EventNextTurn)

	// Then: ids are strictly increasing and order is preserved
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 3, third.ID)
	require.Equal(t, 3, log.Len())

	last, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, EventNextTurn, last.Type)
}

func TestLog_Pages(t *testing.T) {
	t.Run("Splits events into ordered pages", func(t *testing.T) {
		// Given: a log with 25 events
		log := New()
		for i := 0; i < 25; i++ {
			log.Add([]string{"alice", "bob"}, EventAttackMiss, board.Coord{Row: i % 10, Col: i % 10})
		}

		// When: paginating 10 per page
		pages := log.Pages(10)

		// Then: three pages with the remainder on the last one
		require.Len(t, pages, 3)
		assert.Len(t, pages[0], 10)
		assert.Len(t, pages[1], 10)
		assert.Len(t, pages[2], 5)
		assert.Equal(t, 1, pages[0][0].ID)
		assert.Equal(t, 25, pages[2][4].ID)
	})

	t.Run("Empty log has no pages", func(t *testing.T) {
		assert.Nil(t, New().Pages(10))
	})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name:  "attack hit",
			event: Event{ID: 4, Participants: []string{"alice", "bob"}, Type: EventAttackHit, Cells: []board.Coord{{Row: 2, Col: 5}}},
			want:  "4) alice hit bob's ship by attacking (2, 5).",
		},
		{
			name:  "sank with multiple cells",
			event: Event{ID: 9, Participants: []string{"alice", "bob"}, Type: EventSank, Cells: []board.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
			want:  "9) alice sank bob's ship at (0, 0), (0, 1).",
		},
		{
			name:  "finished game",
			event: Event{ID: 30, Participants: []string{"bob", "alice"}, Type: EventFinishedGame},
			want:  "30) bob won the game against alice.",
		},
		{
			name:  "next turn",
			event: Event{ID: 2, Participants: []string{"bob", "alice"}, Type: EventNextTurn},
			want:  "2) it is bob's turn.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.event))
		})
	}
}
