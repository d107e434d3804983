package battleship

import (
	"fmt"
	"regexp"

	"github.com/gamesroomio/minigames-backend/internal/apperror"
	"github.com/gamesroomio/minigames-backend/internal/board"
)

// movePattern accepts a letter A-J (case-insensitive) immediately followed
// by a number 1-10, nothing else.
var movePattern = regexp.MustCompile(`^[A-Ja-j](10|[1-9])$`)

// ParseMove turns a move string like "B5" into a 0-indexed coordinate:
// the letter is the row (A=0), the number minus one is the column.
func ParseMove(move string) (board.Coord, error) {
	if !movePattern.MatchString(move) {
		return board.Coord{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMoveSyntax, move)
	}

	letter := move[0]
	if letter >= 'a' {
		letter -= 'a' - 'A'
	}

	col := int(move[1] - '0')
	if len(move) == 3 {
		col = 10
	}

	return board.Coord{Row: int(letter - 'A'), Col: col - 1}, nil
}

// FormatMove renders a coordinate back into the move grammar.
func FormatMove(coord board.Coord) string {
	return fmt.Sprintf("%c%d", 'A'+rune(coord.Row), coord.Col+1)
}
