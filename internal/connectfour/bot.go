package connectfour

import (
	"math/rand"

	"github.com/gamesroomio/minigames-backend/internal/board"
)

// ChooseColumn picks the bot's next column (0-based) in strict priority
// order: win immediately, block the opponent's immediate win, maximize
// the local cluster around the drop, or a random open column. Full
// columns are skipped at every step.
func ChooseColumn(b *board.Board, symbol, opponent string) int {
	if col, ok := findWinningColumn(b, symbol); ok {
		return col
	}

	if col, ok := findWinningColumn(b, opponent); ok {
		return col
	}

	if col, ok := bestClusterColumn(b, symbol); ok {
		return col
	}

	return randomOpenColumn(b)
}

// findWinningColumn simulates dropping the symbol in each column in
// ascending order and reports the first column that wins outright.
func findWinningColumn(b *board.Board, symbol string) (int, bool) {
	for col := 0; col < b.Size; col++ {
		row, err := NextOpenRow(b, col)
		if err != nil {
			continue
		}

		b.Cells[row][col] = symbol
		won := IsWinner(b, symbol)
		b.Cells[row][col] = board.Open

		if won {
			return col, true
		}
	}

	return 0, false
}

// bestClusterColumn picks the open column whose drop touches the largest
// cluster of the bot's own pieces; ties keep the lowest column.
func bestClusterColumn(b *board.Board, symbol string) (int, bool) {
	bestCol, bestScore := 0, -1

	for col := 0; col < b.Size; col++ {
		row, err := NextOpenRow(b, col)
		if err != nil {
			continue
		}

		b.Cells[row][col] = symbol
		score := clusterScore(b, row, col, symbol)
		b.Cells[row][col] = board.Open

		if score > bestScore {
			bestScore = score
			bestCol = col
		}
	}

	return bestCol, bestScore >= 0
}

// clusterScore counts same-symbol cells reachable from the dropped cell
// by extending along the four line directions, in both senses.
func clusterScore(b *board.Board, row, col int, symbol string) int {
	directions := []board.Coord{
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
		{Row: 1, Col: 1},
		{Row: 1, Col: -1},
	}

	score := 0
	for _, dir := range directions {
		score += countRun(b, row, col, dir.Row, dir.Col, symbol)
		score += countRun(b, row, col, -dir.Row, -dir.Col, symbol)
	}

	return score
}

func countRun(b *board.Board, row, col, dRow, dCol int, symbol string) int {
	count := 0
	cellRow, cellCol := row+dRow, col+dCol
	for b.Contains(cellRow, cellCol) && b.Cells[cellRow][cellCol] == symbol {
		count++
		cellRow += dRow
		cellCol += dCol
	}

	return count
}

func randomOpenColumn(b *board.Board) int {
	open := make([]int, 0, b.Size)
	for col := 0; col < b.Size; col++ {
		if b.Cells[0][col] == board.Open {
			open = append(open, col)
		}
	}

	if len(open) == 0 {
		return -1
	}

	return open[rand.Intn(len(open))] //nolint:gosec // gameplay randomness
}
