package repository

import (
	"context"
	"database/sql"
	"fmt"

	// register the pure-Go SQLite driver with database/sql.
	_ "modernc.org/sqlite"
)

// MatchResult is one finished game's outcome.
type MatchResult struct {
	GameID  string
	Kind    string
	Player1 string
	Player2 string
	Winner  string
	Draw    bool
}

// LeaderboardEntry is a participant's win count across finished games.
type LeaderboardEntry struct {
	Player string `json:"player"`
	Wins   int    `json:"wins"`
}

// ResultStore persists finished-match outcomes in SQLite.
type ResultStore struct {
	db *sql.DB
}

func NewResultStore(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	store := &ResultStore{db: db}
	if err = store.migrate(); err != nil {
		return nil, fmt.Errorf("can't run migration: %w", err)
	}

	return store, nil
}

func (that *ResultStore) migrate() error {
	query := `CREATE TABLE IF NOT EXISTS match_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		player1 TEXT NOT NULL,
		player2 TEXT NOT NULL,
		winner TEXT,
		draw INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_match_results_winner ON match_results(winner)`

	if _, err := that.db.Exec(query); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *ResultStore) Record(ctx context.Context, result MatchResult) error {
	query := `INSERT INTO match_results (game_id, kind, player1, player2, winner, draw)
		VALUES (?, ?, ?, ?, ?, ?)`

	draw := 0
	if result.Draw {
		draw = 1
	}

	_, err := that.db.ExecContext(ctx, query,
		result.GameID, result.Kind, result.Player1, result.Player2, result.Winner, draw)
	if err != nil {
		return fmt.Errorf("can't insert match result: %w", err)
	}

	return nil
}

// Leaderboard returns players ordered by win count, most wins first.
func (that *ResultStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	query := `SELECT winner, COUNT(*) AS wins FROM match_results
		WHERE winner != '' AND draw = 0
		GROUP BY winner
		ORDER BY wins DESC, winner ASC
		LIMIT ?`

	rows, err := that.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var entry LeaderboardEntry
		if err = rows.Scan(&entry.Player, &entry.Wins); err != nil {
			return nil, fmt.Errorf("can't scan leaderboard row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard rows failed: %w", err)
	}

	return entries, nil
}

func (that *ResultStore) Close() error {
	if err := that.db.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
