package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gamesroomio/minigames-backend/internal/repository"
)

const defaultLeaderboardLimit = 10

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	LeaderboardHandler(w http.ResponseWriter, r *http.Request)
}

type resultStore interface {
	Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error)
}

type handlers struct {
	logger  *slog.Logger
	results resultStore
}

func NewHandlers(logger *slog.Logger, results resultStore) Handlers {
	return &handlers{
		logger:  logger,
		results: results,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := that.results.Leaderboard(r.Context(), limit)
	if err != nil {
		that.logger.Error("failed to get leaderboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []repository.LeaderboardEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(entries); err != nil {
		that.logger.Error("failed to encode leaderboard", "error", err)
	}
}
