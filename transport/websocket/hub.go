package websocket

import (
	"bufio"
	"log/slog"
	"sync"
)

// client is one registered connection; writes are serialized so a push
// never interleaves with a handler response.
type client struct {
	bufrw *bufio.ReadWriter
	mu    sync.Mutex
}

func (that *client) send(action string, payload Payload) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return sendMessage(that.bufrw, action, payload)
}

// Hub tracks live connections by player id and which players belong to
// which game, and pushes game updates out as turns resolve.
type Hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[string]*client
	games   map[string][]string
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
		games:   make(map[string][]string),
	}
}

func (that *Hub) register(playerID string, bufrw *bufio.ReadWriter) *client {
	that.mu.Lock()
	defer that.mu.Unlock()

	registered := &client{bufrw: bufrw}
	that.clients[playerID] = registered

	return registered
}

func (that *Hub) unregister(playerID string, registered *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	// a reconnect may have replaced the entry already
	if that.clients[playerID] == registered {
		delete(that.clients, playerID)
	}
}

func (that *Hub) clientByID(playerID string) *client {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.clients[playerID]
}

// GameStarted remembers the game's participants for later pushes.
func (that *Hub) GameStarted(gameID, kind string, playerIDs []string) {
	that.mu.Lock()
	that.games[gameID] = playerIDs
	that.mu.Unlock()

	that.logger.Info("game started", "game_id", gameID, "kind", kind)
}

// TurnAdvanced tells the next player it is their move.
func (that *Hub) TurnAdvanced(gameID, nextPlayerID string) {
	registered := that.clientByID(nextPlayerID)
	if registered == nil {
		return
	}

	payload := Payload{GameID: gameID, YourTurn: true}
	if err := that.send(registered, "game:update", payload); err != nil {
		that.logger.Error("failed to push turn update", "error", err, "game_id", gameID, "player_id", nextPlayerID)
	}
}

// GameFinished tells every participant the game is over and forgets it.
func (that *Hub) GameFinished(gameID, winnerID string, draw bool) {
	that.mu.Lock()
	playerIDs := that.games[gameID]
	delete(that.games, gameID)
	that.mu.Unlock()

	payload := Payload{GameID: gameID, WinnerID: winnerID, Draw: draw}
	for _, playerID := range playerIDs {
		registered := that.clientByID(playerID)
		if registered == nil {
			continue
		}

		if err := that.send(registered, "game:finished", payload); err != nil {
			that.logger.Error("failed to push game result", "error", err, "game_id", gameID, "player_id", playerID)
		}
	}
}

func (that *Hub) send(registered *client, action string, payload Payload) error {
	return registered.send(action, payload)
}
