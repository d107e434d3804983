package entity

const (
	KindHuman = "human"
	KindBot   = "bot"
)

// Player is an opaque participant handle supplied by the chat platform,
// bound to at most one active game at a time.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Mark     string `json:"mark,omitempty"`
	Color    string `json:"color,omitempty"`
	GameID   string `json:"game_id,omitempty"`
	GameKind string `json:"game_kind,omitempty"`
}

func NewBotPlayer(id string) *Player {
	return &Player{
		ID:   id,
		Name: "bot",
		Kind: KindBot,
	}
}

func (that *Player) IsBot() bool {
	return that.Kind == KindBot
}

// InGame reports whether the player is currently bound to a game.
func (that *Player) InGame() bool {
	return that.GameID != ""
}

// ReleaseFromGame clears the player's game binding after cleanup.
func (that *Player) ReleaseFromGame() {
	that.GameID = ""
	that.GameKind = ""
	that.Mark = ""
	that.Color = ""
}
