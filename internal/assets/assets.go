package assets

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

// Library holds externally loaded flavor data: ship names per class and
// bot quips per situation. Both are plain key to list-of-strings maps
// with no game semantics attached.
type Library struct {
	ShipNames map[string][]string `json:"ship_names"`
	BotQuips  map[string][]string `json:"bot_quips"`
}

// Load reads the asset library from a JSON file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets file: %w", err)
	}

	library := &Library{}
	if err = json.Unmarshal(data, library); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assets: %w", err)
	}

	return library, nil
}

// RandomQuip returns a random quip for the key, or an empty string when
// the key has no entries.
func (that *Library) RandomQuip(key string) string {
	quips := that.BotQuips[key]
	if len(quips) == 0 {
		return ""
	}

	return quips[rand.Intn(len(quips))] //nolint:gosec // flavor text only
}
