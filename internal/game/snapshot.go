package game

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Snapshot serializes the full match state, including the deck order, so a
// restored match continues exactly where it left off.
func (g *Game) Snapshot() ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("snapshot game %s: %w", g.ID, err)
	}
	return data, nil
}

// RestoreGame rebuilds a match from a snapshot. The randomness source and
// logger are not part of the snapshot and must be supplied.
func RestoreGame(data []byte, rng Rand, logger *zap.Logger) (*Game, error) {
	g := &Game{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("restore game: %w", err)
	}

	if g.Turn == nil {
		g.Turn = newTurn(0)
	}
	if g.Deck == nil {
		g.Deck = &Deck{}
	}

	g.SetRand(rng)
	g.SetLogger(logger)
	return g, nil
}
