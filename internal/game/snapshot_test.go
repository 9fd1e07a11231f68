package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB", "CAROL")
	g.Players[0].Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitHearts),
	}
	g.Players[1].Equipment = []Card{{Name: CardMustang, Type: TypeItem, Suit: SuitClubs, Rank: RankNine}}

	data, err := g.Snapshot()
	require.NoError(t, err)

	restored, err := RestoreGame(data, NewRand(7), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, g.ID, restored.ID)
	assert.Equal(t, g.Version, restored.Version)
	assert.Equal(t, g.Started, restored.Started)
	require.Len(t, restored.Players, 3)
	assert.Equal(t, g.Players[0].Hand, restored.Players[0].Hand)
	assert.Equal(t, g.Players[1].Equipment, restored.Players[1].Equipment)
	assert.Equal(t, g.Deck.DrawSize(), restored.Deck.DrawSize())
	assert.Equal(t, g.Deck.DiscardSize(), restored.Deck.DiscardSize())
	assert.Equal(t, g.Turn.Player, restored.Turn.Player)
}

func TestRestoredMatchKeepsPlaying(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	g.Players[0].Health = 3
	g.Players[0].Hand = []Card{
		handCard(CardBeer, TypeAction, SuitClubs),
		handCard(CardBang, TypeAction, SuitClubs),
	}

	data, err := g.Snapshot()
	require.NoError(t, err)
	restored, err := RestoreGame(data, NewRand(7), zap.NewNop())
	require.NoError(t, err)

	before := restored.Version
	require.NoError(t, restored.Play("ALICE", PlayRequest{Cards: selHand(0)}))
	assert.Equal(t, 4, restored.Players[0].Health)
	assert.NotEqual(t, before, restored.Version)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	_, err := RestoreGame([]byte("{not json"), NewRand(7), zap.NewNop())
	require.Error(t, err)
}

func TestRestoreFillsMissingPieces(t *testing.T) {
	restored, err := RestoreGame([]byte(`{"id":"ABCD"}`), NewRand(7), zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, restored.Turn)
	require.NotNil(t, restored.Deck)
	assert.Equal(t, "ABCD", restored.ID)
}
