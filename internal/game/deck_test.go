package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckBaseComposition(t *testing.T) {
	deck := NewDeck(DeckOptions{
		Expansions:     []Expansion{ExpansionBase},
		RoleQuantities: roleQuantities[4],
		Rand:           NewRand(1),
	})

	assert.Equal(t, 80, deck.DrawSize())
	assert.Len(t, deck.Skills, 16)
	assert.Len(t, deck.Roles, 4)
	assert.Equal(t, 6, deck.BeerSupply)

	for _, card := range deck.DrawPile {
		assert.NotEmpty(t, card.Suit)
		assert.NotZero(t, card.Rank)
	}
}

func TestNewDeckSheriffInDeck(t *testing.T) {
	deck := NewDeck(DeckOptions{
		Expansions:    []Expansion{ExpansionBase},
		SheriffInDeck: true,
		Rand:          NewRand(1),
	})

	require.Len(t, deck.Roles, 1)
	assert.Equal(t, RoleSheriff, deck.Roles[0].Name)
}

func TestPrepareSeedsDiscard(t *testing.T) {
	deck := NewDeck(DeckOptions{
		Expansions:     []Expansion{ExpansionBase},
		RoleQuantities: roleQuantities[4],
		Rand:           NewRand(1),
	})

	before := deck.DrawSize()
	deck.Prepare()
	assert.Equal(t, before-1, deck.DrawSize())
	assert.Equal(t, 1, deck.DiscardSize())
}

func TestPrepareFoldsSkillsIntoDraw(t *testing.T) {
	deck := NewDeck(DeckOptions{
		Expansions:     []Expansion{ExpansionBase},
		RoleQuantities: roleQuantities[4],
		SkillsInDeck:   true,
		Rand:           NewRand(1),
	})

	actions := deck.DrawSize()
	skills := len(deck.Skills)
	deck.Prepare()
	assert.Equal(t, actions+skills-1, deck.DrawSize())
	assert.Empty(t, deck.Skills)
}

func TestDrawReshufflesDiscard(t *testing.T) {
	deck := &Deck{
		DrawPile: []Card{
			{Name: CardBang, Suit: SuitClubs, Rank: RankNine},
		},
		DiscardPile: []Card{
			{Name: CardMissed, Suit: SuitHearts, Rank: RankTwo},
			{Name: CardBeer, Suit: SuitSpades, Rank: RankKing},
			{Name: CardPanic, Suit: SuitDiamonds, Rank: RankAce},
		},
		rng: NewRand(1),
	}

	card := deck.Draw()
	assert.Equal(t, CardBang, card.Name)

	// The pile emptied, so everything but the top discard was shuffled back.
	assert.Equal(t, 1, deck.Reshuffles)
	assert.Equal(t, 2, deck.DrawSize())
	require.Equal(t, 1, deck.DiscardSize())
	assert.Equal(t, CardPanic, deck.LastDiscard().Name)
}

func TestReshuffleRemovesBeers(t *testing.T) {
	deck := &Deck{
		BeerDiscardFrequency: -2,
		BeerSupply:           3,
		DrawPile:             []Card{{Name: CardBang, Suit: SuitClubs, Rank: RankNine}},
		DiscardPile: []Card{
			{Name: CardBeer, Suit: SuitHearts, Rank: RankTwo},
			{Name: CardBeer, Suit: SuitHearts, Rank: RankTwo},
			{Name: CardBeer, Suit: SuitHearts, Rank: RankTwo},
			{Name: CardPanic, Suit: SuitDiamonds, Rank: RankAce},
		},
		rng: NewRand(1),
	}

	deck.Draw()
	assert.Equal(t, 1, deck.BeerSupply)
	assert.Equal(t, 1, countWithName(deck.DrawPile, CardBeer))
}

func TestDiscardDropsHiddenCardTypes(t *testing.T) {
	deck := &Deck{rng: NewRand(1)}

	deck.Discard(Card{Name: RoleOutlaw, Type: TypeRole})
	deck.Discard(Card{Name: SkillSuzy, Type: TypeSkill})
	assert.Equal(t, 0, deck.DiscardSize())

	deck.Discard(Card{Name: CardBang, Type: TypeAction})
	assert.Equal(t, 1, deck.DiscardSize())
}

func TestDrawDiscard(t *testing.T) {
	deck := &Deck{rng: NewRand(1)}

	_, ok := deck.DrawDiscard()
	assert.False(t, ok)

	deck.DiscardPile = []Card{{Name: CardBang, Type: TypeAction}}
	card, ok := deck.DrawDiscard()
	assert.True(t, ok)
	assert.Equal(t, CardBang, card.Name)
	assert.Equal(t, 0, deck.DiscardSize())
}
