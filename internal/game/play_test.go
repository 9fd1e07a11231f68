package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayBeerHeals(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice := g.Players[0]
	alice.Health = 2
	alice.Hand = []Card{
		handCard(CardBeer, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0)}))
	assert.Equal(t, 3, alice.Health)
	assert.Len(t, alice.Hand, 1)
}

func TestPlayBeerAtMaxHealthWasted(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice := g.Players[0]
	alice.Hand = []Card{
		handCard(CardBeer, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}

	// Wasting beers is allowed by default; the heal just does nothing.
	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0)}))
	assert.Equal(t, 4, alice.Health)

	g.Rules.WasteBeers = false
	err := g.Play("ALICE", PlayRequest{Cards: selHand(0)})
	requireGameError(t, err, CodeNotAllowed)
}

func TestPlayBeerDuringOneOnOne(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB", "CAROL")
	g.Players[2].Health = 0
	alice := g.Players[0]
	alice.Health = 2
	alice.Hand = []Card{
		handCard(CardBeer, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}

	err := g.Play("ALICE", PlayRequest{Cards: selHand(0)})
	requireGameError(t, err, CodeRuleViolation)

	g.Rules.BeersDuringOneOnOne = true
	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0)}))
	assert.Equal(t, 3, alice.Health)
}

func TestPlayCatBalouDropsEquipment(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]
	alice.Hand = []Card{
		handCard(CardCatBalou, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Equipment = []Card{{Name: CardMustang, Type: TypeItem, Suit: SuitClubs, Rank: RankNine}}

	item := 0
	require.NoError(t, g.Play("ALICE", PlayRequest{
		Cards:   selHand(0),
		Targets: []TargetSelection{{Name: "BOB", Item: &item}},
	}))
	assert.Empty(t, bob.Equipment)
	assert.Equal(t, CardMustang, g.Deck.LastDiscard().Name)
}

func TestPlayPanicStealsFromHand(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]
	alice.Hand = []Card{
		handCard(CardPanic, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{handCard(CardMissed, TypeAction, SuitClubs)}

	require.NoError(t, g.Play("ALICE", PlayRequest{
		Cards:   selHand(0),
		Targets: []TargetSelection{{Name: "BOB", Hand: true}},
	}))
	assert.Empty(t, bob.Hand)
	assert.Len(t, alice.Hand, 2)
	assert.True(t, alice.hasCardInHand(CardMissed))
}

func TestPlayPanicOutOfRange(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB", "CAROL", "DAVE")
	alice, carol := g.Players[0], g.Players[2]
	alice.Hand = []Card{handCard(CardPanic, TypeAction, SuitClubs)}
	carol.Hand = []Card{handCard(CardMissed, TypeAction, SuitClubs)}

	err := g.Play("ALICE", PlayRequest{
		Cards:   selHand(0),
		Targets: []TargetSelection{{Name: "CAROL", Hand: true}},
	})
	requireGameError(t, err, CodeInvalidTarget)
}

func TestPlayStagecoachDraws(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice := g.Players[0]
	alice.Hand = []Card{
		handCard(CardStagecoach, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0)}))
	assert.Len(t, alice.Hand, 3)
}

func TestGeneralStorePicks(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB", "CAROL")
	alice := g.Players[0]
	alice.Hand = []Card{
		handCard(CardGeneralStore, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0)}))
	require.Len(t, g.Turn.Store.Cards, 3)
	assert.Equal(t, "ALICE", g.Turn.Store.CurrentPicker)

	// Nobody else may act while the store is open.
	err := g.Play("ALICE", PlayRequest{Cards: selHand(0)})
	requireGameError(t, err, CodePendingAction)

	err = g.PickFromStore("BOB", CardIndicesRequest{Cards: []int{0}})
	requireGameError(t, err, CodeNotYourTurn)

	// All deck cards are identical, so the first pick auto-deals the rest.
	require.NoError(t, g.PickFromStore("ALICE", CardIndicesRequest{Cards: []int{0}}))
	assert.Empty(t, g.Turn.Store.Cards)
	assert.Equal(t, "", g.Turn.Store.CurrentPicker)
	assert.Len(t, alice.Hand, 2)
	assert.Len(t, g.Players[1].Hand, 1)
	assert.Len(t, g.Players[2].Hand, 1)
}

func TestEquipGunReplacesOldGun(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice := g.Players[0]
	alice.Equipment = []Card{{Name: CardSchofield, Type: TypeItem, Suit: SuitClubs, Rank: RankNine}}
	alice.Hand = []Card{
		{Name: CardWinchester, Type: TypeItem, Suit: SuitClubs, Rank: RankNine},
		handCard(CardBeer, TypeAction, SuitClubs),
	}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0)}))
	require.Len(t, alice.Equipment, 1)
	assert.Equal(t, CardWinchester, alice.Equipment[0].Name)
	assert.Equal(t, CardSchofield, g.Deck.LastDiscard().Name)
}

func TestEquipDuplicateItemRejected(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice := g.Players[0]
	alice.Equipment = []Card{{Name: CardBarrel, Type: TypeItem, Suit: SuitClubs, Rank: RankNine}}
	alice.Hand = []Card{{Name: CardBarrel, Type: TypeItem, Suit: SuitClubs, Rank: RankNine}}

	err := g.Play("ALICE", PlayRequest{Cards: selHand(0)})
	requireGameError(t, err, CodeInvalidCard)
}

func TestPlayJail(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB", "CAROL")
	alice, bob := g.Players[0], g.Players[1]
	alice.Hand = []Card{
		{Name: CardJail, Type: TypeItem, Suit: SuitClubs, Rank: RankNine},
		handCard(CardBeer, TypeAction, SuitClubs),
	}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	assert.True(t, bob.hasEquipped(CardJail))

	// Jailed players draw for escape; a club keeps them in and skips the
	// turn.
	require.NoError(t, g.EndTurn("ALICE"))
	require.Equal(t, "BOB", g.turnPlayer().Name)
	require.NoError(t, g.Draw("BOB", DrawRequest{}))
	assert.False(t, bob.hasEquipped(CardJail))
	assert.Equal(t, "CAROL", g.turnPlayer().Name)
}

func TestQueuedBangPlayableNextTurn(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	g.Rules.MaxQueued = 1
	g.Rules.MaxQueuedPerTurn = 1
	alice, bob := g.Players[0], g.Players[1]
	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{handCard(CardBeer, TypeAction, SuitClubs)}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Equipping: true}))
	require.Len(t, alice.Equipment, 1)
	assert.Equal(t, 1, g.Turn.BangsQueued)

	// The stored bang only becomes usable once the turn comes back around.
	err := g.Play("ALICE", PlayRequest{
		Cards:   []CardSelection{{Source: SourceEquipment, Index: 0}},
		Targets: targetPlayer("BOB"),
	})
	requireGameError(t, err, CodeNotAllowed)

	require.NoError(t, g.EndTurn("ALICE"))
	for g.Turn.DrawsRemaining > 0 {
		require.NoError(t, g.Draw("BOB", DrawRequest{}))
	}
	require.NoError(t, g.EndTurn("BOB"))

	require.Equal(t, "ALICE", g.turnPlayer().Name)
	require.Equal(t, 1, g.Turn.AvailableQueued)
	for g.Turn.DrawsRemaining > 0 {
		require.NoError(t, g.Draw("ALICE", DrawRequest{}))
	}
	require.NoError(t, g.Play("ALICE", PlayRequest{
		Cards:   []CardSelection{{Source: SourceEquipment, Index: 0}},
		Targets: targetPlayer("BOB"),
	}))
	assert.Empty(t, alice.Equipment)
}

func TestDiscardOverHandLimit(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice := g.Players[0]
	for i := 0; i < 6; i++ {
		alice.Hand = append(alice.Hand, handCard(CardBeer, TypeAction, SuitClubs))
	}

	require.NoError(t, g.Discard("ALICE", DiscardRequest{Cards: selHand(0)}))
	assert.True(t, g.Turn.Discarding)
	assert.Len(t, alice.Hand, 5)
	assert.Equal(t, "ALICE", g.turnPlayer().Name)

	// Reaching the limit passes the turn automatically.
	require.NoError(t, g.Discard("ALICE", DiscardRequest{Cards: selHand(0)}))
	assert.Len(t, alice.Hand, 4)
	assert.Equal(t, "BOB", g.turnPlayer().Name)
}

func TestDiscardRefusedBelowLimit(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice := g.Players[0]
	alice.Hand = []Card{handCard(CardBeer, TypeAction, SuitClubs)}

	err := g.Discard("ALICE", DiscardRequest{Cards: selHand(0)})
	requireGameError(t, err, CodeNotAllowed)
}

func TestSidDiscardsForLife(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	bob := g.Players[1]
	bob.Skills = []Card{{Name: SkillSid, Type: TypeSkill}}
	bob.Health = 2
	bob.Hand = []Card{
		handCard(CardBeer, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}

	// Sid heals out of turn.
	require.NoError(t, g.Discard("BOB", DiscardRequest{Cards: selHand(0, 1)}))
	assert.Equal(t, 3, bob.Health)
	assert.Empty(t, bob.Hand)
}

func TestChuckLosesLifeForCards(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	g.Rules.ExpansionDodgeCity = true
	alice := g.Players[0]
	alice.Skills = []Card{{Name: SkillChuck, Type: TypeSkill}}

	require.NoError(t, g.LoseLifeForDraw("ALICE"))
	assert.Equal(t, 3, alice.Health)
	assert.Len(t, alice.Hand, 2)
}

func TestLoseLifeRequiresChuck(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	g.Rules.ExpansionDodgeCity = true

	err := g.LoseLifeForDraw("ALICE")
	requireGameError(t, err, CodeNotAllowed)
}

func TestPlayBeforeDrawingRejected(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	g.Turn.DrawsRemaining = 2
	alice := g.Players[0]
	alice.Hand = []Card{handCard(CardBeer, TypeAction, SuitClubs)}

	err := g.Play("ALICE", PlayRequest{Cards: selHand(0)})
	requireGameError(t, err, CodePendingAction)
}

func TestPlayOutOfTurnRejected(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	bob := g.Players[1]
	bob.Hand = []Card{handCard(CardBeer, TypeAction, SuitClubs)}

	err := g.Play("BOB", PlayRequest{Cards: selHand(0)})
	requireGameError(t, err, CodeNotYourTurn)
}
