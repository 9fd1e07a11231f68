package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selHand(indices ...int) []CardSelection {
	sels := make([]CardSelection, len(indices))
	for i, index := range indices {
		sels[i] = CardSelection{Source: SourceHand, Index: index}
	}
	return sels
}

func targetPlayer(name string) []TargetSelection {
	return []TargetSelection{{Name: name}}
}

func TestBangDefendedWithMissed(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{handCard(CardMissed, TypeAction, SuitClubs)}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.Len(t, g.Turn.Reacting, 1)
	assert.Equal(t, "BOB", g.Turn.Reacting[0].ReactorName)
	assert.Equal(t, ReactWithMiss, g.Turn.Reacting[0].Required)

	require.NoError(t, g.Play("BOB", PlayRequest{Cards: selHand(0)}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 4, bob.Health)
	assert.Empty(t, bob.Hand)
}

func TestBangAgainstEmptyHandHitsImmediately(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 3, bob.Health)
}

func TestSecondBangRejected(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBang, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{
		handCard(CardMissed, TypeAction, SuitClubs),
		handCard(CardMissed, TypeAction, SuitClubs),
	}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.NoError(t, g.Play("BOB", PlayRequest{Cards: selHand(0)}))

	err := g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")})
	requireGameError(t, err, CodeRuleViolation)
}

func TestWillyShootsWithoutLimit(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]
	alice.Skills = []Card{{Name: SkillWilly, Type: TypeSkill}}

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	assert.Equal(t, 2, bob.Health)
}

func TestReactFailedTakesTheHit(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	// A beer is no defense, but a non-empty hand keeps the reaction open.
	bob.Hand = []Card{handCard(CardBeer, TypeAction, SuitClubs)}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.Len(t, g.Turn.Reacting, 1)

	require.NoError(t, g.EndTurn("BOB"))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 3, bob.Health)
}

func TestReactFailedRefusedWhenDefensePossible(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{handCard(CardMissed, TypeAction, SuitClubs)}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))

	err := g.EndTurn("BOB")
	requireGameError(t, err, CodeNotAllowed)
}

func TestDuelBouncesBack(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]

	alice.Hand = []Card{handCard(CardDuel, TypeAction, SuitClubs)}
	bob.Hand = []Card{handCard(CardBang, TypeAction, SuitClubs)}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.Len(t, g.Turn.Reacting, 1)
	assert.Equal(t, ReactWithBang, g.Turn.Reacting[0].Required)

	// Bob answers, so the demand bounces to Alice, who has no bang and
	// takes the hit at once.
	require.NoError(t, g.Play("BOB", PlayRequest{Cards: selHand(0)}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 3, alice.Health)
	assert.Equal(t, 4, bob.Health)
}

func TestIndiansDemandBangsFromEveryone(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB", "CAROL")
	alice := g.Players[0]

	alice.Hand = []Card{
		handCard(CardIndians, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	g.Players[1].Hand = []Card{}
	g.Players[2].Hand = []Card{}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0)}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 3, g.Players[1].Health)
	assert.Equal(t, 3, g.Players[2].Health)
}

func TestGatlingShootsEveryone(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB", "CAROL")
	alice := g.Players[0]

	alice.Hand = []Card{
		handCard(CardGatling, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	g.Players[1].Hand = []Card{handCard(CardMissed, TypeAction, SuitClubs)}
	g.Players[2].Hand = []Card{}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0)}))

	// Bob's reaction heads the queue; Carol's waits behind it.
	require.Len(t, g.Turn.Reacting, 2)
	assert.Equal(t, "BOB", g.Turn.Reacting[0].ReactorName)

	// Once Bob defends, Carol's undefendable hit resolves at once.
	require.NoError(t, g.Play("BOB", PlayRequest{Cards: selHand(0)}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 4, g.Players[1].Health)
	assert.Equal(t, 3, g.Players[2].Health)
}

func TestBarrelLuckDraw(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]

	// The deck top is a heart, so the barrel draw counts as a missed.
	g.Deck.DrawPile = append(g.Deck.DrawPile, handCard(CardBeer, TypeAction, SuitHearts))

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{}
	bob.Equipment = []Card{{Name: CardBarrel, Type: TypeItem, Suit: SuitClubs, Rank: RankNine}}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.Len(t, g.Turn.Reacting, 1)
	require.Equal(t, 1, g.Turn.Reacting[0].Barrels)

	require.NoError(t, g.Draw("BOB", DrawRequest{}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 4, bob.Health)
}

func TestBarrelMissDoesNotSave(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{}
	bob.Equipment = []Card{{Name: CardBarrel, Type: TypeItem, Suit: SuitClubs, Rank: RankNine}}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))

	// All deck cards are clubs: the draw fails, and with an empty hand the
	// hit lands at once.
	require.NoError(t, g.Draw("BOB", DrawRequest{}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 3, bob.Health)
}

func TestSlabNeedsTwoMisses(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]
	alice.Skills = []Card{{Name: SkillSlab, Type: TypeSkill}}

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{
		handCard(CardMissed, TypeAction, SuitClubs),
		handCard(CardMissed, TypeAction, SuitClubs),
	}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.Len(t, g.Turn.Reacting, 1)
	require.Equal(t, 2, g.Turn.Reacting[0].Quantity)

	// One miss is not enough.
	err := g.Play("BOB", PlayRequest{Cards: selHand(0)})
	requireGameError(t, err, CodeInvalidCard)

	require.NoError(t, g.Play("BOB", PlayRequest{Cards: selHand(0, 1)}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 4, bob.Health)
}

func TestJanetDefendsWithBang(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]
	bob.Skills = []Card{{Name: SkillJanet, Type: TypeSkill}}

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{handCard(CardBang, TypeAction, SuitClubs)}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.NoError(t, g.Play("BOB", PlayRequest{Cards: selHand(0)}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 4, bob.Health)
}

func TestElenaDefendsWithAnything(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]
	bob.Skills = []Card{{Name: SkillElena, Type: TypeSkill}}

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{handCard(CardBeer, TypeAction, SuitClubs)}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.NoError(t, g.Play("BOB", PlayRequest{Cards: selHand(0)}))
	assert.Empty(t, g.Turn.Reacting)
	assert.Equal(t, 4, bob.Health)
}

func TestApacheIgnoresDiamonds(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]
	bob.Skills = []Card{{Name: SkillApache, Type: TypeSkill}}
	bob.Health = 3

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitDiamonds),
		handCard(CardBeer, TypeAction, SuitClubs),
	}

	err := g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")})
	requireGameError(t, err, CodeInvalidTarget)
	assert.Equal(t, 3, bob.Health)
}

func TestEndTurnHandLimit(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice := g.Players[0]

	for i := 0; i < 5; i++ {
		alice.Hand = append(alice.Hand, handCard(CardBeer, TypeAction, SuitClubs))
	}

	err := g.EndTurn("ALICE")
	requireGameError(t, err, CodeNotAllowed)

	alice.Hand = alice.Hand[:4]
	require.NoError(t, g.EndTurn("ALICE"))
	assert.Equal(t, "BOB", g.turnPlayer().Name)
	assert.Equal(t, 2, g.Turn.DrawsRemaining)
}

func TestEndTurnOutOfTurn(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	err := g.EndTurn("BOB")
	requireGameError(t, err, CodeNotYourTurn)
}

func TestNextPlayerSkipsTheDead(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB", "CAROL")
	g.Players[1].Health = 0

	require.NoError(t, g.EndTurn("ALICE"))
	assert.Equal(t, "CAROL", g.turnPlayer().Name)
}

func TestKillRewardsAndEndsMatch(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	alice, bob := g.Players[0], g.Players[1]
	bob.Health = 1

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	assert.False(t, bob.isAlive())
	assert.True(t, g.Ended)

	winners := g.Winners()
	require.Len(t, winners, 1)
	assert.Equal(t, "ALICE", winners[0].Name)
}

func TestEmergencyBeerSavesFromDeath(t *testing.T) {
	// Four seats, so losing Bob would still leave three players standing
	// and beers keep their effect.
	g := startedMatch(t, "ALICE", "BOB", "CAROL", "DAVE")
	alice, bob := g.Players[0], g.Players[1]
	bob.Health = 1

	alice.Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	bob.Hand = []Card{handCard(CardBeer, TypeAction, SuitClubs)}

	require.NoError(t, g.Play("ALICE", PlayRequest{Cards: selHand(0), Targets: targetPlayer("BOB")}))
	require.NoError(t, g.EndTurn("BOB"))

	assert.True(t, bob.isAlive())
	assert.Equal(t, 1, bob.Health)
	assert.Empty(t, bob.Hand)
	assert.False(t, g.Ended)
}
