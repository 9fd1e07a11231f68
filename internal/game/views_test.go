package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleCard(name CardName) *Card {
	return &Card{Name: name, Type: TypeRole}
}

func rolesMatch(t *testing.T, names ...string) *Game {
	t.Helper()
	g := startedMatch(t, names...)
	g.Rules.Roles = true
	return g
}

func viewFor(view StateView, name string) PlayerView {
	for _, pv := range view.Players {
		if pv.Name == name {
			return pv
		}
	}
	return PlayerView{}
}

func TestPublicStateMasksHandsAndRoles(t *testing.T) {
	g := rolesMatch(t, "ALICE", "BOB", "CAROL", "DAVE")
	g.Players[0].Role = roleCard(RoleSheriff)
	g.Players[1].Role = roleCard(RoleOutlaw)
	g.Players[2].Role = roleCard(RoleOutlaw)
	g.Players[3].Role = roleCard(RoleRenegade)
	g.Players[1].Hand = []Card{
		handCard(CardBang, TypeAction, SuitClubs),
		handCard(CardBeer, TypeAction, SuitClubs),
	}
	g.Players[2].Health = 0

	view := g.PublicState()
	require.Len(t, view.Players, 4)

	bob := viewFor(view, "BOB")
	assert.Empty(t, bob.Hand)
	assert.Equal(t, 2, bob.HandSize)

	// The sheriff and the dead are always revealed; living others are not.
	require.NotNil(t, viewFor(view, "ALICE").Role)
	assert.Equal(t, RoleSheriff, viewFor(view, "ALICE").Role.Name)
	require.NotNil(t, bob.Role)
	assert.Equal(t, RoleUnknown, bob.Role.Name)
	require.NotNil(t, viewFor(view, "CAROL").Role)
	assert.Equal(t, RoleOutlaw, viewFor(view, "CAROL").Role.Name)
	require.NotNil(t, viewFor(view, "DAVE").Role)
	assert.Equal(t, RoleUnknown, viewFor(view, "DAVE").Role.Name)
}

func TestPublicStateWithoutRolesHidesNothing(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	g.Players[0].Role = roleCard(RoleSheriff)
	g.Players[1].Role = roleCard(RoleOutlaw)

	view := g.PublicState()
	require.NotNil(t, viewFor(view, "BOB").Role)
	assert.Equal(t, RoleOutlaw, viewFor(view, "BOB").Role.Name)
}

func TestPublicStateTurnSummary(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	g.Turn.DrawsRemaining = 2

	view := g.PublicState()
	assert.Equal(t, "ALICE", view.Turn.Player)
	assert.Equal(t, 2, view.Turn.DrawsRemaining)
	assert.True(t, view.Started)
	assert.False(t, view.Ended)
	assert.Equal(t, g.Version, view.Version)
}

func TestPrivateStateRevealsOwnCards(t *testing.T) {
	g := rolesMatch(t, "ALICE", "BOB", "CAROL", "DAVE")
	g.Players[0].Role = roleCard(RoleSheriff)
	g.Players[1].Role = roleCard(RoleOutlaw)
	g.Players[2].Role = roleCard(RoleOutlaw)
	g.Players[3].Role = roleCard(RoleRenegade)
	g.Players[1].Hand = []Card{handCard(CardBang, TypeAction, SuitClubs)}

	view, err := g.PrivateState("BOB")
	require.NoError(t, err)

	bob := viewFor(view, "BOB")
	require.Len(t, bob.Hand, 1)
	assert.Equal(t, CardBang, bob.Hand[0].Name)

	// Outlaws recognize each other, but the renegade stays hidden.
	require.NotNil(t, viewFor(view, "CAROL").Role)
	assert.Equal(t, RoleOutlaw, viewFor(view, "CAROL").Role.Name)
	require.NotNil(t, viewFor(view, "DAVE").Role)
	assert.Equal(t, RoleUnknown, viewFor(view, "DAVE").Role.Name)

	// Other hands stay hidden even in a private view.
	assert.Empty(t, viewFor(view, "ALICE").Hand)
}

func TestPrivateStateOutlawSecrecyRuleOff(t *testing.T) {
	g := rolesMatch(t, "ALICE", "BOB", "CAROL", "DAVE")
	g.Rules.OutlawsKnowEachOther = false
	g.Players[0].Role = roleCard(RoleSheriff)
	g.Players[1].Role = roleCard(RoleOutlaw)
	g.Players[2].Role = roleCard(RoleOutlaw)
	g.Players[3].Role = roleCard(RoleRenegade)

	view, err := g.PrivateState("BOB")
	require.NoError(t, err)
	require.NotNil(t, viewFor(view, "CAROL").Role)
	assert.Equal(t, RoleUnknown, viewFor(view, "CAROL").Role.Name)
}

func TestPrivateStateOneOnOneRevealsAll(t *testing.T) {
	g := rolesMatch(t, "ALICE", "BOB")
	g.Players[0].Role = roleCard(RoleSheriff)
	g.Players[1].Role = roleCard(RoleRenegade)

	view, err := g.PrivateState("ALICE")
	require.NoError(t, err)
	require.NotNil(t, viewFor(view, "BOB").Role)
	assert.Equal(t, RoleRenegade, viewFor(view, "BOB").Role.Name)
}

func TestPrivateStateUnknownPlayer(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	_, err := g.PrivateState("MALLORY")
	requireGameError(t, err, CodeUnknownPlayer)
}

func TestRecentEventsTail(t *testing.T) {
	g := startedMatch(t, "ALICE", "BOB")
	for i := 0; i < recentEventCount+5; i++ {
		g.stateUpdated(EventInfo, "tick")
	}

	view := g.PublicState()
	assert.Len(t, view.RecentEvents, recentEventCount)
}
