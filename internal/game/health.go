package game

import (
	"fmt"
	"strings"
)

// increaseHealth heals up to the player's max and returns the lives actually
// gained.
func (g *Game) increaseHealth(player *Player, amount int) int {
	lives := player.maxHealth() - player.Health
	if amount < lives {
		lives = amount
	}
	if lives < 0 {
		lives = 0
	}
	player.Health += lives
	return lives
}

// decreaseHealth applies damage, runs on-damage skills, and settles death.
// The attacker may be nil for environmental damage like dynamite. Returns
// whether the victim died.
func (g *Game) decreaseHealth(attacker, victim *Player, amount int) bool {
	victim.Health -= amount

	// Lives lost below the last one only count for loss-triggered skills
	// under the fadeaway rule.
	livesLostAboveOne := amount
	if victim.Health <= 0 {
		livesLostAboveOne = amount - 1 + victim.Health
	}
	livesLostAboveZero := amount
	if victim.Health < 0 {
		livesLostAboveZero = amount + victim.Health
	}

	realLivesLost := livesLostAboveOne
	if g.Rules.FadeawayDraw {
		realLivesLost = livesLostAboveZero
	}

	gringoTook := 0
	if attacker != nil && victim.hasSkill(SkillGringo) && attacker.Name != victim.Name && len(attacker.Hand) > 0 && realLivesLost > 0 {
		for i := 0; i < livesLostAboveZero && len(attacker.Hand) > 0; i++ {
			card := popRandom(g.rng, &attacker.Hand)
			victim.Hand = append(victim.Hand, card)
			gringoTook++
		}
	}

	if victim.hasSkill(SkillBart) && realLivesLost > 0 {
		g.givePlayerCards(victim, realLivesLost)
	}

	text := fmt.Sprintf("%s couldn't defend and lost %d %s.", victim.Name, amount, plural(amount, "life", "lives"))
	if gringoTook > 0 {
		text += fmt.Sprintf(" As %s, they took %d %s from %s's hand.", Title(SkillGringo), gringoTook, plural(gringoTook, "card", "cards"), attacker.Name)
	}
	g.stateUpdated(EventHit, text)

	if attacker != nil {
		g.tryEmptyHandSkill(attacker)
	}

	if !g.tryDeath(victim) {
		return false
	}

	g.handleDeath(attacker, victim)
	return true
}

// tryDeath checks whether a player at or below zero health actually dies,
// spending emergency beers from their hand when possible. Returns true when
// the player is dead for good.
func (g *Game) tryDeath(player *Player) bool {
	if player.Health > 0 {
		return false
	}

	// Head to head, beers no longer save anyone unless the match began
	// with two players or the rules allow it.
	if len(g.Players) != 2 && g.isOneOnOne() && !g.Rules.BeersDuringOneOnOne {
		return true
	}

	healPerBeer := 1
	if player.hasSkill(SkillJoe) {
		healPerBeer = 2
	}

	beerCount := countWithName(player.Hand, CardBeer)
	beersNeeded := (1 - player.Health + healPerBeer - 1) / healPerBeer

	if beerCount < beersNeeded {
		return true
	}

	g.increaseHealth(player, beersNeeded*healPerBeer)

	used := make([]Card, 0, beersNeeded)
	for i := 0; i < beersNeeded; i++ {
		card, _ := popWithName(&player.Hand, CardBeer)
		g.Deck.Discard(card)
		used = append(used, card)
	}
	g.tryEmptyHandSkill(player)

	g.stateUpdated(cardEvent(CardBeer), fmt.Sprintf("%d emergency %s saved %s (%s).",
		beersNeeded, plural(beersNeeded, Title(CardBeer), Title(CardBeer)+"s"), player.Name, cardsText(used)))

	return false
}

// handleDeath discards the victim's board, pays out rewards and penalties,
// runs on-death skills, and either ends the match or advances the turn past
// the dead player. Returns true when the match ended.
func (g *Game) handleDeath(killer, victim *Player) bool {
	roleText := ""
	if victim.Role != nil {
		roleText = fmt.Sprintf(" Their role was %s.", Title(victim.Role.Name))
	}
	g.stateUpdated(EventKilled, fmt.Sprintf("%s died.%s", victim.Name, roleText))

	for len(victim.Equipment) > 0 {
		g.Deck.Discard(popTop(&victim.Equipment))
	}
	for len(victim.Skills) > 0 {
		g.Deck.Discard(popTop(&victim.Skills))
	}

	// Vulture Sam captures the dead hand instead of letting it hit the
	// discard pile.
	sams := []*Player{}
	for _, p := range g.alivePlayers() {
		if p.hasSkill(SkillSam) && p.Name != victim.Name {
			sams = append(sams, p)
		}
	}

	if len(victim.Hand) > 0 && len(sams) > 0 {
		taken := len(victim.Hand)
		for len(victim.Hand) > 0 {
			sam := sams[len(victim.Hand)%len(sams)]
			sam.Hand = append(sam.Hand, popTop(&victim.Hand))
		}

		names := make([]string, len(sams))
		for i, s := range sams {
			names[i] = s.Name
		}
		g.stateUpdated(cardEvent(SkillSam), fmt.Sprintf("%s's hand of %d %s was taken by %s (%s skill).",
			victim.Name, taken, plural(taken, "card", "cards"), strings.Join(names, " and "), Title(SkillSam)))
	}

	if len(victim.Hand) > 0 {
		dropped := cardsText(victim.Hand)
		for len(victim.Hand) > 0 {
			g.Deck.Discard(popTop(&victim.Hand))
		}
		g.stateUpdated(EventDiscard, fmt.Sprintf("%s discarded a %s from their hand, as a result of their death.", victim.Name, dropped))
	}

	if killer != nil && (!g.Rules.Roles || victim.hasRole(RoleOutlaw)) {
		awarded := g.givePlayerCards(killer, g.Rules.RewardSize)
		g.stateUpdated(EventReward, fmt.Sprintf("%s was awarded %d cards for killing %s.", killer.Name, len(awarded), victim.Name))
	}

	// The sheriff pays for shooting their own deputy.
	if killer != nil && g.Rules.Roles && killer.hasRole(RoleSheriff) && victim.hasRole(RoleDeputy) {
		for len(killer.Equipment) > 0 {
			g.Deck.Discard(popTop(&killer.Equipment))
		}
		for len(killer.Hand) > 0 {
			g.Deck.Discard(popTop(&killer.Hand))
		}
		g.stateUpdated(EventDiscard, fmt.Sprintf("%s (%s) discarded their equipment and hand, for killing %s (%s).",
			killer.Name, Title(RoleSheriff), victim.Name, Title(RoleDeputy)))
	}

	if !g.Rules.Roles && victim.Role != nil {
		g.Deck.Discard(*victim.Role)
		victim.Role = nil
	}

	for _, p := range g.alivePlayers() {
		if p.hasSkill(SkillHerb) {
			g.givePlayerCards(p, 2)
			g.stateUpdated(EventDraw, fmt.Sprintf("%s drew 2 cards (%s skill).", p.Name, Title(SkillHerb)))
			break
		}
	}

	for _, p := range g.alivePlayers() {
		if p.hasSkill(SkillGreg) {
			gained := g.increaseHealth(p, 2)
			g.stateUpdated(cardEvent(CardBeer), fmt.Sprintf("%s gained %d %s (%s skill).", p.Name, gained, plural(gained, "life", "lives"), Title(SkillGreg)))
			break
		}
	}

	if winners := g.Winners(); winners != nil {
		g.Ended = true
		names := make([]string, len(winners))
		for i, w := range winners {
			names[i] = w.Name
		}
		g.stateUpdated(EventWin, fmt.Sprintf("%s won the game.", strings.Join(names, " and ")))
		return true
	}

	if g.turnPlayer().Name == victim.Name {
		g.nextPlayer()
	}
	return false
}

// tryEmptyHandSkill gives Suzy Lafayette a card when her hand runs dry.
func (g *Game) tryEmptyHandSkill(player *Player) []Card {
	if !player.isAlive() || len(player.Hand) > 0 || !player.hasSkill(SkillSuzy) {
		return nil
	}
	if !g.Rules.FadeawayDraw && player.Health <= 0 {
		return nil
	}

	drawn := g.givePlayerCards(player, 1)
	g.stateUpdated(EventDraw, fmt.Sprintf("%s's hand was empty, so they drew a card (%s skill).", player.Name, Title(SkillSuzy)))
	return drawn
}

// tryReplenishHandSkill pays Molly Stark her owed draws once the board is
// settled.
func (g *Game) tryReplenishHandSkill(player *Player) []Card {
	if !player.isAlive() || player.PendingDraws <= 0 {
		return nil
	}
	if !g.Rules.FadeawayDraw && player.Health <= 0 {
		return nil
	}

	drawn := g.givePlayerCards(player, player.PendingDraws)
	player.PendingDraws = 0
	g.stateUpdated(EventDraw, fmt.Sprintf("%s played %s out of turn, and thus drew %s (%s skill).",
		player.Name, plural(len(drawn), "a card", fmt.Sprintf("%d cards", len(drawn))), plural(len(drawn), "a card", fmt.Sprintf("%d cards", len(drawn))), Title(SkillMolly)))
	return drawn
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func cardText(c Card) string {
	if c.Rank != 0 {
		return fmt.Sprintf("%s (%s of %s)", Title(c.Name), c.Rank, c.Suit)
	}
	return Title(c.Name)
}

func cardsText(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = cardText(c)
	}
	return strings.Join(parts, " and ")
}
