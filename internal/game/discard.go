package game

import "fmt"

// Discard routes a discard request. Certain skills turn a discard into an
// ability: Sid Ketchum heals, Doc Holyday shoots, Jose Delgado draws, and
// Uncle Will opens a general store.
func (g *Game) Discard(playerName string, req DiscardRequest) error {
	if err := check(!g.Ended, CodeEnded, "game already ended"); err != nil {
		return err
	}
	if err := check(g.Started, CodeNotStarted, "game not started"); err != nil {
		return err
	}
	player, err := g.getPlayer(playerName)
	if err != nil {
		return err
	}

	if err := check(len(req.Cards) > 0, CodeInvalidCard, "no cards selected to discard"); err != nil {
		return err
	}
	cardIndices := make([]int, 0, len(req.Cards))
	for _, sel := range req.Cards {
		if err := check(sel.Source == SourceHand, CodeInvalidCard, "can only discard cards from your hand"); err != nil {
			return err
		}
		cardIndices = append(cardIndices, sel.Index)
	}

	// Sid's two-for-one heal works out of turn.
	if player.hasSkill(SkillSid) && len(cardIndices) > 1 && len(req.Targets) == 0 {
		return g.discardForLife(player, cardIndices)
	}

	if err := check(g.turnPlayer().Name == player.Name, CodeNotYourTurn, "not your turn"); err != nil {
		return err
	}
	if err := check(g.Turn.DrawsRemaining <= 0 && len(player.TempHand) == 0, CodePendingAction, "you have pending draw actions"); err != nil {
		return err
	}
	if err := check(len(g.Turn.Reacting) == 0, CodePendingAction, "you cannot discard at this time"); err != nil {
		return err
	}
	if err := check(!g.Turn.MustMimic, CodePendingAction, "you must first pick a skill to mimic as %s", Title(SkillVera)); err != nil {
		return err
	}
	if err := check(g.Turn.Store.CurrentPicker == "", CodePendingAction, "%s must complete first", Title(CardGeneralStore)); err != nil {
		return err
	}

	if player.hasSkill(SkillHolyday) && len(cardIndices) > 1 && len(req.Targets) > 0 {
		return g.discardForBang(player, cardIndices, req.Targets)
	}

	if err := check(len(cardIndices) == 1, CodeInvalidCard, "cannot discard more than 1 card at a time, without certain skills"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not contain what you are trying to discard"); err != nil {
		return err
	}

	if len(req.Targets) > 0 {
		skillIndex := req.Targets[0].skillIndex()
		if skillIndex >= 0 && skillIndex < len(player.Skills) {
			switch player.Skills[skillIndex].Name {
			case SkillJose:
				if player.hasSkill(SkillJose) {
					return g.discardForDraw(player, cardIndices, req.Targets)
				}
			case SkillUncle:
				if player.hasSkill(SkillUncle) {
					return g.discardForGeneralStore(player, cardIndices, req.Targets)
				}
			}
		}
	}

	if err := check(len(player.Hand) > player.Health, CodeNotAllowed, "you cannot drop cards unless it's necessary"); err != nil {
		return err
	}

	card := popAt(&player.Hand, cardIndices[0])
	g.Deck.Discard(card)
	g.Turn.Discarding = true

	turnOver := len(player.Hand) <= player.Health
	suffix := ""
	if turnOver {
		suffix = " and ended their turn"
	}
	g.stateUpdated(EventDiscard, fmt.Sprintf("%s discarded a %s from their hand%s.", player.Name, cardText(card), suffix))

	if turnOver {
		g.nextPlayer()
	}
	return nil
}

// discardForBang is Doc Holyday's two-cards-for-a-shot ability.
func (g *Game) discardForBang(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(!g.Turn.Discarding, CodeNotAllowed, "you cannot use this discard power after discarding"); err != nil {
		return err
	}
	if err := check(len(cardIndices) == 2, CodeInvalidCard, "need to discard exactly 2 cards to play a %s as %s", Title(CardBang), Title(SkillHolyday)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not contain what you are trying to discard"); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardBang, targets)
	if err != nil {
		return err
	}
	if err := check(g.canShoot(player, target), CodeInvalidTarget, "you cannot shoot that player"); err != nil {
		return err
	}

	missesNeeded := 1
	if player.hasSkill(SkillSlab) {
		missesNeeded = 2
	}
	if err := g.checkSheriffRisk(target, ReactWithMiss, missesNeeded); err != nil {
		return err
	}

	if target.hasSkill(SkillApache) {
		allDiamonds := true
		for _, index := range cardIndices {
			if player.Hand[index].Suit != SuitDiamonds {
				allDiamonds = false
			}
		}
		if err := check(!allDiamonds, CodeInvalidTarget, "at least one card must not be of suit %s to affect the %s", SuitDiamonds, Title(SkillApache)); err != nil {
			return err
		}
	}

	discarded := g.discardPlayedCards(player, cardIndices, g.Rules.PickupsDuringReaction)
	g.shoot(player, target, missesNeeded, Card{})

	slabNote := fmt.Sprintf(" They need %d %s %s.", missesNeeded, ReactWithMiss, plural(missesNeeded, "defense", "defenses"))
	if missesNeeded > 1 {
		slabNote = fmt.Sprintf(" They need %d %s defenses (%s skill).", missesNeeded, ReactWithMiss, Title(SkillSlab))
	}
	belleNote := ""
	if player.hasSkill(SkillBelle) {
		belleNote = fmt.Sprintf(" Keep in mind, equipment cards have no effect during %s's turn.", Title(SkillBelle))
	}
	g.stateUpdated(gunEvent(player), fmt.Sprintf("%s shot at %s by discarding a %s (%s skill).%s%s",
		player.Name, target.Name, cardsText(discarded), Title(SkillHolyday), slabNote, belleNote))

	g.tryReactionFails()
	if g.isTurnOver() {
		g.nextPlayer()
	}
	return nil
}

// discardForDraw is Jose Delgado's item-for-two-cards ability, usable twice
// per turn.
func (g *Game) discardForDraw(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(!g.Turn.Discarding, CodeNotAllowed, "you cannot use this discard power after discarding"); err != nil {
		return err
	}
	if err := check(g.Turn.JoseDiscards < 2, CodeNotAllowed, "you already used this ability twice this turn"); err != nil {
		return err
	}
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "need to discard exactly 1 item card to draw as %s", Title(SkillJose)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not contain what you are trying to discard"); err != nil {
		return err
	}
	if err := check(player.Hand[cardIndices[0]].Type == TypeItem, CodeInvalidCard, "must discard an item to use the ability of the %s skill", Title(SkillJose)); err != nil {
		return err
	}

	target, err := g.singleTarget("", targets)
	if err != nil {
		return err
	}
	targetedOwnJose := target.Name == player.Name &&
		targets[0].skillIndex() >= 0 && targets[0].skillIndex() < len(player.Skills) &&
		player.Skills[targets[0].skillIndex()].Name == SkillJose
	if err := check(targetedOwnJose, CodeInvalidTarget, "must target your %s skill to use the ability", Title(SkillJose)); err != nil {
		return err
	}

	discarded := g.discardPlayedCards(player, cardIndices, true)
	g.givePlayerCards(player, 2)
	g.Turn.JoseDiscards++

	g.stateUpdated(EventDiscard, fmt.Sprintf("%s discarded a %s to draw 2 cards (%s skill).",
		player.Name, cardsText(discarded), Title(SkillJose)))
	return nil
}

// discardForGeneralStore is Uncle Will's once-a-turn store, which skips the
// usual everyone-picks round.
func (g *Game) discardForGeneralStore(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(!g.Turn.Discarding, CodeNotAllowed, "you cannot use this discard power after discarding"); err != nil {
		return err
	}
	if err := check(!g.Turn.UncleStore, CodeNotAllowed, "you already used this ability this turn"); err != nil {
		return err
	}
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "need to discard exactly 1 card to play a %s as %s", Title(CardGeneralStore), Title(SkillUncle)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not contain what you are trying to discard"); err != nil {
		return err
	}

	target, err := g.singleTarget("", targets)
	if err != nil {
		return err
	}
	targetedOwnUncle := target.Name == player.Name &&
		targets[0].skillIndex() >= 0 && targets[0].skillIndex() < len(player.Skills) &&
		player.Skills[targets[0].skillIndex()].Name == SkillUncle
	if err := check(targetedOwnUncle, CodeInvalidTarget, "must target your %s skill to use the ability", Title(SkillUncle)); err != nil {
		return err
	}

	discarded := g.discardPlayedCards(player, cardIndices, true)
	g.Turn.UncleStore = true
	g.openGeneralStore(player)

	g.stateUpdated(cardEvent(CardGeneralStore), fmt.Sprintf("%s discarded a %s to play a %s (%s skill). %d cards available for the taking.",
		player.Name, cardsText(discarded), Title(CardGeneralStore), Title(SkillUncle), len(g.Turn.Store.Cards)))
	return nil
}

// discardForLife is Sid Ketchum's two-cards-for-a-life ability.
func (g *Game) discardForLife(player *Player, cardIndices []int) error {
	if err := check(len(cardIndices) == 2, CodeInvalidCard, "need to discard exactly 2 cards to gain a life as %s", Title(SkillSid)); err != nil {
		return err
	}
	if err := check(player.Health < player.maxHealth(), CodeNotAllowed, "already at max health"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not contain what you are trying to discard"); err != nil {
		return err
	}
	if err := check(!g.Turn.LostLifeForDraw, CodeNotAllowed, "you cannot gain a life as %s during your turn if you already lost a life as %s", Title(SkillSid), Title(SkillChuck)); err != nil {
		return err
	}

	discarded := g.discardPlayedCards(player, cardIndices, true)
	g.increaseHealth(player, 1)
	g.Turn.DiscardedForLife = true

	suffix := ""
	if g.isTurnOver() {
		suffix = ", and ended their turn"
	}
	g.stateUpdated(cardEvent(SkillSid), fmt.Sprintf("%s discarded a %s to gain a life (%s skill)%s.",
		player.Name, cardsText(discarded), Title(SkillSid), suffix))

	if g.isTurnOver() {
		g.nextPlayer()
	}
	return nil
}
