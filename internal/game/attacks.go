package game

import "fmt"

// shoot queues a missed-reaction demand against the target, granting barrel
// draws unless the shooter is Belle Star.
func (g *Game) shoot(player, target *Player, quantity int, card Card) {
	barrels := 0
	if !player.hasSkill(SkillBelle) {
		if target.hasEquipped(CardBarrel) {
			barrels++
		}
		if target.hasSkill(SkillJourdonnais) {
			barrels++
		}
	}

	g.Turn.pushReaction(Reaction{
		InitiatorName: player.Name,
		ActorName:     player.Name,
		ReactorName:   target.Name,
		Required:      ReactWithMiss,
		Barrels:       barrels,
		Quantity:      quantity,
		Duel:          card.Name == CardDuel,
		Suit:          card.Suit,
	})

	g.stateUpdated("", "")
}

// attack queues a bang-reaction demand, used by duels and indians.
func (g *Game) attack(player, target *Player, quantity int, card Card) {
	g.Turn.pushReaction(Reaction{
		InitiatorName: player.Name,
		ActorName:     player.Name,
		ReactorName:   target.Name,
		Required:      ReactWithBang,
		Quantity:      quantity,
		Duel:          card.Name == CardDuel,
		Suit:          card.Suit,
	})

	g.stateUpdated("", "")
}

func (g *Game) playBang(player *Player, cardIndices []int, targets []TargetSelection, source Source) error {
	wasQueued := source == SourceEquipment
	if wasQueued {
		if err := check(g.Turn.AvailableQueued > 0, CodeNotAllowed, "you have no more queued up %ss from last turn", Title(CardBang)); err != nil {
			return err
		}
	}
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "you can only play one %s at a time", Title(CardBang)); err != nil {
		return err
	}

	sourceCards := player.Hand
	if wasQueued {
		sourceCards = player.Equipment
	}
	if err := check(hasUniqueIndices(len(sourceCards), cardIndices), CodeInvalidCard, "you do not have the card you are trying to play"); err != nil {
		return err
	}

	card := sourceCards[cardIndices[0]]
	if !wasQueued && card.Name != CardBang {
		if err := check(player.hasSkill(SkillJanet), CodeNotAllowed, "only %s can play %ss as %ss", Title(SkillJanet), Title(CardMissed), Title(CardBang)); err != nil {
			return err
		}
	}

	target, err := g.playerOnlyTarget(CardBang, targets)
	if err != nil {
		return err
	}
	if err := check(g.canShoot(player, target), CodeInvalidTarget, "you cannot shoot that player"); err != nil {
		return err
	}
	if err := g.checkApache(target, card.Suit); err != nil {
		return err
	}

	missesNeeded := 1
	if player.hasSkill(SkillSlab) {
		missesNeeded = 2
	}
	if err := g.checkSheriffRisk(target, ReactWithMiss, missesNeeded); err != nil {
		return err
	}

	unlimited := player.hasSkill(SkillWilly) || player.hasEquipped(CardVolcanic)
	if !wasQueued && !unlimited {
		if err := check(g.Turn.BangPlayed < g.Rules.MaxBangsPerTurn, CodeRuleViolation, "you can only play %d %s per turn", g.Rules.MaxBangsPerTurn, plural(g.Rules.MaxBangsPerTurn, Title(CardBang), Title(CardBang)+"s")); err != nil {
			return err
		}
	}

	if wasQueued {
		g.Deck.Discard(popAt(&player.Equipment, cardIndices[0]))
		g.Turn.AvailableQueued--
	} else {
		g.discardPlayedCards(player, cardIndices, g.Rules.PickupsDuringReaction)
		g.Turn.BangPlayed++
	}

	g.shoot(player, target, missesNeeded, card)

	g.stateUpdated(gunEvent(player), fmt.Sprintf("%s shot at %s with a %s. They need %d %s %s.",
		player.Name, target.Name, cardText(card), missesNeeded, ReactWithMiss, plural(missesNeeded, "defense", "defenses")))

	g.tryReactionFails()
	return nil
}

// queueBang stores a bang face down in equipment for a later turn.
func (g *Game) queueBang(player *Player, cardIndices []int) error {
	if err := check(g.Rules.MaxQueuedPerTurn > 0, CodeRuleViolation, "queuing %ss is not allowed", Title(CardBang)); err != nil {
		return err
	}
	if err := check(g.Turn.BangsQueued < g.Rules.MaxQueuedPerTurn, CodeRuleViolation, "cannot queue any more %ss this turn", Title(CardBang)); err != nil {
		return err
	}
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only queue one %s at a time", Title(CardBang)); err != nil {
		return err
	}

	index := cardIndices[0]
	if err := check(index >= 0 && index < len(player.Hand), CodeInvalidCard, "you do not have the card you are trying to queue"); err != nil {
		return err
	}

	name := player.Hand[index].Name
	if err := check(nameIn(name, queueables) || name == CardMissed, CodeInvalidCard, "this card cannot be queued"); err != nil {
		return err
	}
	if name == CardMissed {
		if err := check(player.hasSkill(SkillJanet), CodeNotAllowed, "only %s can queue %ss as %ss", Title(SkillJanet), Title(CardMissed), Title(CardBang)); err != nil {
			return err
		}
	}

	queued := countWithNameIn(player.Equipment, queueables)
	if err := check(queued < g.Rules.MaxQueued, CodeRuleViolation, "can only have %d queued %ss", g.Rules.MaxQueued, Title(CardBang)); err != nil {
		return err
	}

	card := popAt(&player.Hand, index)

	// Johnny Kisch bounces duplicates off everyone else's board.
	if player.hasSkill(SkillJohnny) {
		for _, other := range g.getAlivePlayersAfter(player) {
			for _, dup := range popAllWithName(&other.Equipment, card.Name) {
				g.Deck.Discard(dup)
			}
		}
	}

	player.Equipment = append(player.Equipment, card)
	g.tryEmptyHandSkill(player)
	g.Turn.BangsQueued++

	g.stateUpdated(EventQueued, fmt.Sprintf("%s queued up a %s.", player.Name, cardText(card)))
	return nil
}

func (g *Game) playGatling(player *Player, cardIndices []int) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardGatling)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	others := g.getAlivePlayersAfter(player)
	for _, target := range others {
		if target.hasRole(RoleSheriff) {
			if err := g.checkSheriffRisk(target, ReactWithMiss, 1); err != nil {
				return err
			}
		}
	}

	cards := g.discardPlayedCards(player, cardIndices, g.Rules.PickupsDuringReaction)
	for _, target := range others {
		g.shoot(player, target, 1, cards[0])
	}

	g.stateUpdated(cardEvent(CardGatling), fmt.Sprintf("%s played a %s. Everyone needs one %s defense.", player.Name, cardText(cards[0]), ReactWithMiss))

	g.tryReactionFails()
	return nil
}

func (g *Game) playIndians(player *Player, cardIndices []int) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardIndians)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	others := g.getAlivePlayersAfter(player)
	for _, target := range others {
		if target.hasRole(RoleSheriff) {
			if err := g.checkSheriffRisk(target, ReactWithBang, 1); err != nil {
				return err
			}
		}
	}

	cards := g.discardPlayedCards(player, cardIndices, g.Rules.PickupsDuringReaction)
	for _, target := range others {
		g.attack(player, target, 1, cards[0])
	}

	g.stateUpdated(cardEvent(CardIndians), fmt.Sprintf("%s played an %s. Everyone needs one %s defense.", player.Name, cardText(cards[0]), ReactWithBang))

	g.tryReactionFails()
	return nil
}

func (g *Game) playDuel(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardDuel)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardDuel, targets)
	if err != nil {
		return err
	}
	if err := check(player.Name != target.Name, CodeInvalidTarget, "you cannot %s yourself", Title(CardDuel)); err != nil {
		return err
	}
	if err := g.checkSheriffRisk(target, ReactWithBang, 1); err != nil {
		return err
	}

	card := player.Hand[cardIndices[0]]
	if err := g.checkApache(target, card.Suit); err != nil {
		return err
	}

	g.discardPlayedCards(player, cardIndices, g.Rules.PickupsDuringReaction)
	g.attack(player, target, 1, card)

	g.stateUpdated(cardEvent(CardDuel), fmt.Sprintf("%s played a %s against %s. %s needs one %s defense.",
		player.Name, cardText(card), target.Name, target.Name, ReactWithBang))

	g.tryReactionFails()
	return nil
}

func (g *Game) playPunch(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "you can only play one %s at a time", Title(CardPunch)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardPunch, targets)
	if err != nil {
		return err
	}
	if err := check(g.canSee(player, target), CodeInvalidTarget, "you cannot punch that player"); err != nil {
		return err
	}
	if err := g.checkSheriffRisk(target, ReactWithMiss, 1); err != nil {
		return err
	}

	card := player.Hand[cardIndices[0]]
	if err := g.checkApache(target, card.Suit); err != nil {
		return err
	}

	g.discardPlayedCards(player, cardIndices, g.Rules.PickupsDuringReaction)
	g.shoot(player, target, 1, card)

	g.stateUpdated(cardEvent(CardPunch), fmt.Sprintf("%s played a %s against %s. They need one %s defense.",
		player.Name, cardText(card), target.Name, ReactWithMiss))

	g.tryReactionFails()
	return nil
}

// playSpringfield shoots at any distance at the cost of a second card.
func (g *Game) playSpringfield(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 2, CodeInvalidCard, "you must play a %s with one other card", Title(CardSpringfield)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardSpringfield, targets)
	if err != nil {
		return err
	}
	if err := g.checkSheriffRisk(target, ReactWithMiss, 1); err != nil {
		return err
	}

	main := player.Hand[cardIndices[0]]
	if err := g.checkApache(target, main.Suit); err != nil {
		return err
	}

	extra := player.Hand[cardIndices[1]]
	g.discardPlayedCards(player, cardIndices, g.Rules.PickupsDuringReaction)
	g.shoot(player, target, 1, main)

	g.stateUpdated(cardEvent(CardSpringfield), fmt.Sprintf("%s shot at %s with a %s, discarding a %s. They need one %s defense.",
		player.Name, target.Name, cardText(main), cardText(extra), ReactWithMiss))

	g.tryReactionFails()
	return nil
}

func (g *Game) playBuffaloRifle(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := g.queueableChecks(player, CardBuffaloRifle, cardIndices); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardBuffaloRifle, targets)
	if err != nil {
		return err
	}
	if err := g.checkSheriffRisk(target, ReactWithMiss, 1); err != nil {
		return err
	}

	card := player.Equipment[cardIndices[0]]
	if err := g.checkApache(target, card.Suit); err != nil {
		return err
	}

	g.Deck.Discard(popAt(&player.Equipment, cardIndices[0]))
	g.Turn.queueableUsed(CardBuffaloRifle)
	g.shoot(player, target, 1, card)

	g.stateUpdated(cardEvent(CardBuffaloRifle), fmt.Sprintf("%s shot at %s with a %s. They need one %s defense.",
		player.Name, target.Name, cardText(card), ReactWithMiss))

	g.tryReactionFails()
	return nil
}

// playDerringer is a close-range shot that also draws a card.
func (g *Game) playDerringer(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := g.queueableChecks(player, CardDerringer, cardIndices); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardDerringer, targets)
	if err != nil {
		return err
	}
	if err := check(g.canSee(player, target), CodeInvalidTarget, "you cannot shoot that player"); err != nil {
		return err
	}
	if err := g.checkSheriffRisk(target, ReactWithMiss, 1); err != nil {
		return err
	}

	card := player.Equipment[cardIndices[0]]
	if err := g.checkApache(target, card.Suit); err != nil {
		return err
	}

	g.Deck.Discard(popAt(&player.Equipment, cardIndices[0]))
	g.Turn.queueableUsed(CardDerringer)
	g.givePlayerCards(player, 1)
	g.shoot(player, target, 1, card)

	g.stateUpdated(cardEvent(CardDerringer), fmt.Sprintf("%s shot at %s with a %s, and drew a card. %s needs one %s defense.",
		player.Name, target.Name, cardText(card), target.Name, ReactWithMiss))

	g.tryReactionFails()
	return nil
}

func (g *Game) playHowitzer(player *Player, cardIndices []int) error {
	if err := g.queueableChecks(player, CardHowitzer, cardIndices); err != nil {
		return err
	}

	others := g.getAlivePlayersAfter(player)
	for _, target := range others {
		if target.hasRole(RoleSheriff) {
			if err := g.checkSheriffRisk(target, ReactWithMiss, 1); err != nil {
				return err
			}
		}
	}

	card := popAt(&player.Equipment, cardIndices[0])
	g.Deck.Discard(card)
	g.Turn.queueableUsed(CardHowitzer)
	for _, target := range others {
		g.shoot(player, target, 1, card)
	}

	g.stateUpdated(cardEvent(CardHowitzer), fmt.Sprintf("%s played a %s. Everyone needs one %s defense.", player.Name, cardText(card), ReactWithMiss))

	g.tryReactionFails()
	return nil
}

func (g *Game) playKnife(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := g.queueableChecks(player, CardKnife, cardIndices); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardKnife, targets)
	if err != nil {
		return err
	}
	if err := check(g.canSee(player, target), CodeInvalidTarget, "you cannot knife that player"); err != nil {
		return err
	}
	if err := g.checkSheriffRisk(target, ReactWithMiss, 1); err != nil {
		return err
	}

	card := player.Equipment[cardIndices[0]]
	if err := g.checkApache(target, card.Suit); err != nil {
		return err
	}

	g.Deck.Discard(popAt(&player.Equipment, cardIndices[0]))
	g.Turn.queueableUsed(CardKnife)
	g.shoot(player, target, 1, card)

	g.stateUpdated(cardEvent(CardKnife), fmt.Sprintf("%s threw a %s at %s. They need one %s defense.",
		player.Name, cardText(card), target.Name, ReactWithMiss))

	g.tryReactionFails()
	return nil
}

func (g *Game) playPepperbox(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := g.queueableChecks(player, CardPepperbox, cardIndices); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardPepperbox, targets)
	if err != nil {
		return err
	}
	if err := check(g.canShoot(player, target), CodeInvalidTarget, "you cannot shoot that player"); err != nil {
		return err
	}
	if err := g.checkSheriffRisk(target, ReactWithMiss, 1); err != nil {
		return err
	}

	card := player.Equipment[cardIndices[0]]
	if err := g.checkApache(target, card.Suit); err != nil {
		return err
	}

	g.Deck.Discard(popAt(&player.Equipment, cardIndices[0]))
	g.Turn.queueableUsed(CardPepperbox)
	g.shoot(player, target, 1, card)

	g.stateUpdated(cardEvent(CardPepperbox), fmt.Sprintf("%s shot at %s with a %s. They need one %s defense.",
		player.Name, target.Name, cardText(card), ReactWithMiss))

	g.tryReactionFails()
	return nil
}
