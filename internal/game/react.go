package game

import (
	"fmt"
	"strings"
)

// react answers the head entry of the reaction queue with cards, or deflects
// a dynamite at it. Cards can come from the hand, or from queued equipment
// under the Dodge City rules.
func (g *Game) react(player *Player, req PlayRequest) error {
	if err := check(len(g.Turn.Reacting) > 0, CodeNotAllowed, "nothing to react to"); err != nil {
		return err
	}

	head := *g.Turn.headReaction()
	if err := check(player.Name == head.ReactorName, CodeNotYourTurn, "you do not need to react to this yet, or at all"); err != nil {
		return err
	}
	if err := check(head.Barrels <= 0, CodePendingAction, "you have unused %ss", Title(CardBarrel)); err != nil {
		return err
	}

	handIndices := []int{}
	equipmentIndices := []int{}
	for _, sel := range req.Cards {
		switch sel.Source {
		case SourceHand:
			handIndices = append(handIndices, sel.Index)
		case SourceEquipment:
			equipmentIndices = append(equipmentIndices, sel.Index)
		default:
			return errf(CodeInvalidCard, "invalid source of card selections")
		}
	}

	if err := check(g.Rules.ExpansionDodgeCity || len(equipmentIndices) == 0, CodeRuleViolation, "must defend with a card from your hand"); err != nil {
		return err
	}
	if err := check(len(req.Cards) > 0, CodeInvalidCard, "must defend with at least one card"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), handIndices), CodeInvalidCard, "your hand does not contain the cards you are trying to defend with"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Equipment), equipmentIndices), CodeInvalidCard, "your equipment does not contain the cards you are trying to defend with"); err != nil {
		return err
	}

	deflecting := len(handIndices) > 0 && player.Hand[handIndices[0]].Name == CardDynamite
	if deflecting {
		if err := check(g.Rules.DynamiteAsOptionalDeflect, CodeRuleViolation, "cannot play %s as defense", Title(CardDynamite)); err != nil {
			return err
		}
		if err := check(len(req.Cards) == 1, CodeInvalidCard, "play the %s alone to deflect", Title(CardDynamite)); err != nil {
			return err
		}
		if err := check(len(req.Targets) == 1, CodeInvalidTarget, "you can only deflect to one other player"); err != nil {
			return err
		}
		if err := check(req.Targets[0].Name != "" && req.Targets[0].playerOnly(), CodeInvalidTarget, "you must target the player only, not their hand, equipment, role, or skills"); err != nil {
			return err
		}
	}

	cards := make([]Card, 0, len(req.Cards))
	sources := make([]Source, 0, len(req.Cards))
	for _, sel := range req.Cards {
		if sel.Source == SourceHand {
			cards = append(cards, player.Hand[sel.Index])
		} else {
			cards = append(cards, player.Equipment[sel.Index])
		}
		sources = append(sources, sel.Source)
	}

	// The turn player's own equipment defenses must have been queued on a
	// prior turn.
	if g.turnPlayer().Name == player.Name {
		for i, card := range cards {
			playable := sources[i] == SourceHand || g.Turn.queueableAvailable(card.Name)
			if err := check(playable, CodeNotAllowed, "selected cards were not queued in last turn"); err != nil {
				return err
			}
		}
	}

	bangsFromHand, missesFromHand, dodgesFromHand, nonMissesFromHand := 0, 0, 0, 0
	missesFromEquipment, bangsFromEquipment := 0, 0
	for i, card := range cards {
		fromHand := sources[i] == SourceHand
		switch {
		case fromHand && card.Name == CardBang:
			bangsFromHand++
		case fromHand && card.Name == CardMissed:
			missesFromHand++
		case fromHand && card.Name == CardDodge:
			dodgesFromHand++
		case !fromHand && card.Name == CardBang:
			bangsFromEquipment++
		case !fromHand && nameIn(card.Name, queueableMisses):
			missesFromEquipment++
		}
		if fromHand && card.Name != CardMissed && card.Name != CardDodge {
			nonMissesFromHand++
		}
	}

	if err := check(bangsFromEquipment == 0, CodeInvalidCard, "you cannot play a %s from your equipment as a defense", Title(CardBang)); err != nil {
		return err
	}

	canUseEquipment := g.turnPlayer().Name == player.Name || !g.turnPlayer().hasSkill(SkillBelle)
	if err := check(missesFromEquipment == 0 || canUseEquipment, CodeRuleViolation, "you cannot use your equipment to defend yourself during %s's turn", Title(SkillBelle)); err != nil {
		return err
	}

	isJanet := player.hasSkill(SkillJanet)
	isElena := player.hasSkill(SkillElena)

	normalBangs := bangsFromHand
	normalMisses := missesFromHand + dodgesFromHand + missesFromEquipment

	janetBangs := normalBangs
	janetMisses := normalMisses
	if isJanet {
		janetBangs += missesFromHand
		janetMisses += bangsFromHand
	}

	effectiveBangs := janetBangs
	effectiveMisses := janetMisses
	if isElena {
		effectiveMisses += nonMissesFromHand
		if isJanet {
			effectiveMisses -= bangsFromHand
		}
	}

	if !deflecting {
		if head.Required == ReactWithBang {
			if err := check(effectiveBangs == head.Quantity, CodeInvalidCard, "you need %d %s %s or just pass", head.Quantity, ReactWithBang, plural(head.Quantity, "defense", "defenses")); err != nil {
				return err
			}
		} else {
			if err := check(effectiveMisses == head.Quantity, CodeInvalidCard, "you need %d %s %s or just pass", head.Quantity, ReactWithMiss, plural(head.Quantity, "defense", "defenses")); err != nil {
				return err
			}
		}
	}

	cardsMatch := effectiveMisses == normalMisses
	if head.Required == ReactWithBang {
		cardsMatch = effectiveBangs == normalBangs
	}

	targetName := head.ActorName
	if deflecting {
		targetName = req.Targets[0].Name
	}
	target, err := g.getPlayer(targetName)
	if err != nil {
		return err
	}
	if err := check(target.isAlive(), CodeInvalidTarget, "target is not alive"); err != nil {
		return err
	}

	if head.Duel || deflecting {
		if err := g.checkSheriffRisk(target, head.Required, head.Quantity); err != nil {
			return errf(CodeRuleViolation, "cannot risk killing the %s until one on one; you need to pass and take the hit", Title(RoleSheriff))
		}
	}

	if deflecting {
		if err := g.checkApache(target, cards[0].Suit); err != nil {
			return err
		}
	}

	var deflectCard Card
	if deflecting {
		deflectCard = player.Hand[handIndices[0]]
	}

	handCards := g.discardPlayedCards(player, handIndices, g.Rules.PickupsDuringReaction)

	if player.hasSkill(SkillMolly) {
		player.PendingDraws++
	}

	equipmentCards := []Card{}
	for _, index := range descending(equipmentIndices) {
		card := popAt(&player.Equipment, index)
		g.Deck.Discard(card)
		equipmentCards = append(equipmentCards, card)
	}

	g.Turn.popReaction()

	g.givePlayerCards(player, dodgesFromHand)

	biblesPlayed := 0
	ironPlates := 0
	for i, card := range cards {
		if sources[i] != SourceEquipment {
			continue
		}
		if card.Name == CardBible {
			biblesPlayed++
		}
		if card.Name == CardIronPlate {
			ironPlates++
		}
	}
	g.givePlayerCards(player, biblesPlayed)

	var event EventType
	switch {
	case deflecting:
		event = EventDeflected
	case biblesPlayed > 0:
		event = EventBibleMissed
	case ironPlates > 0:
		event = EventPlateMissed
	case head.Required == ReactWithMiss:
		event = EventMissed
	default:
		event = gunEvent(player)
	}

	parts := make([]string, 0, len(cards))
	for _, card := range handCards {
		parts = append(parts, fmt.Sprintf("a %s (from their hand)", cardText(card)))
	}
	for _, card := range equipmentCards {
		parts = append(parts, fmt.Sprintf("a %s (from their equipment)", cardText(card)))
	}

	drawNote := ""
	if drawn := dodgesFromHand + biblesPlayed; drawn > 0 {
		drawNote = fmt.Sprintf(" %s drawn as a result.", plural(drawn, "A card was", fmt.Sprintf("%d cards were", drawn)))
	}

	var text string
	if deflecting {
		text = fmt.Sprintf("%s deflected to %s with a %s, who now needs %d %s defenses.",
			player.Name, target.Name, cardText(deflectCard), head.Quantity, head.Required)
	} else {
		substitution := ""
		if !cardsMatch {
			skill := SkillElena
			janetDefenses := janetMisses
			if head.Required == ReactWithBang {
				janetDefenses = janetBangs
			}
			if janetDefenses >= head.Quantity {
				skill = SkillJanet
			}
			substitution = fmt.Sprintf(" as a %s (%s skill)", head.Required, Title(skill))
		}
		text = fmt.Sprintf("%s defended with %s%s.%s", player.Name, strings.Join(parts, " and "), substitution, drawNote)
	}

	if deflecting || head.Duel {
		barrels := 0
		canUseBarrels := g.turnPlayer().Name == target.Name || !g.turnPlayer().hasSkill(SkillBelle)
		if canUseBarrels && head.Required == ReactWithMiss {
			if target.hasEquipped(CardBarrel) {
				barrels++
			}
			if target.hasSkill(SkillJourdonnais) {
				barrels++
			}
		}

		actor := player.Name
		if deflecting {
			actor = head.ActorName
		}

		g.Turn.insertReaction(Reaction{
			InitiatorName: head.InitiatorName,
			ActorName:     actor,
			ReactorName:   target.Name,
			Required:      head.Required,
			Barrels:       barrels,
			Quantity:      head.Quantity,
			Duel:          head.Duel,
		})
	}

	g.stateUpdated(event, text)

	if g.Rules.PickupsDuringReaction {
		g.tryReplenishHandSkill(player)
		g.tryEmptyHandSkill(player)
	}

	g.tryReactionFails()
	g.maybeEndTurn()
	return nil
}

// reactBarrel spends one barrel luck draw against the head reaction. A heart
// counts as a missed.
func (g *Game) reactBarrel(player *Player) error {
	if err := check(len(g.Turn.Reacting) > 0, CodeNotAllowed, "nothing to react to"); err != nil {
		return err
	}

	head := g.Turn.headReaction()
	if err := check(player.Name == head.ReactorName, CodeNotYourTurn, "you do not need to react to this yet, or at all"); err != nil {
		return err
	}
	if err := check(head.Required == ReactWithMiss, CodeNotAllowed, "a %s or the %s skill cannot help defend against this", Title(CardBarrel), Title(SkillJourdonnais)); err != nil {
		return err
	}
	if err := check(head.Barrels > 0, CodeNotAllowed, "you cannot draw for %ss", Title(CardBarrel)); err != nil {
		return err
	}

	cards := []Card{g.Deck.Draw()}
	if player.hasSkill(SkillDuke) {
		cards = append(cards, g.Deck.Draw())
	}

	successful := false
	for _, card := range cards {
		g.Deck.Discard(card)
		if card.Suit == SuitHearts {
			successful = true
		}
	}

	head.Barrels--
	if successful {
		head.Quantity--
	}
	if head.Quantity <= 0 {
		g.Turn.popReaction()
	}

	event := EventNothing
	outcome := "did not count"
	if successful {
		event = EventBarrelMissed
		outcome = "counted"
	}
	g.stateUpdated(event, fmt.Sprintf("With a %s or %s skill, %s drew a %s, and it %s as a %s.",
		Title(CardBarrel), Title(SkillJourdonnais), player.Name, cardsText(cards), outcome, Title(CardMissed)))

	g.tryReactionFails()
	g.maybeEndTurn()
	return nil
}

// reactFailed takes the hit for the head reaction. A player with more than
// one life who can still defend themselves may not pass.
func (g *Game) reactFailed(player *Player) error {
	if err := check(len(g.Turn.Reacting) > 0, CodeNotAllowed, "nothing to react to"); err != nil {
		return err
	}

	head := *g.Turn.headReaction()
	if err := check(player.Name == head.ReactorName, CodeNotYourTurn, "you do not need to react to this yet, or at all"); err != nil {
		return err
	}
	if err := check(head.Barrels <= 0, CodePendingAction, "you have unused %ss", Title(CardBarrel)); err != nil {
		return err
	}

	isJanet := player.hasSkill(SkillJanet)
	defenses := 0
	for _, card := range player.Hand {
		switch {
		case isJanet && (card.Name == CardBang || card.Name == CardMissed):
			defenses++
		case head.Required == ReactWithBang && card.Name == CardBang:
			defenses++
		case head.Required == ReactWithMiss && (card.Name == CardMissed || card.Name == CardDodge):
			defenses++
		}
	}

	canSidUp := player.hasSkill(SkillSid) && len(player.Hand) > 1
	hasDeflect := g.Rules.DynamiteAsOptionalDeflect && player.hasCardInHand(CardDynamite)
	hasSomeDefense := defenses >= head.Quantity || canSidUp || hasDeflect
	if err := check(player.Health <= 1 || !hasSomeDefense, CodeNotAllowed, "you can defend yourself"); err != nil {
		return err
	}

	g.Turn.popReaction()

	initiator, _ := g.getPlayer(head.InitiatorName)
	actor, _ := g.getPlayer(head.ActorName)

	responsible := actor
	if g.Rules.InitiatorIsResponsible {
		responsible = initiator
	}
	g.decreaseHealth(responsible, player, 1)

	if initiator != nil {
		g.tryEmptyHandSkill(initiator)
	}
	if actor != nil {
		g.tryEmptyHandSkill(actor)
		g.tryReplenishHandSkill(actor)
	}
	g.tryEmptyHandSkill(player)
	g.tryReplenishHandSkill(player)

	g.tryReactionFails()
	g.maybeEndTurn()
	return nil
}

// reactionDefenseGuaranteed reports whether the player provably cannot be
// hurt by the demand, judged on public information only.
func (g *Game) reactionDefenseGuaranteed(player *Player, required RequiredReaction, quantity int) bool {
	isElena := player.hasSkill(SkillElena)
	if required == ReactWithMiss && len(player.Hand) >= quantity && isElena {
		return true
	}

	isJanet := player.hasSkill(SkillJanet)
	if len(player.Hand) >= quantity && isElena && isJanet {
		return true
	}

	if player.hasSkill(SkillSid) && player.Health == 1 && len(player.Hand) >= 2 {
		return true
	}

	if required == ReactWithBang {
		return false
	}

	queuedMisses := g.usableQueuedMisses(player)
	return queuedMisses >= quantity
}

// usableQueuedMisses counts the miss defenses sitting in the player's
// equipment that they could actually play right now.
func (g *Game) usableQueuedMisses(player *Player) int {
	if g.turnPlayer().Name != player.Name && g.turnPlayer().hasSkill(SkillBelle) {
		return 0
	}

	if g.turnPlayer().Name == player.Name {
		count := 0
		for _, card := range player.Equipment {
			if g.Turn.queueableAvailable(card.Name) && nameIn(card.Name, queueableMisses) {
				count++
			}
		}
		return count
	}

	return countWithNameIn(player.Equipment, queueableMisses)
}

// reactionMayBeDefended reports whether the reactor could possibly satisfy
// the demand, judged on public information only. A false answer means the
// hit can be applied without waiting on them.
func (g *Game) reactionMayBeDefended(reaction Reaction) bool {
	player, err := g.getPlayer(reaction.ReactorName)
	if err != nil {
		return false
	}

	if g.reactionDefenseGuaranteed(player, reaction.Required, reaction.Quantity) {
		return true
	}

	// A diamond cannot touch Apache Kid, so there is nothing to defend.
	if apacheImmune(player, reaction.Suit) {
		return false
	}

	if g.Rules.DynamiteAsOptionalDeflect && len(player.Hand) > 0 {
		return true
	}

	if reaction.Required == ReactWithBang {
		return len(player.Hand) >= reaction.Quantity
	}

	possible := len(player.Hand) + g.usableQueuedMisses(player)
	return possible >= reaction.Quantity || reaction.Barrels > 0
}

// tryReactionFails drains every head reaction that provably cannot be
// defended, applying the hits. Once the queue empties, deferred pickup skills
// settle for everyone.
func (g *Game) tryReactionFails() {
	for len(g.Turn.Reacting) > 0 && !g.reactionMayBeDefended(g.Turn.Reacting[0]) {
		head := g.Turn.popReaction()

		reactor, err := g.getPlayer(head.ReactorName)
		if err != nil {
			continue
		}

		if apacheImmune(reactor, head.Suit) {
			g.stateUpdated(EventInfo, fmt.Sprintf("%s was not affected since the attacking card was a %s (%s skill).",
				reactor.Name, SuitDiamonds, Title(SkillApache)))
			continue
		}

		responsibleName := head.ActorName
		if g.Rules.InitiatorIsResponsible {
			responsibleName = head.InitiatorName
		}
		responsible, _ := g.getPlayer(responsibleName)
		g.decreaseHealth(responsible, reactor, 1)
	}

	if len(g.Turn.Reacting) == 0 {
		for _, p := range g.alivePlayers() {
			g.tryEmptyHandSkill(p)
			g.tryReplenishHandSkill(p)
		}
	}
}

// EndTurn passes the turn, or records a failed reaction when the player is
// being reacted against.
func (g *Game) EndTurn(playerName string) error {
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

	if len(g.Turn.Reacting) > 0 {
		return g.reactFailed(player)
	}

	if err := check(g.turnPlayer().Name == player.Name, CodeNotYourTurn, "not your turn"); err != nil {
		return err
	}
	if err := check(g.Turn.DrawsRemaining <= 0 && len(player.TempHand) == 0, CodePendingAction, "you have pending draw actions"); err != nil {
		return err
	}
	if err := check(!g.Turn.MustMimic, CodePendingAction, "you must first pick a skill to mimic as %s", Title(SkillVera)); err != nil {
		return err
	}
	if err := check(g.Turn.Store.CurrentPicker == "", CodePendingAction, "%s must complete first", Title(CardGeneralStore)); err != nil {
		return err
	}

	limit := player.handLimit()
	inHand := len(player.Hand)
	if err := check(limit >= inHand, CodeNotAllowed, "you must have no more than %s to end your turn; play or discard",
		plural(limit, "1 card", fmt.Sprintf("%d cards", limit))); err != nil {
		return err
	}

	seanNote := ""
	if player.hasSkill(SkillSean) && inHand > player.Health {
		seanNote = fmt.Sprintf(" with %s in their hand (%s skill)", plural(inHand, "1 card", fmt.Sprintf("%d cards", inHand)), Title(SkillSean))
	}
	g.stateUpdated(EventTurnEnded, fmt.Sprintf("%s ended their turn%s.", player.Name, seanNote))

	g.nextPlayer()
	return nil
}

// nextPlayer opens a fresh turn for the next living player in seating order.
func (g *Game) nextPlayer() {
	after := g.getAlivePlayersAfter(g.turnPlayer())
	if len(after) == 0 {
		return
	}

	next := after[0]
	nextIndex := 0
	for i, p := range g.Players {
		if p.Name == next.Name {
			nextIndex = i
			break
		}
	}

	g.Turn = newTurn(nextIndex)
	g.Turn.DrawsRemaining = g.startOfTurnDraws(next)
	g.Turn.MustMimic = next.hasSkill(SkillVera)

	g.Turn.AvailableQueued = countWithNameIn(next.Equipment, queueables)
	for _, card := range next.Equipment {
		if card.Type == TypeQueueable {
			g.Turn.AvailableQueueables = append(g.Turn.AvailableQueueables, card.Name)
		}
	}

	notes := ""
	if next.hasEquipped(CardDynamite) {
		notes += fmt.Sprintf(" %s will explode on a 2 to 9 of %s.", Title(CardDynamite), SuitSpades)
	}
	if next.hasEquipped(CardJail) {
		notes += fmt.Sprintf(" A suit of %s is needed for them to get out of %s and play their turn, or else it's skipped.", SuitHearts, Title(CardJail))
	}
	if g.Turn.MustMimic {
		notes += fmt.Sprintf(" They must first choose a skill in play to mimic (%s skill).", Title(SkillVera))
	}

	g.stateUpdated(EventInfo, fmt.Sprintf("It's %s's turn.%s", next.Name, notes))
}
