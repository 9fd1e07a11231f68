package game

import "fmt"

// targetData is a validated target: the player plus which of their zones, if
// any, the action picks at.
type targetData struct {
	target     *Player
	hand       bool
	itemIndex  int
	role       bool
	skillIndex int
}

// singleTarget validates that exactly one living player is targeted, with no
// zone selected.
func (g *Game) singleTarget(cardName CardName, targets []TargetSelection) (*Player, error) {
	what := "target"
	if cardName != "" {
		what = fmt.Sprintf("play a %s", Title(cardName))
	}
	if err := check(len(targets) == 1, CodeInvalidTarget, "you must target one player to %s", what); err != nil {
		return nil, err
	}

	target, err := g.getPlayer(targets[0].Name)
	if err != nil {
		return nil, err
	}
	if err := check(target.isAlive(), CodeInvalidTarget, "target is not alive"); err != nil {
		return nil, err
	}
	return target, nil
}

// playerOnlyTarget additionally rejects zone selections.
func (g *Game) playerOnlyTarget(cardName CardName, targets []TargetSelection) (*Player, error) {
	target, err := g.singleTarget(cardName, targets)
	if err != nil {
		return nil, err
	}
	if err := check(targets[0].playerOnly(), CodeInvalidTarget, "you must target the player only, not their hand, equipment, role, or skills"); err != nil {
		return nil, err
	}
	return target, nil
}

// pickingTarget validates a target for actions that pick a card off the
// target: exactly one of hand, item, role, or skill must be selected.
func (g *Game) pickingTarget(player *Player, cardName CardName, targets []TargetSelection, cardIndices []int) (targetData, error) {
	target, err := g.singleTarget(cardName, targets)
	if err != nil {
		return targetData{}, err
	}

	sel := targets[0]
	data := targetData{
		target:     target,
		hand:       sel.Hand,
		itemIndex:  sel.itemIndex(),
		role:       sel.Role,
		skillIndex: sel.skillIndex(),
	}

	targetingSelf := player.Name == target.Name
	if err := check(g.Rules.CanHarmSelf || !targetingSelf, CodeInvalidTarget, "you cannot target yourself"); err != nil {
		return targetData{}, err
	}

	zones := 0
	for _, set := range []bool{data.hand, data.itemIndex >= 0, data.role, data.skillIndex >= 0} {
		if set {
			zones++
		}
	}
	if err := check(zones == 1, CodeInvalidTarget, "you must target exactly one of a hand, item, role, or skill"); err != nil {
		return targetData{}, err
	}

	if data.hand {
		// When picking from your own hand, the played cards themselves
		// are no longer available to be picked.
		reserved := 0
		if targetingSelf {
			reserved = len(cardIndices)
		}
		if err := check(len(target.Hand) > reserved, CodeInvalidTarget, "%s does not have enough cards in their hand", target.Name); err != nil {
			return targetData{}, err
		}
	}

	if data.itemIndex >= 0 {
		if err := check(data.itemIndex < len(target.Equipment), CodeInvalidTarget, "%s does not have that item", target.Name); err != nil {
			return targetData{}, err
		}
	}

	if data.role {
		if err := check(!g.Rules.Roles, CodeInvalidTarget, "roles are locked in from the start"); err != nil {
			return targetData{}, err
		}
		if err := check(target.Role != nil, CodeInvalidTarget, "%s does not have a role", target.Name); err != nil {
			return targetData{}, err
		}
	}

	if data.skillIndex >= 0 {
		if err := check(len(target.Skills) > g.Rules.MinSkills, CodeInvalidTarget, "%s cannot have fewer than %d skills", target.Name, g.Rules.MinSkills); err != nil {
			return targetData{}, err
		}
		if err := check(data.skillIndex < len(target.Skills), CodeInvalidTarget, "%s does not have that skill", target.Name); err != nil {
			return targetData{}, err
		}
	}

	return data, nil
}

// handlePop removes the selected card from the target's chosen zone. Hand
// picks are random.
func (g *Game) handlePop(data targetData) Card {
	target := data.target

	var card Card
	switch {
	case data.hand:
		card = popRandom(g.rng, &target.Hand)
	case data.itemIndex >= 0:
		card = popAt(&target.Equipment, data.itemIndex)
	case data.role:
		card = *target.Role
	default:
		card = popAt(&target.Skills, data.skillIndex)
	}

	if card.Name == SkillVera {
		target.MimickedSkill = ""
	}

	g.tryEmptyHandSkill(target)

	if data.role {
		target.Role = nil
	}

	// Losing a queued bang off the turn player's board loses its use too.
	if data.itemIndex >= 0 && g.turnPlayer().Name == target.Name && nameIn(card.Name, queueables) {
		g.Turn.AvailableQueued--
	}

	return card
}

func (g *Game) handleDrop(data targetData) Card {
	card := g.handlePop(data)
	g.Deck.Discard(card)
	return card
}

func (g *Game) handleSteal(player *Player, data targetData) Card {
	card := g.handlePop(data)
	player.Hand = append(player.Hand, card)
	return card
}

// discardPlayedCards moves the indexed hand cards to the discard pile, in
// descending index order so earlier pops do not shift later ones.
func (g *Game) discardPlayedCards(player *Player, cardIndices []int, tryEmpty bool) []Card {
	cards := []Card{}
	for _, index := range descending(cardIndices) {
		card := popAt(&player.Hand, index)
		g.Deck.Discard(card)
		cards = append(cards, card)
		if tryEmpty {
			g.tryEmptyHandSkill(player)
		}
	}
	return cards
}

// apacheImmune reports whether the target shrugs off the card entirely.
func apacheImmune(target *Player, suit Suit) bool {
	return target.hasSkill(SkillApache) && suit == SuitDiamonds
}

func (g *Game) checkApache(target *Player, suit Suit) error {
	return check(!apacheImmune(target, suit), CodeInvalidTarget,
		"cannot affect %s with a card of %s", Title(SkillApache), SuitDiamonds)
}

// checkSheriffRisk vetoes attacks that could kill the sheriff while roles
// still matter, unless the sheriff's defense is guaranteed.
func (g *Game) checkSheriffRisk(target *Player, required RequiredReaction, quantity int) error {
	if g.isOneOnOne() || g.Rules.CanKillSheriff || !target.hasRole(RoleSheriff) {
		return nil
	}
	if g.reactionDefenseGuaranteed(target, required, quantity) {
		return nil
	}
	return errf(CodeRuleViolation, "cannot risk killing the %s until one on one", Title(RoleSheriff))
}

// Play routes a card play. During a reaction it is a defense; during the
// player's own turn it dispatches on the card played.
func (g *Game) Play(playerName string, req PlayRequest) error {
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

	if head := g.Turn.headReaction(); head != nil && head.ReactorName == player.Name {
		return g.react(player, req)
	}

	if err := check(g.turnPlayer().Name == player.Name, CodeNotYourTurn, "not your turn"); err != nil {
		return err
	}
	if err := check(g.Turn.DrawsRemaining <= 0 && !g.Turn.PendingDiscard, CodePendingAction, "you have pending draw actions"); err != nil {
		return err
	}
	if err := check(len(g.Turn.Reacting) == 0, CodePendingAction, "you cannot play cards at this time"); err != nil {
		return err
	}
	if err := check(!g.Turn.Discarding, CodeNotAllowed, "you cannot play after discarding"); err != nil {
		return err
	}
	if err := check(!g.Turn.MustMimic, CodePendingAction, "you must first pick a skill to mimic as %s", Title(SkillVera)); err != nil {
		return err
	}
	if err := check(g.Turn.Store.CurrentPicker == "", CodePendingAction, "%s must complete first", Title(CardGeneralStore)); err != nil {
		return err
	}

	if player.hasSkill(SkillClaus) && len(player.TempHand) > 0 {
		return g.handleGift(player, req)
	}
	if err := check(len(player.TempHand) == 0, CodePendingAction, "you have pending draw actions"); err != nil {
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
			return errf(CodeInvalidCard, "unknown source %q of played cards", sel.Source)
		}
	}
	if err := check((len(handIndices) > 0) != (len(equipmentIndices) > 0), CodeInvalidCard, "cards must be played either from your hand or your equipment"); err != nil {
		return err
	}

	if len(handIndices) > 0 {
		err = g.playFromHand(player, handIndices, req.Equipping, req.Targets)
	} else {
		err = g.playFromEquipment(player, equipmentIndices, req.Targets)
	}
	if err != nil {
		return err
	}

	g.maybeEndTurn()
	return nil
}

// maybeEndTurn passes the turn when the player provably has nothing left.
func (g *Game) maybeEndTurn() {
	if g.isTurnOver() {
		g.stateUpdated(EventTurnEnded, fmt.Sprintf("%s ended their turn.", g.turnPlayer().Name))
		g.nextPlayer()
	}
}

func (g *Game) playFromHand(player *Player, cardIndices []int, equipping bool, targets []TargetSelection) error {
	if err := check(len(cardIndices) > 0, CodeInvalidCard, "no cards played"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not contain what you are trying to play"); err != nil {
		return err
	}

	main := player.Hand[cardIndices[0]]

	if main.Type == TypeSkill {
		if len(targets) > 0 {
			return g.replaceSkill(player, cardIndices, targets)
		}
		return g.addSkill(player, cardIndices)
	}
	if main.Type == TypeQueueable {
		return g.equipUnique(player, cardIndices)
	}

	switch main.Name {
	case CardBang:
		if equipping {
			return g.queueBang(player, cardIndices)
		}
		return g.playBang(player, cardIndices, targets, SourceHand)
	case CardMissed:
		return g.playBang(player, cardIndices, targets, SourceHand)
	case CardBeer:
		return g.playBeer(player, cardIndices)
	case CardBrawl:
		return g.playBrawl(player, cardIndices, targets)
	case CardCatBalou:
		return g.playCatBalou(player, cardIndices, targets)
	case CardDuel:
		return g.playDuel(player, cardIndices, targets)
	case CardGatling:
		return g.playGatling(player, cardIndices)
	case CardGeneralStore:
		return g.playGeneralStore(player, cardIndices)
	case CardIndians:
		return g.playIndians(player, cardIndices)
	case CardPanic:
		return g.playPanic(player, cardIndices, targets)
	case CardPunch:
		return g.playPunch(player, cardIndices, targets)
	case CardRagTime:
		return g.playRagTime(player, cardIndices, targets)
	case CardSaloon:
		return g.playSaloon(player, cardIndices)
	case CardSpringfield:
		return g.playSpringfield(player, cardIndices, targets)
	case CardStagecoach:
		return g.playStagecoach(player, cardIndices)
	case CardTequila:
		return g.playTequila(player, cardIndices, targets)
	case CardWellsFargo:
		return g.playWellsFargo(player, cardIndices)
	case CardWhisky:
		return g.playWhisky(player, cardIndices)
	case CardBarrel, CardBinocular, CardHideout, CardDynamite, CardMustang, CardScope:
		return g.equipUnique(player, cardIndices)
	case CardJail:
		return g.playJail(player, cardIndices, targets)
	case CardRemington, CardRevCarbine, CardSchofield, CardVolcanic, CardWinchester:
		return g.equipGun(player, cardIndices)
	case RoleSheriff, RoleDeputy, RoleOutlaw, RoleRenegade:
		return g.assumeRole(player, cardIndices)
	}

	return errf(CodeInvalidCard, "cannot play a %s now", Title(main.Name))
}

func (g *Game) playFromEquipment(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "you can only play one card from your equipment at a time"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Equipment), cardIndices), CodeInvalidCard, "your equipment does not contain what you are trying to play"); err != nil {
		return err
	}

	main := player.Equipment[cardIndices[0]]
	playable := main.Type == TypeQueueable || nameIn(main.Name, queueables)
	if err := check(playable, CodeInvalidCard, "this is not playable from your equipment"); err != nil {
		return err
	}

	switch main.Name {
	case CardBang, CardMissed:
		return g.playBang(player, cardIndices, targets, SourceEquipment)
	case CardBuffaloRifle:
		return g.playBuffaloRifle(player, cardIndices, targets)
	case CardCanCan:
		return g.playCanCan(player, cardIndices, targets)
	case CardCanteen:
		return g.playCanteen(player, cardIndices)
	case CardConestoga:
		return g.playConestoga(player, cardIndices, targets)
	case CardDerringer:
		return g.playDerringer(player, cardIndices, targets)
	case CardHowitzer:
		return g.playHowitzer(player, cardIndices)
	case CardKnife:
		return g.playKnife(player, cardIndices, targets)
	case CardPepperbox:
		return g.playPepperbox(player, cardIndices, targets)
	case CardPonyExpress:
		return g.playPonyExpress(player, cardIndices)
	}

	return errf(CodeInvalidCard, "cannot play a %s now", Title(main.Name))
}

// queueableChecks validates a queueable equipment play: index bounds and the
// card being still available this turn.
func (g *Game) queueableChecks(player *Player, name CardName, cardIndices []int) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "you can only play one %s at a time", Title(name)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Equipment), cardIndices), CodeInvalidCard, "your equipment does not have the card you are trying to play"); err != nil {
		return err
	}
	return check(g.Turn.queueableAvailable(name), CodeNotAllowed, "can only play actions placed in equipment on a previous turn")
}
