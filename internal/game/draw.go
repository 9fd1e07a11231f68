package game

import "fmt"

// Draw resolves the turn player's draw phase. Depending on context it may
// instead perform a barrel luck draw for a pending reaction, a dynamite or
// jail check, a discard-pile or opponent draw, or the Claus gift draw.
func (g *Game) Draw(playerName string, req DrawRequest) error {
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
		return g.reactBarrel(player)
	}

	if err := check(g.turnPlayer().Name == player.Name, CodeNotYourTurn, "not your turn"); err != nil {
		return err
	}
	if err := check(g.Turn.DrawsRemaining > 0, CodeNotAllowed, "cannot draw any more cards this turn"); err != nil {
		return err
	}
	if err := check(len(player.TempHand) == 0 || g.Turn.PendingDiscard, CodePendingAction, "you have pending draw actions"); err != nil {
		return err
	}
	if err := check(!g.Turn.MustMimic, CodePendingAction, "you must first pick a skill to mimic as %s", Title(SkillVera)); err != nil {
		return err
	}
	if err := check(g.Turn.Store.CurrentPicker == "", CodePendingAction, "%s must complete first", Title(CardGeneralStore)); err != nil {
		return err
	}

	var targetName string
	var fromDiscard bool
	if req.Target != nil {
		targetName = req.Target.Name
		fromDiscard = req.Target.Discard
	}

	if player.hasEquipped(CardDynamite) {
		if err := check(targetName == "" && !fromDiscard, CodePendingAction, "a %s is in front of you, draw to see if it explodes", Title(CardDynamite)); err != nil {
			return err
		}
		if !g.Turn.DrewForDynamite {
			return g.handleDynamite(player)
		}
	}

	if player.hasEquipped(CardJail) {
		if err := check(targetName == "" && !fromDiscard, CodePendingAction, "you are in %s, draw to try to get out", Title(CardJail)); err != nil {
			return err
		}
		return g.handleJail(player)
	}

	if fromDiscard {
		return g.drawFromDiscard(player)
	}
	if targetName != "" {
		return g.drawFromPlayer(player, req.Target.TargetSelection)
	}

	if player.hasSkill(SkillClaus) && !g.Turn.DrewForClaus {
		return g.handleClaus(player)
	}

	cards := []Card{g.Deck.Draw()}
	g.Turn.DrawsRemaining--
	g.Turn.DrewFromDeck = true

	dukeDraw := player.hasSkill(SkillDuke) && g.Rules.AlwaysLuckyDuke
	if dukeDraw {
		cards = append(cards, g.Deck.Draw())
	}

	// Kit Carlson draws everything at once and later returns one card to
	// the top of the deck.
	isKit := player.hasSkill(SkillKit)
	if isKit {
		g.Turn.DrawsRemaining++
		for g.Turn.DrawsRemaining > 0 {
			cards = append(cards, g.Deck.Draw())
			g.Turn.DrawsRemaining--
		}
	}

	// Black Jack reveals his last regular draw; a red card earns another.
	checkForBlackjack := player.hasSkill(SkillJack) && !g.Turn.DrewForClaus && g.Turn.DrawsRemaining == 0 && !g.Turn.CheckedForBlackjack
	extraDraw := false
	if checkForBlackjack {
		last := cards[len(cards)-1]
		extraDraw = last.Suit == SuitHearts || last.Suit == SuitDiamonds
		if extraDraw {
			g.Turn.DrawsRemaining++
		}
		g.Turn.CheckedForBlackjack = true
	}

	if dukeDraw || isKit {
		player.TempHand = append(player.TempHand, cards...)
		g.Turn.PendingDiscard = true
	} else {
		player.Hand = append(player.Hand, cards...)
		g.Turn.PendingDiscard = false
	}

	text := fmt.Sprintf("%s drew %d %s from the deck.", player.Name, len(cards), plural(len(cards), "card", "cards"))
	if checkForBlackjack {
		verdict := "do not"
		if extraDraw {
			verdict = "do"
		}
		text += fmt.Sprintf(" Second card was a %s, so they %s get another draw (%s skill).", cardText(cards[len(cards)-1]), verdict, Title(SkillJack))
	}
	g.stateUpdated(EventDraw, text)

	return nil
}

// drawFromDiscard lets El Gringo's cousin Pedro Ramirez take the top of the
// discard pile as his first draw.
func (g *Game) drawFromDiscard(player *Player) error {
	ok := !g.Turn.DrewFromDeck && !g.Turn.DrewFromDiscard && player.hasSkill(SkillPedro)
	if err := check(ok, CodeNotAllowed, "can only draw from discard once per turn, before drawing from the deck, as %s", Title(SkillPedro)); err != nil {
		return err
	}

	card, ok := g.Deck.DrawDiscard()
	if err := check(ok, CodeNotAllowed, "the discard pile is empty"); err != nil {
		return err
	}

	player.Hand = append(player.Hand, card)
	g.Turn.DrewFromDiscard = true
	g.Turn.DrawsRemaining--

	g.stateUpdated(EventDraw, fmt.Sprintf("%s drew from the discard pile (%s skill).", player.Name, Title(SkillPedro)))
	return nil
}

// drawFromPlayer covers Jesse Jones (draw from a hand) and Pat Brennan (draw
// a card in play, costing both draws).
func (g *Game) drawFromPlayer(player *Player, sel TargetSelection) error {
	isJesse := player.hasSkill(SkillJesse)
	isPat := player.hasSkill(SkillPat)
	if err := check(isJesse || isPat, CodeNotAllowed, "you do not have the skill to draw from a player"); err != nil {
		return err
	}

	targetData, err := g.pickingTarget(player, "", []TargetSelection{sel}, nil)
	if err != nil {
		return err
	}

	if sel.Hand {
		ok := g.Turn.DrawsRemaining > 0 && !g.Turn.DrewFromDeck && !g.Turn.DrewFromHand && isJesse && player.Name != targetData.target.Name
		if err := check(ok, CodeNotAllowed, "can only draw from an opponent's hand once per turn, before drawing from the deck, as %s", Title(SkillJesse)); err != nil {
			return err
		}
	} else {
		ok := g.Turn.DrawsRemaining >= 2 && !g.Turn.DrewFromDeck && !g.Turn.DrewFromInPlay && isPat
		if err := check(ok, CodeNotAllowed, "can only draw from cards in play once per turn, as %s", Title(SkillPat)); err != nil {
			return err
		}
	}

	card := g.handleSteal(player, targetData)

	if sel.Hand {
		g.Turn.DrewFromHand = true
		g.Turn.DrawsRemaining--
		g.stateUpdated(cardEvent(SkillJesse), fmt.Sprintf("%s drew a card from %s's hand (%s skill).", player.Name, targetData.target.Name, Title(SkillJesse)))
	} else {
		g.Turn.DrewFromInPlay = true
		g.Turn.DrawsRemaining -= 2
		g.stateUpdated(cardEvent(SkillPat), fmt.Sprintf("%s drew %s's %s (%s skill).", player.Name, targetData.target.Name, Title(card.Name), Title(SkillPat)))
	}

	return nil
}

// handleClaus draws one card per living player plus the turn player's
// allotment; the spares get gifted out afterwards.
func (g *Game) handleClaus(player *Player) error {
	if err := check(len(player.TempHand) == 0, CodePendingAction, "cards for %s already ready to be gifted", Title(SkillClaus)); err != nil {
		return err
	}

	isKit := player.hasSkill(SkillKit)
	dukeDraw := player.hasSkill(SkillDuke) && g.Rules.AlwaysLuckyDuke
	forPlayer := g.Turn.DrawsRemaining

	count := forPlayer + len(g.alivePlayers()) - 1
	if isKit {
		count++
	}
	if dukeDraw {
		count++
	}

	cards := make([]Card, 0, count)
	for i := 0; i < count; i++ {
		cards = append(cards, g.Deck.Draw())
	}
	player.TempHand = cards
	g.Turn.DrewForClaus = true
	g.Turn.PendingDiscard = isKit || dukeDraw

	last := cards[len(cards)-1]
	blackjack := player.hasSkill(SkillJack) && (last.Suit == SuitHearts || last.Suit == SuitDiamonds)
	g.Turn.DrawsRemaining = 0
	if blackjack {
		g.Turn.DrawsRemaining = 1
	}

	g.stateUpdated(EventDraw, fmt.Sprintf("%s drew %d cards and will hand out all but %d (%s skill).", player.Name, len(cards), forPlayer, Title(SkillClaus)))
	return nil
}

// handleGift deals out Claus's spare cards, one per living opponent in seat
// order.
func (g *Game) handleGift(player *Player, req PlayRequest) error {
	if err := check(player.hasSkill(SkillClaus), CodeNotAllowed, "only %s can gift cards", Title(SkillClaus)); err != nil {
		return err
	}
	if err := check(len(player.TempHand) > 0, CodeNotAllowed, "nothing to gift at the moment"); err != nil {
		return err
	}
	if err := check(!g.Turn.PendingDiscard, CodePendingAction, "you must first discard a card from the gifts as %s", Title(SkillKit)); err != nil {
		return err
	}

	if err := check(len(req.Cards) == len(g.alivePlayers())-1, CodeInvalidCard, "must give each other player one card"); err != nil {
		return err
	}
	for _, sel := range req.Cards {
		if err := check(sel.Source == SourceTemp, CodeInvalidCard, "all selected cards must be from the draw"); err != nil {
			return err
		}
	}

	indices := make([]int, len(req.Cards))
	for i, sel := range req.Cards {
		indices[i] = sel.Index
	}
	if err := check(hasUniqueIndices(len(player.TempHand), indices), CodeInvalidCard, "the cards selected do not exist in the set of gift cards"); err != nil {
		return err
	}

	recipients := g.getAlivePlayersAfter(player)
	kept := len(player.TempHand) - len(recipients)

	for i, recipient := range recipients {
		recipient.Hand = append(recipient.Hand, player.TempHand[indices[i]])
	}
	for _, index := range descending(indices) {
		popAt(&player.TempHand, index)
	}

	player.Hand = append(player.Hand, player.TempHand...)
	player.TempHand = []Card{}

	g.stateUpdated(cardEvent(SkillClaus), fmt.Sprintf("%s handed out one card to each player and kept the remaining %d cards, from their draw.", player.Name, kept))
	return nil
}

// handleDynamite runs the start-of-turn dynamite check. Spades two through
// nine detonates; otherwise the dynamite passes left.
func (g *Game) handleDynamite(player *Player) error {
	dynamite, ok := popWithName(&player.Equipment, CardDynamite)
	if err := check(ok, CodeNotAllowed, "no %s placed", Title(CardDynamite)); err != nil {
		return err
	}

	cards := []Card{g.Deck.Draw()}
	g.Turn.DrewForDynamite = true

	if player.hasSkill(SkillDuke) {
		cards = append(cards, g.Deck.Draw())
	}

	exploded := true
	for _, card := range cards {
		g.Deck.Discard(card)
		if card.Suit != SuitSpades || card.Rank < RankTwo || card.Rank > RankNine {
			exploded = false
		}
	}

	if !exploded {
		next := g.getAlivePlayersAfter(player)[0]
		nextHasDynamite := next.hasEquipped(CardDynamite)
		riskKillingSheriff := !g.isOneOnOne() && !g.Rules.CanKillSheriff && next.hasRole(RoleSheriff)

		passedText := fmt.Sprintf("and was passed on to %s", next.Name)
		if nextHasDynamite || riskKillingSheriff {
			player.Equipment = append(player.Equipment, dynamite)
			passedText = "and was not passed"
		} else {
			next.Equipment = append(next.Equipment, dynamite)
		}

		g.stateUpdated(cardEvent(CardDynamite), fmt.Sprintf("%s did not explode, %s. Drawn %s a %s.",
			Title(CardDynamite), passedText, plural(len(cards), "card was", "cards were"), cardsText(cards)))
		return nil
	}

	g.Deck.Discard(dynamite)
	g.stateUpdated(EventDynamiteExploded, fmt.Sprintf("%s exploded in front of %s. Drawn %s a %s.",
		Title(CardDynamite), player.Name, plural(len(cards), "card was", "cards were"), cardsText(cards)))

	hasCards := len(player.Hand) > 0 || len(player.Equipment) > 0

	if !g.Rules.BetterDynamite || !hasCards {
		g.decreaseHealth(nil, player, g.Rules.DynamiteDamage)
		return nil
	}

	// Better dynamite blows away the board instead of costing lives.
	for len(player.Equipment) > 0 {
		g.Deck.Discard(popTop(&player.Equipment))
	}
	for len(player.Hand) > 0 {
		g.Deck.Discard(popTop(&player.Hand))
	}

	g.stateUpdated(EventDiscard, fmt.Sprintf("%s lost their equipment and hand, as a result of the explosion.", player.Name))
	return nil
}

// handleJail runs the jail escape check. Hearts gets the player out;
// otherwise the turn is skipped.
func (g *Game) handleJail(player *Player) error {
	jail, ok := popWithName(&player.Equipment, CardJail)
	if err := check(ok, CodeNotAllowed, "not in %s", Title(CardJail)); err != nil {
		return err
	}
	g.Deck.Discard(jail)

	cards := []Card{g.Deck.Draw()}
	g.Turn.DrewForJail = true

	if player.hasSkill(SkillDuke) {
		cards = append(cards, g.Deck.Draw())
	}

	out := false
	for _, card := range cards {
		g.Deck.Discard(card)
		if card.Suit == SuitHearts {
			out = true
		}
	}

	if out {
		g.stateUpdated(EventOutJail, fmt.Sprintf("%s got out of %s. Drawn %s a %s.",
			player.Name, Title(CardJail), plural(len(cards), "card was", "cards were"), cardsText(cards)))
		return nil
	}

	g.stateUpdated(EventSkipped, fmt.Sprintf("%s did not get out of %s. Drawn %s a %s.",
		player.Name, Title(CardJail), plural(len(cards), "card was", "cards were"), cardsText(cards)))
	g.nextPlayer()
	return nil
}

// FinishTempDraw settles a Kit Carlson or Lucky Duke draw by discarding one
// of the revealed cards (Kit returns it to the top of the deck instead).
func (g *Game) FinishTempDraw(playerName string, req CardIndicesRequest) error {
	if err := check(!g.Ended, CodeEnded, "game already ended"); err != nil {
		return err
	}
	if err := check(g.Started, CodeNotStarted, "game not started"); err != nil {
		return err
	}
	if err := check(g.playerExists(playerName), CodeUnknownPlayer, "player not in the game"); err != nil {
		return err
	}
	if err := check(g.turnPlayer().Name == normalizeName(playerName), CodeNotYourTurn, "not your turn"); err != nil {
		return err
	}

	player := g.turnPlayer()
	if err := check(len(player.TempHand) > 0 && g.Turn.PendingDiscard, CodeNotAllowed, "no drawn cards need to be discarded"); err != nil {
		return err
	}
	if err := check(len(req.Cards) == 1, CodeInvalidCard, "must select exactly one card to be discarded"); err != nil {
		return err
	}

	index := req.Cards[0]
	if err := check(index >= 0 && index < len(player.TempHand), CodeInvalidCard, "your temporary hand does not have that card"); err != nil {
		return err
	}

	selected := popAt(&player.TempHand, index)
	isKit := player.hasSkill(SkillKit)
	if isKit {
		g.Deck.ReturnToTop(selected)
	} else {
		g.Deck.Discard(selected)
	}

	if !player.hasSkill(SkillClaus) {
		player.Hand = append(player.Hand, player.TempHand...)
		player.TempHand = []Card{}
	}

	g.Turn.PendingDiscard = false

	if isKit {
		g.stateUpdated(cardEvent(SkillKit), fmt.Sprintf("%s returned a card to the top of the deck, from the cards they drew.", player.Name))
	} else {
		g.stateUpdated(EventDiscard, fmt.Sprintf("%s discarded a %s, from the cards they drew.", player.Name, cardText(selected)))
	}
	return nil
}

// LoseLifeForDraw is Chuck Wengam's trade of one life for two cards.
func (g *Game) LoseLifeForDraw(playerName string) error {
	if err := check(!g.Ended, CodeEnded, "game already ended"); err != nil {
		return err
	}
	if err := check(g.Started, CodeNotStarted, "game not started"); err != nil {
		return err
	}
	if err := check(g.playerExists(playerName), CodeUnknownPlayer, "player not in the game"); err != nil {
		return err
	}
	if err := check(g.turnPlayer().Name == normalizeName(playerName), CodeNotYourTurn, "not your turn"); err != nil {
		return err
	}

	player := g.turnPlayer()
	if err := check(g.Turn.DrawsRemaining <= 0 && len(player.TempHand) == 0, CodePendingAction, "you have pending draw actions"); err != nil {
		return err
	}
	if err := check(len(g.Turn.Reacting) == 0, CodePendingAction, "you cannot play cards at this time"); err != nil {
		return err
	}
	if err := check(!g.Turn.Discarding, CodeNotAllowed, "you cannot play after discarding"); err != nil {
		return err
	}
	if err := check(g.Rules.ExpansionDodgeCity, CodeRuleViolation, "this feature is not available with these rules"); err != nil {
		return err
	}
	if err := check(!g.Turn.MustMimic, CodePendingAction, "you must first pick a skill to mimic as %s", Title(SkillVera)); err != nil {
		return err
	}
	if err := check(g.Turn.Store.CurrentPicker == "", CodePendingAction, "%s must complete first", Title(CardGeneralStore)); err != nil {
		return err
	}
	if err := check(player.hasSkill(SkillChuck), CodeNotAllowed, "only %s can lose a life to draw two cards", Title(SkillChuck)); err != nil {
		return err
	}
	if err := check(!g.Turn.DiscardedForLife, CodeNotAllowed, "you cannot lose a life as %s after gaining one as %s this turn", Title(SkillChuck), Title(SkillSid)); err != nil {
		return err
	}

	hasBeer := player.hasCardInHand(CardBeer)
	beerUsable := hasBeer && (len(g.Players) == 2 || g.Rules.BeersDuringOneOnOne || !g.isOneOnOne())
	if err := check(player.Health > 1 || beerUsable, CodeNotAllowed, "cannot purposely kill yourself"); err != nil {
		return err
	}

	g.givePlayerCards(player, 2)
	g.Turn.LostLifeForDraw = true

	g.stateUpdated(EventDraw, fmt.Sprintf("%s elected to lose a life to draw 2 cards (%s skill).", player.Name, Title(SkillChuck)))

	g.decreaseHealth(nil, player, 1)
	return nil
}

// PickFromStore takes one face-up card during a general store round. Once
// the remainder is all identical, the rest is auto-dealt.
func (g *Game) PickFromStore(playerName string, req CardIndicesRequest) error {
	if err := check(!g.Ended, CodeEnded, "game already ended"); err != nil {
		return err
	}
	if err := check(g.Started, CodeNotStarted, "game not started"); err != nil {
		return err
	}
	store := &g.Turn.Store
	if err := check(store.CurrentPicker != "" && len(store.Cards) > 0, CodeNotAllowed, "no %s at the moment", Title(CardGeneralStore)); err != nil {
		return err
	}
	if err := check(normalizeName(playerName) == store.CurrentPicker, CodeNotYourTurn, "not your turn to pick from the %s", Title(CardGeneralStore)); err != nil {
		return err
	}

	player, err := g.getPlayer(playerName)
	if err != nil {
		return err
	}
	if err := check(len(req.Cards) == 1, CodeInvalidCard, "must select exactly one card"); err != nil {
		return err
	}
	index := req.Cards[0]
	if err := check(index >= 0 && index < len(store.Cards), CodeInvalidCard, "that card does not exist in the %s", Title(CardGeneralStore)); err != nil {
		return err
	}

	card := popAt(&store.Cards, index)
	player.Hand = append(player.Hand, card)

	after := g.getAlivePlayersAfter(player)

	allSame := true
	if len(store.Cards) > 0 {
		first := store.Cards[0]
		for _, c := range store.Cards {
			if c.Name != first.Name || (g.Rules.ExpansionDodgeCity && c.Suit != first.Suit) {
				allSame = false
				break
			}
		}
	}

	if allSame {
		store.CurrentPicker = ""
	} else {
		store.CurrentPicker = after[0].Name
	}

	g.stateUpdated(EventDraw, fmt.Sprintf("%s picked a %s from the %s.", player.Name, cardText(card), Title(CardGeneralStore)))

	// No choice left to make, hand the identical remainder out.
	for allSame && len(store.Cards) > 0 && len(after) > 0 {
		someCard := popTop(&store.Cards)
		somePlayer := after[0]
		after = after[1:]
		somePlayer.Hand = append(somePlayer.Hand, someCard)
		g.stateUpdated(EventDraw, fmt.Sprintf("%s got a %s from the %s.", somePlayer.Name, cardText(someCard), Title(CardGeneralStore)))
	}

	return nil
}
