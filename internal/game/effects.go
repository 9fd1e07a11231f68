package game

import (
	"fmt"
	"strings"
)

func (g *Game) playBeer(player *Player, cardIndices []int) error {
	allowed := len(g.Players) == 2 || g.Rules.BeersDuringOneOnOne || !g.isOneOnOne()
	if err := check(allowed, CodeRuleViolation, "cannot play %ss during one on one", Title(CardBeer)); err != nil {
		return err
	}
	atMax := player.Health >= player.maxHealth()
	if err := check(g.Rules.WasteBeers || !atMax, CodeNotAllowed, "already at max health"); err != nil {
		return err
	}
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardBeer)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	heal := 1
	if player.hasSkill(SkillJoe) {
		heal = 2
	}
	cards := g.discardPlayedCards(player, cardIndices, true)
	gained := g.increaseHealth(player, heal)

	g.stateUpdated(cardEvent(CardBeer), fmt.Sprintf("%s used a %s to gain %d %s.", player.Name, cardText(cards[0]), gained, plural(gained, "life", "lives")))
	return nil
}

// playBrawl discards a second card to pick one card off every opponent.
func (g *Game) playBrawl(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 2, CodeInvalidCard, "must play a %s with one other card", Title(CardBrawl)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	unique := map[string]bool{}
	for _, sel := range targets {
		unique[normalizeName(sel.Name)] = true
	}
	if err := check(len(unique) == len(g.alivePlayers())-1, CodeInvalidTarget, "you must target every living opponent once"); err != nil {
		return err
	}

	targetDataList := make([]targetData, 0, len(targets))
	for _, sel := range targets {
		data, err := g.pickingTarget(player, CardBrawl, []TargetSelection{sel}, cardIndices)
		if err != nil {
			return err
		}
		targetDataList = append(targetDataList, data)
	}

	main := player.Hand[cardIndices[0]]
	extra := player.Hand[cardIndices[1]]
	g.discardPlayedCards(player, cardIndices, true)

	results := make([]string, 0, len(targetDataList))
	for _, data := range targetDataList {
		if apacheImmune(data.target, main.Suit) {
			results = append(results, fmt.Sprintf("%s lost nothing (%s skill)", data.target.Name, Title(SkillApache)))
			continue
		}
		from := "in play"
		if data.hand {
			from = "their hand"
		}
		card := g.handleDrop(data)
		results = append(results, fmt.Sprintf("%s lost a %s from %s", data.target.Name, cardText(card), from))
	}

	g.stateUpdated(cardEvent(CardBrawl), fmt.Sprintf("%s played a %s and discarded a %s. %s.",
		player.Name, cardText(main), cardText(extra), strings.Join(results, ", and ")))
	return nil
}

func (g *Game) playCatBalou(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardCatBalou)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	data, err := g.pickingTarget(player, CardCatBalou, targets, cardIndices)
	if err != nil {
		return err
	}

	card := player.Hand[cardIndices[0]]
	if err := g.checkApache(data.target, card.Suit); err != nil {
		return err
	}

	cards := g.discardPlayedCards(player, cardIndices, true)
	dropped := g.handleDrop(data)

	from := "in play"
	if data.hand {
		from = "their hand"
	}
	g.stateUpdated(cardEvent(CardCatBalou), fmt.Sprintf("%s played a %s, forcing %s to discard a %s from %s.",
		player.Name, cardText(cards[0]), data.target.Name, cardText(dropped), from))
	return nil
}

func (g *Game) playPanic(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardPanic)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	data, err := g.pickingTarget(player, CardPanic, targets, cardIndices)
	if err != nil {
		return err
	}
	if err := check(g.canSee(player, data.target), CodeInvalidTarget, "you cannot panic that player"); err != nil {
		return err
	}

	card := player.Hand[cardIndices[0]]
	if err := g.checkApache(data.target, card.Suit); err != nil {
		return err
	}

	g.discardPlayedCards(player, cardIndices, true)
	stolen := g.handleSteal(player, data)

	from := fmt.Sprintf("their %s", cardText(stolen))
	if data.hand {
		from = "a card from their hand"
	}
	g.stateUpdated(cardEvent(CardPanic), fmt.Sprintf("%s played a %s, panicking %s into giving them %s.",
		player.Name, cardText(card), data.target.Name, from))
	return nil
}

// playRagTime is a panic at any distance for the cost of a second card.
func (g *Game) playRagTime(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 2, CodeInvalidCard, "must play a %s with one other card", Title(CardRagTime)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	data, err := g.pickingTarget(player, CardRagTime, targets, cardIndices)
	if err != nil {
		return err
	}

	main := player.Hand[cardIndices[0]]
	if err := g.checkApache(data.target, main.Suit); err != nil {
		return err
	}

	extra := player.Hand[cardIndices[1]]
	g.discardPlayedCards(player, cardIndices, true)
	stolen := g.handleSteal(player, data)

	from := fmt.Sprintf("their %s", cardText(stolen))
	if data.hand {
		from = "a card from their hand"
	}
	g.stateUpdated(cardEvent(CardRagTime), fmt.Sprintf("%s played a %s, serenading %s into giving them %s. They also discarded a %s.",
		player.Name, cardText(main), data.target.Name, from, cardText(extra)))
	return nil
}

func (g *Game) playSaloon(player *Player, cardIndices []int) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardSaloon)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	card := player.Hand[cardIndices[0]]
	g.discardPlayedCards(player, cardIndices, true)

	healed := []string{}
	for _, p := range g.alivePlayers() {
		if apacheImmune(p, card.Suit) {
			continue
		}
		if g.increaseHealth(p, 1) > 0 {
			healed = append(healed, p.Name)
		}
	}

	names := "no one"
	if len(healed) > 0 {
		names = strings.Join(healed, ", ")
	}
	g.stateUpdated(cardEvent(CardSaloon), fmt.Sprintf("%s played a %s, so %s gained a life.", player.Name, cardText(card), names))
	return nil
}

func (g *Game) playStagecoach(player *Player, cardIndices []int) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardStagecoach)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	cards := g.discardPlayedCards(player, cardIndices, true)
	g.givePlayerCards(player, 2)

	g.stateUpdated(cardEvent(CardStagecoach), fmt.Sprintf("%s played a %s and drew 2 cards.", player.Name, cardText(cards[0])))
	return nil
}

func (g *Game) playWellsFargo(player *Player, cardIndices []int) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardWellsFargo)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	cards := g.discardPlayedCards(player, cardIndices, true)
	g.givePlayerCards(player, 3)

	g.stateUpdated(cardEvent(CardWellsFargo), fmt.Sprintf("%s played a %s and drew 3 cards.", player.Name, cardText(cards[0])))
	return nil
}

// playTequila heals any one player at the cost of a second card.
func (g *Game) playTequila(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 2, CodeInvalidCard, "must play a %s with one other card", Title(CardTequila)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardTequila, targets)
	if err != nil {
		return err
	}

	atMax := target.Health >= target.maxHealth()
	if err := check(g.Rules.WasteBeers || !atMax, CodeNotAllowed, "already at max health"); err != nil {
		return err
	}

	main := player.Hand[cardIndices[0]]
	if err := g.checkApache(target, main.Suit); err != nil {
		return err
	}

	extra := player.Hand[cardIndices[1]]
	g.discardPlayedCards(player, cardIndices, true)
	gained := g.increaseHealth(target, 1)

	g.stateUpdated(cardEvent(CardTequila), fmt.Sprintf("%s played a %s, discarding a %s, to make %s gain %d %s.",
		player.Name, cardText(main), cardText(extra), target.Name, gained, plural(gained, "life", "lives")))
	return nil
}

func (g *Game) playWhisky(player *Player, cardIndices []int) error {
	atMax := player.Health >= player.maxHealth()
	if err := check(g.Rules.WasteBeers || !atMax, CodeNotAllowed, "already at max health"); err != nil {
		return err
	}
	if err := check(len(cardIndices) == 2, CodeInvalidCard, "must play a %s with one other card", Title(CardWhisky)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	main := player.Hand[cardIndices[0]]
	extra := player.Hand[cardIndices[1]]
	g.discardPlayedCards(player, cardIndices, true)
	gained := g.increaseHealth(player, 2)

	g.stateUpdated(cardEvent(CardWhisky), fmt.Sprintf("%s played a %s to gain %d %s, discarding a %s.",
		player.Name, cardText(main), gained, plural(gained, "life", "lives"), cardText(extra)))
	return nil
}

func (g *Game) playGeneralStore(player *Player, cardIndices []int) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardGeneralStore)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	cards := g.discardPlayedCards(player, cardIndices, true)
	g.openGeneralStore(player)

	g.stateUpdated(cardEvent(CardGeneralStore), fmt.Sprintf("%s played a %s. %d cards available for the taking.",
		player.Name, cardText(cards[0]), len(g.Turn.Store.Cards)))
	return nil
}

// openGeneralStore reveals one card per living player; the opener picks
// first.
func (g *Game) openGeneralStore(player *Player) {
	cards := make([]Card, 0, len(g.alivePlayers()))
	for range g.alivePlayers() {
		cards = append(cards, g.Deck.Draw())
	}
	g.Turn.Store = GeneralStore{Cards: cards, CurrentPicker: player.Name}
}

func (g *Game) playCanCan(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := g.queueableChecks(player, CardCanCan, cardIndices); err != nil {
		return err
	}

	data, err := g.pickingTarget(player, CardCanCan, targets, cardIndices)
	if err != nil {
		return err
	}

	card := player.Equipment[cardIndices[0]]
	if err := g.checkApache(data.target, card.Suit); err != nil {
		return err
	}

	g.Deck.Discard(popAt(&player.Equipment, cardIndices[0]))
	g.Turn.queueableUsed(CardCanCan)
	dropped := g.handleDrop(data)

	from := "in play"
	if data.hand {
		from = "their hand"
	}
	g.stateUpdated(cardEvent(CardCanCan), fmt.Sprintf("%s played a %s, distracting %s into discarding a %s from %s.",
		player.Name, cardText(card), data.target.Name, cardText(dropped), from))
	return nil
}

func (g *Game) playCanteen(player *Player, cardIndices []int) error {
	atMax := player.Health >= player.maxHealth()
	if err := check(g.Rules.WasteBeers || !atMax, CodeNotAllowed, "already at max health"); err != nil {
		return err
	}
	if err := g.queueableChecks(player, CardCanteen, cardIndices); err != nil {
		return err
	}

	card := popAt(&player.Equipment, cardIndices[0])
	g.Deck.Discard(card)
	g.Turn.queueableUsed(CardCanteen)
	gained := g.increaseHealth(player, 1)

	g.stateUpdated(cardEvent(CardCanteen), fmt.Sprintf("%s used a %s to gain %d %s.",
		player.Name, cardText(card), gained, plural(gained, "life", "lives")))
	return nil
}

func (g *Game) playConestoga(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := g.queueableChecks(player, CardConestoga, cardIndices); err != nil {
		return err
	}

	data, err := g.pickingTarget(player, CardConestoga, targets, cardIndices)
	if err != nil {
		return err
	}

	card := player.Equipment[cardIndices[0]]
	if err := g.checkApache(data.target, card.Suit); err != nil {
		return err
	}

	g.Deck.Discard(popAt(&player.Equipment, cardIndices[0]))
	g.Turn.queueableUsed(CardConestoga)
	stolen := g.handleSteal(player, data)

	from := fmt.Sprintf("their %s", cardText(stolen))
	if data.hand {
		from = "a card from their hand"
	}
	g.stateUpdated(cardEvent(CardConestoga), fmt.Sprintf("%s played a %s, raiding %s and taking %s.",
		player.Name, cardText(card), data.target.Name, from))
	return nil
}

func (g *Game) playPonyExpress(player *Player, cardIndices []int) error {
	if err := g.queueableChecks(player, CardPonyExpress, cardIndices); err != nil {
		return err
	}

	card := popAt(&player.Equipment, cardIndices[0])
	g.Deck.Discard(card)
	g.Turn.queueableUsed(CardPonyExpress)
	g.givePlayerCards(player, 3)

	g.stateUpdated(cardEvent(CardPonyExpress), fmt.Sprintf("%s played a %s and drew 3 cards.", player.Name, cardText(card)))
	return nil
}
