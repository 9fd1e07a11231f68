package game

import "fmt"

// Deck holds the draw and discard stacks plus the dedicated role and skill
// pools. Draws and discards act on the end of each slice.
type Deck struct {
	DrawPile             []Card `json:"deck"`
	DiscardPile          []Card `json:"discarded"`
	Roles                []Card `json:"roles"`
	Skills               []Card `json:"skills"`
	Reshuffles           int    `json:"reshuffles"`
	BeerSupply           int    `json:"beerSupply"`
	BeerDiscardFrequency int    `json:"beerDiscardFrequency"`
	SheriffInDeck        bool   `json:"sheriffInDeck"`
	SkillsInDeck         bool   `json:"skillsInDeck"`

	rng Rand
}

// DeckOptions configures construction of a fresh deck.
type DeckOptions struct {
	BeerDiscardFrequency int
	SheriffInDeck        bool
	SkillsInDeck         bool
	RandomSuitsAndRanks  bool
	Expansions           []Expansion
	RoleQuantities       map[CardName]int
	Rand                 Rand
}

// NewDeck builds and shuffles the combined card pool for the configured
// expansions, splitting skill cards into their own pool and provisioning the
// role pool (either the quantity-based distribution, or a single sheriff card
// when sheriff-in-deck mode is on).
func NewDeck(opts DeckOptions) *Deck {
	deck := &Deck{
		BeerDiscardFrequency: opts.BeerDiscardFrequency,
		SheriffInDeck:        opts.SheriffInDeck,
		SkillsInDeck:         opts.SkillsInDeck,
		rng:                  opts.Rand,
	}

	raw := expandDeck(baseDeck)
	for _, expansion := range opts.Expansions {
		if expansion == ExpansionBase {
			continue
		}
		raw = append(raw, expandDeck(expansionDecks[expansion])...)
	}

	for _, card := range raw {
		if card.Type == TypeSkill {
			deck.Skills = append(deck.Skills, card)
			continue
		}
		deck.DrawPile = append(deck.DrawPile, card)
	}

	if opts.RandomSuitsAndRanks {
		deck.randomizeSuitsAndRanks(deck.DrawPile)
	} else {
		applySuitsAndRanks(deck.DrawPile)
	}

	shuffleCards(deck.rng, deck.DrawPile, 2)

	deck.BeerSupply = countWithName(deck.DrawPile, CardBeer)

	if deck.SkillsInDeck {
		applySuitsAndRanks(deck.Skills)
	}

	shuffleCards(deck.rng, deck.Skills, 2)

	if deck.SheriffInDeck {
		deck.Roles = []Card{{Name: RoleSheriff, Type: TypeRole, Suit: SuitClubs, Rank: RankAce}}
		return deck
	}

	for _, role := range []CardName{RoleSheriff, RoleDeputy, RoleRenegade, RoleOutlaw} {
		for i := 0; i < opts.RoleQuantities[role]; i++ {
			deck.Roles = append(deck.Roles, Card{Name: role, Type: TypeRole})
		}
	}

	shuffleCards(deck.rng, deck.Roles, 2)

	return deck
}

func (d *Deck) randomizeSuitsAndRanks(cards []Card) {
	for i := range cards {
		cards[i].Suit = suitOrder[d.rng.Intn(len(suitOrder))]
		cards[i].Rank = rankOrder[d.rng.Intn(len(rankOrder))]
	}
}

// Prepare folds the skill and role pools into the draw pile when configured,
// then seeds the discard pile with one card.
func (d *Deck) Prepare() {
	if d.SkillsInDeck {
		d.DrawPile = append(d.DrawPile, d.Skills...)
		d.Skills = nil
	}

	if d.SheriffInDeck {
		d.DrawPile = append(d.DrawPile, d.Roles...)
		d.Roles = nil
	}

	shuffleCards(d.rng, d.DrawPile, 2)

	d.DiscardPile = append(d.DiscardPile, popTop(&d.DrawPile))
}

// DrawSize returns the number of cards left to draw.
func (d *Deck) DrawSize() int { return len(d.DrawPile) }

// DiscardSize returns the number of discarded cards.
func (d *Deck) DiscardSize() int { return len(d.DiscardPile) }

// LastDiscard returns the visible top of the discard pile.
func (d *Deck) LastDiscard() *Card {
	if len(d.DiscardPile) == 0 {
		return nil
	}
	top := d.DiscardPile[len(d.DiscardPile)-1]
	return &top
}

// Draw pops a card. When the draw pile empties, all but the top discard is
// shuffled back in, the beer-removal policy runs, and the reshuffle counter
// advances. The prior top discard stays as the new discard pile.
func (d *Deck) Draw() Card {
	card := popTop(&d.DrawPile)

	if len(d.DrawPile) != 0 {
		return card
	}

	lastDiscard := popTop(&d.DiscardPile)
	d.DrawPile = d.DiscardPile
	d.DiscardPile = []Card{lastDiscard}
	d.Reshuffles++

	if d.BeerDiscardFrequency < 0 {
		for i := d.BeerDiscardFrequency; i < 0; i++ {
			d.removeOneBeer()
		}
	}

	if d.BeerDiscardFrequency > 0 && d.Reshuffles%d.BeerDiscardFrequency == 0 {
		d.removeOneBeer()
	}

	shuffleCards(d.rng, d.DrawPile, 2)

	return card
}

func (d *Deck) removeOneBeer() {
	if _, ok := popWithName(&d.DrawPile, CardBeer); ok {
		d.BeerSupply--
	}
}

// DrawDiscard pops the top of the discard pile.
func (d *Deck) DrawDiscard() (Card, bool) {
	if len(d.DiscardPile) == 0 {
		return Card{}, false
	}
	return popTop(&d.DiscardPile), true
}

// Discard pushes a card onto the discard pile. Role and skill cards are
// silently dropped when the configuration keeps them out of the visible pile.
func (d *Deck) Discard(card Card) {
	if !d.SheriffInDeck && card.Type == TypeRole {
		return
	}

	if !d.SkillsInDeck && card.Type == TypeSkill {
		return
	}

	d.DiscardPile = append(d.DiscardPile, card)
}

// ReturnToTop pushes a card back onto the draw pile.
func (d *Deck) ReturnToTop(card Card) {
	d.DrawPile = append(d.DrawPile, card)
}

// DrawRole pops from the role pool. An empty pool means setup did not
// provision enough roles for the player count, which is a contract violation,
// not a runtime condition.
func (d *Deck) DrawRole() Card {
	if len(d.Roles) == 0 {
		panic(fmt.Sprintf("deck: no role cards available (reshuffles=%d)", d.Reshuffles))
	}
	return popTop(&d.Roles)
}

// DrawSkill pops from the skill pool; same contract as DrawRole.
func (d *Deck) DrawSkill() Card {
	if len(d.Skills) == 0 {
		panic(fmt.Sprintf("deck: no skill cards available (reshuffles=%d)", d.Reshuffles))
	}
	return popTop(&d.Skills)
}

// setRand reattaches a random source after snapshot restore.
func (d *Deck) setRand(rng Rand) { d.rng = rng }
