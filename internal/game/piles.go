package game

// Slice helpers for card piles. All removal helpers mutate the pile in place
// through the pointer; a card removed from one pile is owned by the caller.

func popAt(pile *[]Card, index int) Card {
	cards := *pile
	card := cards[index]
	*pile = append(cards[:index], cards[index+1:]...)
	return card
}

func popTop(pile *[]Card) Card {
	cards := *pile
	card := cards[len(cards)-1]
	*pile = cards[:len(cards)-1]
	return card
}

func indexWithName(pile []Card, name CardName) int {
	for i, card := range pile {
		if card.Name == name {
			return i
		}
	}
	return -1
}

func popWithName(pile *[]Card, name CardName) (Card, bool) {
	index := indexWithName(*pile, name)
	if index < 0 {
		return Card{}, false
	}
	return popAt(pile, index), true
}

func popAllWithName(pile *[]Card, name CardName) []Card {
	var popped []Card
	for {
		card, ok := popWithName(pile, name)
		if !ok {
			return popped
		}
		popped = append(popped, card)
	}
}

func popWithNameIn(pile *[]Card, names []CardName) (Card, bool) {
	for i, card := range *pile {
		if nameIn(card.Name, names) {
			return popAt(pile, i), true
		}
	}
	return Card{}, false
}

func findWithNameIn(pile []Card, names []CardName) (Card, bool) {
	for _, card := range pile {
		if nameIn(card.Name, names) {
			return card, true
		}
	}
	return Card{}, false
}

func popRandom(rng Rand, pile *[]Card) Card {
	return popAt(pile, rng.Intn(len(*pile)))
}

func countWithName(pile []Card, name CardName) int {
	count := 0
	for _, card := range pile {
		if card.Name == name {
			count++
		}
	}
	return count
}

func countWithNameIn(pile []Card, names []CardName) int {
	count := 0
	for _, card := range pile {
		if nameIn(card.Name, names) {
			count++
		}
	}
	return count
}

// hasUniqueIndices reports whether every index is distinct and within the
// pile.
func hasUniqueIndices(pileSize int, indices []int) bool {
	seen := make(map[int]bool, len(indices))
	for _, index := range indices {
		if index < 0 || index >= pileSize || seen[index] {
			return false
		}
		seen[index] = true
	}
	return true
}

func cardsAt(pile []Card, indices []int) []Card {
	cards := make([]Card, 0, len(indices))
	for _, index := range indices {
		cards = append(cards, pile[index])
	}
	return cards
}

// descending sorts a copy of indices high to low so removals do not shift
// later targets.
func descending(indices []int) []int {
	sorted := append([]int(nil), indices...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] > sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}
