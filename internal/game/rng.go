package game

import "math/rand"

// Rand is the randomness the engine consumes: shuffles, random hand picks,
// and the random first-player choice. Injecting a seeded source makes whole
// matches reproducible under test.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a source seeded as given.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// shuffleCards runs Fisher-Yates over the slice the given number of times.
func shuffleCards(rng Rand, cards []Card, times int) {
	for t := 0; t < times; t++ {
		for i := len(cards) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			cards[i], cards[j] = cards[j], cards[i]
		}
	}
}
