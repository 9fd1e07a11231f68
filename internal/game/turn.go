package game

// RequiredReaction is the kind of answer a pending reaction demands.
type RequiredReaction string

const (
	ReactWithMiss RequiredReaction = "miss"
	ReactWithBang RequiredReaction = "bang"
)

// Reaction is one entry in the reaction queue. The head entry is the only one
// that can be acted on; resolving or failing it pops the queue.
type Reaction struct {
	// InitiatorName played the card that started the chain and is blamed
	// for resulting damage under the initiator-is-responsible rule.
	InitiatorName string `json:"initiatorName"`
	// ActorName most recently forwarded the demand (deflects and duels
	// reassign it).
	ActorName string `json:"actorName"`
	// ReactorName must answer.
	ReactorName string `json:"reactorName"`

	Required RequiredReaction `json:"requiredReaction"`
	// Barrels is the number of barrel luck draws still available to the
	// reactor for this entry.
	Barrels int `json:"barrels"`
	// Quantity is the number of matching cards still owed.
	Quantity int `json:"quantity"`
	// Duel marks a back-and-forth demand that bounces to the actor when
	// answered.
	Duel bool `json:"duel"`
	// Suit of the provoking card, consulted by Apache Kid's immunity.
	Suit Suit `json:"suit,omitempty"`
}

// GeneralStore is the face-up pick zone opened by a general store card. Picks
// proceed in seating order from the current picker.
type GeneralStore struct {
	Cards         []Card `json:"cards"`
	CurrentPicker string `json:"currentPicker,omitempty"`
}

// Turn carries all per-turn transient state. It is replaced wholesale when
// the turn passes.
type Turn struct {
	// AvailableQueued is how many stored bangs remain usable this turn.
	AvailableQueued int `json:"availableQueued"`
	// AvailableQueueables lists the queueable equipment not yet used.
	AvailableQueueables []CardName `json:"availableQueueables"`

	BangPlayed  int  `json:"bangPlayed"`
	BangsQueued int  `json:"bangsQueued"`
	Discarding  bool `json:"discarding"`
	// DiscardedForLife gates Sid Ketchum to one two-for-one heal per
	// opportunity.
	DiscardedForLife bool `json:"discardedForLife"`

	DrawsRemaining     int  `json:"drawsRemaining"`
	DrewForClaus       bool `json:"drewForClaus"`
	DrewFromDeck       bool `json:"drewFromDeck"`
	DrewFromDiscard    bool `json:"drewFromDiscard"`
	DrewFromHand       bool `json:"drewFromHand"`
	DrewFromInPlay     bool `json:"drewFromInPlay"`
	DrewForDynamite    bool `json:"drewForDynamite"`
	DrewForJail        bool `json:"drewForJail"`
	CheckedForBlackjack bool `json:"checkedForBlackjack"`

	Store GeneralStore `json:"generalStore"`

	JoseDiscards    int  `json:"joseDiscards"`
	LostLifeForDraw bool `json:"lostLifeForDraw"`
	// MustMimic blocks all other actions until Vera Custer picks a skill.
	MustMimic bool `json:"mustMimic"`
	// PendingDiscard means a forced discard (uncle store or played card
	// cost) must settle before anything else.
	PendingDiscard bool `json:"pendingDiscard"`

	// Player is the index of the turn player in the seating order.
	Player int `json:"player"`

	Reacting     []Reaction `json:"reacting"`
	SkillsPlaced []CardName `json:"skillsPlaced"`
	// UncleStore marks a pick zone opened by Uncle Will, which skips the
	// usual everyone-picks round.
	UncleStore bool `json:"uncleStore"`
}

func newTurn(player int) *Turn {
	return &Turn{
		AvailableQueueables: []CardName{},
		Store:               GeneralStore{Cards: []Card{}},
		Reacting:            []Reaction{},
		SkillsPlaced:        []CardName{},
		Player:              player,
	}
}

// reactor returns the head reaction, or nil when the queue is empty.
func (t *Turn) headReaction() *Reaction {
	if len(t.Reacting) == 0 {
		return nil
	}
	return &t.Reacting[0]
}

func (t *Turn) popReaction() Reaction {
	head := t.Reacting[0]
	t.Reacting = t.Reacting[1:]
	return head
}

func (t *Turn) pushReaction(r Reaction) {
	t.Reacting = append(t.Reacting, r)
}

// insertReaction puts a reaction at the head of the queue, ahead of anything
// already pending. Duels and deflections preempt the rest of the chain.
func (t *Turn) insertReaction(r Reaction) {
	t.Reacting = append([]Reaction{r}, t.Reacting...)
}

// queueableUsed consumes one use of the named queueable equipment this turn.
func (t *Turn) queueableUsed(name CardName) {
	for i, n := range t.AvailableQueueables {
		if n == name {
			t.AvailableQueueables = append(t.AvailableQueueables[:i], t.AvailableQueueables[i+1:]...)
			return
		}
	}
}

func (t *Turn) queueableAvailable(name CardName) bool {
	for _, n := range t.AvailableQueueables {
		if n == name {
			return true
		}
	}
	return false
}
