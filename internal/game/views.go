package game

// DeckView is the public shape of the draw pile.
type DeckView struct {
	Size int `json:"size"`
}

// DiscardView is the public shape of the discard pile.
type DiscardView struct {
	Last *Card `json:"last"`
	Size int   `json:"size"`
}

// PlayerView is one seat as seen by an observer. Hand and TempHand are only
// populated for the requesting player in a private view.
type PlayerView struct {
	Equipment     []Card   `json:"equipment"`
	Hand          []Card   `json:"hand,omitempty"`
	HandSize      int      `json:"handSize"`
	Health        int      `json:"health"`
	MimickedSkill CardName `json:"mimickedSkill,omitempty"`
	Name          string   `json:"name"`
	Role          *Card    `json:"role,omitempty"`
	Skills        []Card   `json:"skills"`
	TempHand      []Card   `json:"tempHand,omitempty"`
	TempHandSize  int      `json:"tempHandSize"`
}

// TurnView is the public summary of the current turn.
type TurnView struct {
	Discarding     bool         `json:"discarding"`
	DrawsRemaining int          `json:"drawsRemaining"`
	Store          GeneralStore `json:"generalStore"`
	MustMimic      bool         `json:"mustMimic"`
	PendingDiscard bool         `json:"pendingDiscard"`
	Player         string       `json:"player"`
	Reacting       []Reaction   `json:"reacting"`
}

// StateView is a projection of the match for one audience. Public views mask
// hands and unrevealed roles; private views reveal the requester's own cards
// and whatever roles they are entitled to see.
type StateView struct {
	Deck         DeckView     `json:"deck"`
	Discarded    DiscardView  `json:"discarded"`
	Ended        bool         `json:"ended"`
	Players      []PlayerView `json:"players"`
	RecentEvents []Event      `json:"recentEvents"`
	Started      bool         `json:"started"`
	Turn         TurnView     `json:"turn"`
	Version      string       `json:"version"`
}

// visibleRole masks a role the audience may not see yet. Dead players, the
// sheriff, and everyone once the match is head to head are always revealed.
func (g *Game) visibleRole(p *Player, revealed bool) *Card {
	if p.Role == nil {
		return nil
	}
	if revealed || !p.isAlive() || !g.Rules.Roles || g.isOneOnOne() || p.hasRole(RoleSheriff) {
		return p.Role
	}
	masked := unknownRole
	return &masked
}

func (g *Game) baseView() StateView {
	view := StateView{
		Deck:      DeckView{Size: g.Deck.DrawSize()},
		Discarded: DiscardView{Last: g.Deck.LastDiscard(), Size: g.Deck.DiscardSize()},
		Ended:     g.Ended,
		Started:   g.Started,
		Version:   g.Version,
	}

	if len(g.Events) > recentEventCount {
		view.RecentEvents = g.Events[len(g.Events)-recentEventCount:]
	} else {
		view.RecentEvents = g.Events
	}

	turnPlayerName := ""
	if g.Started && g.Turn.Player < len(g.Players) {
		turnPlayerName = g.turnPlayer().Name
	}
	view.Turn = TurnView{
		Discarding:     g.Turn.Discarding,
		DrawsRemaining: g.Turn.DrawsRemaining,
		Store:          g.Turn.Store,
		MustMimic:      g.Turn.MustMimic,
		PendingDiscard: g.Turn.PendingDiscard,
		Player:         turnPlayerName,
		Reacting:       g.Turn.Reacting,
	}

	return view
}

// PublicState is the spectator projection: hand sizes only, roles masked.
func (g *Game) PublicState() StateView {
	view := g.baseView()

	view.Players = make([]PlayerView, 0, len(g.Players))
	for _, p := range g.Players {
		view.Players = append(view.Players, PlayerView{
			Equipment:     p.Equipment,
			HandSize:      len(p.Hand),
			Health:        p.Health,
			MimickedSkill: p.MimickedSkill,
			Name:          p.Name,
			Role:          g.visibleRole(p, false),
			Skills:        p.Skills,
			TempHandSize:  len(p.TempHand),
		})
	}

	return view
}

// PrivateState is the projection for a seated player: their own cards are
// visible, and under the outlaws-know-each-other rule fellow outlaws' roles
// are revealed to an outlaw.
func (g *Game) PrivateState(playerName string) (StateView, error) {
	requestor, err := g.getPlayer(playerName)
	if err != nil {
		return StateView{}, err
	}

	requestorIsOutlaw := requestor.hasRole(RoleOutlaw)

	view := g.baseView()
	view.Players = make([]PlayerView, 0, len(g.Players))
	for _, p := range g.Players {
		isSelf := p.Name == requestor.Name
		revealed := isSelf || (g.Rules.OutlawsKnowEachOther && requestorIsOutlaw && p.hasRole(RoleOutlaw))

		pv := PlayerView{
			Equipment:     p.Equipment,
			HandSize:      len(p.Hand),
			Health:        p.Health,
			MimickedSkill: p.MimickedSkill,
			Name:          p.Name,
			Role:          g.visibleRole(p, revealed),
			Skills:        p.Skills,
			TempHandSize:  len(p.TempHand),
		}
		if isSelf {
			pv.Hand = p.Hand
			pv.TempHand = p.TempHand
		}
		view.Players = append(view.Players, pv)
	}

	return view, nil
}
