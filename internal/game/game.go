package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recentEventCount is the tail of the event log exposed in public state.
const recentEventCount = 20

// maxStoredEvents bounds the in-memory event log.
const maxStoredEvents = 200

const idAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Game is a single match: seats, rules, deck, and the current turn. It is not
// safe for concurrent use; callers serialize access per match.
type Game struct {
	ID      string   `json:"id"`
	Creator string   `json:"creator"`
	Version string   `json:"version"`
	Started bool     `json:"started"`
	Ended   bool     `json:"ended"`
	Turn    *Turn    `json:"turn"`
	Players []*Player `json:"players"`
	Rules   Rules    `json:"mechanics"`
	Events  []Event  `json:"gameEvents"`
	Deck    *Deck    `json:"deck"`

	rng    Rand
	logger *zap.Logger
}

// NewGame creates an unstarted match with the given creator seated.
func NewGame(creatorName string, rng Rand, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Game{
		ID:      newMatchID(rng),
		Creator: strings.ToUpper(creatorName),
		Version: uuid.NewString(),
		Turn:    newTurn(0),
		Players: []*Player{},
		Rules:   DefaultRules(),
		Events: []Event{{
			ID:   uuid.NewString(),
			Type: EventInitialized,
			Text: "Game initialized.",
		}},
		Deck:   &Deck{},
		rng:    rng,
		logger: logger,
	}

	if _, err := g.AddPlayer(creatorName); err != nil {
		return nil, err
	}
	return g, nil
}

func newMatchID(rng Rand) string {
	b := make([]byte, 4)
	for i := range b {
		b[i] = idAlphabet[rng.Intn(len(idAlphabet))]
	}
	return string(b)
}

// SetLogger replaces the match logger, used after restoring a snapshot.
func (g *Game) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g.logger = logger
}

// SetRand replaces the randomness source, used after restoring a snapshot.
func (g *Game) SetRand(rng Rand) {
	g.rng = rng
	if g.Deck != nil {
		g.Deck.setRand(rng)
	}
}

func (g *Game) alivePlayers() []*Player {
	alive := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.isAlive() {
			alive = append(alive, p)
		}
	}
	return alive
}

func (g *Game) enoughPlayers() bool { return len(g.Players) >= g.Rules.MinPlayers }

func (g *Game) full() bool { return len(g.Players) >= g.Rules.MaxPlayers }

func (g *Game) isOneOnOne() bool { return len(g.alivePlayers()) == 2 }

func (g *Game) turnPlayer() *Player { return g.Players[g.Turn.Player] }

func normalizeName(name string) string { return strings.ToUpper(name) }

func (g *Game) playerExists(name string) bool {
	_, err := g.getPlayer(name)
	return err == nil
}

func (g *Game) getPlayer(name string) (*Player, error) {
	upper := strings.ToUpper(name)
	for _, p := range g.Players {
		if p.Name == upper {
			return p, nil
		}
	}
	return nil, errf(CodeUnknownPlayer, "player %q not in the game", name)
}

// getAlivePlayersAfter lists living players in seating order starting from
// the seat after the given player, wrapping around, excluding the player.
func (g *Game) getAlivePlayersAfter(player *Player) []*Player {
	start := -1
	for i, p := range g.Players {
		if p.Name == player.Name {
			start = i
			break
		}
	}

	after := []*Player{}
	for i := start + 1; i < len(g.Players); i++ {
		if g.Players[i].isAlive() {
			after = append(after, g.Players[i])
		}
	}
	for i := 0; i < start; i++ {
		if g.Players[i].isAlive() {
			after = append(after, g.Players[i])
		}
	}
	return after
}

// distanceBetween is the seat distance around the circle of living players.
func (g *Game) distanceBetween(player, target *Player) int {
	alive := g.alivePlayers()
	playerIndex, targetIndex := -1, -1
	for i, p := range alive {
		if p.Name == player.Name {
			playerIndex = i
		}
		if p.Name == target.Name {
			targetIndex = i
		}
	}

	direct := playerIndex - targetIndex
	if direct < 0 {
		direct = -direct
	}
	if direct*2 > len(alive) {
		return len(alive) - direct
	}
	return direct
}

// sightDistance is seat distance adjusted by sight modifiers. Belle Star on
// the viewing side nullifies the target's distance equipment and Paul Regret.
func (g *Game) sightDistance(player, target *Player) int {
	if player.Name == target.Name {
		return 0
	}

	distance := g.distanceBetween(player, target)

	if player.hasSkill(SkillRose) {
		distance--
	}
	if player.hasEquipped(CardScope) {
		distance--
	}
	if player.hasEquipped(CardBinocular) {
		distance--
	}

	if !player.hasSkill(SkillBelle) {
		if target.hasSkill(SkillPaul) {
			distance++
		}
		if target.hasEquipped(CardMustang) {
			distance++
		}
		if target.hasEquipped(CardHideout) {
			distance++
		}
	}

	return distance
}

// shootDistance is sight distance adjusted by the shooter's gun reach.
func (g *Game) shootDistance(player, target *Player) int {
	distance := g.sightDistance(player, target)
	if gun := player.equippedGun(); gun != nil {
		return distance - gunDistances[gun.Name] + 1
	}
	return distance
}

func (g *Game) canSee(player, target *Player) bool {
	if g.Rules.CanHarmSelf && player.Name == target.Name {
		return true
	}
	return g.sightDistance(player, target) <= 1
}

func (g *Game) canShoot(player, target *Player) bool {
	if g.Rules.CanHarmSelf && player.Name == target.Name {
		return true
	}
	return g.shootDistance(player, target) <= 1
}

// Winners returns the winning side once the match is decided, or nil while
// play continues. Without roles, the last player standing wins.
func (g *Game) Winners() []*Player {
	alive := g.alivePlayers()

	if !g.Rules.Roles {
		if len(alive) == 1 {
			return alive
		}
		return nil
	}

	var sheriff *Player
	outlaws, renegades := 0, 0
	for _, p := range alive {
		switch {
		case p.hasRole(RoleSheriff):
			sheriff = p
		case p.hasRole(RoleOutlaw):
			outlaws++
		case p.hasRole(RoleRenegade):
			renegades++
		}
	}

	// A lone surviving renegade outlasted the sheriff and wins alone.
	if len(alive) == 1 && alive[0].hasRole(RoleRenegade) {
		return alive
	}

	// Small matches only end with one player standing.
	if len(g.Players) <= 3 {
		return nil
	}

	if sheriff == nil {
		return g.playersWithRoles(RoleOutlaw)
	}

	if outlaws == 0 && renegades == 0 {
		return g.playersWithRoles(RoleSheriff, RoleDeputy)
	}

	return nil
}

func (g *Game) playersWithRoles(roles ...CardName) []*Player {
	matched := []*Player{}
	for _, p := range g.Players {
		for _, role := range roles {
			if p.hasRole(role) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}

// isTurnOver reports whether the turn player has nothing left they could
// possibly do, so the turn may be ended for them.
func (g *Game) isTurnOver() bool {
	if !g.Started || g.Ended {
		return false
	}

	player := g.turnPlayer()
	if len(g.Turn.Reacting) > 0 || len(g.Turn.Store.Cards) > 0 || g.Turn.PendingDiscard {
		return false
	}
	if g.Turn.DrawsRemaining > 0 || len(player.TempHand) > 0 || len(player.Hand) > 0 {
		return false
	}
	if player.hasSkill(SkillChuck) {
		return false
	}

	canSee, canShoot := false, false
	for _, target := range g.getAlivePlayersAfter(player) {
		if g.canSee(player, target) {
			canSee = true
		}
		if g.canShoot(player, target) {
			canShoot = true
		}
	}

	for _, name := range g.Turn.AvailableQueueables {
		if nameIn(name, limitlessEquipment) {
			return false
		}
		if canShoot && nameIn(name, shootLimitedEquipment) {
			return false
		}
		if canSee && nameIn(name, seeLimitedEquipment) {
			return false
		}
	}

	if canShoot && g.Turn.AvailableQueued > 0 {
		return false
	}

	return true
}

// AddPlayer seats a new player and returns the normalized name.
func (g *Game) AddPlayer(playerName string) (string, error) {
	if err := check(!g.Started, CodeAlreadyStarted, "game already started"); err != nil {
		return "", err
	}
	if err := check(!g.full(), CodeNotAllowed, "game is full"); err != nil {
		return "", err
	}
	if len(playerName) < 2 || len(playerName) > 16 {
		return "", errf(CodeNotAllowed, "name must be between 2 and 16 characters")
	}

	name := strings.ToUpper(playerName)
	if g.playerExists(name) {
		return "", errf(CodeNotAllowed, "name %q is taken", name)
	}

	g.Players = append(g.Players, newPlayer(name))
	g.stateUpdated(EventJoined, fmt.Sprintf("%s joined the game.", name))

	return name, nil
}

// SetRules applies a rules patch before the match starts. Only the creator
// may change rules.
func (g *Game) SetRules(playerName string, patch RulesPatch) error {
	if err := check(!g.Ended, CodeEnded, "game already ended"); err != nil {
		return err
	}
	if err := check(!g.Started, CodeAlreadyStarted, "game already started"); err != nil {
		return err
	}
	if err := check(g.playerExists(playerName), CodeUnknownPlayer, "player not in the game"); err != nil {
		return err
	}
	if err := check(g.Creator == strings.ToUpper(playerName), CodeNotAllowed, "only the game creator can set the rules"); err != nil {
		return err
	}

	next, changed := g.Rules.Apply(patch)
	if changed {
		g.Rules = next
		g.stateUpdated("", "")
	}
	return nil
}

// Start deals roles, skills, health, and opening hands, then opens the first
// turn. Only the creator may start.
func (g *Game) Start(playerName string) error {
	if err := check(!g.Ended, CodeEnded, "game already ended"); err != nil {
		return err
	}
	if err := check(!g.Started, CodeAlreadyStarted, "game already started"); err != nil {
		return err
	}
	if err := check(g.playerExists(playerName), CodeUnknownPlayer, "player not in the game"); err != nil {
		return err
	}
	if err := check(g.enoughPlayers(), CodeNotAllowed, "not enough players"); err != nil {
		return err
	}
	if err := check(g.Creator == strings.ToUpper(playerName), CodeNotAllowed, "only the game creator can start the game"); err != nil {
		return err
	}

	g.Started = true

	g.Deck = NewDeck(DeckOptions{
		BeerDiscardFrequency: g.Rules.BeerDiscardFrequency,
		Expansions:           g.Rules.Expansions(),
		RoleQuantities:       roleQuantities[len(g.Players)],
		SheriffInDeck:        !g.Rules.Roles && g.Rules.SheriffInDeck,
		SkillsInDeck:         g.Rules.SkillsInDeck,
		RandomSuitsAndRanks:  g.Rules.RandomSuitsAndRanks,
		Rand:                 g.rng,
	})

	for _, player := range g.Players {
		for i := 0; i < g.Rules.StartingSkills; i++ {
			player.Skills = append(player.Skills, g.Deck.DrawSkill())
		}
		if g.Rules.Roles {
			role := g.Deck.DrawRole()
			player.Role = &role
		}
		player.Health = player.maxHealth()
	}

	g.Deck.Prepare()

	// Pull out the starting player, shuffle the rest, and reseat them
	// first.
	var starter *Player
	if g.Rules.Roles && g.Rules.SheriffStarts {
		for i, p := range g.Players {
			if p.hasRole(RoleSheriff) {
				starter = p
				g.Players = append(g.Players[:i], g.Players[i+1:]...)
				break
			}
		}
	}
	if starter == nil {
		i := g.rng.Intn(len(g.Players))
		starter = g.Players[i]
		g.Players = append(g.Players[:i], g.Players[i+1:]...)
	}

	for i := len(g.Players) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		g.Players[i], g.Players[j] = g.Players[j], g.Players[i]
	}
	g.Players = append([]*Player{starter}, g.Players...)

	g.Turn = newTurn(0)
	g.Turn.DrawsRemaining = g.startOfTurnDraws(starter)
	g.Turn.MustMimic = starter.hasSkill(SkillVera)

	for seat, player := range g.Players {
		g.givePlayerCards(player, player.startingCards(g.Rules, seat))
	}

	g.stateUpdated(EventStarted, fmt.Sprintf("%s started the game. It's %s's turn.", strings.ToUpper(playerName), g.turnPlayer().Name))

	return nil
}

// startOfTurnDraws is the draw allotment for a fresh turn. No Face Slim gets
// one draw per wound beyond the first instead of the usual second draw, and
// Pixie Pete always draws one extra.
func (g *Game) startOfTurnDraws(player *Player) int {
	draws := g.Rules.DefaultDraws
	if player.hasSkill(SkillNoFace) {
		damage := player.maxHealth() - player.Health
		if damage < 0 {
			damage = 0
		}
		draws += damage - 1
	}
	if player.hasSkill(SkillPete) {
		draws++
	}
	return draws
}

// givePlayerCards moves cards from the deck to the player's hand.
func (g *Game) givePlayerCards(player *Player, quantity int) []Card {
	drawn := make([]Card, 0, quantity)
	for i := 0; i < quantity; i++ {
		card := g.Deck.Draw()
		drawn = append(drawn, card)
		player.Hand = append(player.Hand, card)
	}
	return drawn
}

// stateUpdated bumps the state version and, when given an event type,
// appends to the match history. The stored log is bounded.
func (g *Game) stateUpdated(eventType EventType, text string) {
	g.Version = uuid.NewString()

	if eventType == "" {
		return
	}

	event := Event{ID: uuid.NewString(), Type: eventType, Text: text}
	g.Events = append(g.Events, event)
	if len(g.Events) > maxStoredEvents {
		g.Events = g.Events[len(g.Events)-maxStoredEvents:]
	}

	g.logger.Info(text,
		zap.String("game", g.ID),
		zap.String("event", event.ID),
		zap.String("type", string(eventType)),
	)
}
