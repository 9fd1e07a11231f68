package game

// Player is a seat in the match. All zones are value slices; a card lives in
// exactly one zone at a time.
type Player struct {
	Name      string `json:"name"`
	Health    int    `json:"health"`
	Hand      []Card `json:"hand"`
	TempHand  []Card `json:"tempHand"`
	Equipment []Card `json:"items"`
	Skills    []Card `json:"skills"`
	Role      *Card  `json:"role,omitempty"`

	// MimickedSkill is the skill name Vera Custer copied for this round.
	MimickedSkill CardName `json:"mimickedSkill,omitempty"`
	// PendingDraws is the count of hand replenishments owed to Molly Stark
	// once the current reaction chain settles.
	PendingDraws int `json:"pendingDraws"`
}

func newPlayer(name string) *Player {
	return &Player{
		Name:      name,
		Hand:      []Card{},
		TempHand:  []Card{},
		Equipment: []Card{},
		Skills:    []Card{},
	}
}

func (p *Player) isAlive() bool { return p.Health > 0 }

// hasSkill reports whether the player benefits from the named skill, either
// by holding the card or by mimicking it.
func (p *Player) hasSkill(name CardName) bool {
	if p.MimickedSkill == name {
		return true
	}
	for _, card := range p.Skills {
		if card.Name == name {
			return true
		}
	}
	return false
}

func (p *Player) hasRole(name CardName) bool {
	return p.Role != nil && p.Role.Name == name
}

func (p *Player) hasEquipped(name CardName) bool {
	return indexWithName(p.Equipment, name) >= 0
}

func (p *Player) hasCardInHand(name CardName) bool {
	return indexWithName(p.Hand, name) >= 0
}

// equippedGun returns the player's gun, if any. At most one gun can be
// equipped at a time.
func (p *Player) equippedGun() *Card {
	for i := range p.Equipment {
		if nameIn(p.Equipment[i].Name, guns) {
			return &p.Equipment[i]
		}
	}
	return nil
}

// gunRange is the reach of the equipped gun, defaulting to 1 unarmed.
func (p *Player) gunRange() int {
	if gun := p.equippedGun(); gun != nil {
		return gunDistances[gun.Name]
	}
	return 1
}

// maxHealth is the highest base health among held skills, plus one for the
// sheriff.
func (p *Player) maxHealth() int {
	max := 0
	for _, card := range p.Skills {
		if base := skillHealths[card.Name]; base > max {
			max = base
		}
	}
	if p.hasRole(RoleSheriff) {
		max++
	}
	return max
}

// handLimit is the number of cards the player may keep at end of turn. Sean
// Mallory holds ten; everyone else holds their current health.
func (p *Player) handLimit() int {
	if p.hasSkill(SkillSean) {
		return 10
	}
	return p.Health
}

// missesNeeded is the number of misses required to dodge one shot at this
// player.
func (p *Player) missesNeeded(attacker *Player) int {
	if attacker != nil && attacker.hasSkill(SkillSlab) {
		return 2
	}
	return 1
}

// bangsAsMisses reports whether the player may answer a shot with a bang.
func (p *Player) bangsAsMisses() bool { return p.hasSkill(SkillElena) }

// missesAsBangs reports whether the player may attack with a missed.
func (p *Player) missesAsBangs() bool { return p.hasSkill(SkillJanet) }

// equipmentNullified reports whether the opponent ignores this player's
// distance and defense equipment.
func (p *Player) equipmentNullifiedAgainst(opponent *Player) bool {
	return opponent != nil && opponent.hasSkill(SkillBelle)
}

// startingCards is the number of cards dealt to the player at match start.
// A negative StartingHandSize means deal to max health, not counting the
// sheriff's bonus point.
func (p *Player) startingCards(rules Rules, seat int) int {
	n := rules.StartingHandSize
	if n < 0 {
		n = p.maxHealth()
		if p.hasRole(RoleSheriff) {
			n--
		}
	}
	if rules.CrescendoDeal {
		n += seat
	}
	return n
}

// handSize counts regular hand cards.
func (p *Player) handSize() int { return len(p.Hand) }
