package game

// Rules is the fixed set of named toggles a match can be configured with.
// Every field has a documented default; several pairs are mutually exclusive
// and are reconciled by Apply.
type Rules struct {
	// AlwaysLuckyDuke extends Lucky Duke's two-card luck draws to the
	// start-of-turn deck draw.
	AlwaysLuckyDuke bool `json:"alwaysLuckyDuke"`
	// BeerDiscardFrequency thins the beer supply on reshuffle: positive N
	// removes one beer every Nth reshuffle, negative -N removes N beers per
	// reshuffle, zero never removes.
	BeerDiscardFrequency int `json:"beerDiscardFrequency"`
	// BeersDuringOneOnOne lets beers keep their effect once two players
	// remain. Exclusive with BeersTransformDuringOneOnOne.
	BeersDuringOneOnOne          bool `json:"beersDuringOneOnOne"`
	BeersTransformDuringOneOnOne bool `json:"beersTransformDuringOneOnOne"`
	// BetterDynamite blows away equipment and hand before costing lives.
	BetterDynamite bool `json:"betterDynamite"`
	CanHarmSelf    bool `json:"canHarmSelf"`
	// CanJailSheriff: 0 never, 1 only head-to-head, 2 always.
	CanJailSheriff int `json:"canJailSheriff"`
	// CanKillSheriff permits lethal attacks on the sheriff outside
	// head-to-head play.
	CanKillSheriff bool `json:"canKillSheriff"`
	// CrescendoDeal gives each player one extra starting card per seat.
	CrescendoDeal bool `json:"crescendoDeal"`
	// DefaultDraws is the number of start-of-turn draws.
	DefaultDraws  int  `json:"defaultDraws"`
	DrawWithSkill bool `json:"drawWithSkill"`
	// DynamiteDamage is the lives lost on explosion.
	DynamiteDamage            int  `json:"dynamiteDamage"`
	DynamiteAsOptionalDeflect bool `json:"dynamiteAsOptionalDeflect"`
	ExpansionDodgeCity        bool `json:"expansionDodgeCity"`
	ExpansionPromo            bool `json:"expansionPromo"`
	// FadeawayDraw counts lives lost below zero for loss-triggered skills.
	FadeawayDraw bool `json:"fadeawayDraw"`
	// InitiatorIsResponsible blames the player who played the original card
	// for reaction damage, rather than the last player to act.
	InitiatorIsResponsible       bool `json:"initiatorIsResponsible"`
	JailUntilRed                 bool `json:"jailUntilRed"`
	JailDuringOneOnOne           bool `json:"jailDuringOneOnOne"`
	JailsTransformDuringOneOnOne bool `json:"jailsTransformDuringOneOnOne"`
	MaxBangsPerTurn              int  `json:"maxBangsPerTurn"`
	MaxPlayers                   int  `json:"maxPlayers"`
	MaxQueued                    int  `json:"maxQueued"`
	MaxQueuedPerTurn             int  `json:"maxQueuedPerTurn"`
	MaxSkills                    int  `json:"maxSkills"`
	MaxSkillsPerTurn             int  `json:"maxSkillsPerTurn"`
	MinPlayers                   int  `json:"minPlayers"`
	MinSkills                    int  `json:"minSkills"`
	OutlawsKnowEachOther         bool `json:"outlawsKnowEachOther"`
	// PickupsDuringReaction runs pickup skills immediately during reactions
	// instead of deferring them to queue drain.
	PickupsDuringReaction bool `json:"pickupsDuringReaction"`
	RandomSuitsAndRanks   bool `json:"randomSuitsAndRanks"`
	RewardSize            int  `json:"rewardSize"`
	// Roles assigns roles at the start; exclusive with SheriffInDeck.
	Roles         bool `json:"roles"`
	SheriffInDeck bool `json:"sheriffInDeck"`
	SheriffStarts bool `json:"sheriffStarts"`
	SkillsInDeck  bool `json:"skillsInDeck"`
	// StartingHandSize: -1 deals per-player max health.
	StartingHandSize     int  `json:"startingHandSize"`
	StartingSkills       int  `json:"startingSkills"`
	TurnoverSkillsInTurn bool `json:"turnoverSkillsInTurn"`
	WasteBeers           bool `json:"wasteBeers"`
}

// DefaultRules returns the documented defaults.
func DefaultRules() Rules {
	return Rules{
		BeerDiscardFrequency:         0,
		CanHarmSelf:                  true,
		CanJailSheriff:               0,
		CanKillSheriff:               true,
		DefaultDraws:                 2,
		DynamiteDamage:               3,
		InitiatorIsResponsible:       true,
		JailDuringOneOnOne:           true,
		JailsTransformDuringOneOnOne: true,
		MaxBangsPerTurn:              1,
		MaxPlayers:                   8,
		MaxQueued:                    0,
		MaxQueuedPerTurn:             0,
		MaxSkills:                    1,
		MinPlayers:                   2,
		MinSkills:                    1,
		OutlawsKnowEachOther:         true,
		RandomSuitsAndRanks:          true,
		RewardSize:                   3,
		Roles:                        true,
		StartingHandSize:             -1,
		StartingSkills:               1,
		WasteBeers:                   true,
	}
}

// RulesPatch is a partial rules update; nil fields are left untouched.
type RulesPatch struct {
	AlwaysLuckyDuke              *bool `json:"alwaysLuckyDuke,omitempty"`
	BeerDiscardFrequency         *int  `json:"beerDiscardFrequency,omitempty"`
	BeersDuringOneOnOne          *bool `json:"beersDuringOneOnOne,omitempty"`
	BeersTransformDuringOneOnOne *bool `json:"beersTransformDuringOneOnOne,omitempty"`
	BetterDynamite               *bool `json:"betterDynamite,omitempty"`
	CanHarmSelf                  *bool `json:"canHarmSelf,omitempty"`
	CanJailSheriff               *int  `json:"canJailSheriff,omitempty"`
	CanKillSheriff               *bool `json:"canKillSheriff,omitempty"`
	CrescendoDeal                *bool `json:"crescendoDeal,omitempty"`
	DefaultDraws                 *int  `json:"defaultDraws,omitempty"`
	DrawWithSkill                *bool `json:"drawWithSkill,omitempty"`
	DynamiteDamage               *int  `json:"dynamiteDamage,omitempty"`
	DynamiteAsOptionalDeflect    *bool `json:"dynamiteAsOptionalDeflect,omitempty"`
	ExpansionDodgeCity           *bool `json:"expansionDodgeCity,omitempty"`
	ExpansionPromo               *bool `json:"expansionPromo,omitempty"`
	FadeawayDraw                 *bool `json:"fadeawayDraw,omitempty"`
	InitiatorIsResponsible       *bool `json:"initiatorIsResponsible,omitempty"`
	JailUntilRed                 *bool `json:"jailUntilRed,omitempty"`
	JailDuringOneOnOne           *bool `json:"jailDuringOneOnOne,omitempty"`
	JailsTransformDuringOneOnOne *bool `json:"jailsTransformDuringOneOnOne,omitempty"`
	MaxBangsPerTurn              *int  `json:"maxBangsPerTurn,omitempty"`
	MaxPlayers                   *int  `json:"maxPlayers,omitempty"`
	MaxQueued                    *int  `json:"maxQueued,omitempty"`
	MaxQueuedPerTurn             *int  `json:"maxQueuedPerTurn,omitempty"`
	MaxSkills                    *int  `json:"maxSkills,omitempty"`
	MaxSkillsPerTurn             *int  `json:"maxSkillsPerTurn,omitempty"`
	MinPlayers                   *int  `json:"minPlayers,omitempty"`
	MinSkills                    *int  `json:"minSkills,omitempty"`
	OutlawsKnowEachOther         *bool `json:"outlawsKnowEachOther,omitempty"`
	PickupsDuringReaction        *bool `json:"pickupsDuringReaction,omitempty"`
	RandomSuitsAndRanks          *bool `json:"randomSuitsAndRanks,omitempty"`
	RewardSize                   *int  `json:"rewardSize,omitempty"`
	Roles                        *bool `json:"roles,omitempty"`
	SheriffInDeck                *bool `json:"sheriffInDeck,omitempty"`
	SheriffStarts                *bool `json:"sheriffStarts,omitempty"`
	SkillsInDeck                 *bool `json:"skillsInDeck,omitempty"`
	StartingHandSize             *int  `json:"startingHandSize,omitempty"`
	StartingSkills               *int  `json:"startingSkills,omitempty"`
	TurnoverSkillsInTurn         *bool `json:"turnoverSkillsInTurn,omitempty"`
	WasteBeers                   *bool `json:"wasteBeers,omitempty"`
}

func boolOr(field *bool, fallback bool) bool {
	if field == nil {
		return fallback
	}
	return *field
}

func intOr(field *int, fallback int) int {
	if field == nil {
		return fallback
	}
	return *field
}

// Apply normalizes a patch against the current rules and returns the
// reconciled set plus whether anything changed. Mutually exclusive pairs are
// resolved in favor of the toggle the patch set; dependent counts are clamped
// and back-filled so the result is always self-consistent.
func (r Rules) Apply(patch RulesPatch) (Rules, bool) {
	next := r

	next.AlwaysLuckyDuke = boolOr(patch.AlwaysLuckyDuke, r.AlwaysLuckyDuke)
	next.BeerDiscardFrequency = intOr(patch.BeerDiscardFrequency, r.BeerDiscardFrequency)
	next.BeersDuringOneOnOne = boolOr(patch.BeersDuringOneOnOne, r.BeersDuringOneOnOne)
	next.BeersTransformDuringOneOnOne = boolOr(patch.BeersTransformDuringOneOnOne, r.BeersTransformDuringOneOnOne)
	next.BetterDynamite = boolOr(patch.BetterDynamite, r.BetterDynamite)
	next.CanHarmSelf = boolOr(patch.CanHarmSelf, r.CanHarmSelf)
	next.CanJailSheriff = intOr(patch.CanJailSheriff, r.CanJailSheriff)
	next.CanKillSheriff = boolOr(patch.CanKillSheriff, r.CanKillSheriff)
	next.CrescendoDeal = boolOr(patch.CrescendoDeal, r.CrescendoDeal)
	next.DefaultDraws = intOr(patch.DefaultDraws, r.DefaultDraws)
	next.DrawWithSkill = boolOr(patch.DrawWithSkill, r.DrawWithSkill)
	next.DynamiteDamage = intOr(patch.DynamiteDamage, r.DynamiteDamage)
	next.DynamiteAsOptionalDeflect = boolOr(patch.DynamiteAsOptionalDeflect, r.DynamiteAsOptionalDeflect)
	next.ExpansionDodgeCity = boolOr(patch.ExpansionDodgeCity, r.ExpansionDodgeCity)
	next.ExpansionPromo = boolOr(patch.ExpansionPromo, r.ExpansionPromo)
	next.FadeawayDraw = boolOr(patch.FadeawayDraw, r.FadeawayDraw)
	next.InitiatorIsResponsible = boolOr(patch.InitiatorIsResponsible, r.InitiatorIsResponsible)
	next.JailUntilRed = boolOr(patch.JailUntilRed, r.JailUntilRed)
	next.JailDuringOneOnOne = boolOr(patch.JailDuringOneOnOne, r.JailDuringOneOnOne)
	next.JailsTransformDuringOneOnOne = boolOr(patch.JailsTransformDuringOneOnOne, r.JailsTransformDuringOneOnOne)
	next.MaxBangsPerTurn = intOr(patch.MaxBangsPerTurn, r.MaxBangsPerTurn)
	next.MaxPlayers = intOr(patch.MaxPlayers, r.MaxPlayers)
	next.MaxQueued = intOr(patch.MaxQueued, r.MaxQueued)
	next.MaxQueuedPerTurn = intOr(patch.MaxQueuedPerTurn, r.MaxQueuedPerTurn)
	next.MaxSkills = intOr(patch.MaxSkills, r.MaxSkills)
	next.MaxSkillsPerTurn = intOr(patch.MaxSkillsPerTurn, r.MaxSkillsPerTurn)
	next.MinPlayers = intOr(patch.MinPlayers, r.MinPlayers)
	next.MinSkills = intOr(patch.MinSkills, r.MinSkills)
	next.OutlawsKnowEachOther = boolOr(patch.OutlawsKnowEachOther, r.OutlawsKnowEachOther)
	next.PickupsDuringReaction = boolOr(patch.PickupsDuringReaction, r.PickupsDuringReaction)
	next.RandomSuitsAndRanks = boolOr(patch.RandomSuitsAndRanks, r.RandomSuitsAndRanks)
	next.RewardSize = intOr(patch.RewardSize, r.RewardSize)
	next.Roles = boolOr(patch.Roles, r.Roles)
	next.SheriffInDeck = boolOr(patch.SheriffInDeck, r.SheriffInDeck)
	next.SheriffStarts = boolOr(patch.SheriffStarts, r.SheriffStarts)
	next.SkillsInDeck = boolOr(patch.SkillsInDeck, r.SkillsInDeck)
	next.StartingHandSize = intOr(patch.StartingHandSize, r.StartingHandSize)
	next.StartingSkills = intOr(patch.StartingSkills, r.StartingSkills)
	next.TurnoverSkillsInTurn = boolOr(patch.TurnoverSkillsInTurn, r.TurnoverSkillsInTurn)
	next.WasteBeers = boolOr(patch.WasteBeers, r.WasteBeers)

	// Exclusive beer toggles: the one the patch asserted wins.
	if patch.BeersDuringOneOnOne != nil && *patch.BeersDuringOneOnOne {
		next.BeersTransformDuringOneOnOne = false
	}
	if patch.BeersTransformDuringOneOnOne != nil && *patch.BeersTransformDuringOneOnOne {
		next.BeersDuringOneOnOne = false
	}

	// Roles assigned at start excludes sheriff-in-deck and forces sheriff
	// killability; refusing to kill the sheriff makes roles meaningless.
	if patch.Roles != nil && *patch.Roles {
		next.SheriffInDeck = false
		next.CanKillSheriff = true
	}
	if patch.SheriffInDeck != nil && *patch.SheriffInDeck {
		next.Roles = false
	}
	if patch.CanKillSheriff != nil && !*patch.CanKillSheriff {
		next.Roles = false
	}

	if patch.JailDuringOneOnOne != nil && *patch.JailDuringOneOnOne {
		next.JailsTransformDuringOneOnOne = false
	}
	if patch.JailsTransformDuringOneOnOne != nil && *patch.JailsTransformDuringOneOnOne {
		next.JailDuringOneOnOne = false
	}

	// Player bounds.
	if next.MaxPlayers > 8 {
		next.MaxPlayers = 8
	}
	if next.MinPlayers < 2 {
		next.MinPlayers = 2
	}
	if next.MaxPlayers < next.MinPlayers {
		if patch.MaxPlayers == nil {
			next.MaxPlayers = next.MinPlayers
		} else {
			next.MinPlayers = next.MaxPlayers
		}
	}

	// Skill bounds.
	if next.MaxSkills > 3 {
		next.MaxSkills = 3
	}
	if next.MinSkills < 0 {
		next.MinSkills = 0
	}
	if next.MaxSkills < next.MinSkills {
		if patch.MaxSkills == nil {
			next.MaxSkills = next.MinSkills
		} else {
			next.MinSkills = next.MaxSkills
		}
	}

	if next.StartingSkills > next.MaxSkills {
		if patch.StartingSkills == nil {
			next.StartingSkills = next.MaxSkills
		} else {
			next.MaxSkills = next.StartingSkills
		}
	}
	if next.StartingSkills < next.MinSkills {
		if patch.StartingSkills == nil {
			next.StartingSkills = next.MinSkills
		} else {
			next.MinSkills = next.StartingSkills
		}
	}

	if next.MaxSkillsPerTurn < 0 {
		next.MaxSkillsPerTurn = 0
	}
	if next.SkillsInDeck && next.MaxSkills == 0 {
		next.MaxSkills = 1
	}
	if next.MaxSkills == 0 {
		next.SkillsInDeck = false
	}
	if next.SkillsInDeck && next.MaxSkillsPerTurn == 0 {
		next.MaxSkillsPerTurn = 1
	}
	if next.MaxSkillsPerTurn == 0 {
		next.SkillsInDeck = false
	}

	return next, next != r
}

// Expansions lists the card sets the current rules include.
func (r Rules) Expansions() []Expansion {
	expansions := []Expansion{ExpansionBase}
	if r.ExpansionDodgeCity {
		expansions = append(expansions, ExpansionDodgeCity)
	}
	if r.ExpansionPromo {
		expansions = append(expansions, ExpansionPromo)
	}
	return expansions
}
