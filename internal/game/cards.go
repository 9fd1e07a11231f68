package game

import "strconv"

// Suit is a French playing-card suit.
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

var suitOrder = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Rank runs 2..14, with ace high.
type Rank int

const (
	RankTwo   Rank = 2
	RankNine  Rank = 9
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

var rankOrder = []Rank{2, 3, 4, 5, 6, 7, 8, 9, 10, RankJack, RankQueen, RankKing, RankAce}

func (r Rank) String() string {
	switch r {
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	}
	return strconv.Itoa(int(r))
}

// CardType is the broad category a card belongs to. Queueable actions are
// attack-like cards that sit face down in equipment for a turn before use.
type CardType string

const (
	TypeAction    CardType = "action"
	TypeItem      CardType = "item"
	TypeQueueable CardType = "queueable"
	TypeRole      CardType = "role"
	TypeSkill     CardType = "skill"
)

// CardName identifies a card within the closed catalogue.
type CardName string

// Actions.
const (
	CardBang         CardName = "bang"
	CardMissed       CardName = "missed"
	CardDodge        CardName = "dodge"
	CardBeer         CardName = "beer"
	CardBrawl        CardName = "brawl"
	CardCatBalou     CardName = "catbalou"
	CardDuel         CardName = "duel"
	CardGatling      CardName = "gatling"
	CardGeneralStore CardName = "generalstore"
	CardIndians      CardName = "indians"
	CardPanic        CardName = "panic"
	CardPunch        CardName = "punch"
	CardRagTime      CardName = "ragtime"
	CardSaloon       CardName = "saloon"
	CardSpringfield  CardName = "springfield"
	CardStagecoach   CardName = "stagecoach"
	CardTequila      CardName = "tequila"
	CardWellsFargo   CardName = "wellsfargo"
	CardWhisky       CardName = "whisky"
)

// Items.
const (
	CardBarrel     CardName = "barrel"
	CardBinocular  CardName = "binocular"
	CardDynamite   CardName = "dynamite"
	CardHideout    CardName = "hideout"
	CardJail       CardName = "jail"
	CardMustang    CardName = "mustang"
	CardScope      CardName = "scope"
	CardRemington  CardName = "remington"
	CardRevCarbine CardName = "revcarbine"
	CardSchofield  CardName = "schofield"
	CardVolcanic   CardName = "volcanic"
	CardWinchester CardName = "winchester"
)

// Queueable equipment actions.
const (
	CardBible        CardName = "bible"
	CardBuffaloRifle CardName = "buffalorifle"
	CardCanCan       CardName = "cancan"
	CardCanteen      CardName = "canteen"
	CardConestoga    CardName = "conestoga"
	CardDerringer    CardName = "derringer"
	CardHowitzer     CardName = "howitzer"
	CardIronPlate    CardName = "ironplate"
	CardKnife        CardName = "knife"
	CardPepperbox    CardName = "pepperbox"
	CardPonyExpress  CardName = "ponyexpress"
	CardSombrero     CardName = "sombrero"
	CardTenGallonHat CardName = "tengallonhat"
)

// Roles.
const (
	RoleSheriff  CardName = "sheriff"
	RoleDeputy   CardName = "deputy"
	RoleOutlaw   CardName = "outlaw"
	RoleRenegade CardName = "renegade"
	RoleUnknown  CardName = "unknown"
)

// Skills. These are the character cards; each grants a rule perturbation
// that the resolver and reaction queue consult through the predicates in
// player.go.
const (
	SkillApache      CardName = "apache"
	SkillBart        CardName = "bart"
	SkillBelle       CardName = "belle"
	SkillChuck       CardName = "chuck"
	SkillClaus       CardName = "claus"
	SkillDuke        CardName = "duke"
	SkillElena       CardName = "elena"
	SkillGreg        CardName = "greg"
	SkillGringo      CardName = "gringo"
	SkillHerb        CardName = "herb"
	SkillHolyday     CardName = "holyday"
	SkillJack        CardName = "jack"
	SkillJanet       CardName = "janet"
	SkillJesse       CardName = "jesse"
	SkillJoe         CardName = "joe"
	SkillJohnny      CardName = "johnny"
	SkillJose        CardName = "jose"
	SkillJourdonnais CardName = "jourdonnais"
	SkillKit         CardName = "kit"
	SkillMolly       CardName = "molly"
	SkillNoFace      CardName = "noface"
	SkillPat         CardName = "pat"
	SkillPaul        CardName = "paul"
	SkillPedro       CardName = "pedro"
	SkillPete        CardName = "pete"
	SkillRose        CardName = "rose"
	SkillSam         CardName = "sam"
	SkillSean        CardName = "sean"
	SkillSid         CardName = "sid"
	SkillSlab        CardName = "slab"
	SkillSuzy        CardName = "suzy"
	SkillUncle       CardName = "uncle"
	SkillVera        CardName = "vera"
	SkillWilly       CardName = "willy"
)

// Card is a value; moving one between piles, hands, and equipment transfers
// it completely.
type Card struct {
	Name CardName `json:"name"`
	Type CardType `json:"type"`
	Suit Suit     `json:"suit,omitempty"`
	Rank Rank     `json:"rank,omitempty"`
}

// Expansion selects an optional card set.
type Expansion string

const (
	ExpansionBase      Expansion = "base"
	ExpansionDodgeCity Expansion = "dodgecity"
	ExpansionPromo     Expansion = "promo"
)

// gunDistances maps each gun to its stated reach. A shot is legal when the
// sight distance minus (reach - 1) is at most 1.
var gunDistances = map[CardName]int{
	CardVolcanic:   1,
	CardSchofield:  2,
	CardRemington:  3,
	CardRevCarbine: 4,
	CardWinchester: 5,
}

var guns = []CardName{CardSchofield, CardRemington, CardRevCarbine, CardVolcanic, CardWinchester}

// Cards that may be queued into equipment as face-down shots.
var queueables = []CardName{CardBang}

// Queueable equipment usable as a missed while defending.
var queueableMisses = []CardName{CardBible, CardTenGallonHat, CardSombrero, CardIronPlate}

// Usefulness classes for the turn-over check: some queued equipment needs a
// reachable target to matter, some is always playable.
var (
	seeLimitedEquipment   = []CardName{CardDerringer, CardKnife}
	shootLimitedEquipment = []CardName{CardPepperbox}
	limitlessEquipment    = []CardName{CardBuffaloRifle, CardCanCan, CardCanteen, CardConestoga, CardHowitzer, CardPonyExpress}
)

// skillHealths is the base maximum health granted by each skill card. The
// sheriff gets one more on top of the highest skill value held.
var skillHealths = map[CardName]int{
	SkillApache:      3,
	SkillBart:        4,
	SkillBelle:       4,
	SkillChuck:       4,
	SkillClaus:       3,
	SkillDuke:        4,
	SkillElena:       3,
	SkillGreg:        4,
	SkillGringo:      3,
	SkillHerb:        4,
	SkillHolyday:     4,
	SkillJack:        4,
	SkillJanet:       4,
	SkillJesse:       4,
	SkillJoe:         4,
	SkillJohnny:      4,
	SkillJose:        4,
	SkillJourdonnais: 4,
	SkillKit:         4,
	SkillMolly:       4,
	SkillNoFace:      4,
	SkillPat:         4,
	SkillPaul:        3,
	SkillPedro:       4,
	SkillPete:        3,
	SkillRose:        4,
	SkillSam:         4,
	SkillSean:        3,
	SkillSid:         4,
	SkillSlab:        4,
	SkillSuzy:        4,
	SkillUncle:       4,
	SkillVera:        3,
	SkillWilly:       4,
}

// cardTitles are the display names used in event text.
var cardTitles = map[CardName]string{
	CardBang:         "Bang!",
	CardMissed:       "Missed!",
	CardDodge:        "Dodge",
	CardBeer:         "Beer",
	CardBrawl:        "Brawl",
	CardCatBalou:     "Cat Balou",
	CardDuel:         "Duel",
	CardGatling:      "Gatling",
	CardGeneralStore: "General Store",
	CardIndians:      "Indians!",
	CardPanic:        "Panic!",
	CardPunch:        "Punch",
	CardRagTime:      "Rag Time",
	CardSaloon:       "Saloon",
	CardSpringfield:  "Springfield",
	CardStagecoach:   "Stagecoach",
	CardTequila:      "Tequila",
	CardWellsFargo:   "Wells Fargo",
	CardWhisky:       "Whisky",
	CardBarrel:       "Barrel",
	CardBinocular:    "Binocular",
	CardDynamite:     "Dynamite",
	CardHideout:      "Hideout",
	CardJail:         "Jail",
	CardMustang:      "Mustang",
	CardScope:        "Scope",
	CardRemington:    "Remington",
	CardRevCarbine:   "Rev. Carbine",
	CardSchofield:    "Schofield",
	CardVolcanic:     "Volcanic",
	CardWinchester:   "Winchester",
	CardBible:        "Bible",
	CardBuffaloRifle: "Buffalo Rifle",
	CardCanCan:       "Can Can",
	CardCanteen:      "Canteen",
	CardConestoga:    "Conestoga",
	CardDerringer:    "Derringer",
	CardHowitzer:     "Howitzer",
	CardIronPlate:    "Iron Plate",
	CardKnife:        "Knife",
	CardPepperbox:    "Pepperbox",
	CardPonyExpress:  "Pony Express",
	CardSombrero:     "Sombrero",
	CardTenGallonHat: "Ten Gallon Hat",
	RoleSheriff:      "Sheriff",
	RoleDeputy:       "Deputy",
	RoleOutlaw:       "Outlaw",
	RoleRenegade:     "Renegade",
	RoleUnknown:      "Unknown",
	SkillApache:      "Apache Kid",
	SkillBart:        "Bart Cassidy",
	SkillBelle:       "Belle Star",
	SkillChuck:       "Chuck Wengam",
	SkillClaus:       "Claus the Saint",
	SkillDuke:        "Lucky Duke",
	SkillElena:       "Elena Fuente",
	SkillGreg:        "Greg Digger",
	SkillGringo:      "El Gringo",
	SkillHerb:        "Herb Hunter",
	SkillHolyday:     "Doc Holyday",
	SkillJack:        "Black Jack",
	SkillJanet:       "Calamity Janet",
	SkillJesse:       "Jesse Jones",
	SkillJoe:         "Tequila Joe",
	SkillJohnny:      "Johnny Kisch",
	SkillJose:        "Jose Delgado",
	SkillJourdonnais: "Jourdonnais",
	SkillKit:         "Kit Carlson",
	SkillMolly:       "Molly Stark",
	SkillNoFace:      "Bill Noface",
	SkillPat:         "Pat Brennan",
	SkillPaul:        "Paul Regret",
	SkillPedro:       "Pedro Ramirez",
	SkillPete:        "Pixie Pete",
	SkillRose:        "Rose Doolan",
	SkillSam:         "Vulture Sam",
	SkillSean:        "Sean Mallory",
	SkillSid:         "Sid Ketchum",
	SkillSlab:        "Slab the Killer",
	SkillSuzy:        "Suzy Lafayette",
	SkillUncle:       "Uncle Will",
	SkillVera:        "Vera Custer",
	SkillWilly:       "Willy the Kid",
}

// Title returns the display name for a card.
func Title(name CardName) string {
	if title, ok := cardTitles[name]; ok {
		return title
	}
	return string(name)
}

// deckEntry is a card name plus how many copies the expansion contributes.
type deckEntry struct {
	name  CardName
	typ   CardType
	count int
}

var baseDeck = []deckEntry{
	{CardBang, TypeAction, 25},
	{CardMissed, TypeAction, 12},
	{CardBeer, TypeAction, 6},
	{CardPanic, TypeAction, 4},
	{CardCatBalou, TypeAction, 4},
	{CardDuel, TypeAction, 3},
	{CardGeneralStore, TypeAction, 2},
	{CardIndians, TypeAction, 2},
	{CardStagecoach, TypeAction, 2},
	{CardGatling, TypeAction, 1},
	{CardSaloon, TypeAction, 1},
	{CardWellsFargo, TypeAction, 1},
	{CardJail, TypeItem, 3},
	{CardBarrel, TypeItem, 2},
	{CardMustang, TypeItem, 2},
	{CardDynamite, TypeItem, 1},
	{CardScope, TypeItem, 1},
	{CardSchofield, TypeItem, 3},
	{CardVolcanic, TypeItem, 2},
	{CardRemington, TypeItem, 1},
	{CardRevCarbine, TypeItem, 1},
	{CardWinchester, TypeItem, 1},
	{SkillBart, TypeSkill, 1},
	{SkillDuke, TypeSkill, 1},
	{SkillGringo, TypeSkill, 1},
	{SkillJack, TypeSkill, 1},
	{SkillJanet, TypeSkill, 1},
	{SkillJesse, TypeSkill, 1},
	{SkillJourdonnais, TypeSkill, 1},
	{SkillKit, TypeSkill, 1},
	{SkillPaul, TypeSkill, 1},
	{SkillPedro, TypeSkill, 1},
	{SkillRose, TypeSkill, 1},
	{SkillSam, TypeSkill, 1},
	{SkillSid, TypeSkill, 1},
	{SkillSlab, TypeSkill, 1},
	{SkillSuzy, TypeSkill, 1},
	{SkillWilly, TypeSkill, 1},
}

var dodgeCityDeck = []deckEntry{
	{CardBang, TypeAction, 4},
	{CardMissed, TypeAction, 3},
	{CardDodge, TypeAction, 2},
	{CardBeer, TypeAction, 2},
	{CardPanic, TypeAction, 2},
	{CardCatBalou, TypeAction, 2},
	{CardPunch, TypeAction, 2},
	{CardBrawl, TypeAction, 1},
	{CardRagTime, TypeAction, 1},
	{CardSpringfield, TypeAction, 1},
	{CardTequila, TypeAction, 1},
	{CardWhisky, TypeAction, 2},
	{CardBarrel, TypeItem, 1},
	{CardDynamite, TypeItem, 1},
	{CardMustang, TypeItem, 1},
	{CardHideout, TypeItem, 1},
	{CardBinocular, TypeItem, 1},
	{CardRemington, TypeItem, 1},
	{CardRevCarbine, TypeItem, 1},
	{CardBible, TypeQueueable, 1},
	{CardBuffaloRifle, TypeQueueable, 2},
	{CardCanCan, TypeQueueable, 2},
	{CardCanteen, TypeQueueable, 2},
	{CardConestoga, TypeQueueable, 1},
	{CardDerringer, TypeQueueable, 2},
	{CardHowitzer, TypeQueueable, 1},
	{CardIronPlate, TypeQueueable, 2},
	{CardKnife, TypeQueueable, 3},
	{CardPepperbox, TypeQueueable, 2},
	{CardPonyExpress, TypeQueueable, 1},
	{CardSombrero, TypeQueueable, 1},
	{CardTenGallonHat, TypeQueueable, 2},
	{SkillApache, TypeSkill, 1},
	{SkillBelle, TypeSkill, 1},
	{SkillChuck, TypeSkill, 1},
	{SkillElena, TypeSkill, 1},
	{SkillGreg, TypeSkill, 1},
	{SkillHerb, TypeSkill, 1},
	{SkillHolyday, TypeSkill, 1},
	{SkillJoe, TypeSkill, 1},
	{SkillJose, TypeSkill, 1},
	{SkillMolly, TypeSkill, 1},
	{SkillNoFace, TypeSkill, 1},
	{SkillPat, TypeSkill, 1},
	{SkillPete, TypeSkill, 1},
	{SkillSean, TypeSkill, 1},
	{SkillVera, TypeSkill, 1},
}

var promoDeck = []deckEntry{
	{SkillClaus, TypeSkill, 1},
	{SkillJohnny, TypeSkill, 1},
	{SkillUncle, TypeSkill, 1},
}

var expansionDecks = map[Expansion][]deckEntry{
	ExpansionBase:      baseDeck,
	ExpansionDodgeCity: dodgeCityDeck,
	ExpansionPromo:     promoDeck,
}

// expandDeck flattens an entry list into individual cards, suits and ranks
// unassigned.
func expandDeck(entries []deckEntry) []Card {
	var cards []Card
	for _, entry := range entries {
		for i := 0; i < entry.count; i++ {
			cards = append(cards, Card{Name: entry.name, Type: entry.typ})
		}
	}
	return cards
}

// applySuitsAndRanks assigns suits and ranks canonically by position.
func applySuitsAndRanks(cards []Card) {
	for i := range cards {
		cards[i].Suit = suitOrder[i%len(suitOrder)]
		cards[i].Rank = rankOrder[i%len(rankOrder)]
	}
}

func nameIn(name CardName, names []CardName) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// roleQuantities describes the role deal per player count.
var roleQuantities = map[int]map[CardName]int{
	2: {RoleOutlaw: 2},
	3: {RoleDeputy: 1, RoleRenegade: 1, RoleOutlaw: 1},
	4: {RoleSheriff: 1, RoleRenegade: 1, RoleOutlaw: 2},
	5: {RoleSheriff: 1, RoleRenegade: 1, RoleOutlaw: 2, RoleDeputy: 1},
	6: {RoleSheriff: 1, RoleRenegade: 1, RoleOutlaw: 3, RoleDeputy: 1},
	7: {RoleSheriff: 1, RoleRenegade: 1, RoleOutlaw: 3, RoleDeputy: 2},
	8: {RoleSheriff: 1, RoleRenegade: 2, RoleOutlaw: 3, RoleDeputy: 2},
}

// unknownRole is the placeholder shown for hidden roles in projections.
var unknownRole = Card{Name: RoleUnknown, Type: TypeRole}
