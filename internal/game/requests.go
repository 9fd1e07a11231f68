package game

// Source names the zone a selected card is taken from.
type Source string

const (
	SourceHand      Source = "hand"
	SourceEquipment Source = "equipment"
	SourceTemp      Source = "temp"
)

// CardSelection points at one card in one of the requester's zones.
type CardSelection struct {
	Source Source `json:"source"`
	Index  int    `json:"index"`
}

// TargetSelection points at a player, and optionally at one of their zones.
// A selection with no zone set targets the player themselves.
type TargetSelection struct {
	Name  string `json:"name"`
	Hand  bool   `json:"hand,omitempty"`
	Item  *int   `json:"item,omitempty"`
	Role  bool   `json:"role,omitempty"`
	Skill *int   `json:"skill,omitempty"`
}

// playerOnly reports whether the selection targets just the player.
func (t TargetSelection) playerOnly() bool {
	return !t.Hand && t.Item == nil && !t.Role && t.Skill == nil
}

func (t TargetSelection) itemIndex() int {
	if t.Item == nil {
		return -1
	}
	return *t.Item
}

func (t TargetSelection) skillIndex() int {
	if t.Skill == nil {
		return -1
	}
	return *t.Skill
}

// PlayRequest selects cards to play and who to play them against. Equipping
// stores a bang in equipment instead of shooting it.
type PlayRequest struct {
	Cards     []CardSelection   `json:"cards,omitempty"`
	Equipping bool              `json:"equipping,omitempty"`
	Targets   []TargetSelection `json:"targets,omitempty"`
}

// DiscardRequest selects hand cards to discard, optionally against a target
// skill for discard-powered abilities.
type DiscardRequest struct {
	Cards   []CardSelection   `json:"cards,omitempty"`
	Targets []TargetSelection `json:"targets,omitempty"`
}

// DrawRequest optionally redirects the draw at another player's zones or the
// discard pile.
type DrawRequest struct {
	Target *DrawTarget `json:"target,omitempty"`
}

// DrawTarget names where a redirected draw takes from.
type DrawTarget struct {
	TargetSelection
	Discard bool `json:"discard,omitempty"`
}

// CardIndicesRequest selects cards by position within a single known zone.
type CardIndicesRequest struct {
	Cards []int `json:"cards,omitempty"`
}

// MimicRequest picks the skill Vera Custer copies.
type MimicRequest struct {
	Skill CardName `json:"skill"`
}
