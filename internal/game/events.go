package game

// EventType tags a match event for clients that render icons or sounds per
// kind. Card plays use the card name itself as the type.
type EventType string

const (
	EventBarrelMissed     EventType = "barrelMissed"
	EventBibleMissed      EventType = "bibleMissed"
	EventDeflected        EventType = "deflected"
	EventDiscard          EventType = "discard"
	EventDraw             EventType = "draw"
	EventDynamiteExploded EventType = "dynamiteExploded"
	EventEquipped         EventType = "equipped"
	EventHit              EventType = "hit"
	EventInfo             EventType = "info"
	EventInitialized      EventType = "initialized"
	EventInJail           EventType = "inJail"
	EventJoined           EventType = "joined"
	EventKilled           EventType = "killed"
	EventMissed           EventType = "missed"
	EventNothing          EventType = "nothing"
	EventOutJail          EventType = "outJail"
	EventPlateMissed      EventType = "plateMissed"
	EventPrepGun          EventType = "prepGun"
	EventPrepVolcanic     EventType = "prepVolcanic"
	EventQueued           EventType = "queued"
	EventReward           EventType = "reward"
	EventShotDefault      EventType = "shotD"
	EventShotCarbine      EventType = "shotC"
	EventShotRemington    EventType = "shotR"
	EventShotSchofield    EventType = "shotS"
	EventShotVolcanic     EventType = "shotV"
	EventShotWinchester   EventType = "shotW"
	EventSkill            EventType = "skill"
	EventSkipped          EventType = "skipped"
	EventStarted          EventType = "started"
	EventTurnEnded        EventType = "turnEnded"
	EventWin              EventType = "win"
)

// cardEvent is the event type for playing the named card.
func cardEvent(name CardName) EventType { return EventType(name) }

// Event is one line of the match history.
type Event struct {
	ID   string    `json:"id"`
	Type EventType `json:"type"`
	Text string    `json:"text"`
}

// gunEvent picks the shot event matching the player's equipped gun.
func gunEvent(p *Player) EventType {
	gun := p.equippedGun()
	if gun == nil {
		return EventShotDefault
	}
	switch gun.Name {
	case CardVolcanic:
		return EventShotVolcanic
	case CardWinchester:
		return EventShotWinchester
	case CardRevCarbine:
		return EventShotCarbine
	case CardRemington:
		return EventShotRemington
	case CardSchofield:
		return EventShotSchofield
	}
	return EventShotDefault
}
