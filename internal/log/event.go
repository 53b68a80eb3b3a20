package log

import (
	"encoding/json"
	"fmt"
)

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventRoundEnd
	EventMove
	EventCollect
	EventLearnCode
	EventPickUpGear
	EventCraft
	EventSmear
	EventInfect // a field smeared a virus without a smearer
	EventReflect
	EventBlocked
	EventAgentExpired
	EventCure
	EventDrain
	EventRestore
	EventForget
	EventDestroyResources
	EventSteal
	EventAxe
	EventGearBroken
	EventEliminated
	EventWin
	EventDraw
	EventRejected // an action failed and left the state unchanged
)

var eventTypeNames = [...]string{
	EventNewTurn:          "NewTurn",
	EventRoundEnd:         "RoundEnd",
	EventMove:             "Move",
	EventCollect:          "Collect",
	EventLearnCode:        "LearnCode",
	EventPickUpGear:       "PickUpGear",
	EventCraft:            "Craft",
	EventSmear:            "Smear",
	EventInfect:           "Infect",
	EventReflect:          "Reflect",
	EventBlocked:          "Blocked",
	EventAgentExpired:     "AgentExpired",
	EventCure:             "Cure",
	EventDrain:            "Drain",
	EventRestore:          "Restore",
	EventForget:           "Forget",
	EventDestroyResources: "DestroyResources",
	EventSteal:            "Steal",
	EventAxe:              "Axe",
	EventGearBroken:       "GearBroken",
	EventEliminated:       "Eliminated",
	EventWin:              "Win",
	EventDraw:             "Draw",
	EventRejected:         "Rejected",
}

func (e EventType) String() string {
	if e >= 0 && int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "Unknown"
}

// ParseEventType is the inverse of String.
func ParseEventType(s string) (EventType, bool) {
	for i, name := range eventTypeNames {
		if name == s {
			return EventType(i), true
		}
	}
	return 0, false
}

// MarshalJSON writes the event type by name so journals stay readable.
func (e EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *EventType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, ok := ParseEventType(s)
	if !ok {
		return fmt.Errorf("unknown event type %q", s)
	}
	*e = t
	return nil
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       `json:"seq"`               // monotonic sequence number
	Turn    int       `json:"turn"`              // which turn (1-based)
	Round   int       `json:"round"`             // which round (1-based)
	Player  int       `json:"player"`            // acting virologist handle, -1 for none
	Name    string    `json:"name,omitempty"`    // acting virologist name
	Type    EventType `json:"type"`              // event type
	Subject string    `json:"subject,omitempty"` // agent, gear, code or field involved
	Details string    `json:"details"`           // human-readable detail string
}
