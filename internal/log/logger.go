package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	return EventsOfType(l.events, t)
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// EventsOfType filters events by type.
func EventsOfType(events []GameEvent, t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- MultiLogger: fans events out to several loggers ---

// MultiLogger keeps its own record and forwards every event to each logger.
type MultiLogger struct {
	MemoryLogger
	loggers []EventLogger
}

func NewMultiLogger(loggers ...EventLogger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

func (l *MultiLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	for _, inner := range l.loggers {
		inner.Log(event)
	}
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-3d R%-3d| %s", e.Turn, e.Round, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn, round, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, name),
	}
}

func NewRoundEndEvent(turn, round int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  -1,
		Type:    EventRoundEnd,
		Details: fmt.Sprintf("--- Round %d complete ---", round),
	}
}

func NewMoveEvent(turn, round, player int, name, from, to string, erratic bool) GameEvent {
	details := fmt.Sprintf("%s moves %s → %s", name, from, to)
	if erratic {
		details += " (erratic)"
	}
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventMove,
		Subject: to,
		Details: details,
	}
}

func NewCollectEvent(turn, round, player int, name, field string, n, a int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventCollect,
		Subject: field,
		Details: fmt.Sprintf("%s collects %dn/%da from %s", name, n, a, field),
	}
}

func NewLearnCodeEvent(turn, round, player int, name, code string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventLearnCode,
		Subject: code,
		Details: fmt.Sprintf("%s learns %s", name, code),
	}
}

func NewPickUpGearEvent(turn, round, player int, name, gear string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventPickUpGear,
		Subject: gear,
		Details: fmt.Sprintf("%s picks up %s", name, gear),
	}
}

func NewCraftEvent(turn, round, player int, name, agent, cost string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventCraft,
		Subject: agent,
		Details: fmt.Sprintf("%s crafts %s for %s", name, agent, cost),
	}
}

func NewSmearEvent(turn, round, player int, name, agent, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventSmear,
		Subject: agent,
		Details: fmt.Sprintf("%s smears %s on %s", name, agent, target),
	}
}

func NewInfectEvent(turn, round, player int, name, agent, source string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventInfect,
		Subject: agent,
		Details: fmt.Sprintf("%s is infected with %s (%s)", name, agent, source),
	}
}

func NewReflectEvent(turn, round, player int, name, agent, smearer string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventReflect,
		Subject: agent,
		Details: fmt.Sprintf("%s's glove reflects %s back on %s", name, agent, smearer),
	}
}

func NewBlockedEvent(turn, round, player int, name, agent, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventBlocked,
		Subject: agent,
		Details: fmt.Sprintf("%s on %s is blocked (%s)", agent, name, reason),
	}
}

func NewAgentExpiredEvent(turn, round, player int, name, agent string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventAgentExpired,
		Subject: agent,
		Details: fmt.Sprintf("%s wears off %s", agent, name),
	}
}

func NewCureEvent(turn, round, player int, name string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventCure,
		Details: fmt.Sprintf("%s is cured of %d virus(es)", name, count),
	}
}

func NewDrainEvent(turn, round, player int, name string, n, a int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventDrain,
		Details: fmt.Sprintf("%s is drained to %dn/%da", name, n, a),
	}
}

func NewRestoreEvent(turn, round, player int, name string, n, a int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventRestore,
		Details: fmt.Sprintf("%s recovers %dn/%da", name, n, a),
	}
}

func NewForgetEvent(turn, round, player int, name string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventForget,
		Details: fmt.Sprintf("%s forgets %d code(s)", name, count),
	}
}

func NewDestroyResourcesEvent(turn, round, player int, name, field string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventDestroyResources,
		Subject: field,
		Details: fmt.Sprintf("%s destroys the materials in %s", name, field),
	}
}

func NewStealEvent(turn, round, player int, name, victim string, n, a int, gear []string) GameEvent {
	details := fmt.Sprintf("%s robs %s of %dn/%da", name, victim, n, a)
	if len(gear) > 0 {
		details += fmt.Sprintf(" and %s", strings.Join(gear, ", "))
	}
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventSteal,
		Subject: victim,
		Details: details,
	}
}

func NewAxeEvent(turn, round, player int, name, victim string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventAxe,
		Subject: victim,
		Details: fmt.Sprintf("%s strikes %s with an axe", name, victim),
	}
}

func NewGearBrokenEvent(turn, round, player int, name, gear string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventGearBroken,
		Subject: gear,
		Details: fmt.Sprintf("%s's %s breaks", name, gear),
	}
}

func NewEliminatedEvent(turn, round, player int, name, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventEliminated,
		Details: fmt.Sprintf("%s is eliminated (%s)", name, reason),
	}
}

func NewWinEvent(turn, round, player int, name, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", name, reason),
	}
}

func NewDrawEvent(turn, round int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  -1,
		Type:    EventDraw,
		Details: fmt.Sprintf("Game ends in a draw (%s)", reason),
	}
}

func NewRejectedEvent(turn, round, player int, name, action string, err error) GameEvent {
	return GameEvent{
		Turn:    turn,
		Round:   round,
		Player:  player,
		Name:    name,
		Type:    EventRejected,
		Subject: action,
		Details: fmt.Sprintf("%s cannot %s: %v", name, action, err),
	}
}
