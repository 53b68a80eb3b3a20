package game

import "fmt"

// Agent is an instantiated virus or vaccine. It sits in its crafter's
// inventory until smeared, then in the target's active list until it expires.
type Agent struct {
	Kind      AgentKind
	Duration  int // countdown started by Smear; 0 never expires
	Remaining int
	Source    VirologistID // who smeared it; NoVirologist for field infections
	Target    VirologistID
}

// NewAgent returns an uncrafted agent with the duration configured in rules.
func NewAgent(kind AgentKind, rules Rules) *Agent {
	return &Agent{
		Kind:     kind,
		Duration: rules.Duration(kind),
		Source:   NoVirologist,
		Target:   NoVirologist,
	}
}

// Permanent reports whether the agent never expires.
func (a *Agent) Permanent() bool {
	return a.Duration <= 0
}

// Mode returns the movement mode the agent imposes while active.
func (a *Agent) Mode() (MovementMode, bool) {
	return a.Kind.Mode()
}

// arm starts the countdown for a smear onto target.
func (a *Agent) arm(source, target VirologistID) {
	a.Source = source
	a.Target = target
	a.Remaining = a.Duration
}

// Step advances the countdown by one round and reports whether the agent
// expired. Permanent agents never expire.
func (a *Agent) Step() bool {
	if a.Permanent() {
		return false
	}
	if a.Remaining > 0 {
		a.Remaining--
	}
	return a.Remaining == 0
}

func (a *Agent) String() string {
	if a.Target == NoVirologist || a.Permanent() {
		return a.Kind.String()
	}
	return fmt.Sprintf("%s %d", a.Kind, a.Remaining)
}
