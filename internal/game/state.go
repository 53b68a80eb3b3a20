package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/virologists/internal/log"
)

// GameState holds the complete state of a game. Fields and virologists live
// in arenas indexed by their handles; nothing else owns them.
type GameState struct {
	Fields      []*Field
	Virologists []*Virologist
	Rules       Rules
	Seed        int64

	sched  *Scheduler
	rng    *rand.Rand
	logger log.EventLogger

	movedThisTurn bool
	contested     bool // started with more than one virologist

	// Game result
	Over   bool
	Winner VirologistID // NoVirologist while running or on a draw
	Result string
}

// NewGameState creates an empty board. A zero seed picks a random one.
func NewGameState(rules Rules, seed int64) *GameState {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GameState{
		Rules:  rules,
		Seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.NewMemoryLogger(),
		Winner: NoVirologist,
	}
}

// SetLogger replaces the event logger.
func (gs *GameState) SetLogger(l log.EventLogger) {
	gs.logger = l
}

// Logger returns the event logger.
func (gs *GameState) Logger() log.EventLogger {
	return gs.logger
}

// --- Construction ---

// AddField creates a field and returns it.
func (gs *GameState) AddField(name string, kind FieldKind) *Field {
	f := &Field{
		ID:   FieldID(len(gs.Fields)),
		Name: name,
		Kind: kind,
	}
	gs.Fields = append(gs.Fields, f)
	return f
}

// Link adds to as the next neighbor slot of from. The link is directed.
func (gs *GameState) Link(from, to FieldID) error {
	f := gs.Field(from)
	if f == nil || gs.Field(to) == nil {
		return fmt.Errorf("%w: link %d -> %d references a missing field", ErrGraphConstruction, from, to)
	}
	if f.IsNeighbor(to) {
		return nil
	}
	return f.SetNeighbor(len(f.Neighbors), to)
}

// Connect links two fields both ways.
func (gs *GameState) Connect(a, b FieldID) error {
	if err := gs.Link(a, b); err != nil {
		return err
	}
	return gs.Link(b, a)
}

// AddVirologist creates a virologist standing on the given field.
func (gs *GameState) AddVirologist(name string, at FieldID) (*Virologist, error) {
	f := gs.Field(at)
	if f == nil {
		return nil, fmt.Errorf("%w: virologist %q placed on missing field %d", ErrGraphConstruction, name, at)
	}
	v := &Virologist{
		ID:    VirologistID(len(gs.Virologists)),
		Name:  name,
		Field: at,
	}
	gs.Virologists = append(gs.Virologists, v)
	f.Accept(v.ID)
	return v, nil
}

// RestoreActive installs an already running agent on v without applying its
// smear effect. Used by loaders.
func (gs *GameState) RestoreActive(v *Virologist, a *Agent, remaining int) {
	a.Target = v.ID
	a.Remaining = remaining
	v.addActive(a)
}

// Start validates the board and seats every virologist in ID order.
func (gs *GameState) Start() error {
	if err := gs.validate(); err != nil {
		return err
	}
	order := make([]VirologistID, 0, len(gs.Virologists))
	for _, v := range gs.Virologists {
		if !v.Eliminated {
			order = append(order, v.ID)
		}
	}
	gs.sched = NewScheduler(order)
	gs.sched.OnRoundEnd(gs.stepAgents)
	gs.contested = len(order) > 1
	return nil
}

// Resume starts the game with the turn on active, as recorded in a save.
func (gs *GameState) Resume(active VirologistID, roundsCompleted, turns int) error {
	if err := gs.Start(); err != nil {
		return err
	}
	if !gs.sched.Resume(active, roundsCompleted, turns) {
		return fmt.Errorf("%w: active virologist %d is not seated", ErrGraphConstruction, active)
	}
	return nil
}

func (gs *GameState) validate() error {
	if len(gs.Virologists) == 0 {
		return fmt.Errorf("%w: no virologists", ErrGraphConstruction)
	}
	seen := make(map[VirologistID]FieldID)
	for i, f := range gs.Fields {
		if f.ID != FieldID(i) {
			return fmt.Errorf("%w: field %q has id %d at index %d", ErrGraphConstruction, f.Name, f.ID, i)
		}
		for _, n := range f.Neighbors {
			if n != NoField && gs.Field(n) == nil {
				return fmt.Errorf("%w: field %q has missing neighbor %d", ErrGraphConstruction, f.Name, n)
			}
		}
		for _, id := range f.Occupants {
			v := gs.Virologist(id)
			if v == nil {
				return fmt.Errorf("%w: field %q holds missing virologist %d", ErrGraphConstruction, f.Name, id)
			}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%w: virologist %q on fields %d and %d", ErrGraphConstruction, v.Name, prev, f.ID)
			}
			seen[id] = f.ID
			if v.Field != f.ID {
				return fmt.Errorf("%w: virologist %q stands on %d but is listed on %q", ErrGraphConstruction, v.Name, v.Field, f.Name)
			}
		}
	}
	for _, v := range gs.Virologists {
		if _, ok := seen[v.ID]; !ok && !v.Eliminated {
			return fmt.Errorf("%w: virologist %q is on no field", ErrGraphConstruction, v.Name)
		}
		if v.Nucleotide < 0 || v.AminoAcid < 0 {
			return fmt.Errorf("%w: virologist %q has a negative ledger", ErrGraphConstruction, v.Name)
		}
	}
	return nil
}

// --- Lookup ---

// Field returns the field with the given handle, or nil.
func (gs *GameState) Field(id FieldID) *Field {
	if id < 0 || int(id) >= len(gs.Fields) {
		return nil
	}
	return gs.Fields[id]
}

// Virologist returns the virologist with the given handle, or nil.
func (gs *GameState) Virologist(id VirologistID) *Virologist {
	if id < 0 || int(id) >= len(gs.Virologists) {
		return nil
	}
	return gs.Virologists[id]
}

// FieldByName returns the first field with the given name, or nil.
func (gs *GameState) FieldByName(name string) *Field {
	for _, f := range gs.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// VirologistByName returns the first virologist with the given name, or nil.
func (gs *GameState) VirologistByName(name string) *Virologist {
	for _, v := range gs.Virologists {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Occupants returns the virologists standing on a field.
func (gs *GameState) Occupants(id FieldID) []*Virologist {
	f := gs.Field(id)
	if f == nil {
		return nil
	}
	result := make([]*Virologist, 0, len(f.Occupants))
	for _, vid := range f.Occupants {
		result = append(result, gs.Virologist(vid))
	}
	return result
}

// Alive returns the virologists that are not eliminated, in ID order.
func (gs *GameState) Alive() []*Virologist {
	var result []*Virologist
	for _, v := range gs.Virologists {
		if !v.Eliminated {
			result = append(result, v)
		}
	}
	return result
}

// Scheduler returns the turn scheduler; nil before Start.
func (gs *GameState) Scheduler() *Scheduler {
	return gs.sched
}

// Active returns the virologist whose turn it is, or nil before Start.
func (gs *GameState) Active() *Virologist {
	if gs.sched == nil {
		return nil
	}
	return gs.Virologist(gs.sched.Active())
}

// Turn returns the 1-based turn number.
func (gs *GameState) Turn() int {
	if gs.sched == nil {
		return 0
	}
	return gs.sched.Turns() + 1
}

// Round returns the 1-based number of the round in progress.
func (gs *GameState) Round() int {
	if gs.sched == nil {
		return 0
	}
	return gs.sched.RoundsCompleted() + 1
}

// MovedThisTurn reports whether the active virologist has already moved.
func (gs *GameState) MovedThisTurn() bool {
	return gs.movedThisTurn
}

// WinnerVirologist returns the winner, or nil.
func (gs *GameState) WinnerVirologist() *Virologist {
	return gs.Virologist(gs.Winner)
}

// --- Ledger helpers ---

// Capacity returns how much of each material v can carry.
func (gs *GameState) Capacity(v *Virologist) int {
	c := gs.Rules.MaxMaterial
	if v.HasGear(GearSack) {
		c += gs.Rules.SackBonus
	}
	return c
}

// Grant adds materials to v up to its capacity and returns what was added.
func (gs *GameState) Grant(v *Virologist, n, a int) (int, int) {
	capacity := gs.Capacity(v)
	addN := max(min(n, capacity-v.Nucleotide), 0)
	addA := max(min(a, capacity-v.AminoAcid), 0)
	v.AddNucleotide(addN)
	v.AddAminoAcid(addA)
	return addN, addA
}

// --- Game result ---

// CheckWinCondition ends the game when exactly one contender remains or a
// virologist has learned every code. Returns true if the game is over.
func (gs *GameState) CheckWinCondition() bool {
	if gs.Over {
		return true
	}
	for _, v := range gs.Virologists {
		if !v.Eliminated && v.KnowsAllCodes() {
			gs.declareWinner(v, "learned every genetic code")
			return true
		}
	}
	alive := gs.Alive()
	switch {
	case len(alive) == 0:
		gs.Over = true
		gs.Winner = NoVirologist
		gs.Result = "Draw: every virologist was eliminated"
		gs.log(log.NewDrawEvent(gs.Turn(), gs.Round(), "every virologist was eliminated"))
		return true
	case len(alive) == 1 && gs.contested:
		gs.declareWinner(alive[0], "last virologist standing")
		return true
	}
	return false
}

// EndInDraw stops the game without a winner.
func (gs *GameState) EndInDraw(reason string) {
	if gs.Over {
		return
	}
	gs.Over = true
	gs.Winner = NoVirologist
	gs.Result = "Draw: " + reason
	gs.log(log.NewDrawEvent(gs.Turn(), gs.Round(), reason))
}

func (gs *GameState) declareWinner(v *Virologist, reason string) {
	gs.Over = true
	gs.Winner = v.ID
	gs.Result = fmt.Sprintf("%s wins: %s", v.Name, reason)
	gs.log(log.NewWinEvent(gs.Turn(), gs.Round(), int(v.ID), v.Name, reason))
}

// log emits a game event through the logger.
func (gs *GameState) log(event log.GameEvent) {
	if gs.logger != nil {
		gs.logger.Log(event)
	}
}
