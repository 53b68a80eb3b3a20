package game

// Scheduler hands the turn round-robin over a fixed seat order. Once every
// seated virologist has acted, the round is complete and subscribers run.
type Scheduler struct {
	order           []VirologistID
	seat            int // index of the active virologist in order
	turns           int // turns passed, by EndTurn or by unseating the active seat
	roundsCompleted int
	onRoundEnd      []func(roundsCompleted int)
}

// NewScheduler seats the given virologists in order; the first one is active.
func NewScheduler(order []VirologistID) *Scheduler {
	return &Scheduler{order: append([]VirologistID(nil), order...)}
}

// OnRoundEnd subscribes fn to round boundaries.
func (s *Scheduler) OnRoundEnd(fn func(roundsCompleted int)) {
	s.onRoundEnd = append(s.onRoundEnd, fn)
}

// Active returns the virologist whose turn it is, or NoVirologist if nobody is seated.
func (s *Scheduler) Active() VirologistID {
	if len(s.order) == 0 {
		return NoVirologist
	}
	return s.order[s.seat]
}

// Order returns a copy of the seat order.
func (s *Scheduler) Order() []VirologistID {
	return append([]VirologistID(nil), s.order...)
}

// Seated returns the number of seated virologists.
func (s *Scheduler) Seated() int {
	return len(s.order)
}

// Turns returns the number of completed turns.
func (s *Scheduler) Turns() int {
	return s.turns
}

// RoundsCompleted returns the number of completed rounds.
func (s *Scheduler) RoundsCompleted() int {
	return s.roundsCompleted
}

// EndTurn passes the turn to the next seat. It reports whether the call
// completed a round, in which case subscribers have already run.
func (s *Scheduler) EndTurn() (VirologistID, bool) {
	if len(s.order) == 0 {
		return NoVirologist, false
	}
	s.turns++
	return s.advance()
}

// advance moves to the next seat, completing the round on wrap-around.
func (s *Scheduler) advance() (VirologistID, bool) {
	s.seat++
	if s.seat < len(s.order) {
		return s.order[s.seat], false
	}
	s.seat = 0
	s.completeRound()
	return s.Active(), true
}

func (s *Scheduler) completeRound() {
	s.roundsCompleted++
	for _, fn := range s.onRoundEnd {
		fn(s.roundsCompleted)
	}
}

// Resume places the turn on the given virologist with a completed round count.
// Used when loading a saved game.
func (s *Scheduler) Resume(active VirologistID, roundsCompleted, turns int) bool {
	for i, id := range s.order {
		if id == active {
			s.seat = i
			s.roundsCompleted = roundsCompleted
			s.turns = turns
			return true
		}
	}
	return false
}

// Unseat removes id from the order. When the active virologist is unseated the
// turn passes to the next seat immediately and counts as a turn, completing the
// round if id sat last. It reports whether a round was completed.
func (s *Scheduler) Unseat(id VirologistID) bool {
	idx := -1
	for i, x := range s.order {
		if x == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.order = append(s.order[:idx], s.order[idx+1:]...)
	switch {
	case idx < s.seat:
		s.seat--
	case idx == s.seat:
		// the next virologist now sits at idx
		if len(s.order) > 0 {
			s.turns++
		}
		if s.seat >= len(s.order) {
			s.seat = 0
			if len(s.order) > 0 {
				s.completeRound()
				return true
			}
		}
	}
	return false
}
