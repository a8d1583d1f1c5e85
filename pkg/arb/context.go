package arb

import (
	"math/rand"
)

// G is the per-trial generator handle passed to a property body. All
// primitive generators are methods on it. Each generator call receives
// the next ordinal call position, which is how compound values built by
// plain function composition keep independent per-position corpus
// cycling without declaring their structure.
//
// A body must issue a stable, input-independent sequence of generator
// calls for positions to stay aligned across trials; bodies that branch
// on generated values degrade to best-effort position addressing.
type G struct {
	sched   *schedule
	trial   int
	rng     *rand.Rand
	cursors *cursorMap
	lastPos int
	values  []TrialValue
}

// cursorMap holds the per-position corpus cursors. It is shared by all
// trials of one run so corpora are exhausted in order across the trial
// budget before repeating.
type cursorMap struct {
	next map[int]int
}

func newCursorMap() *cursorMap {
	return &cursorMap{next: make(map[int]int)}
}

// advance returns the current cursor for a position and moves it on.
func (c *cursorMap) advance(position int) int {
	cur := c.next[position]
	c.next[position] = cur + 1
	return cur
}

// newG builds a fresh context for one trial. The RNG stream is seeded
// from the schedule so the trial replays exactly; the cursor map is the
// run-wide shared one.
func newG(sched *schedule, trial int, cursors *cursorMap) *G {
	return &G{
		sched:   sched,
		trial:   trial,
		rng:     rand.New(rand.NewSource(sched.seedFor(trial))),
		cursors: cursors,
	}
}

// nextPosition assigns the ordinal position of the current generator
// call, starting at 1.
func (g *G) nextPosition() int {
	g.lastPos++
	return g.lastPos
}

// record keeps the produced value for failure reporting.
func (g *G) record(position int, value any) {
	g.values = append(g.values, TrialValue{Position: position, Value: value})
}

// mode returns the scheduled draw mode for a call position of this trial.
func (g *G) mode(position int) drawMode {
	return g.sched.modeAt(g.trial, position)
}

// cursor advances and returns the shared corpus cursor for a position.
func (g *G) cursor(position int) int {
	if position <= 0 {
		invariant("corpus cursor requested for unscheduled position %d", position)
	}
	return g.cursors.advance(position)
}
