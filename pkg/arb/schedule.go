package arb

// The schedule decides, for every (trial, call position) pair, whether a
// generator draws the next corpus boundary value or a random one. It is a
// pure function of the top-level seed, which is what makes runs exactly
// replayable.

// drawMode selects between the curated corpus and uniform randomness for
// a single generator call.
type drawMode int

const (
	// modeCorpus draws the next unexhausted boundary value for the call
	// position, cycling through the corpus across the trial budget.
	modeCorpus drawMode = iota

	// modeRandom draws uniformly within the call's constraints.
	modeRandom
)

// tailCorpusProbability is the chance that a call position still draws
// from the corpus after the corpus-preferring block.
const tailCorpusProbability = 0.1

// schedule is the per-run plan: a corpus-preferring block of trials
// followed by mostly-random trials, with one derived RNG seed per trial.
type schedule struct {
	seed        int64
	trials      int
	corpusBlock int
	trialSeeds  []int64
}

// newSchedule derives the full plan from the top-level seed. The first
// half of the budget prefers corpus draws; the rest prefers random draws.
func newSchedule(seed int64, trials int) *schedule {
	s := &schedule{
		seed:        seed,
		trials:      trials,
		corpusBlock: trials / 2,
		trialSeeds:  make([]int64, trials),
	}
	state := uint64(seed)
	for i := range s.trialSeeds {
		state, s.trialSeeds[i] = splitmix64(state)
	}
	return s
}

// modeAt returns the draw mode for one call position of one trial. The
// decision is independent per position: within a corpus-preferring trial
// every position draws corpus, and in the tail each position flips its
// own deterministic coin, so several positions of a compound value can
// land on boundary values in the same trial.
func (s *schedule) modeAt(trial, position int) drawMode {
	if trial < 0 || trial >= s.trials {
		invariant("trial %d outside schedule of %d trials", trial, s.trials)
	}
	if trial < s.corpusBlock {
		return modeCorpus
	}
	if coin(s.seed, trial, position) < tailCorpusProbability {
		return modeCorpus
	}
	return modeRandom
}

// seedFor returns the derived RNG seed for a trial.
func (s *schedule) seedFor(trial int) int64 {
	if trial < 0 || trial >= len(s.trialSeeds) {
		invariant("trial %d outside schedule of %d trials", trial, len(s.trialSeeds))
	}
	return s.trialSeeds[trial]
}

// splitmix64 advances the given state and returns the new state plus one
// mixed output value. Standard finalizer constants.
func splitmix64(state uint64) (uint64, int64) {
	state += 0x9e3779b97f4a7c15
	z := state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z = z ^ (z >> 31)
	return state, int64(z)
}

// coin maps (seed, trial, position) to a uniform value in [0, 1).
func coin(seed int64, trial, position int) float64 {
	h := uint64(seed)
	h ^= uint64(trial+1) * 0x9e3779b97f4a7c15
	h ^= uint64(position+1) * 0xbf58476d1ce4e5b9
	_, mixed := splitmix64(h)
	return float64(uint64(mixed)>>11) / (1 << 53)
}
