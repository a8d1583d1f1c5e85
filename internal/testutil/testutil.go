// Package testutil provides testing utilities shared by the engine's
// test suite.
package testutil

import (
	"testing"

	"github.com/nomagicln/arb/pkg/arb"
)

// FixedSeed is the seed used by tests that assert exact replay.
const FixedSeed int64 = 0x5eed

// Collect runs a property for the given number of trials with a fixed
// seed, draws one value per trial via draw, and returns all produced
// values. The run must not fail.
func Collect[T any](t *testing.T, trials int, seed int64, draw func(g *arb.G) T) []T {
	t.Helper()
	out := make([]T, 0, trials)
	err := arb.Run(func(g *arb.G) error {
		out = append(out, draw(g))
		return nil
	}, arb.Trials(trials), arb.Seed(seed))
	if err != nil {
		t.Fatalf("collection run failed: %v", err)
	}
	return out
}

// CollectPairs is Collect for bodies drawing two values per trial.
func CollectPairs[A, B any](t *testing.T, trials int, seed int64, draw func(g *arb.G) (A, B)) ([]A, []B) {
	t.Helper()
	as := make([]A, 0, trials)
	bs := make([]B, 0, trials)
	err := arb.Run(func(g *arb.G) error {
		a, b := draw(g)
		as = append(as, a)
		bs = append(bs, b)
		return nil
	}, arb.Trials(trials), arb.Seed(seed))
	if err != nil {
		t.Fatalf("collection run failed: %v", err)
	}
	return as, bs
}
