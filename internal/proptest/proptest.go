// Package proptest provides property-based testing infrastructure for
// the engine's own test suite, built on gopter.
package proptest

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// TestParameters returns the standard test parameters for property tests.
// Default: 1000 iterations for a good balance between coverage and speed.
func TestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 1000
	return params
}

// FastTestParameters returns reduced iteration counts for property tests
// that each run a full trial budget internally.
func FastTestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	return params
}

// Seed generates arbitrary top-level seeds.
func Seed() gopter.Gen {
	return gen.Int64()
}

// SmallLen generates string length constraints.
func SmallLen() gopter.Gen {
	return gen.IntRange(0, 64)
}

// Bound generates integer bounds wide enough to exercise the boundary
// tables without overflowing test arithmetic.
func Bound() gopter.Gen {
	return gen.Int64Range(-1<<40, 1<<40)
}

// TrialBudget generates trial counts.
func TrialBudget() gopter.Gen {
	return gen.IntRange(1, 200)
}
