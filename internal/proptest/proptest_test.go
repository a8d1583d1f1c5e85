package proptest

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
)

// TestGeneratorSetup verifies the shared generators are usable.
func TestGeneratorSetup(t *testing.T) {
	properties := gopter.NewProperties(FastTestParameters())

	properties.Property("SmallLen stays within its range", prop.ForAll(
		func(n int) bool {
			return n >= 0 && n <= 64
		},
		SmallLen(),
	))

	properties.Property("TrialBudget is always positive", prop.ForAll(
		func(n int) bool {
			return n >= 1
		},
		TrialBudget(),
	))

	properties.Property("Bound stays within its range", prop.ForAll(
		func(b int64) bool {
			return b >= -1<<40 && b <= 1<<40
		},
		Bound(),
	))

	properties.TestingRun(t)
}
