// Package arb generates randomized-but-biased test inputs and drives
// repeated execution of property bodies against them.
//
// Each primitive generator blends a curated table of boundary values
// (zeros, extremes, embedded NULs, adversarial names) with uniform
// randomness. The first half of a run's trial budget prefers the corpus,
// the rest is mostly random, and the choice is made independently per
// generator call position. Because positions cycle their corpora
// independently, several fields of a compound value frequently land on
// boundary values in the same trial without any declared pairing and
// without enumerating the corpus cross-product.
//
// Basic usage:
//
//	func TestAbsNeverNegative(t *testing.T) {
//		arb.Property(func(g *arb.G) error {
//			n := g.IntRange(-1000, 1000)
//			if abs(n) < 0 {
//				return fmt.Errorf("abs(%d) is negative", n)
//			}
//			return nil
//		})(t)
//	}
//
// Runs are deterministic given a seed: arb.Seed(s) replays the identical
// schedule and values, and every failure reports the seed it ran with.
// Counterexamples are reported exactly as generated; the engine performs
// no shrinking.
package arb
