package arb_test

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/nomagicln/arb/internal/testutil"
	"github.com/nomagicln/arb/pkg/arb"
	"github.com/nomagicln/arb/pkg/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64RangeStaysInBounds(t *testing.T) {
	cases := []struct {
		name      string
		low, high int64
	}{
		{"small symmetric", -100, 100},
		{"positive only", 3, 17},
		{"single value", 42, 42},
		{"negative only", -1000, -1},
		{"full range", math.MinInt64, math.MaxInt64},
		{"near extremes", math.MinInt64, math.MinInt64 + 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := testutil.Collect(t, 200, testutil.FixedSeed, func(g *arb.G) int64 {
				return g.Int64Range(tc.low, tc.high)
			})
			for _, v := range values {
				assert.GreaterOrEqual(t, v, tc.low)
				assert.LessOrEqual(t, v, tc.high)
			}
		})
	}
}

func TestIntRangeInvalidBoundsPanic(t *testing.T) {
	var cfgErr *arb.ConfigurationError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			var ok bool
			cfgErr, ok = r.(*arb.ConfigurationError)
			require.True(t, ok, "panic value is %T, not *ConfigurationError", r)
		}()
		_ = arb.Run(func(g *arb.G) error {
			g.IntRange(5, 3)
			return nil
		}, arb.Seed(1))
	}()
	assert.Contains(t, cfgErr.Error(), "low 5 is greater than high 3")
}

func TestIntCorpusCyclesInOrder(t *testing.T) {
	// With an 8-trial budget the first 4 trials prefer the corpus, so the
	// single call position must walk the boundary table in order.
	table := corpus.Ints(0, 10)
	require.NotEmpty(t, table)

	values := testutil.Collect(t, 8, testutil.FixedSeed, func(g *arb.G) int64 {
		return g.Int64Range(0, 10)
	})
	for i := 0; i < 4; i++ {
		assert.Equal(t, table[i%len(table)], values[i], "trial %d", i)
	}
}

func TestFloat64NeverInfOrNaN(t *testing.T) {
	ranges := [][2]float64{
		{-1e11, 1e11},
		{-math.MaxFloat64, math.MaxFloat64},
		{0, 0},
		{-1, 1},
		{1e300, math.MaxFloat64},
		{math.Inf(-1), math.Inf(1)}, // clamped to finite extremes
	}
	for _, r := range ranges {
		values := testutil.Collect(t, 300, testutil.FixedSeed, func(g *arb.G) float64 {
			return g.Float64Range(r[0], r[1])
		})
		for _, v := range values {
			assert.False(t, math.IsInf(v, 0), "Inf from range %v", r)
			assert.False(t, math.IsNaN(v), "NaN from range %v", r)
		}
	}
}

func TestFloat64RangeBounds(t *testing.T) {
	values := testutil.Collect(t, 200, testutil.FixedSeed, func(g *arb.G) float64 {
		return g.Float64Range(-2.5, 7.5)
	})
	for _, v := range values {
		assert.GreaterOrEqual(t, v, -2.5)
		assert.LessOrEqual(t, v, 7.5)
	}
}

func TestFloat64NaNBoundsPanic(t *testing.T) {
	assert.Panics(t, func() {
		_ = arb.Run(func(g *arb.G) error {
			g.Float64Range(math.NaN(), 1)
			return nil
		}, arb.Seed(1))
	})
}

func TestStrExactLength(t *testing.T) {
	values := testutil.Collect(t, 150, testutil.FixedSeed, func(g *arb.G) string {
		return g.StrN(5)
	})
	for _, v := range values {
		assert.Equal(t, 5, utf8.RuneCountInString(v))
	}
}

func TestStrMaxLength(t *testing.T) {
	values := testutil.Collect(t, 150, testutil.FixedSeed, func(g *arb.G) string {
		return g.StrMax(5)
	})
	for _, v := range values {
		assert.LessOrEqual(t, utf8.RuneCountInString(v), 5)
	}
}

func TestStrDefaultMaximum(t *testing.T) {
	values := testutil.Collect(t, 150, testutil.FixedSeed, func(g *arb.G) string {
		return g.Str()
	})
	for _, v := range values {
		assert.LessOrEqual(t, utf8.RuneCountInString(v), 64)
	}
}

func TestStrNegativeLengthPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = arb.Run(func(g *arb.G) error {
			g.StrN(-1)
			return nil
		}, arb.Seed(1))
	})
	assert.Panics(t, func() {
		_ = arb.Run(func(g *arb.G) error {
			g.StrMax(-3)
			return nil
		}, arb.Seed(1))
	})
}

func TestUnicodeIsValidUTF8(t *testing.T) {
	values := testutil.Collect(t, 300, testutil.FixedSeed, func(g *arb.G) string {
		return g.Unicode()
	})
	for _, v := range values {
		assert.True(t, utf8.ValidString(v), "invalid UTF-8: %q", v)
	}
}

func TestUnicodeExactLengthCountsRunes(t *testing.T) {
	values := testutil.Collect(t, 150, testutil.FixedSeed, func(g *arb.G) string {
		return g.UnicodeN(3)
	})
	for _, v := range values {
		assert.Equal(t, 3, utf8.RuneCountInString(v))
	}
}

func TestBytesLengthRules(t *testing.T) {
	exact := testutil.Collect(t, 100, testutil.FixedSeed, func(g *arb.G) []byte {
		return g.BytesN(7)
	})
	for _, v := range exact {
		assert.Len(t, v, 7)
	}

	capped := testutil.Collect(t, 100, testutil.FixedSeed, func(g *arb.G) []byte {
		return g.BytesMax(9)
	})
	for _, v := range capped {
		assert.LessOrEqual(t, len(v), 9)
	}
}

func TestNameDrawsFromCorpusFirst(t *testing.T) {
	names := corpus.Names()
	require.NotEmpty(t, names)

	// 10-trial budget: the first 5 trials prefer corpus, so the first
	// values walk the curated table in order.
	values := testutil.Collect(t, 10, testutil.FixedSeed, func(g *arb.G) string {
		return g.Name()
	})
	for i := 0; i < 5; i++ {
		assert.Equal(t, names[i], values[i], "trial %d", i)
	}
}

func TestNameBytesIsUTF8EncodedName(t *testing.T) {
	values := testutil.Collect(t, 50, testutil.FixedSeed, func(g *arb.G) []byte {
		return g.NameBytes()
	})
	for _, v := range values {
		assert.True(t, utf8.Valid(v) || len(v) == 0, "invalid UTF-8 name: %q", v)
	}
}

func TestOneOfAlwaysReturnsMember(t *testing.T) {
	items := []string{"red", "green", "blue"}
	values := testutil.Collect(t, 100, testutil.FixedSeed, func(g *arb.G) string {
		return arb.OneOf(g, items)
	})
	for _, v := range values {
		assert.Contains(t, items, v)
	}
}

func TestOneOfOrderAcrossBudget(t *testing.T) {
	items := []int{10, 20, 30, 40}
	values := testutil.Collect(t, 8, testutil.FixedSeed, func(g *arb.G) int {
		return arb.OneOf(g, items)
	})
	// Corpus mode yields first, then last, before random indices.
	assert.Equal(t, 10, values[0])
	assert.Equal(t, 40, values[1])
}

func TestOneOfEmptyListPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = arb.Run(func(g *arb.G) error {
			arb.OneOf(g, []string{})
			return nil
		}, arb.Seed(1))
	})
}

func TestCoincidentCornerCases(t *testing.T) {
	// Two independent integer positions in one compound call sequence: a
	// 50-trial budget must produce at least one trial where both land on
	// the shared boundary value 0, without any declared pairing.
	xs, ys := testutil.CollectPairs(t, 50, testutil.FixedSeed, func(g *arb.G) (int64, int64) {
		return g.Int64Range(-20, 20), g.Int64Range(-34, 50)
	})
	require.Len(t, xs, 50)

	var coincident bool
	for i := range xs {
		if xs[i] == 0 && ys[i] == 0 {
			coincident = true
			break
		}
	}
	assert.True(t, coincident, "no trial aligned both positions on the boundary value 0")
}
