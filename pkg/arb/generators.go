package arb

import (
	"math"
	"strings"

	"github.com/nomagicln/arb/pkg/corpus"
)

// Default bounds for generators invoked without constraints. The integer
// range is fixed rather than platform dependent.
const (
	defaultIntLow    = math.MinInt64
	defaultIntHigh   = math.MaxInt64
	defaultFloatLow  = -1e11
	defaultFloatHigh = 1e11

	// defaultMaxLen applies to string and byte generators when neither an
	// exact length nor a maximum is given.
	defaultMaxLen = 64
)

// unset marks an absent length constraint. It is distinct from every
// caller-suppliable value so invalid negative lengths are still caught.
const unset = math.MinInt

// Int returns an arbitrary int over the full 64-bit signed range.
func (g *G) Int() int {
	return int(g.int64Range("int", defaultIntLow, defaultIntHigh))
}

// IntRange returns an arbitrary int in [low, high], both inclusive.
func (g *G) IntRange(low, high int) int {
	return int(g.int64Range("int", int64(low), int64(high)))
}

// Int64 returns an arbitrary int64 over the full signed range.
func (g *G) Int64() int64 {
	return g.int64Range("int64", defaultIntLow, defaultIntHigh)
}

// Int64Range returns an arbitrary int64 in [low, high], both inclusive.
func (g *G) Int64Range(low, high int64) int64 {
	return g.int64Range("int64", low, high)
}

func (g *G) int64Range(name string, low, high int64) int64 {
	if low > high {
		badConfig(name, "low %d is greater than high %d", low, high)
	}
	pos := g.nextPosition()
	if g.mode(pos) == modeCorpus {
		if table := corpus.Ints(low, high); len(table) > 0 {
			v := table[g.cursor(pos)%len(table)]
			g.record(pos, v)
			return v
		}
	}
	span := uint64(high) - uint64(low) + 1 // 0 means the full 64-bit range
	v := low + int64(g.uint64n(span))
	g.record(pos, v)
	return v
}

// Float64 returns an arbitrary finite float64 in the default wide range.
// It never returns Inf or NaN.
func (g *G) Float64() float64 {
	return g.float64Range(defaultFloatLow, defaultFloatHigh)
}

// Float64Range returns an arbitrary finite float64 in [low, high].
// Infinite bounds are clamped to the largest finite magnitudes; the
// result is never Inf or NaN regardless of the requested range.
func (g *G) Float64Range(low, high float64) float64 {
	return g.float64Range(low, high)
}

func (g *G) float64Range(low, high float64) float64 {
	if math.IsNaN(low) || math.IsNaN(high) {
		badConfig("float64", "bounds must not be NaN")
	}
	low = math.Max(low, -math.MaxFloat64)
	high = math.Min(high, math.MaxFloat64)
	if low > high {
		badConfig("float64", "low %v is greater than high %v", low, high)
	}
	pos := g.nextPosition()
	if g.mode(pos) == modeCorpus {
		if table := corpus.Floats(low, high); len(table) > 0 {
			v := table[g.cursor(pos)%len(table)]
			g.record(pos, v)
			return v
		}
	}
	v := g.randomFloat(low, high)
	g.record(pos, v)
	return v
}

// randomFloat mixes a triangular draw over the full range with a uniform
// draw over the range clamped to small magnitudes, and retries whenever
// boundary arithmetic on huge ranges overflows.
func (g *G) randomFloat(low, high float64) float64 {
	for i := 0; i < 32; i++ {
		var v float64
		if g.rng.Float64() < 0.6 {
			v = triangular(g.rng.Float64(), low, high)
		} else {
			lo, hi := math.Max(low, -10), math.Min(high, 10)
			if lo > hi {
				lo, hi = low, high
			}
			v = lo + g.rng.Float64()*(hi-lo)
		}
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			return v
		}
	}
	return math.Max(low, math.Min(high, 0))
}

// triangular samples a triangular distribution over [low, high] with the
// mode at the midpoint, from one uniform draw.
func triangular(u, low, high float64) float64 {
	if high <= low {
		return low
	}
	span := high - low
	c := low + span/2
	if u < 0.5 {
		return low + math.Sqrt(u*span*(c-low))
	}
	return high - math.Sqrt((1-u)*span*(high-c))
}

// Str returns an arbitrary string up to the default maximum length.
// Random content is a weighted mix of printable ASCII and control
// characters, including NUL.
func (g *G) Str() string {
	return g.str("str", unset, unset, false)
}

// StrN returns an arbitrary string of exactly n characters.
func (g *G) StrN(n int) string {
	return g.str("str", n, unset, false)
}

// StrMax returns an arbitrary string whose length is uniform in [0, max].
func (g *G) StrMax(max int) string {
	return g.str("str", unset, max, false)
}

// Unicode returns an arbitrary text string up to the default maximum
// length. On top of Str's content mix it produces combining marks and
// code points outside the basic multilingual plane.
func (g *G) Unicode() string {
	return g.str("unicode", unset, unset, true)
}

// UnicodeN returns an arbitrary text string of exactly n characters.
func (g *G) UnicodeN(n int) string {
	return g.str("unicode", n, unset, true)
}

// UnicodeMax returns an arbitrary text string with length uniform in
// [0, max].
func (g *G) UnicodeMax(max int) string {
	return g.str("unicode", unset, max, true)
}

func (g *G) str(name string, length, maxLen int, unicodeContent bool) string {
	if length != unset && length < 0 {
		badConfig(name, "length %d must not be negative", length)
	}
	if maxLen != unset && maxLen < 0 {
		badConfig(name, "maxlen %d must not be negative", maxLen)
	}
	pos := g.nextPosition()
	if g.mode(pos) == modeCorpus {
		var table []string
		if unicodeContent {
			table = corpus.Unicode(length, maxLen)
		} else {
			table = corpus.Strings(length, maxLen)
		}
		if len(table) > 0 {
			v := table[g.cursor(pos)%len(table)]
			g.record(pos, v)
			return v
		}
	}
	n := g.pickLen(length, maxLen)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteRune(g.randomRune(unicodeContent))
	}
	v := sb.String()
	g.record(pos, v)
	return v
}

// Bytes returns arbitrary raw bytes up to the default maximum length.
// Content carries no text-validity requirement.
func (g *G) Bytes() []byte {
	return g.bytes(unset, unset)
}

// BytesN returns exactly n arbitrary raw bytes.
func (g *G) BytesN(n int) []byte {
	return g.bytes(n, unset)
}

// BytesMax returns arbitrary raw bytes with length uniform in [0, max].
func (g *G) BytesMax(max int) []byte {
	return g.bytes(unset, max)
}

func (g *G) bytes(length, maxLen int) []byte {
	if length != unset && length < 0 {
		badConfig("bytes", "length %d must not be negative", length)
	}
	if maxLen != unset && maxLen < 0 {
		badConfig("bytes", "maxlen %d must not be negative", maxLen)
	}
	pos := g.nextPosition()
	if g.mode(pos) == modeCorpus {
		if table := corpus.Bytes(length, maxLen); len(table) > 0 {
			v := []byte(table[g.cursor(pos)%len(table)])
			g.record(pos, v)
			return v
		}
	}
	n := g.pickLen(length, maxLen)
	v := make([]byte, n)
	for i := range v {
		v[i] = byte(g.rng.Intn(256))
	}
	g.record(pos, v)
	return v
}

// Name returns an arbitrary person name. Corpus mode cycles the curated
// table of ordinary and adversarial names; random mode synthesizes
// name-like strings with occasional adversarial injections of the same
// classes found in the table.
func (g *G) Name() string {
	return g.name()
}

// NameBytes returns an arbitrary person name encoded as UTF-8 bytes.
func (g *G) NameBytes() []byte {
	return []byte(g.name())
}

func (g *G) name() string {
	pos := g.nextPosition()
	if g.mode(pos) == modeCorpus {
		if table := corpus.Names(); len(table) > 0 {
			v := table[g.cursor(pos)%len(table)]
			g.record(pos, v)
			return v
		}
	}
	v := g.synthesizeName()
	g.record(pos, v)
	return v
}

// OneOf returns an arbitrary element of items. Corpus mode yields the
// first element, then the last, then random indices across the trial
// budget; random mode picks uniformly. Panics with a ConfigurationError
// when items is empty.
func OneOf[T any](g *G, items []T) T {
	if len(items) == 0 {
		badConfig("fromList", "items must not be empty")
	}
	pos := g.nextPosition()
	var idx int
	if g.mode(pos) == modeCorpus {
		switch c := g.cursor(pos); c {
		case 0:
			idx = 0
		case 1:
			idx = len(items) - 1
		default:
			idx = g.rng.Intn(len(items))
		}
	} else {
		idx = g.rng.Intn(len(items))
	}
	v := items[idx]
	g.record(pos, v)
	return v
}

// pickLen resolves the produced length for the random mode of string and
// byte generators: exact length wins, then uniform in [0, max], then
// uniform under the internal default maximum.
func (g *G) pickLen(length, maxLen int) int {
	if length != unset {
		return length
	}
	if maxLen == unset {
		maxLen = defaultMaxLen
	}
	return int(g.uint64n(uint64(maxLen) + 1))
}

// uint64n returns a uniform value in [0, n), rejection-sampled to avoid
// modulo bias. n == 0 means the full 64-bit range.
func (g *G) uint64n(n uint64) uint64 {
	if n == 0 {
		return g.rng.Uint64()
	}
	limit := math.MaxUint64 - math.MaxUint64%n
	for {
		v := g.rng.Uint64()
		if v < limit {
			return v % n
		}
	}
}

// randomRune draws one character: mostly printable ASCII, sometimes a
// control character (including NUL), and for text content occasionally a
// combining mark, a non-ASCII BMP character, or an astral code point.
func (g *G) randomRune(unicodeContent bool) rune {
	p := g.rng.Float64()
	switch {
	case p < 0.70:
		return rune(0x20 + g.rng.Intn(95))
	case p < 0.85:
		if i := g.rng.Intn(33); i < 32 {
			return rune(i)
		}
		return 0x7f
	case !unicodeContent:
		return rune(g.rng.Intn(0x80))
	case p < 0.90:
		return rune(0x300 + g.rng.Intn(0x70)) // combining marks
	case p < 0.96:
		return rune(0xa0 + g.rng.Intn(0xd7ff-0xa0+1))
	default:
		return rune(0x10000 + g.rng.Intn(0x10ffff-0x10000+1))
	}
}

// nameTokens seed the random-mode name synthesizer.
var nameTokens = []string{
	"Al", "Bea", "Car", "Dan", "El", "Fio", "Gus", "Hana", "Ivo", "Jun",
	"Kira", "Lou", "Mo", "Nils", "Oda", "Pim", "Quin", "Rex", "Sol", "Tam",
}

// adversarialBits are the injection classes of the name corpus: embedded
// non-breaking space, NUL, email-like suffix, injection attempt, astral
// decoration, and stray whitespace.
var adversarialBits = []string{
	" ", "\x00", " <nobody@example.com>", "'); DROP TABLE Students;--",
	"\U00010308", "\t", "  ",
}

// synthesizeName composes words from tokens and separators, with a low
// probability of splicing in an adversarial substring.
func (g *G) synthesizeName() string {
	words := 1 + g.rng.Intn(3)
	parts := make([]string, 0, words)
	for i := 0; i < words; i++ {
		syllables := 1 + g.rng.Intn(3)
		var w strings.Builder
		for j := 0; j < syllables; j++ {
			tok := nameTokens[g.rng.Intn(len(nameTokens))]
			if j > 0 {
				tok = strings.ToLower(tok)
			}
			w.WriteString(tok)
		}
		parts = append(parts, w.String())
	}
	sep := " "
	switch g.rng.Intn(10) {
	case 0:
		sep = "-"
	case 1:
		sep = "'"
	}
	v := strings.Join(parts, sep)
	if g.rng.Float64() < 0.1 {
		bit := adversarialBits[g.rng.Intn(len(adversarialBits))]
		at := g.rng.Intn(len(v) + 1)
		v = v[:at] + bit + v[at:]
	}
	return v
}
