// Package corpus holds the curated tables of boundary and adversarial
// values that generators mix into their output. All tables are built once
// and never mutated afterwards, so concurrent readers need no locking.
package corpus

import (
	_ "embed"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var rawData []byte

// data mirrors the embedded YAML resource.
type data struct {
	// Version identifies the corpus revision.
	Version int `yaml:"version"`

	// Names is the curated table of ordinary and adversarial person names.
	Names []string `yaml:"names"`

	// Strings is the curated table of boundary strings.
	Strings []string `yaml:"strings"`

	// Unicode is the curated table of strings exercising code points
	// outside the basic multilingual plane, combining marks, and
	// boundary-adjacent code points.
	Unicode []string `yaml:"unicode"`
}

// tables is decoded at package initialization. A malformed resource is
// an engine bug, not a runtime condition, so it takes the process down
// before any trial can run, and can never leave partially loaded tables
// behind.
var tables = mustLoad()

func mustLoad() data {
	var d data
	if err := yaml.Unmarshal(rawData, &d); err != nil {
		panic(fmt.Errorf("corpus: embedded data is invalid: %v", err))
	}
	if d.Version <= 0 || len(d.Names) == 0 || len(d.Strings) == 0 || len(d.Unicode) == 0 {
		panic(fmt.Errorf("corpus: embedded data is incomplete (version %d)", d.Version))
	}
	return d
}

// Version returns the revision of the embedded corpus resource.
func Version() int {
	return tables.Version
}

// intTable is the ordered boundary table for integers: zero, units,
// powers of two and their neighbours, then the type-range extremes.
var intTable = []int64{
	0, 1, -1,
	2, -2,
	127, 128, 255, 256,
	32767, 32768,
	65535, 65536, -65536,
	math.MaxInt32, math.MinInt32,
	1 << 32,
	1 << 62,
	math.MaxInt64, math.MinInt64,
}

// Ints returns the ordered in-bounds boundary subsequence for [low, high],
// with the requested bounds themselves appended. Empty when nothing
// qualifies.
func Ints(low, high int64) []int64 {
	var out []int64
	seen := make(map[int64]bool)
	add := func(v int64) {
		if v >= low && v <= high && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range intTable {
		add(v)
	}
	add(low)
	add(high)
	return out
}

// floatTable is the ordered boundary table for floats. Infinity and NaN
// are never part of the corpus.
var floatTable = []float64{
	0.0, math.Copysign(0, -1),
	1.0, -1.0,
	1e-10, -1e-10,
	2.220446049250313e-16, // machine epsilon
	math.SmallestNonzeroFloat64, -math.SmallestNonzeroFloat64,
	math.MaxFloat64, -math.MaxFloat64,
}

// Floats returns the ordered in-bounds boundary subsequence for
// [low, high], with the finite requested bounds appended.
func Floats(low, high float64) []float64 {
	var out []float64
	// Keyed on the bit pattern so 0.0 and -0.0 stay distinct entries.
	seen := make(map[uint64]bool)
	add := func(v float64) {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return
		}
		bits := math.Float64bits(v)
		if v >= low && v <= high && !seen[bits] {
			seen[bits] = true
			out = append(out, v)
		}
	}
	for _, v := range floatTable {
		add(v)
	}
	add(low)
	add(high)
	return out
}

// Strings returns the curated boundary strings satisfying the length
// constraint. length < 0 means no exact-length requirement; maxLen < 0
// means no upper bound. When an upper bound is set a value of exactly
// that length is included so the requested maximum is always exercised.
func Strings(length, maxLen int) []string {
	return filterStrings(tables.Strings, length, maxLen, "x")
}

// Unicode returns the curated text-boundary strings satisfying the
// length constraint. Lengths count characters, not bytes.
func Unicode(length, maxLen int) []string {
	return filterStrings(tables.Unicode, length, maxLen, "é")
}

// Names returns the curated name table. Read-only for callers.
func Names() []string {
	return tables.Names
}

// bytesTable mirrors the adversarial raw-byte strings of the byte-string
// generator: empty, NUL, a lone UTF-8 continuation lead byte, and a NUL
// prefix. These are not valid text, so they live here rather than in the
// embedded resource.
var bytesTable = []string{"", "\x00", "\xc2", "\x00foo"}

// Bytes returns the boundary byte strings satisfying the length
// constraint in bytes.
func Bytes(length, maxLen int) []string {
	var out []string
	for _, s := range bytesTable {
		if length >= 0 && len(s) != length {
			continue
		}
		if maxLen >= 0 && len(s) > maxLen {
			continue
		}
		out = append(out, s)
	}
	if length < 0 && maxLen > 0 {
		out = append(out, strings.Repeat("\x00", maxLen))
	}
	return out
}

// filterStrings keeps the table entries satisfying the constraint and,
// when only a maximum is given, appends a pad-rune string at exactly the
// maximum length.
func filterStrings(table []string, length, maxLen int, pad string) []string {
	var out []string
	for _, s := range table {
		n := utf8.RuneCountInString(s)
		if length >= 0 && n != length {
			continue
		}
		if maxLen >= 0 && n > maxLen {
			continue
		}
		out = append(out, s)
	}
	if length < 0 && maxLen > 0 {
		out = append(out, strings.Repeat(pad, maxLen))
	}
	if length > 0 {
		out = append(out, strings.Repeat(pad, length))
	}
	return out
}
