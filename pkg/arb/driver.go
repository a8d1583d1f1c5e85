package arb

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTrials is the trial budget used when none is configured.
const DefaultTrials = 100

// FailureRecorder persists failing seeds so they can be replayed later.
// Inputs is a JSON rendering of the failing trial's generated values.
type FailureRecorder interface {
	RecordFailure(property string, seed int64, trial int, inputs string) error
}

// Config holds the run configuration of one property invocation.
type Config struct {
	// Trials is the number of trials to execute.
	Trials int

	// Seed is the top-level seed. When unset a time-based seed is chosen
	// and reported in any failure.
	Seed int64

	seedSet bool

	// Name identifies the property in failure output and the recorder.
	Name string

	recorder FailureRecorder
}

// Option configures a property run.
type Option func(*Config)

// Trials sets the trial budget.
func Trials(n int) Option {
	return func(c *Config) { c.Trials = n }
}

// Seed fixes the top-level seed, making the run fully reproducible.
func Seed(seed int64) Option {
	return func(c *Config) {
		c.Seed = seed
		c.seedSet = true
	}
}

// Named sets the property name used in failure output.
func Named(name string) Option {
	return func(c *Config) { c.Name = name }
}

// WithRecorder registers a recorder that is handed every failure's seed
// and inputs. Recording is best-effort; recorder errors never mask the
// property failure.
func WithRecorder(r FailureRecorder) Option {
	return func(c *Config) { c.recorder = r }
}

// Run executes the property body against freshly generated inputs, once
// per trial, strictly in schedule order on the calling goroutine. The
// first failing trial aborts the rest and is returned as a
// *PropertyFailure carrying the seed and all generated values; nil means
// every trial passed.
//
// A body signals failure by returning a non-nil error or by panicking
// with anything other than a *ConfigurationError. Configuration errors
// and internal invariant violations propagate as panics.
func Run(body func(*G) error, opts ...Option) error {
	cfg := Config{Trials: DefaultTrials}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Trials <= 0 {
		badConfig("trials", "trial budget %d must be positive", cfg.Trials)
	}
	if !cfg.seedSet {
		cfg.Seed = time.Now().UnixNano()
	}

	sched := newSchedule(cfg.Seed, cfg.Trials)
	cursors := newCursorMap()
	for trial := 0; trial < cfg.Trials; trial++ {
		g := newG(sched, trial, cursors)
		if err := runTrial(g, body); err != nil {
			failure := &PropertyFailure{
				Name:   cfg.Name,
				Seed:   cfg.Seed,
				Trial:  trial,
				Trials: cfg.Trials,
				Values: g.values,
				Err:    err,
			}
			if cfg.recorder != nil {
				_ = cfg.recorder.RecordFailure(cfg.Name, cfg.Seed, trial, renderInputs(g.values))
			}
			return failure
		}
	}
	return nil
}

// runTrial executes the body once. Panics other than configuration
// errors and invariant violations count as failures, matching assertion
// style bodies.
func runTrial(g *G, body func(*G) error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(*ConfigurationError); ok {
			panic(r)
		}
		if _, ok := r.(*invariantError); ok {
			panic(r)
		}
		err = fmt.Errorf("property body panicked: %v", r)
	}()
	return body(g)
}

// TB is the subset of testing.TB the test helpers need. *testing.T and
// *testing.B satisfy it.
type TB interface {
	Helper()
	Fatal(args ...any)
}

// Property wraps a body into an ordinary test function so any host
// runner can invoke it unmodified:
//
//	func TestSort(t *testing.T) {
//		arb.Property(func(g *arb.G) error {
//			...
//		})(t)
//	}
func Property(body func(*G) error, opts ...Option) func(TB) {
	return func(tb TB) {
		tb.Helper()
		if err := Run(body, opts...); err != nil {
			tb.Fatal(err)
		}
	}
}

// Check runs the property and fails the test on the first violation.
func Check(tb TB, body func(*G) error, opts ...Option) {
	tb.Helper()
	Property(body, opts...)(tb)
}

// renderInputs serializes trial values for recorders. Values that do not
// marshal cleanly fall back to their Go literal form.
func renderInputs(values []TrialValue) string {
	type entry struct {
		Position int    `json:"position"`
		Value    any    `json:"value,omitempty"`
		Literal  string `json:"literal,omitempty"`
	}
	entries := make([]entry, 0, len(values))
	for _, v := range values {
		if _, err := json.Marshal(v.Value); err != nil {
			entries = append(entries, entry{Position: v.Position, Literal: fmt.Sprintf("%#v", v.Value)})
			continue
		}
		entries = append(entries, entry{Position: v.Position, Value: v.Value})
	}
	out, err := json.Marshal(entries)
	if err != nil {
		return fmt.Sprintf("%#v", values)
	}
	return string(out)
}
