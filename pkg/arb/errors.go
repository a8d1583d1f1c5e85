package arb

import (
	"fmt"
	"strings"
)

// Error Types

// ConfigurationError indicates invalid generator constraints, such as a
// low bound above a high bound or an empty choice list. It is raised by
// panicking at the generator call site and is never converted into a
// property failure.
type ConfigurationError struct {
	// Generator is the name of the generator that rejected its arguments.
	Generator string

	// Reason describes what was wrong with the arguments.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("arb: invalid %s constraints: %s", e.Generator, e.Reason)
}

// badConfig panics with a ConfigurationError for the given generator.
func badConfig(generator, format string, args ...any) {
	panic(&ConfigurationError{Generator: generator, Reason: fmt.Sprintf(format, args...)})
}

// invariantError marks an engine bug. It is never recovered: a violated
// invariant means the engine itself is broken.
type invariantError struct {
	msg string
}

func (e *invariantError) Error() string {
	return e.msg
}

func invariant(format string, args ...any) {
	panic(&invariantError{msg: fmt.Sprintf("arb: internal invariant violated: "+format, args...)})
}

// TrialValue is one generated value together with the ordinal position of
// the generator call that produced it within the trial.
type TrialValue struct {
	// Position is the 1-based call position within the trial.
	Position int

	// Value is the generated value.
	Value any
}

// PropertyFailure wraps the failure signalled by a property body,
// decorated with everything needed to reproduce the failing trial: the
// top-level seed, the trial index, and every value generated up to the
// failure. It is the only error a run intentionally returns.
type PropertyFailure struct {
	// Name is the property name, if one was configured.
	Name string

	// Seed is the top-level seed of the run. Re-running with Seed(Seed)
	// replays the identical schedule and values.
	Seed int64

	// Trial is the 0-based index of the failing trial.
	Trial int

	// Trials is the configured trial budget.
	Trials int

	// Values holds the generated values of the failing trial in call
	// order.
	Values []TrialValue

	// Err is the failure signalled by the body.
	Err error
}

func (e *PropertyFailure) Error() string {
	var sb strings.Builder
	name := e.Name
	if name == "" {
		name = "property"
	}
	fmt.Fprintf(&sb, "%s failed on trial %d of %d (seed %d): %v", name, e.Trial+1, e.Trials, e.Seed, e.Err)
	if len(e.Values) > 0 {
		sb.WriteString("\ngenerated inputs:")
		for _, v := range e.Values {
			fmt.Fprintf(&sb, "\n  #%d: %#v", v.Position, v.Value)
		}
	}
	return sb.String()
}

// Unwrap exposes the body's own failure for errors.Is/As.
func (e *PropertyFailure) Unwrap() error {
	return e.Err
}
