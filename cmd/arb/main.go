// Package main is the entry point for the arb CLI, a small inspection
// tool around the arbitrary value generation engine: sample generators,
// dump corpus tables, and list recorded failing seeds.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/nomagicln/arb/pkg/arb"
	"github.com/nomagicln/arb/pkg/corpus"
	"github.com/nomagicln/arb/pkg/seedstore"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Build information, set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// styled applies a style only when stdout is a terminal, so piped output
// stays plain.
func styled(style lipgloss.Style, s string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return s
	}
	return style.Render(s)
}

// sampleConfig carries the generator constraints taken from flags.
// hasLow/hasHigh etc. distinguish "flag not given" from zero values.
type sampleConfig struct {
	low, high       int64
	hasLow, hasHigh bool
	flow, fhigh     float64
	length, maxLen  int
	hasLen, hasMax  bool
	items           []string
}

// drawValue draws one value of the requested kind from the trial context.
func drawValue(g *arb.G, kind string, cfg sampleConfig) (any, error) {
	switch kind {
	case "int", "int64":
		low, high := int64(math.MinInt64), int64(math.MaxInt64)
		if cfg.hasLow {
			low = cfg.low
		}
		if cfg.hasHigh {
			high = cfg.high
		}
		return g.Int64Range(low, high), nil
	case "float":
		return g.Float64Range(cfg.flow, cfg.fhigh), nil
	case "str":
		switch {
		case cfg.hasLen:
			return g.StrN(cfg.length), nil
		case cfg.hasMax:
			return g.StrMax(cfg.maxLen), nil
		default:
			return g.Str(), nil
		}
	case "unicode":
		switch {
		case cfg.hasLen:
			return g.UnicodeN(cfg.length), nil
		case cfg.hasMax:
			return g.UnicodeMax(cfg.maxLen), nil
		default:
			return g.Unicode(), nil
		}
	case "bytes":
		switch {
		case cfg.hasLen:
			return g.BytesN(cfg.length), nil
		case cfg.hasMax:
			return g.BytesMax(cfg.maxLen), nil
		default:
			return g.Bytes(), nil
		}
	case "name":
		return g.Name(), nil
	case "namebytes":
		return g.NameBytes(), nil
	case "list":
		return arb.OneOf(g, cfg.items), nil
	default:
		return nil, fmt.Errorf("unknown generator kind %q", kind)
	}
}

// corpusTable returns the boundary table of the requested kind as
// display strings.
func corpusTable(kind string, cfg sampleConfig) ([]string, error) {
	switch kind {
	case "int", "int64":
		low, high := int64(math.MinInt64), int64(math.MaxInt64)
		if cfg.hasLow {
			low = cfg.low
		}
		if cfg.hasHigh {
			high = cfg.high
		}
		values := corpus.Ints(low, high)
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = fmt.Sprintf("%d", v)
		}
		return out, nil
	case "float":
		values := corpus.Floats(cfg.flow, cfg.fhigh)
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = fmt.Sprintf("%g", v)
		}
		return out, nil
	case "str", "unicode", "bytes", "name":
		length, maxLen := -1, -1
		if cfg.hasLen {
			length = cfg.length
		}
		if cfg.hasMax {
			maxLen = cfg.maxLen
		}
		var values []string
		switch kind {
		case "str":
			values = corpus.Strings(length, maxLen)
		case "unicode":
			values = corpus.Unicode(length, maxLen)
		case "bytes":
			values = corpus.Bytes(length, maxLen)
		case "name":
			values = corpus.Names()
		}
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = fmt.Sprintf("%q", v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown corpus kind %q", kind)
	}
}

// truncate shortens s for one-line table display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// defaultStorePath is where the CLI looks for the failure database.
func defaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(dir, "arb", "failures.db"), nil
}

func newSampleCmd() *cobra.Command {
	var (
		seed   int64
		trials int
		cfg    sampleConfig
	)

	cmd := &cobra.Command{
		Use:   "sample <int|int64|float|str|unicode|bytes|name|namebytes|list>",
		Short: "Generate sample values from a generator",
		Long: `Sample runs a generator for a number of trials and prints every value,
using the same corpus/random schedule the engine applies in tests.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := strings.ToLower(args[0])
			cfg.hasLow = cmd.Flags().Changed("low")
			cfg.hasHigh = cmd.Flags().Changed("high")
			cfg.hasLen = cmd.Flags().Changed("len")
			cfg.hasMax = cmd.Flags().Changed("max-len")
			if kind == "list" && len(cfg.items) == 0 {
				return fmt.Errorf("the list generator requires --items")
			}

			opts := []arb.Option{arb.Trials(trials)}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, arb.Seed(seed))
			}

			fmt.Println(styled(headerStyle, fmt.Sprintf("%d samples of %s", trials, kind)))
			var drawErr error
			err := arb.Run(func(g *arb.G) error {
				v, err := drawValue(g, kind, cfg)
				if err != nil {
					drawErr = err
					return err
				}
				switch v := v.(type) {
				case string:
					fmt.Printf("%q\n", v)
				default:
					fmt.Printf("%v\n", v)
				}
				return nil
			}, opts...)
			if drawErr != nil {
				return drawErr
			}
			return err
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Top-level seed (default: time-based)")
	cmd.Flags().IntVar(&trials, "trials", 20, "Number of values to generate")
	cmd.Flags().Int64Var(&cfg.low, "low", 0, "Integer low bound (inclusive)")
	cmd.Flags().Int64Var(&cfg.high, "high", 0, "Integer high bound (inclusive)")
	cmd.Flags().Float64Var(&cfg.flow, "float-low", -1e11, "Float low bound (inclusive)")
	cmd.Flags().Float64Var(&cfg.fhigh, "float-high", 1e11, "Float high bound (inclusive)")
	cmd.Flags().IntVar(&cfg.length, "len", 0, "Exact length for string/byte generators")
	cmd.Flags().IntVar(&cfg.maxLen, "max-len", 0, "Maximum length for string/byte generators")
	cmd.Flags().StringSliceVar(&cfg.items, "items", nil, "Items for the list generator")

	return cmd
}

func newCorpusCmd() *cobra.Command {
	var cfg sampleConfig

	cmd := &cobra.Command{
		Use:   "corpus <int|float|str|unicode|bytes|name>",
		Short: "Print the boundary-value table of a generator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := strings.ToLower(args[0])
			cfg.hasLow = cmd.Flags().Changed("low")
			cfg.hasHigh = cmd.Flags().Changed("high")
			cfg.hasLen = cmd.Flags().Changed("len")
			cfg.hasMax = cmd.Flags().Changed("max-len")

			values, err := corpusTable(kind, cfg)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				fmt.Println(styled(faintStyle, "no corpus entries satisfy the given constraints"))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, styled(headerStyle, "INDEX\tVALUE"))
			for i, v := range values {
				fmt.Fprintf(w, "%d\t%s\n", i, v)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&cfg.low, "low", 0, "Integer low bound (inclusive)")
	cmd.Flags().Int64Var(&cfg.high, "high", 0, "Integer high bound (inclusive)")
	cmd.Flags().Float64Var(&cfg.flow, "float-low", -1e11, "Float low bound (inclusive)")
	cmd.Flags().Float64Var(&cfg.fhigh, "float-high", 1e11, "Float high bound (inclusive)")
	cmd.Flags().IntVar(&cfg.length, "len", 0, "Exact length filter")
	cmd.Flags().IntVar(&cfg.maxLen, "max-len", 0, "Maximum length filter")

	return cmd
}

func newFailuresCmd() *cobra.Command {
	var (
		dbPath   string
		property string
	)

	cmd := &cobra.Command{
		Use:   "failures",
		Short: "List recorded failing seeds",
		Long: `Failures lists property failures recorded by runs configured with a
seed store. Re-run the property with the listed seed to replay it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := dbPath
			if path == "" {
				var err error
				path, err = defaultStorePath()
				if err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err != nil {
				fmt.Println(styled(faintStyle, "no failure database found at "+path))
				return nil
			}

			store, err := seedstore.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			failures, err := store.Failures(property)
			if err != nil {
				return err
			}
			if len(failures) == 0 {
				fmt.Println(styled(faintStyle, "no recorded failures"))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, styled(headerStyle, "RECORDED\tPROPERTY\tSEED\tTRIAL\tINPUTS"))
			for _, f := range failures {
				name := f.Property
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
					f.RecordedAt.Format("2006-01-02 15:04:05"),
					name, f.Seed, f.Trial, truncate(f.Inputs, 60))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the failure database")
	cmd.Flags().StringVarP(&property, "property", "p", "", "Only show failures of this property")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("arb %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "arb",
		Short: "Inspect and exercise arbitrary value generators",
		Long: `arb generates randomized-but-biased test inputs: boundary values from a
curated corpus blended with uniform randomness, scheduled deterministically
from a seed so every run can be replayed exactly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSampleCmd(),
		newCorpusCmd(),
		newFailuresCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
