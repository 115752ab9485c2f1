// cmd/tracevec/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/tracevec/vec"
)

// This binary is a demonstration tool.
//
// It walks the construction shapes the library resolves — bare lists, cell
// lists, the braced mixed-pair tie-break, and the parenthesized fill — and
// streams every construction event to a zap-backed sink, so the trace
// semantics can be inspected from a terminal.
//
// Key behaviors:
// - `tracevec demo` runs the construction walkthrough
// - `tracevec ident` prints raw vs display names for the scalar set
// - --verbose switches the sink logger to debug level / console encoding
// - --config points at an optional YAML file tuning the sink

// sinkConfig tunes the event sink logger.
type sinkConfig struct {
	// Level is a zap level name ("debug", "info", "warn", ...).
	Level string `yaml:"level"`

	// Encoding is "json" or "console".
	Encoding string `yaml:"encoding"`
}

type demoConfig struct {
	Sink sinkConfig `yaml:"sink"`
}

func loadConfig(path string) (demoConfig, error) {
	cfg := demoConfig{Sink: sinkConfig{Level: "info", Encoding: "json"}}
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func buildLogger(cfg demoConfig, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Sink.Encoding != "" {
		zcfg.Encoding = cfg.Sink.Encoding
	}
	if cfg.Sink.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Sink.Level)
		if err != nil {
			return nil, fmt.Errorf("sink level: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		zcfg.Encoding = "console"
	}
	return zcfg.Build()
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "tracevec",
		Short: "tracevec - construction-tracing container walkthrough",
		Long: `tracevec demonstrates how construction calls resolve to element types
and population strategies, and how every instrumented cell construction
lands in the trace log.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level sink output")
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML sink configuration")

	demo := &cobra.Command{
		Use:   "demo",
		Short: "Run the construction walkthrough",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg, verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return runDemo(cmd, logger)
		},
	}

	ident := &cobra.Command{
		Use:   "ident",
		Short: "Print raw and display names for the scalar set",
		Run: func(cmd *cobra.Command, args []string) {
			runIdent(cmd)
		},
	}

	root.AddCommand(demo, ident)
	return root
}

func runDemo(cmd *cobra.Command, logger *zap.Logger) error {
	out := cmd.OutOrStdout()
	sink := vec.NewZapSink(logger)
	log := vec.NewLog(sink)
	sink.Bind(log)

	// Single-element list: element type comes straight from the value.
	single := vec.Of(0)
	fmt.Fprintf(out, "1. {0} -> %d element(s) of int, %d event(s)\n",
		single.Len(), log.Len())

	// Homogeneous float list: still a bare list, still untraced.
	floats := vec.Of(10.0, 1.3)
	fmt.Fprintf(out, "2. {10.0, 1.3} -> %d element(s) of float64, %d event(s)\n",
		floats.Len(), log.Len())

	// Mixed braced pair: list precedence holds, elements get wrapped.
	log.Reset()
	mixed, res, err := vec.Deduce(log, vec.BracedCall(10, 1.3))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "3. {10, 1.3} -> %d element(s) of %s, %d event(s)\n",
		mixed.Len(), res.ElemName, log.Len())
	for i, e := range mixed.Elems() {
		fmt.Fprintf(out, "   %d: %v\n", i, e.(vec.Cell[float64]).Get())
	}

	// Braced list of pre-built cells: adopted by cloning, no double wrap.
	log.Reset()
	adopted := vec.OfCells(
		vec.CellOf(log, 10.34),
		vec.CellOf(log, 9.23),
		vec.CellOf(log, 3.14),
	)
	fmt.Fprintf(out, "4. {Cell{10.34}, Cell{9.23}, Cell{3.14}} -> %d element(s), %d event(s)\n",
		adopted.Len(), log.Len())

	// Parenthesized (5, 1.3): the fill form, value/copy pair per element.
	log.Reset()
	filled, err := vec.Fill(log, 5, 1.3)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "5. (5, 1.3) -> %d element(s) of Cell[float64], %d event(s)\n",
		filled.Len(), log.Len())
	for i := 0; i < filled.Len(); i++ {
		fmt.Fprintf(out, "   %d: %v\n", i, filled.At(i).Get())
	}
	return nil
}

func runIdent(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	rows := []struct{ raw, display string }{
		{vec.RawName[int](), vec.DisplayName[int]()},
		{vec.RawName[float64](), vec.DisplayName[float64]()},
		{vec.RawName[string](), vec.DisplayName[string]()},
		{vec.RawName[vec.Cell[float64]](), vec.DisplayName[vec.Cell[float64]]()},
		{vec.RawName[vec.Cell[vec.Cell[int]]](), vec.DisplayName[vec.Cell[vec.Cell[int]]]()},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%-40s %s\n", r.raw, r.display)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
