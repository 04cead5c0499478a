package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexshd/mcpm/internal/config"
	"github.com/alexshd/mcpm/internal/logging"
	"github.com/alexshd/mcpm/internal/render"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
	date    = "unknown"
)

// app carries state shared by every subcommand once PersistentPreRunE ran.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "mcpm",
		Short: "Systemic coherence measurement",
		Long: `mcpm measures systemic coherence M(S) = R·A·D·f(C) − L.

It compares systems, ranks empathy patterns, simulates golden-ratio
trust spirals and analyzes replacement scenarios. It measures only:
nothing here recommends, optimizes or enforces.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newVersionCmd(),
		newMeasureCmd(a),
		newCompareCmd(a),
		newEmpathyCmd(a),
		newTrustCmd(a),
		newReplaceCmd(a),
		newPresetsCmd(),
	)

	return rootCmd
}

// setup loads configuration and installs the logger.
// Order: defaults -> --config file -> env -> flags.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		if !logging.ValidLevel(level) {
			return fmt.Errorf("invalid --log-level %q (valid: debug, info, warn, error)", level)
		}
		cfg.Logging.Level = level
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Logging.NoColor = true
	}

	a.cfg = cfg
	a.logger = logging.Install(cfg.Logging.Level, cmd.ErrOrStderr(), cfg.Logging.NoColor)
	a.logger.Debug("config loaded", "path", path, "alpha", cfg.Metric.Alpha, "level", cfg.Logging.Level)
	return nil
}

// renderer returns a report renderer for the command's stdout.
func (a *app) renderer(cmd *cobra.Command) *render.Renderer {
	return render.New(cmd.OutOrStdout(), a.cfg.Logging.NoColor)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
