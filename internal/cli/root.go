// Package cli provides the command-line interface for logics.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitrdm/logics/internal/config"
	"github.com/gitrdm/logics/internal/scenario"
	"github.com/gitrdm/logics/pkg/semantics"
)

// Build information, set with -ldflags.
var (
	BuildDate = ""
	GitCommit = ""
)

type envKey struct{}

// env carries what every subcommand needs.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer *renderer
}

func getEnv(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	cfg := config.Default()
	return &env{
		cfg:      cfg,
		logger:   slog.Default(),
		renderer: newRenderer(os.Stdout, cfg.Output, cfg.Color),
	}
}

func (e *env) loader() *scenario.Loader {
	return scenario.NewLoader(e.logger, e.cfg.Theory)
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "logics",
		Short: "Check and evaluate formulas of first- and second-order logics",
		Long: `logics reads scenario files that describe a language, a model theory,
a model and a list of formulas, and checks the formulas for well-formedness,
matches them against schemas, or evaluates them in the model.

Settings come from logics.yaml, LOGICS_* environment variables and flags,
in increasing order of priority.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			semantics.SetLogger(logger)
			if cfg.File != "" {
				logger.Debug("using config file", slog.String("path", cfg.File))
			}

			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, &env{
				cfg:      cfg,
				logger:   logger,
				renderer: newRenderer(cmd.OutOrStdout(), cfg.Output, cfg.Color),
			}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./logics.yaml)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	flags.StringP("output", "o", config.DefaultOutput, "output format (table|json|yaml)")
	flags.String("theory", config.DefaultTheory, "model theory for scenarios that name none")
	flags.Int("workers", 0, "concurrent evaluations (0 means one per CPU)")
	flags.Int("range-limit", config.DefaultRangeLimit, "truncate infinite domains to this many elements (0 for no limit)")
	flags.Duration("timeout", config.DefaultTimeout, "time allowed per formula (0 for no limit)")
	flags.Bool("fast-path", true, "use the short-circuiting clauses of theories that have them")
	flags.Bool("color", true, "colour verdicts in table output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("theory", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return semantics.PresetNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newEvalCommand())
	rootCmd.AddCommand(newWFFCommand())
	rootCmd.AddCommand(newMatchCommand())
	rootCmd.AddCommand(newRangeCommand())
	rootCmd.AddCommand(newTheoriesCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
