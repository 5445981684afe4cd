// Package main provides the hitstats CLI: it rebuilds the full judgement
// breakdown of a score from its accuracy and whichever counts are known.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hitstats/config"
)

const defaultWorkers = 4

// app carries what every subcommand shares once flags and the config file
// have been read.
type app struct {
	configPath  string
	logLevel    string
	catalogPath string

	cfg    config.FileConfig
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "hitstats",
		Short: "Reconstruct per-judgement hit statistics from accuracy",
		Long: `hitstats turns an accuracy percentage, a miss count and any known judgement
counts into a complete, consistent set of hit statistics for an osu!, taiko,
catch or mania beatmap.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&a.catalogPath, "catalog", config.DefaultCatalogPath(), "path to the beatmap catalog database")

	cmd.AddCommand(a.newSynthCmd())
	cmd.AddCommand(a.newEvalCmd())
	cmd.AddCommand(a.newImportCmd())
	cmd.AddCommand(a.newShowCmd())

	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	applyStringConfig(cmd, "log-level", &a.logLevel, cfg.Log.Level)
	applyStringConfig(cmd, "catalog", &a.catalogPath, cfg.Catalog.Path)

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.logLevel, err)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// intFlag returns the flag's value only when the user set it.
func intFlag(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
