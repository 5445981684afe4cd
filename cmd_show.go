package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hitstats/catalog"
	"hitstats/stats"
)

func (a *app) newShowCmd() *cobra.Command {
	var (
		ruleset string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "show [beatmap-id]",
		Short: "List catalog entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyStringConfig(cmd, "format", &format, a.cfg.Synth.Format)

			beatmapID := 0
			if len(args) == 1 {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid beatmap id %q: %w", args[0], err)
				}
				beatmapID = id
			}

			cat, err := catalog.Open(a.catalogPath)
			if err != nil {
				return fmt.Errorf("failed to open catalog: %w", err)
			}
			defer cat.Close()

			entries, err := cat.List(cmd.Context(), beatmapID)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ruleset") {
				r, err := stats.ParseRuleset(ruleset)
				if err != nil {
					return err
				}
				filtered := entries[:0]
				for _, e := range entries {
					if e.Ruleset == r {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}
			if len(entries) == 0 && beatmapID != 0 {
				return fmt.Errorf("%w: beatmap %d", catalog.ErrNotFound, beatmapID)
			}
			if entries == nil {
				entries = []catalog.Entry{}
			}
			return writeOutput(cmd.OutOrStdout(), format, entries)
		},
	}
	cmd.Flags().StringVarP(&ruleset, "ruleset", "r", "", "only show entries for this ruleset")
	cmd.Flags().StringVarP(&format, "format", "o", formatJSON, "output format: json or yaml")
	return cmd
}
