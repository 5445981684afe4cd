package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hitstats/catalog"
	"hitstats/dotosu"
	"hitstats/stats"
)

// scoreFlags selects the beatmap, ruleset and scoring mode of a command.
// The beatmap comes from a .osu file, from the catalog by ID, or from
// object counts given directly.
type scoreFlags struct {
	ruleset string
	mode    string
	mods    string
	format  string

	file      string
	beatmapID int
	summary   stats.Summary
}

func (f *scoreFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.ruleset, "ruleset", "r", "osu", "ruleset: osu, taiko, fruits or mania (or 0-3)")
	flags.StringVar(&f.mode, "mode", "standard", "scoring mode: standard or classic")
	flags.StringVar(&f.mods, "mods", "", "mod acronyms, e.g. HDCL; CL selects classic scoring")
	flags.StringVarP(&f.format, "format", "o", formatJSON, "output format: json or yaml")

	flags.StringVarP(&f.file, "file", "f", "", "read the beatmap from a .osu file")
	flags.IntVarP(&f.beatmapID, "beatmap", "b", 0, "look the beatmap up in the catalog by ID")

	flags.IntVar(&f.summary.TotalBaseObjects, "objects", 0, "number of judged base objects")
	flags.IntVar(&f.summary.Sliders, "sliders", 0, "number of sliders (osu)")
	flags.IntVar(&f.summary.Spinners, "spinners", 0, "number of spinners")
	flags.IntVar(&f.summary.LargeTicks, "large-ticks", 0, "slider ticks and repeats (osu) or droplets (catch)")
	flags.IntVar(&f.summary.SmallTicks, "small-ticks", 0, "tiny droplets (catch)")
	flags.IntVar(&f.summary.HoldNotes, "hold-notes", 0, "hold notes (mania)")

	cmd.MarkFlagsMutuallyExclusive("file", "beatmap")
}

// resolve applies config defaults and loads the beatmap. A .osu file picks
// its own ruleset unless one was asked for.
func (f *scoreFlags) resolve(ctx context.Context, cmd *cobra.Command, a *app) (stats.Ruleset, stats.ScoringMode, stats.Summary, error) {
	applyStringConfig(cmd, "ruleset", &f.ruleset, a.cfg.Synth.Ruleset)
	applyStringConfig(cmd, "mode", &f.mode, a.cfg.Synth.Mode)
	applyStringConfig(cmd, "format", &f.format, a.cfg.Synth.Format)
	rulesetChosen := cmd.Flags().Changed("ruleset") || a.cfg.Synth.Ruleset != nil

	mods, err := ParseMods(f.mods)
	if err != nil {
		return 0, 0, stats.Summary{}, err
	}
	mode, err := stats.ParseScoringMode(f.mode)
	if err != nil {
		return 0, 0, stats.Summary{}, err
	}
	if mods.Classic && !cmd.Flags().Changed("mode") {
		mode = mods.ScoringMode()
	}

	ruleset, err := stats.ParseRuleset(f.ruleset)
	if err != nil {
		return 0, 0, stats.Summary{}, err
	}

	switch {
	case f.file != "":
		b, err := dotosu.DecodeFile(f.file)
		if err != nil {
			return 0, 0, stats.Summary{}, fmt.Errorf("decode %s: %w", f.file, err)
		}
		if !rulesetChosen {
			if ruleset, err = NativeRuleset(b); err != nil {
				return 0, 0, stats.Summary{}, fmt.Errorf("%s: %w", f.file, err)
			}
		}
		s, err := SummarizeBeatmap(b, ruleset)
		if err != nil {
			return 0, 0, stats.Summary{}, fmt.Errorf("%s: %w", f.file, err)
		}
		return ruleset, mode, s, nil

	case cmd.Flags().Changed("beatmap"):
		cat, err := catalog.Open(a.catalogPath)
		if err != nil {
			return 0, 0, stats.Summary{}, fmt.Errorf("failed to open catalog: %w", err)
		}
		defer cat.Close()
		e, err := cat.Get(ctx, f.beatmapID, ruleset)
		if err != nil {
			return 0, 0, stats.Summary{}, err
		}
		a.logger.Debug("beatmap from catalog", "beatmap", e.BeatmapID, "title", e.Title, "version", e.Version)
		return ruleset, mode, e.Summary, nil

	case f.summaryGiven(cmd):
		return ruleset, mode, f.summary, nil

	default:
		return 0, 0, stats.Summary{}, errNoBeatmap
	}
}

var errNoBeatmap = errors.New("no beatmap: pass --file, --beatmap or --objects")

func (f *scoreFlags) summaryGiven(cmd *cobra.Command) bool {
	for _, name := range []string{"objects", "sliders", "spinners", "large-ticks", "small-ticks", "hold-notes"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
