package main

import (
	"github.com/spf13/cobra"

	"hitstats/stats"
)

type synthFlags struct {
	scoreFlags

	accuracy float64
	misses   int
	combo    int

	perfect, great, good, ok, meh     int
	largeTickMisses, sliderTailMisses int
}

func (a *app) newSynthCmd() *cobra.Command {
	f := &synthFlags{}
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Build full hit statistics from an accuracy",
		Example: `  hitstats synth -f map.osu --accuracy 97.5 --misses 3
  hitstats synth -r taiko --objects 850 --accuracy 90
  hitstats synth -b 658127 --accuracy 95 --good 20 --mods HDCL -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSynth(cmd, f)
		},
	}
	f.register(cmd)

	flags := cmd.Flags()
	flags.Float64VarP(&f.accuracy, "accuracy", "a", 100, "accuracy percentage (0-100)")
	flags.IntVarP(&f.misses, "misses", "m", 0, "miss count")
	flags.IntVar(&f.combo, "combo", 0, "achieved combo (default: the highest the misses allow)")
	flags.IntVar(&f.perfect, "perfect", 0, "perfect count (mania)")
	flags.IntVar(&f.great, "great", 0, "great count (mania)")
	flags.IntVar(&f.good, "good", 0, "good count (100s in osu, droplets in catch)")
	flags.IntVar(&f.ok, "ok", 0, "ok count (mania)")
	flags.IntVar(&f.meh, "meh", 0, "meh count (50s in osu, tiny droplets in catch)")
	flags.IntVar(&f.largeTickMisses, "large-tick-misses", 0, "missed slider ticks and repeats (osu)")
	flags.IntVar(&f.sliderTailMisses, "slider-tail-misses", 0, "missed slider tails (osu)")

	return cmd
}

func (a *app) runSynth(cmd *cobra.Command, f *synthFlags) error {
	ruleset, mode, summary, err := f.resolve(cmd.Context(), cmd, a)
	if err != nil {
		return err
	}

	req := stats.Request{
		Ruleset:  ruleset,
		Mode:     mode,
		Accuracy: f.accuracy,
		Misses:   f.misses,
		Combo:    intFlag(cmd, "combo", f.combo),
		Overrides: stats.Overrides{
			Perfect:          intFlag(cmd, "perfect", f.perfect),
			Great:            intFlag(cmd, "great", f.great),
			Good:             intFlag(cmd, "good", f.good),
			Ok:               intFlag(cmd, "ok", f.ok),
			Meh:              intFlag(cmd, "meh", f.meh),
			LargeTickMisses:  intFlag(cmd, "large-tick-misses", f.largeTickMisses),
			SliderTailMisses: intFlag(cmd, "slider-tail-misses", f.sliderTailMisses),
		},
	}
	a.logger.Debug("synthesizing", "ruleset", ruleset, "mode", mode, "summary", summary)

	out, err := stats.NewEngine(a.logger).Synthesize(summary, req)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), f.format, out)
}
