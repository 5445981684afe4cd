package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hitstats/stats"
)

type evalOutput struct {
	Ruleset  stats.Ruleset     `json:"ruleset" yaml:"ruleset"`
	Mode     stats.ScoringMode `json:"mode" yaml:"mode"`
	Counts   stats.Counts      `json:"statistics" yaml:"statistics"`
	Accuracy float64           `json:"accuracy" yaml:"accuracy"`
	MaxCombo int               `json:"max_combo" yaml:"max_combo"`
}

func (a *app) newEvalCmd() *cobra.Command {
	f := &scoreFlags{}
	var counts map[string]int
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Compute accuracy and max combo from hit statistics",
		Example: `  hitstats eval -r taiko --objects 50 -c great=40 -c good=10
  hitstats eval -f map.osu -c great=480 -c good=15 -c meh=2 -c miss=3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEval(cmd, f, counts)
		},
	}
	f.register(cmd)
	cmd.Flags().StringToIntVarP(&counts, "count", "c", nil, "judgement count as kind=n (repeatable), e.g. great=40")
	return cmd
}

func (a *app) runEval(cmd *cobra.Command, f *scoreFlags, raw map[string]int) error {
	ruleset, mode, summary, err := f.resolve(cmd.Context(), cmd, a)
	if err != nil {
		return err
	}

	engine := stats.NewEngine(a.logger)
	model, err := engine.Judgements(ruleset, mode)
	if err != nil {
		return err
	}
	counts := make(stats.Counts, len(raw))
	for name, n := range raw {
		var kind stats.Kind
		if err := kind.UnmarshalText([]byte(name)); err != nil {
			return err
		}
		if _, ok := model.Weight(kind); !ok {
			return fmt.Errorf("%s is not judged in %s (%s scoring), want one of %v", kind, ruleset, mode, model.Kinds())
		}
		counts[kind] = n
	}

	accuracy, err := engine.Evaluate(ruleset, summary, counts, mode)
	if err != nil {
		return err
	}
	maxCombo, err := engine.MaxCombo(ruleset, summary, mode)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), f.format, evalOutput{
		Ruleset:  ruleset,
		Mode:     mode,
		Counts:   counts,
		Accuracy: accuracy,
		MaxCombo: maxCombo,
	})
}
