package stats

import "fmt"

// Strategy is the ruleset-specific half of the engine. Implementations are
// stateless and safe for concurrent use.
type Strategy interface {
	Ruleset() Ruleset
	Judgements(mode ScoringMode) Model

	// TotalJudgements is the number of judged events a complete distribution
	// must add up to.
	TotalJudgements(s Summary, mode ScoringMode) int

	Evaluate(s Summary, c Counts, mode ScoringMode) float64
	Synthesize(s Summary, t Target, mode ScoringMode) Result
	MaxCombo(s Summary, mode ScoringMode) int
}

var strategies = [...]Strategy{
	Osu:   osuStrategy{},
	Taiko: taikoStrategy{},
	Catch: catchStrategy{},
	Mania: maniaStrategy{},
}

// For returns the strategy of r.
func For(r Ruleset) (Strategy, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRuleset, int(r))
	}
	return strategies[r], nil
}

// weighted sums weight*count over js, and topWeight*count as the maximum.
func weighted(js []Judgement, top float64, c Counts) (hit, max float64) {
	for _, j := range js {
		n := float64(c[j.Kind])
		hit += j.Weight * n
		max += top * n
	}
	return hit, max
}

func ratio(hit, max float64) float64 {
	if max <= 0 {
		return 1
	}
	return clamp01(hit / max)
}
