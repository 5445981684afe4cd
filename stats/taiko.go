package stats

var taikoTiers = []Judgement{
	{Great, 2},
	{Good, 1},
	{Miss, 0},
}

type taikoStrategy struct{}

func (taikoStrategy) Ruleset() Ruleset { return Taiko }

func (taikoStrategy) Judgements(ScoringMode) Model {
	return Model{Tiers: taikoTiers}
}

func (taikoStrategy) TotalJudgements(s Summary, _ ScoringMode) int {
	return s.TotalBaseObjects
}

func (taikoStrategy) MaxCombo(s Summary, _ ScoringMode) int {
	return s.TotalBaseObjects
}

func (taikoStrategy) Evaluate(_ Summary, c Counts, _ ScoringMode) float64 {
	return ratio(weighted(taikoTiers, 2, c))
}

func (taikoStrategy) Synthesize(s Summary, t Target, _ ScoringMode) Result {
	var adj adjuster
	total := s.TotalBaseObjects
	misses := adj.clamp(Miss, t.Misses, 0, total, "more misses than hits")
	hits := total - misses

	var great, good int
	if t.Overrides.Good != nil {
		good = adj.clamp(Good, *t.Overrides.Good, 0, hits, "more goods than hits left after misses")
		great = hits - good
	} else {
		// 2*great + good = target with great + good = hits
		target := round(t.Accuracy * float64(total) * 2)
		great = adj.clamp(Great, target-hits, 0, hits, "accuracy out of reach with this miss count")
		good = hits - great
	}

	return Result{
		Counts: Counts{
			Great: great,
			Good:  good,
			Miss:  misses,
		},
		Adjustments: adj.list,
	}
}
