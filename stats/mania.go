package stats

const (
	maniaPerfectStandard = 305
	maniaPerfectClassic  = 300
)

type maniaStrategy struct{}

func (maniaStrategy) Ruleset() Ruleset { return Mania }

func (maniaStrategy) Judgements(mode ScoringMode) Model {
	perfect := maniaPerfectStandard
	if mode == Classic {
		perfect = maniaPerfectClassic
	}
	return Model{Tiers: []Judgement{
		{Perfect, float64(perfect)},
		{Great, 300},
		{Good, 200},
		{Ok, 100},
		{Meh, 50},
		{Miss, 0},
	}}
}

// TotalJudgements counts hold note tails as separate judgements under
// standard scoring.
func (maniaStrategy) TotalJudgements(s Summary, mode ScoringMode) int {
	if mode == Classic {
		return s.TotalBaseObjects
	}
	return s.TotalBaseObjects + s.HoldNotes
}

// MaxCombo is always zero: mania results are never capped by combo.
func (maniaStrategy) MaxCombo(Summary, ScoringMode) int {
	return 0
}

func (ms maniaStrategy) Evaluate(_ Summary, c Counts, mode ScoringMode) float64 {
	model := ms.Judgements(mode)
	return ratio(weighted(model.Tiers, model.Top().Weight, c))
}

func (ms maniaStrategy) Synthesize(s Summary, t Target, mode ScoringMode) Result {
	var adj adjuster
	model := ms.Judgements(mode)
	total := ms.TotalJudgements(s, mode)
	misses := adj.clamp(Miss, t.Misses, 0, total, "more misses than judged notes")
	left := total - misses

	pins := map[Kind]*int{
		Perfect: t.Overrides.Perfect,
		Great:   t.Overrides.Great,
		Good:    t.Overrides.Good,
		Ok:      t.Overrides.Ok,
		Meh:     t.Overrides.Meh,
	}
	counts := Counts{Miss: misses}
	var free []Judgement
	pinnedWeight := 0
	for _, j := range model.Tiers[:len(model.Tiers)-1] {
		if pins[j.Kind] == nil {
			free = append(free, j)
			continue
		}
		n := adj.clamp(j.Kind, *pins[j.Kind], 0, left, "pinned counts exceed judged notes left")
		counts[j.Kind] = n
		pinnedWeight += n * int(j.Weight)
		left -= n
	}

	if len(free) == 0 {
		if left > 0 {
			adj.record(Meh, counts[Meh], counts[Meh]+left, "pinned counts leave notes unjudged")
			counts[Meh] += left
		}
		return Result{Counts: counts, Adjustments: adj.list}
	}

	// Start from every free judgement being the lowest free tier and spend
	// the remaining weight on the highest tiers first.
	top := int(model.Top().Weight)
	base := free[len(free)-1]
	target := round(t.Accuracy * float64(total) * float64(top))
	deficit := target - pinnedWeight - left*int(base.Weight)
	for _, j := range free[:len(free)-1] {
		marginal := int(j.Weight) - int(base.Weight)
		if marginal <= 0 || deficit <= 0 || left == 0 {
			counts[j.Kind] = 0
			continue
		}
		n := min(left, deficit/marginal)
		counts[j.Kind] = n
		deficit -= n * marginal
		left -= n
	}
	counts[base.Kind] = left
	return Result{Counts: counts, Adjustments: adj.list}
}
