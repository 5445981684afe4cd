package stats

// Every caught object counts the same towards accuracy in catch, tiny
// droplets included.
var catchTiers = []Judgement{
	{Great, 1},
	{LargeTickHit, 1},
	{SmallTickHit, 1},
	{LargeTickMiss, 0},
	{SmallTickMiss, 0},
	{Miss, 0},
}

type catchStrategy struct{}

func (catchStrategy) Ruleset() Ruleset { return Catch }

func (catchStrategy) Judgements(ScoringMode) Model {
	return Model{Tiers: catchTiers}
}

func (catchStrategy) TotalJudgements(s Summary, _ ScoringMode) int {
	return s.TotalBaseObjects + s.LargeTicks + s.SmallTicks
}

// MaxCombo counts fruits and droplets; tiny droplets do not give combo.
func (catchStrategy) MaxCombo(s Summary, _ ScoringMode) int {
	return s.TotalBaseObjects + s.LargeTicks
}

func (catchStrategy) Evaluate(_ Summary, c Counts, _ ScoringMode) float64 {
	return ratio(weighted(catchTiers, 1, c))
}

func (cs catchStrategy) Synthesize(s Summary, t Target, mode ScoringMode) Result {
	var adj adjuster
	maxFruits := s.TotalBaseObjects
	maxDroplets := s.LargeTicks
	maxTiny := s.SmallTicks

	misses := adj.clamp(Miss, t.Misses, 0, maxFruits+maxDroplets, "more misses than fruits and droplets")

	var droplets int
	if t.Overrides.Good != nil {
		droplets = adj.clamp(LargeTickHit, *t.Overrides.Good, 0, maxDroplets, "more droplets than the beatmap has")
	} else {
		// droplets soak up misses first
		droplets = max(0, maxDroplets-misses)
	}
	dropletMisses := maxDroplets - droplets
	fruitMisses := misses - dropletMisses
	if fruitMisses < 0 {
		adj.record(Miss, misses, dropletMisses, "every droplet not caught is a miss")
		misses, fruitMisses = dropletMisses, 0
	}
	if fruitMisses > maxFruits {
		adj.record(Miss, misses, dropletMisses+maxFruits, "more misses than fruits and droplets")
		misses, fruitMisses = dropletMisses+maxFruits, maxFruits
	}
	fruits := maxFruits - fruitMisses

	var tiny int
	if t.Overrides.Meh != nil {
		tiny = adj.clamp(SmallTickHit, *t.Overrides.Meh, 0, maxTiny, "more tiny droplets than the beatmap has")
	} else {
		needed := round(t.Accuracy*float64(cs.MaxCombo(s, mode)+maxTiny)) - fruits - droplets
		tiny = adj.clamp(SmallTickHit, needed, 0, maxTiny, "accuracy out of reach with these fruits and droplets")
	}

	return Result{
		Counts: Counts{
			Great:         fruits,
			LargeTickHit:  droplets,
			SmallTickHit:  tiny,
			SmallTickMiss: maxTiny - tiny,
			Miss:          misses,
		},
		Adjustments: adj.list,
	}
}
