package stats

import "math"

const (
	osuTailWeight = 3.0
	osuTickWeight = 0.6
)

var (
	osuTiers = []Judgement{
		{Great, 6},
		{Good, 2},
		{Meh, 1},
		{Miss, 0},
	}
	osuSub = []Judgement{
		{SliderTailHit, osuTailWeight},
		{SliderTailMiss, 0},
		{LargeTickHit, osuTickWeight},
		{LargeTickMiss, 0},
	}
)

type osuStrategy struct{}

func (osuStrategy) Ruleset() Ruleset { return Osu }

func (osuStrategy) Judgements(mode ScoringMode) Model {
	if mode == Classic {
		return Model{Tiers: osuTiers}
	}
	return Model{Tiers: osuTiers, Sub: osuSub}
}

func (osuStrategy) TotalJudgements(s Summary, mode ScoringMode) int {
	if mode == Classic {
		return s.TotalBaseObjects
	}
	return s.TotalBaseObjects + s.LargeTicks + s.Sliders
}

func (osuStrategy) MaxCombo(s Summary, _ ScoringMode) int {
	return s.TotalBaseObjects + s.LargeTicks + s.Sliders
}

func (osuStrategy) Evaluate(s Summary, c Counts, mode ScoringMode) float64 {
	hit, max := weighted(osuTiers, 6, c)
	if mode == Standard {
		if n, ok := c[SliderTailHit]; ok {
			hit += osuTailWeight * float64(n)
			max += osuTailWeight * float64(s.Sliders)
		}
		if n, ok := c[LargeTickHit]; ok {
			hit += osuTickWeight * float64(n)
			max += osuTickWeight * float64(s.LargeTicks)
		}
	}
	return ratio(hit, max)
}

// osuCurveInput is everything the accuracy curve needs once misses and
// nested-object misses are fixed.
type osuCurveInput struct {
	summary    Summary
	mode       ScoringMode
	accuracy   float64
	misses     int
	tickMisses int
	tailMisses int
}

// osuCurve estimates 100s and 50s from accuracy. It may raise the miss count;
// see fitOsuCurve.
var osuCurve = fitOsuCurve

func (osuStrategy) Synthesize(s Summary, t Target, mode ScoringMode) Result {
	var adj adjuster
	total := s.TotalBaseObjects
	misses := adj.clamp(Miss, t.Misses, 0, total, "more misses than objects")

	var tickMisses, tailMisses int
	if mode == Standard {
		tickMisses = adj.clamp(LargeTickMiss, valueOr(t.Overrides.LargeTickMisses, 0), 0, s.LargeTicks,
			"more tick misses than slider ticks and repeats")
		tailMisses = adj.clamp(SliderTailMiss, valueOr(t.Overrides.SliderTailMisses, 0), 0, s.Sliders,
			"more slider end misses than sliders")
	}

	var good, meh int
	if t.Overrides.Good != nil || t.Overrides.Meh != nil {
		good = valueOr(t.Overrides.Good, 0)
		meh = valueOr(t.Overrides.Meh, 0)
	} else {
		var raised int
		good, meh, raised = osuCurve(osuCurveInput{
			summary:    s,
			mode:       mode,
			accuracy:   t.Accuracy,
			misses:     misses,
			tickMisses: tickMisses,
			tailMisses: tailMisses,
		})
		adj.record(Miss, misses, raised, "accuracy below what 50s alone can reach, filled with misses")
		misses = raised
	}

	fitted := shrink([]int{good, meh}, total-misses)
	adj.record(Good, good, fitted[0], "100s and 50s exceed the objects left after misses")
	adj.record(Meh, meh, fitted[1], "100s and 50s exceed the objects left after misses")
	good, meh = fitted[0], fitted[1]

	counts := Counts{
		Great: total - good - meh - misses,
		Good:  good,
		Meh:   meh,
		Miss:  misses,
	}
	if mode == Standard {
		counts[SliderTailHit] = s.Sliders - tailMisses
		counts[SliderTailMiss] = tailMisses
		counts[LargeTickHit] = s.LargeTicks - tickMisses
		counts[LargeTickMiss] = tickMisses
	}
	return Result{Counts: counts, Adjustments: adj.list}
}

// fitOsuCurve returns 100s, 50s and the miss count. Misses are treated as
// fixed and accuracy is re-expressed over the remaining hits, then split
// along a curve: no 50s at 100%, one 50 per nine 100s at 75% and four per
// nine at 50%. Below 25% there are no 300s, and below 1/6 there are only
// 50s, in which case the miss count is raised to fill the rest.
func fitOsuCurve(in osuCurveInput) (good, meh, misses int) {
	s := in.summary
	total := s.TotalBaseObjects
	misses = in.misses
	hits := total - misses
	if hits <= 0 {
		return 0, 0, misses
	}

	var relevant float64
	if in.mode == Standard {
		max := 6*float64(total) + osuTailWeight*float64(s.Sliders) + osuTickWeight*float64(s.LargeTicks)
		nested := osuTailWeight*float64(s.Sliders-in.tailMisses) + osuTickWeight*float64(s.LargeTicks-in.tickMisses)
		relevant = (in.accuracy*max - nested) / (6 * float64(hits))
	} else {
		relevant = in.accuracy * float64(total) / float64(hits)
	}
	relevant = clamp01(relevant)
	h := float64(hits)

	switch {
	case relevant >= 0.25:
		r := math.Pow(1-(relevant-0.25)/0.75, 2)
		// 6*great + 2*good + meh = 6*hits*relevant with meh = good*r
		goodEstimate := 6 * h * (1 - relevant) / (5*r + 4)
		mehEstimate := goodEstimate * r
		good = round(goodEstimate)
		meh = round(goodEstimate+mehEstimate) - good
	case relevant >= 1.0/6:
		goodEstimate := 6*h*relevant - h
		mehEstimate := h - goodEstimate
		good = round(goodEstimate)
		meh = round(goodEstimate+mehEstimate) - good
	default:
		meh = round(6 * h * relevant)
		// TODO: decide whether this should reject the input instead of
		// overriding the caller's miss count.
		misses = total - meh
	}
	return max(0, good), max(0, meh), misses
}
