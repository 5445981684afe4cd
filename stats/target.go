package stats

import "fmt"

// Overrides pins individual judgement counts. A nil field is free for the
// synthesizer to estimate; a set field always wins over the estimate.
//
// Rulesets read the fields they have: osu uses Good and Meh (100s and 50s),
// taiko uses Good, catch uses Good for droplets and Meh for tiny droplets,
// mania uses Perfect, Great, Good, Ok and Meh. LargeTickMisses and
// SliderTailMisses only apply to osu in standard scoring.
type Overrides struct {
	Perfect          *int `json:"perfect,omitempty" yaml:"perfect,omitempty"`
	Great            *int `json:"great,omitempty" yaml:"great,omitempty"`
	Good             *int `json:"good,omitempty" yaml:"good,omitempty"`
	Ok               *int `json:"ok,omitempty" yaml:"ok,omitempty"`
	Meh              *int `json:"meh,omitempty" yaml:"meh,omitempty"`
	LargeTickMisses  *int `json:"large_tick_misses,omitempty" yaml:"large_tick_misses,omitempty"`
	SliderTailMisses *int `json:"slider_tail_misses,omitempty" yaml:"slider_tail_misses,omitempty"`
}

// Int returns a pointer to v for filling Overrides.
func Int(v int) *int {
	return &v
}

func (o Overrides) normalized() Overrides {
	nonNegative := func(p *int) *int {
		if p == nil {
			return nil
		}
		return Int(max(0, *p))
	}
	return Overrides{
		Perfect:          nonNegative(o.Perfect),
		Great:            nonNegative(o.Great),
		Good:             nonNegative(o.Good),
		Ok:               nonNegative(o.Ok),
		Meh:              nonNegative(o.Meh),
		LargeTickMisses:  nonNegative(o.LargeTickMisses),
		SliderTailMisses: nonNegative(o.SliderTailMisses),
	}
}

func valueOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// Target is what a synthesizer solves for. Accuracy is a fraction.
type Target struct {
	Accuracy  float64
	Misses    int
	Overrides Overrides
}

// Result is a synthesized distribution plus every correction made to the
// caller's input to keep it feasible.
type Result struct {
	Counts      Counts
	Adjustments []Adjustment
}

// Adjustment records a requested count that did not fit the beatmap. Field
// is a judgement kind name or "combo".
type Adjustment struct {
	Field     string `json:"field" yaml:"field"`
	Requested int    `json:"requested" yaml:"requested"`
	Applied   int    `json:"applied" yaml:"applied"`
	Reason    string `json:"reason" yaml:"reason"`
}

type field string

func (f field) String() string { return string(f) }

const comboField field = "combo"

type adjuster struct {
	list []Adjustment
}

// clamp bounds v to [lo, hi] and records the change when there is one.
func (a *adjuster) clamp(k fmt.Stringer, v, lo, hi int, reason string) int {
	c := clampInt(v, lo, hi)
	a.record(k, v, c, reason)
	return c
}

func (a *adjuster) record(k fmt.Stringer, requested, applied int, reason string) {
	if requested == applied {
		return
	}
	a.list = append(a.list, Adjustment{Field: k.String(), Requested: requested, Applied: applied, Reason: reason})
}
