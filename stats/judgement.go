package stats

import (
	"fmt"
	"slices"
)

// Kind is a judgement outcome. Rulesets use a subset of the kinds.
type Kind int

const (
	Miss Kind = iota
	Meh
	Ok
	Good
	Great
	Perfect
	LargeTickHit
	LargeTickMiss
	SmallTickHit
	SmallTickMiss
	SliderTailHit
	SliderTailMiss
)

var kindNames = [...]string{
	Miss:           "miss",
	Meh:            "meh",
	Ok:             "ok",
	Good:           "good",
	Great:          "great",
	Perfect:        "perfect",
	LargeTickHit:   "large_tick_hit",
	LargeTickMiss:  "large_tick_miss",
	SmallTickHit:   "small_tick_hit",
	SmallTickMiss:  "small_tick_miss",
	SliderTailHit:  "slider_tail_hit",
	SliderTailMiss: "slider_tail_miss",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown judgement kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown judgement kind %q", text)
}

// breaksCombo reports whether the kind resets combo.
func (k Kind) breaksCombo() bool {
	return k == Miss || k == LargeTickMiss || k == SliderTailMiss
}

// Counts maps judgement kinds to how many times they occurred.
type Counts map[Kind]int

func (c Counts) Sum() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Kinds returns the kinds present in c in enum order.
func (c Counts) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c))
	for k := range c {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

func (c Counts) comboBreaks() int {
	breaks := 0
	for k, n := range c {
		if k.breaksCombo() {
			breaks += n
		}
	}
	return breaks
}

// Judgement pairs a kind with its accuracy weight.
type Judgement struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Model lists a ruleset's judgements. Tiers run from the highest weight down
// to the miss; Sub holds judgements of nested objects tracked on their own.
type Model struct {
	Tiers []Judgement `json:"tiers" yaml:"tiers"`
	Sub   []Judgement `json:"sub,omitempty" yaml:"sub,omitempty"`
}

func (m Model) Top() Judgement {
	return m.Tiers[0]
}

func (m Model) Weight(k Kind) (float64, bool) {
	for _, j := range m.Tiers {
		if j.Kind == k {
			return j.Weight, true
		}
	}
	for _, j := range m.Sub {
		if j.Kind == k {
			return j.Weight, true
		}
	}
	return 0, false
}

// Kinds returns every kind the model judges, tiers first.
func (m Model) Kinds() []Kind {
	kinds := make([]Kind, 0, len(m.Tiers)+len(m.Sub))
	for _, j := range m.Tiers {
		kinds = append(kinds, j.Kind)
	}
	for _, j := range m.Sub {
		kinds = append(kinds, j.Kind)
	}
	return kinds
}
