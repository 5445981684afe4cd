package stats

import (
	"fmt"
	"log/slog"
	"math"
)

// Request describes a played score the way a user would: an accuracy
// percentage, a miss count and whichever counts they know.
type Request struct {
	Ruleset   Ruleset
	Mode      ScoringMode
	Accuracy  float64 // percent, 0-100
	Misses    int
	Combo     *int
	Overrides Overrides
}

// Outcome is a complete, consistent set of statistics for a Request.
type Outcome struct {
	Ruleset     Ruleset      `json:"ruleset" yaml:"ruleset"`
	Mode        ScoringMode  `json:"mode" yaml:"mode"`
	Counts      Counts       `json:"statistics" yaml:"statistics"`
	Accuracy    float64      `json:"accuracy" yaml:"accuracy"`
	Combo       int          `json:"combo" yaml:"combo"`
	MaxCombo    int          `json:"max_combo" yaml:"max_combo"`
	Adjustments []Adjustment `json:"adjustments,omitempty" yaml:"adjustments,omitempty"`
}

// Engine picks the ruleset strategy, normalizes input and reports every
// correction it had to make.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

func (e *Engine) Synthesize(s Summary, req Request) (Outcome, error) {
	strategy, err := strategyFor(req.Ruleset, req.Mode)
	if err != nil {
		return Outcome{}, err
	}
	s = s.normalized()

	accuracy := req.Accuracy / 100
	if math.IsNaN(accuracy) {
		accuracy = 0
	}
	res := strategy.Synthesize(s, Target{
		Accuracy:  clamp01(accuracy),
		Misses:    max(0, req.Misses),
		Overrides: req.Overrides.normalized(),
	}, req.Mode)

	if sum, want := res.Counts.Sum(), strategy.TotalJudgements(s, req.Mode); sum != want {
		e.logger.Error("synthesized statistics do not cover the beatmap",
			"ruleset", req.Ruleset, "mode", req.Mode, "sum", sum, "want", want)
	}

	var adj adjuster
	adj.list = res.Adjustments
	maxCombo := strategy.MaxCombo(s, req.Mode)
	bound := max(0, maxCombo-res.Counts.comboBreaks())
	combo := bound
	switch {
	case req.Combo == nil:
	case maxCombo == 0:
		// no combo cap in this ruleset
		combo = max(0, *req.Combo)
	default:
		combo = adj.clamp(comboField, max(0, *req.Combo), 0, bound, "combo longer than the beatmap allows with these misses")
	}

	out := Outcome{
		Ruleset:     req.Ruleset,
		Mode:        req.Mode,
		Counts:      res.Counts,
		Accuracy:    strategy.Evaluate(s, res.Counts, req.Mode),
		Combo:       combo,
		MaxCombo:    maxCombo,
		Adjustments: adj.list,
	}
	for _, a := range out.Adjustments {
		e.logger.Warn("adjusted input",
			"ruleset", req.Ruleset, "field", a.Field, "requested", a.Requested, "applied", a.Applied, "reason", a.Reason)
	}
	return out, nil
}

// Evaluate returns the accuracy of c as a fraction.
func (e *Engine) Evaluate(r Ruleset, s Summary, c Counts, mode ScoringMode) (float64, error) {
	strategy, err := strategyFor(r, mode)
	if err != nil {
		return 0, err
	}
	clean := make(Counts, len(c))
	for k, n := range c {
		clean[k] = max(0, n)
	}
	return strategy.Evaluate(s.normalized(), clean, mode), nil
}

func (e *Engine) MaxCombo(r Ruleset, s Summary, mode ScoringMode) (int, error) {
	strategy, err := strategyFor(r, mode)
	if err != nil {
		return 0, err
	}
	return strategy.MaxCombo(s.normalized(), mode), nil
}

// Judgements describes the judgement kinds and weights of r.
func (e *Engine) Judgements(r Ruleset, mode ScoringMode) (Model, error) {
	strategy, err := strategyFor(r, mode)
	if err != nil {
		return Model{}, fmt.Errorf("judgements: %w", err)
	}
	return strategy.Judgements(mode), nil
}

func strategyFor(r Ruleset, mode ScoringMode) (Strategy, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	return For(r)
}
