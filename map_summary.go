package main

import (
	"errors"
	"fmt"
	"math"

	"hitstats/dotosu"
	"hitstats/stats"
)

var (
	ErrConversionUnsupported = errors.New("converted beatmaps are not supported")
	ErrUnexpectedObject      = errors.New("unexpected hit object")
)

// tiny droplets are spaced at the tick interval halved until it fits this
const maxTinyDropletInterval = 100.0

// NativeRuleset is the ruleset a beatmap was made for.
func NativeRuleset(b *dotosu.Beatmap) (stats.Ruleset, error) {
	return stats.RulesetFromID(b.General.Mode)
}

// SummarizeBeatmap counts the judged objects of b for ruleset r. Only the
// beatmap's own ruleset is supported.
func SummarizeBeatmap(b *dotosu.Beatmap, r stats.Ruleset) (stats.Summary, error) {
	native, err := NativeRuleset(b)
	if err != nil {
		return stats.Summary{}, err
	}
	if r != native {
		return stats.Summary{}, fmt.Errorf("%w: %s beatmap as %s", ErrConversionUnsupported, native, r)
	}

	var s stats.Summary
	timing := timingCursor{points: b.TimingPoints}
	for _, object := range b.HitObjects {
		timing.advance(object.StartTime())

		switch object := object.(type) {
		case dotosu.Circle:
			s.TotalBaseObjects++
		case dotosu.Slider:
			switch r {
			case stats.Taiko:
				// drum roll, not judged for accuracy
				s.Sliders++
				continue
			case stats.Mania:
				return stats.Summary{}, fmt.Errorf("%w: slider at %d in a mania beatmap", ErrUnexpectedObject, object.Time)
			}
			span, err := timing.sliderSpan(object, b.Difficulty)
			if err != nil {
				return stats.Summary{}, fmt.Errorf("beatmap %d: %w", b.Metadata.BeatmapID, err)
			}
			if r == stats.Catch {
				s.TotalBaseObjects += object.Slides + 1
				s.LargeTicks += span.ticks * object.Slides
				s.SmallTicks += span.tinyDroplets() * object.Slides
				continue
			}
			s.TotalBaseObjects++
			s.Sliders++
			s.LargeTicks += span.ticks*object.Slides + object.Slides - 1
		case dotosu.Spinner:
			// swells and banana showers are bonus in taiko and catch
			s.Spinners++
			if r == stats.Osu {
				s.TotalBaseObjects++
			}
		case dotosu.Hold:
			s.TotalBaseObjects++
			s.HoldNotes++
		default:
			return stats.Summary{}, fmt.Errorf("%w: %T at %d", ErrUnexpectedObject, object, object.StartTime())
		}
	}
	return s, nil
}

// timingCursor walks red (timing) and green (velocity) lines alongside the
// hit objects.
type timingCursor struct {
	points []dotosu.TimingPoint
	index  int

	lastRedLine   *dotosu.TimingPoint
	lastGreenLine *dotosu.TimingPoint
}

func (c *timingCursor) advance(time int) {
	for c.index < len(c.points) && (c.lastRedLine == nil || c.points[c.index].Time <= time) {
		timingPoint := c.points[c.index]
		c.index++

		if timingPoint.TimingChange {
			c.lastRedLine = &timingPoint
			c.lastGreenLine = nil
		} else {
			c.lastGreenLine = &timingPoint
		}
	}
}

type sliderSpan struct {
	timeLength float64 // one pass over the slider
	tickTime   float64
	ticks      int
}

func (c *timingCursor) sliderSpan(object dotosu.Slider, difficulty dotosu.Difficulty) (sliderSpan, error) {
	if c.lastRedLine == nil {
		return sliderSpan{}, fmt.Errorf("slider at %d has no timing point", object.Time)
	}
	beatLength := c.lastRedLine.BeatLength
	if math.IsNaN(beatLength) || beatLength <= 0 {
		return sliderSpan{}, nil
	}
	sv := 1.0
	if c.lastGreenLine != nil {
		sv = max(0.1, c.lastGreenLine.SliderVelocityMultiplier)
	}

	timeLength := object.Length / (difficulty.SliderMultiplier * 100 * sv) * beatLength
	ticks := max(0, int(math.Floor((timeLength-min(36, timeLength/2))/beatLength*difficulty.SliderTickRate)))
	return sliderSpan{
		timeLength: timeLength,
		tickTime:   beatLength / difficulty.SliderTickRate,
		ticks:      ticks,
	}, nil
}

// tinyDroplets counts the tiny droplets of one span: each gap between
// consecutive droplets (and the span ends) is filled at a fixed interval.
func (s sliderSpan) tinyDroplets() int {
	if s.tickTime <= 0 || s.timeLength <= 0 {
		return 0
	}
	interval := s.tickTime
	for interval > maxTinyDropletInterval {
		interval /= 2
	}

	gaps := make([]float64, 0, s.ticks+1)
	for i := 0; i < s.ticks; i++ {
		gaps = append(gaps, s.tickTime)
	}
	gaps = append(gaps, s.timeLength-float64(s.ticks)*s.tickTime)

	n := 0
	for _, gap := range gaps {
		n += max(0, int(math.Ceil(gap/interval))-1)
	}
	return n
}
