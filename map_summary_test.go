package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hitstats/dotosu"
	"hitstats/stats"
)

// streamMap has one tick on its first slider, two repeats on the second and
// doubled slider velocity on the third.
func streamMap(mode int) *dotosu.Beatmap {
	at := func(t int) dotosu.BaseHO { return dotosu.BaseHO{Time: t} }
	return &dotosu.Beatmap{
		General:    dotosu.General{Mode: mode},
		Difficulty: dotosu.Difficulty{SliderMultiplier: 1, SliderTickRate: 1},
		TimingPoints: []dotosu.TimingPoint{
			{Time: 0, BeatLength: 500, TimingChange: true, SliderVelocityMultiplier: 1},
			{Time: 2000, BeatLength: -50, SliderVelocityMultiplier: 2},
		},
		HitObjects: []dotosu.HitObject{
			dotosu.Circle{BaseHO: at(0)},
			dotosu.Slider{BaseHO: at(100), Slides: 1, Length: 200},
			dotosu.Slider{BaseHO: at(1500), Slides: 3, Length: 100},
			dotosu.Slider{BaseHO: at(2500), Slides: 1, Length: 200},
			dotosu.Spinner{BaseHO: at(4000), EndTime: 5000},
		},
	}
}

func TestSummarizeOsu(t *testing.T) {
	s, err := SummarizeBeatmap(streamMap(0), stats.Osu)
	require.NoError(t, err)
	assert.Equal(t, stats.Summary{TotalBaseObjects: 5, Sliders: 3, Spinners: 1, LargeTicks: 3}, s)
}

func TestSummarizeCatch(t *testing.T) {
	s, err := SummarizeBeatmap(streamMap(2), stats.Catch)
	require.NoError(t, err)
	assert.Equal(t, stats.Summary{TotalBaseObjects: 9, Spinners: 1, LargeTicks: 1, SmallTicks: 42}, s)
}

func TestSummarizeTaiko(t *testing.T) {
	s, err := SummarizeBeatmap(streamMap(1), stats.Taiko)
	require.NoError(t, err)
	assert.Equal(t, stats.Summary{TotalBaseObjects: 1, Sliders: 3, Spinners: 1}, s)
}

func TestSummarizeMania(t *testing.T) {
	b := &dotosu.Beatmap{
		General: dotosu.General{Mode: 3},
		HitObjects: []dotosu.HitObject{
			dotosu.Circle{BaseHO: dotosu.BaseHO{Time: 0}},
			dotosu.Hold{BaseHO: dotosu.BaseHO{Time: 100}, EndTime: 400},
			dotosu.Circle{BaseHO: dotosu.BaseHO{Time: 200}},
		},
	}
	s, err := SummarizeBeatmap(b, stats.Mania)
	require.NoError(t, err)
	assert.Equal(t, stats.Summary{TotalBaseObjects: 3, HoldNotes: 1}, s)
}

func TestSummarizeRejectsConversion(t *testing.T) {
	_, err := SummarizeBeatmap(streamMap(0), stats.Taiko)
	require.ErrorIs(t, err, ErrConversionUnsupported)

	_, err = SummarizeBeatmap(streamMap(9), stats.Osu)
	require.ErrorIs(t, err, stats.ErrInvalidRuleset)
}

func TestSummarizeSliderWithoutTiming(t *testing.T) {
	b := streamMap(0)
	b.TimingPoints = nil
	_, err := SummarizeBeatmap(b, stats.Osu)
	require.ErrorContains(t, err, "no timing point")
}

func TestSummarizeManiaSlider(t *testing.T) {
	_, err := SummarizeBeatmap(streamMap(3), stats.Mania)
	require.ErrorIs(t, err, ErrUnexpectedObject)
	assert.ErrorContains(t, err, "slider at 100 in a mania beatmap")
}

func TestGuardRecoversPanic(t *testing.T) {
	err := Guard(func() error {
		var counts map[string]int
		counts["circle"]++
		return nil
	})
	require.ErrorContains(t, err, "panic: assignment to entry in nil map")
	assert.Contains(t, err.Error(), "goroutine")

	require.NoError(t, Guard(func() error { return nil }))
}

func TestTinyDroplets(t *testing.T) {
	tests := []struct {
		name string
		span sliderSpan
		want int
	}{
		{"no ticks", sliderSpan{timeLength: 500, tickTime: 500}, 7},
		{"one tick", sliderSpan{timeLength: 1000, tickTime: 500, ticks: 1}, 14},
		{"short interval kept", sliderSpan{timeLength: 250, tickTime: 80}, 3},
		{"empty", sliderSpan{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.span.tinyDroplets())
		})
	}
}
