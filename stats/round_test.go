package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfToEven(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{3.5, 4},
		{2.4999, 2},
		{2.5001, 3},
		{-1.5, -2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, round(tt.in), "round(%v)", tt.in)
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.3))
	assert.Equal(t, 1.0, clamp01(1.7))
	assert.Equal(t, 0.42, clamp01(0.42))
	assert.Equal(t, 0.0, clamp01(math.NaN()))
}

func TestShrink(t *testing.T) {
	tests := []struct {
		name  string
		vals  []int
		limit int
		want  []int
	}{
		{"fits", []int{2, 2}, 10, []int{2, 2}},
		{"even split", []int{5, 5}, 6, []int{3, 3}},
		{"remainder to first", []int{3, 1}, 2, []int{2, 0}},
		{"no room", []int{4, 4}, 0, []int{0, 0}},
		{"negative input", []int{-3, 4}, 2, []int{0, 2}},
		{"three tiers", []int{10, 10, 10}, 10, []int{4, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shrink(tt.vals, tt.limit))
		})
	}
}
