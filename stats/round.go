package stats

import "math"

// round is the single rounding rule of the package: half to even, so 2.5
// rounds to 2 and 3.5 to 4.
func round(x float64) int {
	return int(math.RoundToEven(x))
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return min(max(x, 0), 1)
}

// shrink scales vals down proportionally until they sum to at most limit.
// Leftover units from flooring go to the earliest entries, so callers pass
// higher tiers first.
func shrink(vals []int, limit int) []int {
	out := make([]int, len(vals))
	sum := 0
	for i, v := range vals {
		out[i] = max(0, v)
		sum += out[i]
	}
	if sum <= limit {
		return out
	}
	if limit <= 0 {
		clear(out)
		return out
	}
	used := 0
	for i, v := range out {
		out[i] = v * limit / sum
		used += out[i]
	}
	for i := 0; used < limit; i = (i + 1) % len(out) {
		if out[i] < vals[i] {
			out[i]++
			used++
		}
	}
	return out
}
