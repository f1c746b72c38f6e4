// Package stats holds the statistical primitives the aggregation core is built
// on. Every function is total over any finite input: empty sequences resolve
// to 0, never NaN, so callers can fold straight into summary structs without
// branching. Inputs are never mutated; sorting happens on a copy.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of xs, or 0 for empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Median returns the middle element of xs sorted ascending; for even length
// the average of the two middle elements. 0 for empty input.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := sortedCopy(xs)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Percentile returns the p-th percentile of xs using linear interpolation
// between closest ranks: idx = (p/100)*(n-1), interpolated between the floor
// and ceil elements by the fractional weight. 0 for empty input.
//
// Percentile(xs, 0) == min(xs) and Percentile(xs, 100) == max(xs) for any
// non-empty xs. Note this is the interpolated method, not nearest-rank.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := sortedCopy(xs)
	idx := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(sorted) {
		hi = len(sorted) - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	weight := idx - float64(lo)
	return sorted[lo]*(1-weight) + sorted[hi]*weight
}

// StdDev returns the population standard deviation of xs (divide by n, not
// n-1). 0 for fewer than 2 samples.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// Min returns the smallest element of xs, or 0 for empty input.
func Min(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// Max returns the largest element of xs, or 0 for empty input.
func Max(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func sortedCopy(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return sorted
}
