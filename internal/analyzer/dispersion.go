package analyzer

import (
	"math"
	"sort"
)

// StatKind selects the dispersion statistic to compute.
type StatKind int

const (
	// StdDev is the unbiased (n-1 denominator) sample standard deviation.
	StdDev StatKind = iota
	// IQR is the 75th minus the 25th percentile, with linear-interpolation
	// quantile estimation.
	IQR
)

// Subset selects which returns enter the statistic.
type Subset int

const (
	All Subset = iota
	Positive
	Negative
)

func (s Subset) keep(v float64) bool {
	switch s {
	case Positive:
		return v > 0
	case Negative:
		return v < 0
	default:
		return true
	}
}

// Dispersion computes the requested statistic over values. Fewer than 2
// observations yield NaN rather than an error.
func Dispersion(values []float64, kind StatKind) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	if kind == IQR {
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		return quantile(sorted, 0.75) - quantile(sorted, 0.25)
	}
	return sampleStdDev(values)
}

func sampleStdDev(values []float64) float64 {
	n := float64(len(values))
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= n
	var sumsq float64
	for _, v := range values {
		d := v - mean
		sumsq += d * d
	}
	return math.Sqrt(sumsq / (n - 1))
}

// quantile interpolates linearly between order statistics. The input must be
// sorted ascending and non-empty.
func quantile(sorted []float64, q float64) float64 {
	h := q * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func filterSubset(values []float64, subset Subset) []float64 {
	if subset == All {
		return values
	}
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if subset.keep(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// Rolling computes the statistic over a trailing window for each position.
// Positions before the window fills are NaN.
func Rolling(rets []float64, window int, subset Subset, kind StatKind) []float64 {
	out := make([]float64, len(rets))
	for i := range rets {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = Dispersion(filterSubset(rets[i-window+1:i+1], subset), kind)
	}
	return out
}

// Expanding computes the statistic over all observations from the start of
// the series up to and including each position.
func Expanding(rets []float64, subset Subset, kind StatKind) []float64 {
	out := make([]float64, len(rets))
	for i := range rets {
		out[i] = Dispersion(filterSubset(rets[:i+1], subset), kind)
	}
	return out
}

// Global computes the statistic once over the whole series and broadcasts it
// as a constant series aligned to the return index.
func Global(rets []float64, subset Subset, kind StatKind) []float64 {
	v := Dispersion(filterSubset(rets, subset), kind)
	out := make([]float64, len(rets))
	for i := range out {
		out[i] = v
	}
	return out
}
