package model

import "math"

// EdgeStats summarises every observed duration for one ordered airport pair.
//
// The average and population standard deviation are derived from the
// observations when the value is constructed and there is no way to change one
// without the other.
type EdgeStats struct {
	observations []float64
	average      float64
	stdDev       float64
	min, max     float64
}

// NewEdgeStats builds the statistics for obs. The slice is copied.
func NewEdgeStats(obs ...float64) EdgeStats {
	s := EdgeStats{observations: append([]float64(nil), obs...)}
	s.average, s.stdDev = MeanStdDev(s.observations)
	if len(obs) > 0 {
		s.min, s.max = obs[0], obs[0]
		for _, v := range obs[1:] {
			s.min = math.Min(s.min, v)
			s.max = math.Max(s.max, v)
		}
	}
	return s
}

// Observations returns a copy of the durations in input order.
func (s EdgeStats) Observations() []float64 {
	return append([]float64(nil), s.observations...)
}

func (s EdgeStats) Count() int       { return len(s.observations) }
func (s EdgeStats) Average() float64 { return s.average }
func (s EdgeStats) StdDev() float64  { return s.stdDev }
func (s EdgeStats) Min() float64     { return s.min }
func (s EdgeStats) Max() float64     { return s.max }

// MeanStdDev returns the arithmetic mean and population standard deviation of xs
// (squared deviations divided by len(xs), not len(xs)-1). Both are zero for an
// empty slice.
func MeanStdDev(xs []float64) (mean, stdDev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	n := float64(len(xs))

	constant := true
	var sum float64
	for _, x := range xs {
		sum += x
		constant = constant && x == xs[0]
	}
	// sum/n can drift by an ulp for repeated values.
	if constant {
		return xs[0], 0
	}
	mean = sum / n

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / n)
}
