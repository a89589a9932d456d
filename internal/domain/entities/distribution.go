package entities

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Moments is the population mean and standard deviation of one feature.
type Moments struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdev"`
}

// ReferenceDistribution maps a feature name to its moments over the
// provisional population.
type ReferenceDistribution map[string]Moments

// EstimateReferenceDistribution computes per-feature moments over the given
// vectors. Callers must pass only candidates that survived the per-candidate
// stages; the slice is read, never retained.
//
// Values are gathered in slice order, so the same population always yields
// bit-identical moments.
func EstimateReferenceDistribution(vectors []FeatureVector) ReferenceDistribution {
	dist := make(ReferenceDistribution)
	if len(vectors) == 0 {
		return dist
	}

	keys := make(map[string]struct{})
	for _, vector := range vectors {
		for key := range vector {
			keys[key] = struct{}{}
		}
	}

	for key := range keys {
		values := make([]float64, 0, len(vectors))
		for _, vector := range vectors {
			if value, ok := vector[key]; ok {
				values = append(values, value)
			}
		}
		mean, variance := stat.PopMeanVariance(values, nil)
		stdDev := 0.0
		if len(values) > 1 && !constant(values) {
			stdDev = math.Sqrt(variance)
		}
		dist[key] = Moments{Mean: mean, StdDev: stdDev}
	}
	return dist
}

// Score is the mean absolute z-score over the features present in both the
// vector and the distribution. A feature with zero spread contributes zero but
// still counts toward the mean. Keys are visited in lexical order so the sum is
// independent of map iteration order.
func (d ReferenceDistribution) Score(vector FeatureVector) float64 {
	if len(d) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for _, key := range vector.Keys() {
		moments, ok := d[key]
		if !ok {
			continue
		}
		if moments.StdDev != 0 {
			sum += math.Abs((vector[key] - moments.Mean) / moments.StdDev)
		}
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// constant reports whether every value is identical; rounding in the variance
// must not turn a flat feature into a tiny non-zero spread.
func constant(values []float64) bool {
	for _, value := range values[1:] {
		if value != values[0] {
			return false
		}
	}
	return true
}
