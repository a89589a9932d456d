//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

func TestEstimateReferenceDistribution(t *testing.T) {
	t.Parallel()

	t.Run("should compute population moments per feature", func(t *testing.T) {
		t.Parallel()

		// given
		vectors := []entities.FeatureVector{
			{"num_resources": 5},
			{"num_resources": 5},
			{"num_resources": 40},
		}

		// when
		dist := entities.EstimateReferenceDistribution(vectors)

		// then
		require.Contains(t, dist, "num_resources")
		assert.InDelta(t, 16.6667, dist["num_resources"].Mean, 1e-3)
		assert.InDelta(t, 16.4992, dist["num_resources"].StdDev, 1e-3)
	})

	t.Run("should report zero spread for identical values", func(t *testing.T) {
		t.Parallel()

		// given
		vectors := []entities.FeatureVector{
			{"num_files": 0.1},
			{"num_files": 0.1},
			{"num_files": 0.1},
		}

		// when
		dist := entities.EstimateReferenceDistribution(vectors)

		// then
		assert.Zero(t, dist["num_files"].StdDev)
	})

	t.Run("should be empty for no vectors", func(t *testing.T) {
		t.Parallel()

		// given / when
		dist := entities.EstimateReferenceDistribution(nil)

		// then
		assert.Empty(t, dist)
	})

	t.Run("should yield identical moments for the same population", func(t *testing.T) {
		t.Parallel()

		// given
		vectors := []entities.FeatureVector{
			{"a": 1.5, "b": 7, "c": 0.25},
			{"a": 2.5, "b": 3, "c": 9.75},
			{"a": 11, "b": 1, "c": 4},
		}

		// when
		first := entities.EstimateReferenceDistribution(vectors)
		second := entities.EstimateReferenceDistribution(vectors)

		// then
		assert.Equal(t, first, second)
	})
}

func TestReferenceDistributionScore(t *testing.T) {
	t.Parallel()

	t.Run("should single out the outlier of a small population", func(t *testing.T) {
		t.Parallel()

		// given
		vectors := []entities.FeatureVector{
			{"num_resources": 5},
			{"num_resources": 5},
			{"num_resources": 40},
		}
		dist := entities.EstimateReferenceDistribution(vectors)

		// when
		scores := make([]float64, 0, len(vectors))
		for _, vector := range vectors {
			scores = append(scores, dist.Score(vector))
		}

		// then
		assert.InDelta(t, 0.7071, scores[0], 1e-3)
		assert.InDelta(t, 0.7071, scores[1], 1e-3)
		assert.InDelta(t, 1.4142, scores[2], 1e-3)
	})

	t.Run("should count zero-spread features toward the mean", func(t *testing.T) {
		t.Parallel()

		// given
		dist := entities.ReferenceDistribution{
			"flat":   {Mean: 3, StdDev: 0},
			"spread": {Mean: 10, StdDev: 2},
		}

		// when
		score := dist.Score(entities.FeatureVector{"flat": 3, "spread": 14})

		// then
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("should ignore keys missing from the distribution", func(t *testing.T) {
		t.Parallel()

		// given
		dist := entities.ReferenceDistribution{"spread": {Mean: 10, StdDev: 2}}

		// when
		score := dist.Score(entities.FeatureVector{"spread": 12, "unknown": 1000})

		// then
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("should score zero against an empty distribution", func(t *testing.T) {
		t.Parallel()

		// given
		dist := entities.ReferenceDistribution{}

		// when
		score := dist.Score(entities.FeatureVector{"num_files": 12})

		// then
		assert.Zero(t, score)
	})

	t.Run("should not depend on the order vectors were built in", func(t *testing.T) {
		t.Parallel()

		// given
		dist := entities.ReferenceDistribution{
			"a": {Mean: 1, StdDev: 3},
			"b": {Mean: 2, StdDev: 7},
			"c": {Mean: 5, StdDev: 11},
		}
		forward := entities.FeatureVector{}
		forward["a"] = 0.1
		forward["b"] = 0.2
		forward["c"] = 0.3
		backward := entities.FeatureVector{}
		backward["c"] = 0.3
		backward["b"] = 0.2
		backward["a"] = 0.1

		// when
		first := dist.Score(forward)
		second := dist.Score(backward)

		// then
		assert.Equal(t, first, second) //nolint:testifylint // bit-identical, not approximately equal
	})
}
