package sampling

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

// DefaultAnomalyThreshold is the standard deviation multiplier used when
// none is given.
const DefaultAnomalyThreshold = 2.0

// AnomalyOptions selects the column and sensitivity for anomaly detection.
type AnomalyOptions struct {
	// Field is the numeric column to inspect.
	Field string
	// Threshold is the standard deviation multiplier. Zero or negative
	// means DefaultAnomalyThreshold.
	Threshold float64
}

// DetectAnomalies returns, in ascending order, the indices of rows whose
// field value is more than threshold population standard deviations away
// from the mean. Rows whose value does not coerce to a number take no part
// in the statistics and are never reported.
func DetectAnomalies(data []models.DataPoint, field string, threshold float64) []int {
	if threshold <= 0 {
		threshold = DefaultAnomalyThreshold
	}

	indices := make([]int, 0, len(data))
	values := make([]float64, 0, len(data))
	for i, row := range data {
		v, ok := ToNumber(row[field])
		if !ok {
			continue
		}
		indices = append(indices, i)
		values = append(values, v)
	}

	result := []int{}
	if len(values) == 0 {
		return result
	}

	mean, stdDev := populationStats(values)
	limit := threshold * stdDev
	for j, v := range values {
		if math.Abs(v-mean) > limit {
			result = append(result, indices[j])
		}
	}
	return result
}

// populationStats returns the mean and population standard deviation of xs.
func populationStats(xs []float64) (mean, stdDev float64) {
	n := float64(len(xs))
	mean = stats.Mean(xs)
	if len(xs) < 2 {
		return mean, 0
	}
	// stats.Variance is the sample variance; rescale to divide by N.
	variance := stats.Variance(xs) * (n - 1) / n
	return mean, math.Sqrt(variance)
}
