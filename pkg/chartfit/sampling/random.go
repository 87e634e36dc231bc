package sampling

import (
	"math/rand/v2"
	"sort"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

// RandomOptions configures RandomSampling.
type RandomOptions struct {
	// PreserveEnds reserves the first and last rows.
	PreserveEnds bool
	// Anomaly, when set, reserves slots for anomalous rows of a column.
	Anomaly *AnomalyOptions
	// Rand is the randomness source. Nil uses the global source.
	Rand *rand.Rand
}

// DefaultRandomOptions returns options that preserve the series ends and
// skip anomaly detection.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{PreserveEnds: true}
}

// RandomSampling reduces data to targetPoints rows. Slots are reserved, in
// order, for the ends (when PreserveEnds is set), then for anomalous rows,
// and the remaining budget is filled with rows drawn uniformly at random.
// The output is in source row order.
func RandomSampling(data []models.DataPoint, targetPoints int, opts RandomOptions) []models.DataPoint {
	if data == nil {
		return []models.DataPoint{}
	}
	n := len(data)
	if n <= targetPoints {
		return data
	}
	if targetPoints <= 0 {
		return []models.DataPoint{}
	}
	if opts.PreserveEnds && targetPoints < 2 {
		return []models.DataPoint{data[0]}
	}

	chosen := make([]bool, n)
	picked := make([]int, 0, targetPoints)
	take := func(i int) {
		chosen[i] = true
		picked = append(picked, i)
	}

	if opts.PreserveEnds {
		take(0)
		take(n - 1)
	}

	if opts.Anomaly != nil && opts.Anomaly.Field != "" {
		for _, idx := range DetectAnomalies(data, opts.Anomaly.Field, opts.Anomaly.Threshold) {
			if len(picked) >= targetPoints {
				break
			}
			if chosen[idx] {
				continue
			}
			take(idx)
		}
	}

	candidates := make([]int, 0, n-len(picked))
	for i := range data {
		if !chosen[i] {
			candidates = append(candidates, i)
		}
	}
	for len(picked) < targetPoints && len(candidates) > 0 {
		j := opts.intN(len(candidates))
		take(candidates[j])
		last := len(candidates) - 1
		candidates[j] = candidates[last]
		candidates = candidates[:last]
	}

	// Sorting the captured indices keeps duplicate rows in their own places.
	sort.Ints(picked)
	result := make([]models.DataPoint, len(picked))
	for i, idx := range picked {
		result[i] = data[idx]
	}
	return result
}

func (o RandomOptions) intN(n int) int {
	if o.Rand != nil {
		return o.Rand.IntN(n)
	}
	return rand.IntN(n)
}
