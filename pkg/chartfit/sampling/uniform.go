package sampling

import (
	"math"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

// UniformSampling reduces data to targetPoints rows picked at a fixed
// fractional step. The first and last rows are always kept and the output
// keeps source order. Interior rows are floor(1 + i*step) for i from 0, so
// the first interior pick is always row 1 and the last interior pick never
// reaches the final row. The gap before the last row is therefore wider
// than the others: 13 rows at target 5 keep rows 0, 1, 4, 8 and 12.
// Interior indices are not deduplicated, so very small inputs relative to
// the target may repeat a row.
func UniformSampling(data []models.DataPoint, targetPoints int) []models.DataPoint {
	if data == nil {
		return []models.DataPoint{}
	}
	n := len(data)
	if n <= targetPoints {
		return data
	}
	switch {
	case targetPoints <= 0:
		return []models.DataPoint{}
	case targetPoints == 1:
		return []models.DataPoint{data[0]}
	case targetPoints == 2:
		return []models.DataPoint{data[0], data[n-1]}
	}

	result := make([]models.DataPoint, 0, targetPoints)
	result = append(result, data[0])

	step := float64(n-2) / float64(targetPoints-2)
	for i := 0; i < targetPoints-2; i++ {
		idx := int(math.Floor(1 + float64(i)*step))
		if idx > n-2 {
			idx = n - 2
		}
		result = append(result, data[idx])
	}

	return append(result, data[n-1])
}
