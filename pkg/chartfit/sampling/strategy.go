package sampling

import (
	"fmt"
	"strings"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

// Strategy names a downsampling strategy.
type Strategy string

const (
	// StrategyUniform picks rows at a fixed fractional step.
	StrategyUniform Strategy = "uniform"
	// StrategyRandom keeps ends and anomalies and fills the rest randomly.
	StrategyRandom Strategy = "random"
)

// ParseStrategy parses a strategy name, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyUniform:
		return StrategyUniform, nil
	case StrategyRandom:
		return StrategyRandom, nil
	}
	return "", fmt.Errorf("invalid strategy: %s (must be uniform or random)", s)
}

// Downsample dispatches to the sampler for strategy. Unknown strategies
// fall back to uniform sampling.
func Downsample(data []models.DataPoint, targetPoints int, strategy Strategy, opts RandomOptions) []models.DataPoint {
	if strategy == StrategyRandom {
		return RandomSampling(data, targetPoints, opts)
	}
	return UniformSampling(data, targetPoints)
}
