// Package chartfit reduces chart result sets to a renderable point budget
// and lays out the outside labels of pie and doughnut charts.
package chartfit

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/piechart"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/sampling"
	"golang.org/x/image/font"
	"gopkg.in/yaml.v3"
)

// Options configures sampling, anomaly detection and label layout.
type Options struct {
	// Strategy selects the downsampling strategy (uniform or random).
	Strategy sampling.Strategy `yaml:"strategy"`
	// TargetPoints is the number of rows to keep.
	TargetPoints int `yaml:"target_points"`
	// PreserveEnds keeps the first and last rows in random sampling.
	PreserveEnds bool `yaml:"preserve_ends"`
	// AnomalyField is the numeric column checked for anomalies.
	// Empty disables anomaly reservation during sampling.
	AnomalyField string `yaml:"anomaly_field"`
	// AnomalyThreshold is the standard deviation multiplier.
	AnomalyThreshold float64 `yaml:"anomaly_threshold"`
	// Sheet limits processing to one sheet. Empty selects the first sheet
	// for sampling and every sheet for layout.
	Sheet string `yaml:"sheet"`
	// LabelLength is the leader-line length of pie labels in pixels.
	LabelLength float64 `yaml:"label_length"`
	// FontSize selects Go Regular at this size for label metrics.
	// Zero uses the built-in 7x13 bitmap face.
	FontSize float64 `yaml:"font_size"`
	// Padding separates a label anchor from its text in pixels.
	Padding float64 `yaml:"padding"`
	// Seed makes random sampling reproducible.
	// If nil, a random seed is used.
	Seed *uint64 `yaml:"seed"`
	// Logger receives warnings about skipped input. Nil discards them.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	cfg := piechart.DefaultConfig()
	return Options{
		Strategy:         sampling.StrategyUniform,
		TargetPoints:     100,
		PreserveEnds:     true,
		AnomalyThreshold: sampling.DefaultAnomalyThreshold,
		LabelLength:      cfg.LabelLength,
		Padding:          cfg.Padding,
	}
}

// LoadConfig reads a YAML config file over DefaultOptions. An empty path
// returns the defaults.
func LoadConfig(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("error parsing config file: %w", err)
	}
	return opts, nil
}

// Validate reports the first invalid setting.
func (o Options) Validate() error {
	if _, err := sampling.ParseStrategy(string(o.Strategy)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	switch {
	case o.TargetPoints < 1:
		return fmt.Errorf("%w: target points must be positive, got %d", ErrInvalidOptions, o.TargetPoints)
	case o.AnomalyThreshold < 0:
		return fmt.Errorf("%w: anomaly threshold must not be negative", ErrInvalidOptions)
	case o.LabelLength < 0:
		return fmt.Errorf("%w: label length must not be negative", ErrInvalidOptions)
	case o.FontSize < 0:
		return fmt.Errorf("%w: font size must not be negative", ErrInvalidOptions)
	case o.Padding < 0:
		return fmt.Errorf("%w: padding must not be negative", ErrInvalidOptions)
	}
	return nil
}

// FontFace returns the face used to measure and draw labels.
func (o Options) FontFace() (font.Face, error) {
	if o.FontSize > 0 {
		return piechart.GoRegularFace(o.FontSize)
	}
	return piechart.NewFontMeasurer(nil).Face, nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) randSource() *rand.Rand {
	if o.Seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*o.Seed, *o.Seed))
}

func (o Options) labelConfig() piechart.Config {
	cfg := piechart.DefaultConfig()
	cfg.LabelLength = o.LabelLength
	cfg.Padding = o.Padding
	return cfg
}
