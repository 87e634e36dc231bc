// Package main provides the CLI entry point for chartfit-go.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/chartfit-go/pkg/chartfit"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/output"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/preview"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/sampling"
)

var (
	outputPath string
	pretty     bool
	configPath string
	logLevel   string
	sheet      string

	targetPoints int
	strategy     string
	field        string
	threshold    float64
	preserveEnds bool
	seed         uint64
	pngPath      string
	xField       string

	pngDir      string
	labelLength float64
	fontSize    float64
	watch       bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chartfit",
		Short: "Reduce chart data and lay out pie chart labels",
		Long: `chartfit-go downsamples result rows read from Excel files, flags
anomalous values, and lays out the outside labels of pie and doughnut
charts without overlap. Results are written as JSON.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&sheet, "sheet", "", "Sheet to read (default: first sheet for sample, all sheets for layout)")

	sampleCmd := &cobra.Command{
		Use:   "sample [input.xlsx]",
		Short: "Downsample the result rows of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runSample,
	}
	sf := sampleCmd.Flags()
	sf.IntVar(&targetPoints, "target", 100, "Number of rows to keep")
	sf.StringVar(&strategy, "strategy", "uniform", "Sampling strategy: uniform, random")
	sf.StringVar(&field, "field", "", "Numeric column whose anomalies are always kept")
	sf.Float64Var(&threshold, "threshold", sampling.DefaultAnomalyThreshold, "Anomaly threshold in standard deviations")
	sf.BoolVar(&preserveEnds, "preserve-ends", true, "Keep the first and last rows in random sampling")
	sf.Uint64Var(&seed, "seed", 0, "Random seed (default: random)")
	sf.StringVar(&pngPath, "png", "", "Write a PNG preview of the sampled series")
	sf.StringVar(&xField, "x-field", "", "Column for the preview x axis (default: first column)")

	anomaliesCmd := &cobra.Command{
		Use:   "anomalies [input.xlsx]",
		Short: "List rows with anomalous values",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnomalies,
	}
	af := anomaliesCmd.Flags()
	af.StringVar(&field, "field", "", "Numeric column to check")
	af.Float64Var(&threshold, "threshold", sampling.DefaultAnomalyThreshold, "Anomaly threshold in standard deviations")

	layoutCmd := &cobra.Command{
		Use:   "layout [input.xlsx]",
		Short: "Lay out the outside labels of pie and doughnut charts",
		Args:  cobra.ExactArgs(1),
		RunE:  runLayout,
	}
	lf := layoutCmd.Flags()
	lf.StringVar(&pngDir, "png-dir", "", "Directory for per-chart PNG previews")
	lf.Float64Var(&labelLength, "label-length", 20, "Leader-line length in pixels")
	lf.Float64Var(&fontSize, "font-size", 0, "Measure labels with Go Regular at this size (default: 7x13 bitmap font)")
	lf.BoolVar(&watch, "watch", false, "Re-run whenever the input file is written")

	rootCmd.AddCommand(sampleCmd, anomaliesCmd, layoutCmd)
	return rootCmd
}

// loadOptions reads the config file and applies the flags that were set
// explicitly on the command line.
func loadOptions(cmd *cobra.Command) (chartfit.Options, error) {
	opts, err := chartfit.LoadConfig(configPath)
	if err != nil {
		return chartfit.Options{}, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return chartfit.Options{}, fmt.Errorf("invalid log level: %s", logLevel)
	}
	opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	flags := cmd.Flags()
	if flags.Changed("sheet") {
		opts.Sheet = sheet
	}
	if flags.Changed("target") {
		opts.TargetPoints = targetPoints
	}
	if flags.Changed("strategy") {
		opts.Strategy = sampling.Strategy(strategy)
	}
	if flags.Changed("field") {
		opts.AnomalyField = field
	}
	if flags.Changed("threshold") {
		opts.AnomalyThreshold = threshold
	}
	if flags.Changed("preserve-ends") {
		opts.PreserveEnds = preserveEnds
	}
	if flags.Changed("seed") {
		s := seed
		opts.Seed = &s
	}
	if flags.Changed("label-length") {
		opts.LabelLength = labelLength
	}
	if flags.Changed("font-size") {
		opts.FontSize = fontSize
	}
	return opts, opts.Validate()
}

func runSample(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	res, err := chartfit.Sample(args[0], opts)
	if err != nil {
		return fmt.Errorf("sampling failed: %w", err)
	}
	if err := writeOutput(res); err != nil {
		return err
	}

	if pngPath != "" {
		if err := writeSeriesPreview(&res.Dataset, opts); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
	}
	return nil
}

func runAnomalies(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	res, err := chartfit.Anomalies(args[0], opts)
	if err != nil {
		return fmt.Errorf("anomaly detection failed: %w", err)
	}
	return writeOutput(res)
}

func runLayout(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	inputPath := args[0]

	run := func() error {
		res, err := chartfit.Layout(ctx, inputPath, opts)
		if err != nil {
			return fmt.Errorf("layout failed: %w", err)
		}
		if err := writeOutput(res); err != nil {
			return err
		}
		if pngDir != "" {
			if err := writePiePreviews(res, opts); err != nil {
				return fmt.Errorf("failed to write previews: %w", err)
			}
		}
		return nil
	}

	if err := run(); err != nil && !watch {
		return err
	} else if err != nil {
		opts.Logger.Error("layout failed", "error", err)
	}
	if !watch {
		return nil
	}
	opts.Logger.Info("watching for changes", "file", inputPath)
	return watchFile(ctx, inputPath, run, opts.Logger)
}

func writeOutput(v interface{}) error {
	if outputPath != "" {
		if err := output.WriteFile(outputPath, v, pretty); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	jsonData, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// writeSeriesPreview plots the anomaly field, or the first numeric
// column, against --x-field.
func writeSeriesPreview(ds *models.Dataset, opts chartfit.Options) error {
	x := xField
	if x == "" && len(ds.Columns) > 0 {
		x = ds.Columns[0]
	}
	y := opts.AnomalyField
	if y == "" {
		y = firstNumericColumn(ds, x)
	}

	var anomalies []int
	if opts.AnomalyField != "" {
		anomalies = sampling.DetectAnomalies(ds.Rows, opts.AnomalyField, opts.AnomalyThreshold)
	}

	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return preview.SeriesPNG(f, ds, x, y, anomalies)
}

func firstNumericColumn(ds *models.Dataset, skip string) string {
	for _, col := range ds.Columns {
		if col == skip {
			continue
		}
		for _, row := range ds.Rows {
			if _, ok := sampling.ToNumber(row[col]); ok {
				return col
			}
		}
	}
	return ""
}

func writePiePreviews(res *models.LayoutResult, opts chartfit.Options) error {
	if err := os.MkdirAll(pngDir, 0755); err != nil {
		return err
	}
	face, err := opts.FontFace()
	if err != nil {
		return err
	}
	defer face.Close()

	for sheetName, layouts := range res.Charts {
		for _, layout := range layouts {
			name := previewFileName(sheetName, layout.Chart.Name)
			f, err := os.Create(filepath.Join(pngDir, name))
			if err != nil {
				return err
			}
			err = preview.PiePNG(f, layout, face)
			f.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// previewFileName returns "<sheet>_<chart>.png" with path separators and
// spaces replaced.
func previewFileName(sheetName, chartName string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")
	return r.Replace(sheetName) + "_" + r.Replace(chartName) + ".png"
}
