package chartfit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/parser"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/sampling"
	"github.com/xuri/excelize/v2"
)

// Sample reads the result rows of a sheet and reduces them to
// opts.TargetPoints rows with opts.Strategy.
func Sample(path string, opts Options) (*models.SampleResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ds, err := loadDataset(path, opts.Sheet)
	if err != nil {
		return nil, err
	}
	logger := opts.logger()

	strategy, _ := sampling.ParseStrategy(string(opts.Strategy))
	ropts := sampling.RandomOptions{
		PreserveEnds: opts.PreserveEnds,
		Rand:         opts.randSource(),
	}
	if opts.AnomalyField != "" {
		if !slices.Contains(ds.Columns, opts.AnomalyField) {
			logger.Warn("anomaly field not found, no anomalies reserved",
				"sheet", ds.Sheet, "field", opts.AnomalyField)
		}
		ropts.Anomaly = &sampling.AnomalyOptions{
			Field:     opts.AnomalyField,
			Threshold: opts.AnomalyThreshold,
		}
	}

	rows := sampling.Downsample(ds.Rows, opts.TargetPoints, strategy, ropts)
	logger.Debug("sampled rows",
		"sheet", ds.Sheet, "strategy", strategy, "source", len(ds.Rows), "kept", len(rows))

	reduced := *ds
	reduced.Rows = rows
	return &models.SampleResult{
		BookName:     filepath.Base(path),
		Strategy:     string(strategy),
		SourceRows:   len(ds.Rows),
		TargetPoints: opts.TargetPoints,
		Dataset:      reduced,
	}, nil
}

// Anomalies reads the result rows of a sheet and returns the rows whose
// opts.AnomalyField value deviates from the mean by more than
// opts.AnomalyThreshold standard deviations.
func Anomalies(path string, opts Options) (*models.AnomalyResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.AnomalyField == "" {
		return nil, fmt.Errorf("%w: anomaly field is required", ErrInvalidOptions)
	}
	ds, err := loadDataset(path, opts.Sheet)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(ds.Columns, opts.AnomalyField) {
		return nil, NewStageError(ds.Sheet, "anomalies",
			fmt.Errorf("%w: column %q not found", ErrInvalidOptions, opts.AnomalyField))
	}

	threshold := opts.AnomalyThreshold
	if threshold <= 0 {
		threshold = sampling.DefaultAnomalyThreshold
	}
	indices := sampling.DetectAnomalies(ds.Rows, opts.AnomalyField, threshold)
	rows := make([]models.DataPoint, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, ds.Rows[i])
	}

	return &models.AnomalyResult{
		BookName:  filepath.Base(path),
		Sheet:     ds.Sheet,
		Field:     opts.AnomalyField,
		Threshold: threshold,
		Indices:   indices,
		Rows:      rows,
	}, nil
}

// loadDataset returns the result rows of sheetName, or of the first sheet
// when sheetName is empty.
func loadDataset(path, sheetName string) (*models.Dataset, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err := selectSheet(f, sheetName)
	if err != nil {
		return nil, err
	}
	ds, err := parser.ExtractRows(f, sheet, parser.DefaultTableParams())
	if err != nil {
		return nil, NewStageError(sheet, "rows", err)
	}
	return ds, nil
}

func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return f, nil
}

func selectSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if name == "" {
		if len(sheets) == 0 {
			return "", ErrSheetNotFound
		}
		return sheets[0], nil
	}
	if !slices.Contains(sheets, name) {
		return "", fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	return name, nil
}
