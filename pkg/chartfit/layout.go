package chartfit

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/outlabels"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/parser"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/piechart"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/sampling"
	"github.com/xuri/excelize/v2"
)

// Layout lays out the outside labels of every pie, 3D pie and doughnut
// chart in the workbook. Each chart is built from its first series, run
// through one overlap pass as a settled (fully animated) chart, and
// reported with its final labels. Charts whose data cannot be read are
// skipped with a warning.
func Layout(ctx context.Context, path string, opts Options) (*models.LayoutResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if opts.Sheet != "" && !slices.Contains(f.GetSheetList(), opts.Sheet) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, opts.Sheet)
	}

	charts, err := parser.ExtractPieCharts(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	face, err := opts.FontFace()
	if err != nil {
		return nil, fmt.Errorf("loading label font: %w", err)
	}
	defer face.Close()

	l := &layouter{
		f:        f,
		store:    outlabels.NewStore(),
		cfg:      opts.labelConfig(),
		measurer: piechart.NewFontMeasurer(face),
		opts:     opts,
	}

	result := &models.LayoutResult{
		BookName: filepath.Base(path),
		Charts:   make(map[string][]models.ChartLayout),
	}
	for sheet, sheetCharts := range charts {
		if opts.Sheet != "" && sheet != opts.Sheet {
			continue
		}
		for i, chart := range sheetCharts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			layout, ok := l.layoutChart(ctx, chartID(sheet, chart.Name, i), chart)
			if ok {
				result.Charts[sheet] = append(result.Charts[sheet], layout)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type layouter struct {
	f        *excelize.File
	store    *outlabels.Store
	cfg      piechart.Config
	measurer piechart.Measurer
	opts     Options
}

func chartID(sheet, name string, i int) string {
	return fmt.Sprintf("%s!%s#%d", sheet, name, i+1)
}

// layoutChart builds the labels of one chart and runs the overlap pass.
func (l *layouter) layoutChart(ctx context.Context, id string, chart models.PieChart) (models.ChartLayout, bool) {
	logger := l.opts.logger().With("sheet", chart.Sheet, "chart", chart.Name)

	values, categories, err := l.seriesData(chart)
	if err != nil {
		logger.Warn("skipping chart", "error", NewStageError(chart.Sheet, "charts", err))
		return models.ChartLayout{}, false
	}

	res := piechart.Build(chart, values, categories, l.cfg, l.measurer)

	l.store.Set(id)
	defer l.store.Discard(id)
	for i := range res.Labels {
		label := res.Labels[i]
		l.store.SetLabel(id, label.Index, &label)
	}
	l.store.SetUsedShrink(id, res.UsedShrink)
	l.store.SetAnimateStarted(id)
	l.store.SetAnimateCompleted(id)

	adjusted := outlabels.AvoidOverlap(ctx, l.store, id, res.Geometry)

	lc, _ := l.store.Lifecycle(id)
	stored := l.store.Labels(id)
	labels := make([]models.OutLabel, 0, len(stored))
	hidden := 0
	for _, lb := range stored {
		labels = append(labels, *lb)
		if !lb.Style.Display {
			hidden++
		}
	}
	if hidden > 0 {
		logger.Info("labels hidden outside chart area", "hidden", hidden, "total", len(labels))
	}

	return models.ChartLayout{
		Chart:      chart,
		Center:     res.Geometry.Center,
		Radius:     res.Radius,
		UsedShrink: lc.UsedShrink,
		Adjusted:   adjusted,
		RenderedAt: lc.RenderedAt,
		Labels:     labels,
	}, true
}

// seriesData reads the values and categories of the first series.
// Non-numeric values count as zero.
func (l *layouter) seriesData(chart models.PieChart) ([]float64, []string, error) {
	if len(chart.Series) == 0 || chart.Series[0].ValueRange == "" {
		return nil, nil, fmt.Errorf("chart %q has no value range", chart.Name)
	}
	s := chart.Series[0]

	raw, err := parser.ReadRangeValues(l.f, s.ValueRange)
	if err != nil {
		return nil, nil, fmt.Errorf("reading values %s: %w", s.ValueRange, err)
	}
	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i], _ = sampling.ToNumber(v)
	}

	var categories []string
	if s.CategoryRange != "" {
		categories, err = parser.ReadRangeValues(l.f, s.CategoryRange)
		if err != nil {
			l.opts.logger().Warn("reading categories", "range", s.CategoryRange, "error", err)
			categories = nil
		}
	}
	return values, categories, nil
}
