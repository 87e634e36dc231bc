// Package preview renders PNG previews of downsampled series and laid-out
// pie charts.
package preview

import (
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/sampling"
	"github.com/wcharczuk/go-chart/v2"
)

// Default preview size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// maxTicks caps category labels drawn along the x axis.
const maxTicks = 12

// ErrTooFewPoints is returned when a series has fewer than two plottable points.
var ErrTooFewPoints = errors.New("preview needs at least two numeric points")

// SeriesPNG renders yField of ds as a line with anomalous rows marked as
// dots. anomalies are row indices into ds.Rows. When xField is empty or
// not numeric the row position is used for x and xField values become
// tick labels.
func SeriesPNG(w io.Writer, ds *models.Dataset, xField, yField string, anomalies []int) error {
	var xs, ys []float64
	var ticks []chart.Tick
	numericX := xField != ""
	for _, row := range ds.Rows {
		if _, ok := sampling.ToNumber(row[xField]); !ok {
			numericX = false
			break
		}
	}

	rowX := make(map[int]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		y, ok := sampling.ToNumber(row[yField])
		if !ok {
			continue
		}
		x := float64(i)
		if numericX {
			x, _ = sampling.ToNumber(row[xField])
		}
		rowX[i] = x
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return fmt.Errorf("%w: field %q", ErrTooFewPoints, yField)
	}

	if !numericX && xField != "" {
		step := max(1, len(ds.Rows)/maxTicks)
		for i := 0; i < len(ds.Rows); i += step {
			ticks = append(ticks, chart.Tick{Value: float64(i), Label: fmt.Sprint(ds.Rows[i][xField])})
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    yField,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: chart.ColorBlue,
			},
		},
	}

	var ax, ay []float64
	for _, idx := range anomalies {
		if idx < 0 || idx >= len(ds.Rows) {
			continue
		}
		x, ok := rowX[idx]
		if !ok {
			continue
		}
		y, _ := sampling.ToNumber(ds.Rows[idx][yField])
		ax = append(ax, x)
		ay = append(ay, y)
	}
	if len(ax) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "anomalies",
			XValues: ax,
			YValues: ay,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    chart.ColorRed,
			},
		})
	}

	ch := chart.Chart{
		Title:      ds.Sheet,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: xField, Ticks: ticks},
		YAxis:      chart.YAxis{Name: yField},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}
