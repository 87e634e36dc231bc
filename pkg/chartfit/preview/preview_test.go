package preview

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/piechart"
)

func TestSeriesPNG(t *testing.T) {
	ds := &models.Dataset{Sheet: "Sheet1", Columns: []string{"Month", "Count"}}
	for i, v := range []float64{10, 12, 11, 95, 13, 12} {
		ds.Rows = append(ds.Rows, models.DataPoint{
			"Month": []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}[i],
			"Count": v,
		})
	}

	var buf bytes.Buffer
	if err := SeriesPNG(&buf, ds, "Month", "Count", []int{3}); err != nil {
		t.Fatalf("SeriesPNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultWidth || b.Dy() != DefaultHeight {
		t.Errorf("Unexpected size %v", b)
	}
}

func TestSeriesPNGTooFewPoints(t *testing.T) {
	ds := &models.Dataset{Rows: []models.DataPoint{{"y": 1.0}, {"y": "n/a"}}}

	var buf bytes.Buffer
	err := SeriesPNG(&buf, ds, "", "y", nil)
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("Expected ErrTooFewPoints, got %v", err)
	}
}

func TestPiePNG(t *testing.T) {
	chart := models.PieChart{Name: "Chart 1", ChartType: "Doughnut", HoleSize: 40, W: 320, H: 200}
	res := piechart.Build(chart, []float64{3, 2, 1}, []string{"A", "B", "C"}, piechart.DefaultConfig(), piechart.NewFontMeasurer(nil))
	res.Labels[2].Style.Display = false

	layout := models.ChartLayout{
		Chart:  chart,
		Center: res.Geometry.Center,
		Radius: res.Radius,
		Labels: res.Labels,
	}

	var buf bytes.Buffer
	if err := PiePNG(&buf, layout, nil); err != nil {
		t.Fatalf("PiePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("Unexpected size %v", b)
	}

	// The hole center stays background white.
	r, g, b, _ := img.At(160, 100).RGBA()
	if r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
		t.Errorf("Expected white hole center, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}
