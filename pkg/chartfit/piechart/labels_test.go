package piechart

import (
	"math"
	"strings"
	"testing"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestSlices(t *testing.T) {
	slices := Slices([]float64{1, 3})
	if len(slices) != 2 {
		t.Fatalf("Expected 2 slices, got %d", len(slices))
	}
	if !approx(slices[0].Fraction, 0.25) || !approx(slices[1].Fraction, 0.75) {
		t.Errorf("Unexpected fractions %v, %v", slices[0].Fraction, slices[1].Fraction)
	}
	if !approx(slices[0].Arc.StartAngle, -math.Pi/2) || !approx(slices[0].Arc.EndAngle, 0) {
		t.Errorf("Unexpected first arc %+v", slices[0].Arc)
	}
	if !approx(slices[1].Arc.StartAngle, 0) || !approx(slices[1].Arc.EndAngle, 3*math.Pi/2) {
		t.Errorf("Unexpected second arc %+v", slices[1].Arc)
	}

	tests := []struct {
		name   string
		values []float64
		count  int
	}{
		{"empty", nil, 0},
		{"all zero", []float64{0, 0}, 0},
		{"negative treated as zero", []float64{-1, 2}, 2},
		{"nan treated as zero", []float64{math.NaN(), 1}, 2},
	}
	for _, tt := range tests {
		if got := len(Slices(tt.values)); got != tt.count {
			t.Errorf("%s: len(Slices) = %d, expected %d", tt.name, got, tt.count)
		}
	}
	if s := Slices([]float64{-1, 2}); s[0].Value != 0 || s[1].Fraction != 1 {
		t.Errorf("Unexpected slices %+v", s)
	}
}

func testChart() models.PieChart {
	return models.PieChart{Name: "Chart 1", ChartType: "Pie", W: 480, H: 260}
}

func TestBuildPlacesLabelsBySide(t *testing.T) {
	res := Build(testChart(), []float64{1, 1}, []string{"North", "South"}, DefaultConfig(), NewFontMeasurer(nil))

	if res.UsedShrink {
		t.Error("Expected no shrink for short labels")
	}
	if !approx(res.Radius, 89) {
		t.Errorf("Expected radius 89, got %v", res.Radius)
	}
	if res.Geometry.Center != (models.Point{X: 240, Y: 130}) {
		t.Errorf("Unexpected center %+v", res.Geometry.Center)
	}
	if len(res.Labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(res.Labels))
	}

	right, left := res.Labels[0], res.Labels[1]
	if right.Text != "North 50.0%" || right.NX != 1 {
		t.Errorf("Unexpected right label %+v", right)
	}
	if !approx(right.X, 349) || !approx(right.Y, 130) || !approx(right.Rect.X, 353) {
		t.Errorf("Unexpected right label position %+v", right)
	}
	if right.Rect.Width != 77 || right.Rect.Height != 13 || !approx(right.Rect.Y, 123.5) {
		t.Errorf("Unexpected right label rect %+v", right.Rect)
	}
	if left.NX != -1 || !approx(left.X, 131) || !approx(left.Rect.Right(), 127) {
		t.Errorf("Unexpected left label %+v", left)
	}
	for _, l := range res.Labels {
		if !l.Style.Display || l.Style.Length != 20 || l.Arc.OuterRadius != res.Radius {
			t.Errorf("Unexpected label style or arc %+v", l)
		}
	}
}

func TestBuildShrinksForWideLabels(t *testing.T) {
	long := strings.Repeat("x", 40)
	res := Build(testChart(), []float64{1, 1}, []string{long, long}, DefaultConfig(), NewFontMeasurer(nil))

	if !res.UsedShrink {
		t.Fatal("Expected shrink for wide labels")
	}
	if !approx(res.Radius, 44.5) {
		t.Errorf("Expected radius clamped to 44.5, got %v", res.Radius)
	}
}

func TestBuildDoughnutAndEmptySlices(t *testing.T) {
	chart := testChart()
	chart.ChartType = "Doughnut"
	chart.HoleSize = 50

	res := Build(chart, []float64{2, 0, 2}, nil, DefaultConfig(), NewFontMeasurer(nil))
	if len(res.Slices) != 3 {
		t.Fatalf("Expected 3 slices, got %d", len(res.Slices))
	}
	if len(res.Labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(res.Labels))
	}
	if res.Labels[0].Index != 0 || res.Labels[1].Index != 2 {
		t.Errorf("Expected label indices 0 and 2, got %d and %d", res.Labels[0].Index, res.Labels[1].Index)
	}
	if res.Labels[0].Text != "50.0%" {
		t.Errorf("Expected text without category, got %q", res.Labels[0].Text)
	}
	if !approx(res.Slices[0].Arc.InnerRadius, res.Radius/2) {
		t.Errorf("Expected inner radius %v, got %v", res.Radius/2, res.Slices[0].Arc.InnerRadius)
	}

	empty := Build(chart, []float64{0}, nil, DefaultConfig(), NewFontMeasurer(nil))
	if empty.Labels == nil || len(empty.Labels) != 0 {
		t.Errorf("Expected empty non-nil labels, got %v", empty.Labels)
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		category string
		fraction float64
		expected string
	}{
		{"North", 0.4, "North 40.0%"},
		{"  South ", 0.125, "South 12.5%"},
		{"", 1, "100.0%"},
	}

	for _, tt := range tests {
		result := FormatLabel(tt.category, tt.fraction)
		if result != tt.expected {
			t.Errorf("FormatLabel(%q, %v) = %q, expected %q", tt.category, tt.fraction, result, tt.expected)
		}
	}
}
