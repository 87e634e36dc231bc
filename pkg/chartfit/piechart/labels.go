// Package piechart computes slice arcs and the initial outside-label
// placement of pie and doughnut charts.
package piechart

import (
	"fmt"
	"math"
	"strings"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

// StartAngle is the angle of the first slice edge (12 o'clock).
const StartAngle = -math.Pi / 2

// Slice is one pie slice.
type Slice struct {
	// Index is the position of the value in the input.
	Index int `json:"index"`
	// Value is the slice value; negative and non-finite inputs count as 0.
	Value float64 `json:"value"`
	// Fraction is Value over the total.
	Fraction float64 `json:"fraction"`
	// Arc is the slice geometry with unit radius.
	Arc models.Arc `json:"arc"`
}

// Slices lays out values clockwise from StartAngle. It returns nil when
// the values do not sum to a positive total.
func Slices(values []float64) []Slice {
	var total float64
	clean := make([]float64, len(values))
	for i, v := range values {
		if v > 0 && !math.IsInf(v, 1) {
			clean[i] = v
			total += v
		}
	}
	if total <= 0 {
		return nil
	}

	slices := make([]Slice, len(clean))
	angle := StartAngle
	for i, v := range clean {
		frac := v / total
		end := angle + 2*math.Pi*frac
		slices[i] = Slice{
			Index:    i,
			Value:    v,
			Fraction: frac,
			Arc:      models.Arc{StartAngle: angle, EndAngle: end, OuterRadius: 1},
		}
		angle = end
	}
	return slices
}

// Config controls label placement.
type Config struct {
	// LabelLength is the leader-line length beyond the outer radius.
	LabelLength float64
	// Margin is kept clear along every edge of the chart area.
	Margin float64
	// Padding separates the label anchor from its text.
	Padding float64
	// MinRadiusRatio bounds how far the radius may shrink, as a fraction
	// of the nominal radius.
	MinRadiusRatio float64
}

// DefaultConfig returns the default placement settings.
func DefaultConfig() Config {
	return Config{
		LabelLength:    20,
		Margin:         8,
		Padding:        4,
		MinRadiusRatio: 0.5,
	}
}

// Result is the initial layout of one chart.
type Result struct {
	// Geometry is the center and drawable area of the chart.
	Geometry models.Geometry `json:"geometry"`
	// Radius is the outer radius used.
	Radius float64 `json:"radius"`
	// UsedShrink is true when the radius was reduced to fit the labels.
	UsedShrink bool `json:"used_shrink"`
	// Slices are the slices with arcs scaled to Radius.
	Slices []Slice `json:"slices"`
	// Labels holds one label per non-empty slice.
	Labels []models.OutLabel `json:"labels"`
}

type measured struct {
	text   string
	width  float64
	height float64
}

// Build places one outside label per non-empty slice of chart. Labels sit
// at the slice mid-angle on a circle of radius + cfg.LabelLength, with text
// to the right of the anchor on the right half and to the left on the left
// half. The nominal radius reserves room for the leader line and one text
// line; when a label would still leave the chart area the radius shrinks,
// down to cfg.MinRadiusRatio of the nominal radius.
func Build(chart models.PieChart, values []float64, categories []string, cfg Config, m Measurer) Result {
	area := chart.Area()
	center := area.Center()
	res := Result{Geometry: models.Geometry{Center: center, Area: area}}

	slices := Slices(values)
	if len(slices) == 0 {
		res.Labels = []models.OutLabel{}
		return res
	}

	texts := make([]measured, len(slices))
	var lineHeight float64
	for i, s := range slices {
		var category string
		if i < len(categories) {
			category = categories[i]
		}
		txt := FormatLabel(category, s.Fraction)
		w, h := m.Measure(txt)
		texts[i] = measured{text: txt, width: w, height: h}
		lineHeight = math.Max(lineHeight, h)
	}

	halfW, halfH := area.Width()/2, area.Height()/2
	nominal := math.Min(halfW, halfH) - cfg.Margin - cfg.LabelLength - lineHeight
	if nominal < 1 {
		nominal = 1
	}

	fit := nominal
	for i, s := range slices {
		if s.Value == 0 {
			continue
		}
		theta := s.Arc.MidAngle()
		if c := math.Abs(math.Cos(theta)); c > 1e-9 {
			fit = math.Min(fit, (halfW-cfg.Margin-cfg.Padding-texts[i].width)/c-cfg.LabelLength)
		}
		if sn := math.Abs(math.Sin(theta)); sn > 1e-9 {
			fit = math.Min(fit, (halfH-cfg.Margin-texts[i].height/2)/sn-cfg.LabelLength)
		}
	}

	res.Radius = nominal
	if fit < nominal {
		res.UsedShrink = true
		res.Radius = math.Max(fit, nominal*cfg.MinRadiusRatio)
	}

	inner := 0.0
	if chart.HoleSize > 0 {
		inner = res.Radius * float64(chart.HoleSize) / 100
	}

	res.Slices = make([]Slice, len(slices))
	res.Labels = make([]models.OutLabel, 0, len(slices))
	for i, s := range slices {
		s.Arc.OuterRadius = res.Radius
		s.Arc.InnerRadius = inner
		res.Slices[i] = s
		if s.Value == 0 {
			continue
		}
		res.Labels = append(res.Labels, placeLabel(s, texts[i], center, cfg))
	}
	return res
}

func placeLabel(s Slice, t measured, center models.Point, cfg Config) models.OutLabel {
	theta := s.Arc.MidAngle()
	r := s.Arc.OuterRadius + cfg.LabelLength
	x := center.X + math.Cos(theta)*r
	y := center.Y + math.Sin(theta)*r

	nx := 1.0
	rectX := x + cfg.Padding
	if math.Cos(theta) < 0 {
		nx = -1
		rectX = x - cfg.Padding - t.width
	}

	return models.OutLabel{
		Index: s.Index,
		Text:  t.text,
		X:     x,
		Y:     y,
		Rect:  models.Rect{X: rectX, Y: y - t.height/2, Width: t.width, Height: t.height},
		Arc:   s.Arc,
		NX:    nx,
		Style: models.LabelStyle{Display: true, Length: cfg.LabelLength},
	}
}

// FormatLabel renders a slice label as "<category> <percent>%".
func FormatLabel(category string, fraction float64) string {
	pct := fmt.Sprintf("%.1f%%", fraction*100)
	category = strings.TrimSpace(category)
	if category == "" {
		return pct
	}
	return category + " " + pct
}
