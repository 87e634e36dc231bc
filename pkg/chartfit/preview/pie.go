package preview

import (
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
	"golang.org/x/image/font"
)

var palette = []color.RGBA{
	{0x36, 0xa2, 0xeb, 0xff},
	{0xff, 0x63, 0x84, 0xff},
	{0xff, 0x9f, 0x40, 0xff},
	{0xff, 0xcd, 0x56, 0xff},
	{0x4b, 0xc0, 0xc0, 0xff},
	{0x99, 0x66, 0xff, 0xff},
	{0xc9, 0xcb, 0xcf, 0xff},
}

// PiePNG draws the slices of layout with leader lines to its visible
// labels. Slices come from the label arcs; hidden labels keep their slice
// but lose their text. face is used for label text.
func PiePNG(w io.Writer, layout models.ChartLayout, face font.Face) error {
	width, height := layout.Chart.W, layout.Chart.H
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	cx, cy := layout.Center.X, layout.Center.Y
	var hole float64
	for _, l := range layout.Labels {
		a := l.Arc
		if a.EndAngle <= a.StartAngle {
			continue
		}
		dc.SetColor(palette[l.Index%len(palette)])
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, a.OuterRadius, a.StartAngle, a.EndAngle)
		dc.ClosePath()
		dc.Fill()
		hole = math.Max(hole, a.InnerRadius)
	}
	if hole > 0 {
		dc.SetColor(color.White)
		dc.DrawCircle(cx, cy, hole)
		dc.Fill()
	}

	if face != nil {
		dc.SetFontFace(face)
	}
	for _, l := range layout.Labels {
		if !l.Style.Display {
			continue
		}
		mid := l.Arc.MidAngle()
		sx := cx + math.Cos(mid)*l.Arc.OuterRadius
		sy := cy + math.Sin(mid)*l.Arc.OuterRadius

		dc.SetColor(color.Gray{Y: 0x60})
		dc.SetLineWidth(1)
		dc.DrawLine(sx, sy, l.X, l.Y)
		dc.Stroke()

		dc.SetColor(color.Black)
		dc.DrawStringAnchored(l.Text, l.Rect.X, l.Rect.Y+l.Rect.Height/2, 0, 0.5)
	}

	return dc.EncodePNG(w)
}
