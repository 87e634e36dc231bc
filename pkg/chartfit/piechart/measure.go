package piechart

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Measurer reports the pixel extent of a label text.
type Measurer interface {
	Measure(text string) (width, height float64)
}

// FontMeasurer measures text with a font face.
type FontMeasurer struct {
	Face font.Face
}

// NewFontMeasurer returns a measurer for face. A nil face selects
// basicfont.Face7x13.
func NewFontMeasurer(face font.Face) *FontMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &FontMeasurer{Face: face}
}

// GoRegularFace returns the Go Regular font at size points (72 DPI).
func GoRegularFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Measure returns the advance width and line height of text.
func (m *FontMeasurer) Measure(text string) (float64, float64) {
	adv := font.MeasureString(m.Face, text)
	metrics := m.Face.Metrics()
	return float64(adv) / 64, float64(metrics.Ascent+metrics.Descent) / 64
}
