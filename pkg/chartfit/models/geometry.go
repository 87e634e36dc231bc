package models

// Point is a position in chart pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ChartArea is the drawable rectangle of a chart in pixels.
type ChartArea struct {
	// Left is the x coordinate of the left edge.
	Left float64 `json:"left"`
	// Right is the x coordinate of the right edge.
	Right float64 `json:"right"`
	// Top is the y coordinate of the top edge.
	Top float64 `json:"top"`
	// Bottom is the y coordinate of the bottom edge.
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal extent of the area.
func (a ChartArea) Width() float64 { return a.Right - a.Left }

// Height returns the vertical extent of the area.
func (a ChartArea) Height() float64 { return a.Bottom - a.Top }

// Center returns the midpoint of the area.
func (a ChartArea) Center() Point {
	return Point{X: (a.Left + a.Right) / 2, Y: (a.Top + a.Bottom) / 2}
}

// Geometry is the per-pass chart geometry supplied by the renderer.
type Geometry struct {
	// Center is the pie center.
	Center Point `json:"center"`
	// Area is the drawable chart area.
	Area ChartArea `json:"area"`
}
