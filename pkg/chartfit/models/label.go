package models

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the y coordinate just past the rect.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right returns the x coordinate just past the rect.
func (r Rect) Right() float64 { return r.X + r.Width }

// Arc describes the slice a label belongs to. Angles are in radians,
// measured clockwise from the positive x axis in screen space.
type Arc struct {
	StartAngle  float64 `json:"start_angle"`
	EndAngle    float64 `json:"end_angle"`
	InnerRadius float64 `json:"inner_radius,omitempty"`
	OuterRadius float64 `json:"outer_radius"`
}

// MidAngle returns the bisecting angle of the arc.
func (a Arc) MidAngle() float64 { return (a.StartAngle + a.EndAngle) / 2 }

// LabelStyle holds the mutable presentation state of a label.
type LabelStyle struct {
	// Display is false when the label cannot be placed legibly.
	Display bool `json:"display"`
	// Length is the leader-line length added to the outer radius.
	Length float64 `json:"length"`
}

// OutLabel is the external label of one pie or donut slice.
type OutLabel struct {
	// Index is the slice index within the chart.
	Index int `json:"index"`
	// Text is the rendered label text.
	Text string `json:"text"`
	// X is the anchor x coordinate.
	X float64 `json:"x"`
	// Y is the anchor y coordinate.
	Y float64 `json:"y"`
	// Rect is the text bounding box.
	Rect Rect `json:"rect"`
	// Arc is the slice geometry.
	Arc Arc `json:"arc"`
	// NX is -1 for labels left of center, +1 otherwise.
	NX float64 `json:"nx"`
	// Style is the visibility and leader-line state.
	Style LabelStyle `json:"style"`
}
