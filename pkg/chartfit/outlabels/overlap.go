package outlabels

import (
	"context"
	"math"
	"sort"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

// BoundsPadding is the tolerance, in pixels, a label rect may extend past
// the chart area before it is hidden.
const BoundsPadding = 4.0

const (
	quadTopRight = iota
	quadBottomRight
	quadBottomLeft
	quadTopLeft
	quadCount
)

// AvoidOverlap runs one layout pass over the labels of chartID. It resets
// label visibility, pushes overlapping labels apart within each quadrant
// around geom.Center, re-projects the x position of adjusted quadrants
// onto a shared ellipse, and, once the chart's animation has completed,
// hides labels that fall outside geom.Area.
//
// The pass is skipped when ctx is done, the chart is cancelled, or chartID
// is unknown. It reports whether any quadrant was adjusted.
func AvoidOverlap(ctx context.Context, s *Store, chartID string, geom models.Geometry) bool {
	if ctx.Err() != nil {
		return false
	}
	st, ok := s.charts[chartID]
	if !ok || st.lifecycle.Cancelled {
		return false
	}

	labels := sortedLabels(st.labels)
	for _, l := range labels {
		l.Style.Display = true
	}

	adjusted := false
	for _, quad := range partition(labels, geom.Center) {
		if adjustQuadrant(quad) {
			recalculateX(quad, geom.Center)
			adjusted = true
		}
	}

	if st.lifecycle.AnimateCompleted {
		hideOutOfBounds(labels, geom.Area, BoundsPadding)
	}

	s.SetRenderedAt(chartID)
	return adjusted
}

// partition groups labels by their position relative to center.
func partition(labels []*models.OutLabel, center models.Point) [quadCount][]*models.OutLabel {
	var quads [quadCount][]*models.OutLabel
	for _, l := range labels {
		left := l.X < center.X
		top := l.Y < center.Y
		switch {
		case !left && top:
			quads[quadTopRight] = append(quads[quadTopRight], l)
		case !left && !top:
			quads[quadBottomRight] = append(quads[quadBottomRight], l)
		case left && !top:
			quads[quadBottomLeft] = append(quads[quadBottomLeft], l)
		default:
			quads[quadTopLeft] = append(quads[quadTopLeft], l)
		}
	}
	return quads
}

// adjustQuadrant sorts labels by rect.Y and pushes each label below the
// one above it. If anything moved, the whole group is shifted back by the
// mean displacement so it stays centred on its original span.
func adjustQuadrant(labels []*models.OutLabel) bool {
	if len(labels) < 2 {
		return false
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].Rect.Y < labels[j].Rect.Y
	})

	var total float64
	shifted := false
	lastY := labels[0].Rect.Bottom()
	for _, l := range labels[1:] {
		if l.Rect.Y < lastY {
			delta := lastY - l.Rect.Y
			l.Rect.Y += delta
			l.Y += delta
			total += delta
			shifted = true
		}
		lastY = l.Rect.Bottom()
	}
	if !shifted {
		return false
	}

	correction := -total / float64(len(labels))
	for _, l := range labels {
		l.Rect.Y += correction
		l.Y += correction
	}
	return true
}

// recalculateX places every label of a quadrant on the ellipse through the
// label farthest from center vertically. The horizontal semi-axis is the
// leader radius of the first label.
func recalculateX(labels []*models.OutLabel, center models.Point) {
	if len(labels) == 0 {
		return
	}
	first := labels[0]
	a := first.Arc.OuterRadius + first.Style.Length
	if a <= 0 {
		return
	}
	sign := first.NX
	if sign == 0 {
		sign = 1
		if first.X < center.X {
			sign = -1
		}
	}
	sign = math.Copysign(1, sign)

	far := first
	maxY := math.Abs(first.Y - center.Y)
	for _, l := range labels[1:] {
		if dy := math.Abs(l.Y - center.Y); dy > maxY {
			far, maxY = l, dy
		}
	}

	b := a
	if dx := math.Abs(far.X - center.X); dx < a && maxY > 0 {
		b = maxY / math.Sqrt(1-(dx*dx)/(a*a))
	}

	for _, l := range labels {
		dy := l.Y - center.Y
		t := 1 - (dy*dy)/(b*b)
		if t < 0 {
			t = 0
		}
		x := center.X + sign*a*math.Sqrt(t)
		l.Rect.X += x - l.X
		l.X = x
	}
}

// hideOutOfBounds clears Display on labels whose rect leaves area by more
// than pad on any side.
func hideOutOfBounds(labels []*models.OutLabel, area models.ChartArea, pad float64) {
	for _, l := range labels {
		r := l.Rect
		if r.X < area.Left-pad || r.Right() > area.Right+pad ||
			r.Y < area.Top-pad || r.Bottom() > area.Bottom+pad {
			l.Style.Display = false
		}
	}
}
