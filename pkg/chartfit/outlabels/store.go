// Package outlabels positions pie and donut outside labels so they do not
// overlap.
//
// A Store is owned by its caller and holds, per chart id, the labels keyed
// by slice index together with the chart's render lifecycle. Calls for one
// chart id must be serialized by the caller; distinct chart ids never share
// state.
package outlabels

import (
	"sort"
	"time"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

// Lifecycle records the render progress of one chart.
type Lifecycle struct {
	// RenderedAt is the time of the last layout pass.
	RenderedAt time.Time `json:"rendered_at"`
	// AnimateStarted is set once the label animation has begun.
	AnimateStarted bool `json:"animate_started"`
	// AnimateCompleted is set once the label animation has settled.
	AnimateCompleted bool `json:"animate_completed"`
	// Cancelled suppresses further layout passes.
	Cancelled bool `json:"cancelled"`
	// UsedShrink reports that the chart shrank its radius to fit labels.
	UsedShrink bool `json:"used_shrink"`
}

type chartState struct {
	labels    map[int]*models.OutLabel
	lifecycle Lifecycle
}

// Store maps chart ids to their labels and lifecycle.
type Store struct {
	clock  func() time.Time
	charts map[string]*chartState
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the clock used for RenderedAt.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore returns an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		clock:  time.Now,
		charts: make(map[string]*chartState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set initializes an empty label collection for chartID, discarding any
// labels and lifecycle recorded for it before.
func (s *Store) Set(chartID string) {
	s.charts[chartID] = &chartState{labels: make(map[int]*models.OutLabel)}
}

// Get returns the labels of chartID keyed by slice index.
func (s *Store) Get(chartID string) (map[int]*models.OutLabel, bool) {
	st, ok := s.charts[chartID]
	if !ok {
		return nil, false
	}
	return st.labels, true
}

// Labels returns the labels of chartID ordered by slice index.
func (s *Store) Labels(chartID string) []*models.OutLabel {
	st, ok := s.charts[chartID]
	if !ok {
		return nil
	}
	return sortedLabels(st.labels)
}

// SetLabel stores label as slice index of chartID.
func (s *Store) SetLabel(chartID string, index int, label *models.OutLabel) {
	st, ok := s.charts[chartID]
	if !ok || label == nil {
		return
	}
	label.Index = index
	st.labels[index] = label
}

// RemoveLabel drops the label of slice index from chartID.
func (s *Store) RemoveLabel(chartID string, index int) {
	if st, ok := s.charts[chartID]; ok {
		delete(st.labels, index)
	}
}

// Discard forgets chartID entirely. Hosts call it when a chart unmounts.
func (s *Store) Discard(chartID string) {
	delete(s.charts, chartID)
}

// Charts returns the known chart ids in sorted order.
func (s *Store) Charts() []string {
	ids := make([]string, 0, len(s.charts))
	for id := range s.charts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedLabels(m map[int]*models.OutLabel) []*models.OutLabel {
	labels := make([]*models.OutLabel, 0, len(m))
	for _, l := range m {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].Index < labels[j].Index
	})
	return labels
}
