package outlabels

// Lifecycle returns a copy of the lifecycle of chartID.
func (s *Store) Lifecycle(chartID string) (Lifecycle, bool) {
	st, ok := s.charts[chartID]
	if !ok {
		return Lifecycle{}, false
	}
	return st.lifecycle, true
}

// SetRenderedAt stamps chartID with the current clock reading. The stamp
// never moves backwards.
func (s *Store) SetRenderedAt(chartID string) {
	st, ok := s.charts[chartID]
	if !ok {
		return
	}
	now := s.clock()
	if now.After(st.lifecycle.RenderedAt) {
		st.lifecycle.RenderedAt = now
	}
}

// SetAnimateStarted marks the label animation of chartID as started.
func (s *Store) SetAnimateStarted(chartID string) {
	if st, ok := s.charts[chartID]; ok {
		st.lifecycle.AnimateStarted = true
	}
}

// SetAnimateCompleted marks the label animation of chartID as settled.
// Layout passes after this also hide labels outside the chart area.
func (s *Store) SetAnimateCompleted(chartID string) {
	if st, ok := s.charts[chartID]; ok {
		st.lifecycle.AnimateStarted = true
		st.lifecycle.AnimateCompleted = true
	}
}

// SetCancelled sets or clears the cancellation flag of chartID.
func (s *Store) SetCancelled(chartID string, cancelled bool) {
	if st, ok := s.charts[chartID]; ok {
		st.lifecycle.Cancelled = cancelled
	}
}

// SetUsedShrink records whether chartID shrank its radius to fit labels.
func (s *Store) SetUsedShrink(chartID string, used bool) {
	if st, ok := s.charts[chartID]; ok {
		st.lifecycle.UsedShrink = used
	}
}
