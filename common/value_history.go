package common

import "time"

const (
	MAX_HISTORY = 256
)

// ValueHistory is a fixed size ring of the most recent samples. Statistics
// only consider the samples recorded so far.
type ValueHistory struct {
	m_samples  []float64
	m_hsamples int
	m_count    int
}

func NewValueHistory() *ValueHistory {
	return &ValueHistory{m_samples: make([]float64, MAX_HISTORY)}
}

func (h *ValueHistory) AddSample(val float64) {
	h.m_hsamples = (h.m_hsamples + MAX_HISTORY - 1) % MAX_HISTORY
	h.m_samples[h.m_hsamples] = val
	if h.m_count < MAX_HISTORY {
		h.m_count++
	}
}

// AddDuration records d in milliseconds.
func (h *ValueHistory) AddDuration(d time.Duration) {
	h.AddSample(float64(d) / float64(time.Millisecond))
}

func (h *ValueHistory) GetSampleCount() int {
	return h.m_count
}

// GetSample returns the i-th most recent sample, 0 being the newest.
func (h *ValueHistory) GetSample(i int) float64 {
	return h.m_samples[(h.m_hsamples+i)%MAX_HISTORY]
}

func (h *ValueHistory) GetSampleMin() float64 {
	if h.m_count == 0 {
		return 0
	}
	val := h.GetSample(0)
	for i := 1; i < h.m_count; i++ {
		val = min(val, h.GetSample(i))
	}
	return val
}

func (h *ValueHistory) GetSampleMax() float64 {
	if h.m_count == 0 {
		return 0
	}
	val := h.GetSample(0)
	for i := 1; i < h.m_count; i++ {
		val = max(val, h.GetSample(i))
	}
	return val
}

func (h *ValueHistory) GetAverage() float64 {
	if h.m_count == 0 {
		return 0
	}
	val := 0.0
	for i := 0; i < h.m_count; i++ {
		val += h.GetSample(i)
	}
	return val / float64(h.m_count)
}
