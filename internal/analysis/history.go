// internal/analysis/history.go
package analysis

// bpmHistory is a bounded FIFO of accepted BPM candidates.
type bpmHistory struct {
	capacity int
	values   []float64
}

func newBPMHistory(capacity int) *bpmHistory {
	if capacity <= 0 {
		capacity = 1
	}
	return &bpmHistory{capacity: capacity, values: make([]float64, 0, capacity)}
}

func (h *bpmHistory) push(v float64) {
	if len(h.values) == h.capacity {
		copy(h.values, h.values[1:])
		h.values = h.values[:h.capacity-1]
	}
	h.values = append(h.values, v)
}

func (h *bpmHistory) len() int      { return len(h.values) }
func (h *bpmHistory) full() bool    { return len(h.values) >= h.capacity }
func (h *bpmHistory) mean() float64 { return mean(h.values) }
func (h *bpmHistory) clear()        { h.values = h.values[:0] }

func (h *bpmHistory) snapshot() []float64 {
	out := make([]float64, len(h.values))
	copy(out, h.values)
	return out
}
