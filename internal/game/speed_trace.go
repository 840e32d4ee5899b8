package game

// speedTrace records the last N scroll velocities into a ring buffer so the
// HUD can draw a short history next to the depth map.
type speedTrace struct {
	buffer    []float64
	nextIndex int
	filled    int
}

func newSpeedTrace(ringSize int) *speedTrace {
	if ringSize < 1 {
		ringSize = 1
	}
	return &speedTrace{buffer: make([]float64, ringSize)}
}

func (t *speedTrace) push(v float64) {
	t.buffer[t.nextIndex] = v
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.filled < len(t.buffer) {
		t.filled++
	}
}

func (t *speedTrace) reset() {
	t.nextIndex = 0
	t.filled = 0
}

// snapshot returns up to the last n samples, oldest first.
func (t *speedTrace) snapshot(n int) []float64 {
	if n > t.filled {
		n = t.filled
	}
	out := make([]float64, 0, n)
	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// peak is the largest sample currently held.
func (t *speedTrace) peak() float64 {
	var m float64
	for _, v := range t.snapshot(t.filled) {
		if v > m {
			m = v
		}
	}
	return m
}
