package tui

import (
	"iter"
	"slices"

	"github.com/agbru/puzzlebook/internal/seq"
)

// sparkLevels are the eight block heights of a sparkline, lowest first.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RingBuffer keeps the most recent samples of a metric, up to its capacity.
type RingBuffer struct {
	data  []float64
	head  int // next write position
	count int
}

// NewRingBuffer creates a ring buffer holding at least one sample.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(capacity, 1))}
}

// Push appends a sample, evicting the oldest when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

// Len returns the number of stored samples.
func (r *RingBuffer) Len() int { return r.count }

// Cap returns the capacity.
func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the newest sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.head-1+len(r.data))%len(r.data)]
}

// All yields the samples oldest first.
func (r *RingBuffer) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		start := r.head - r.count + len(r.data)
		for i := range seq.Range(r.count) {
			if !yield(r.data[(start+i)%len(r.data)]) {
				return
			}
		}
	}
}

// Slice returns the samples oldest first, or nil when empty.
func (r *RingBuffer) Slice() []float64 {
	return slices.Collect(r.All())
}

// Resize changes the capacity and keeps the newest samples that fit.
func (r *RingBuffer) Resize(capacity int) {
	capacity = max(capacity, 1)
	if capacity == len(r.data) {
		return
	}
	kept := r.Slice()
	kept = kept[max(len(kept)-capacity, 0):]
	r.data = make([]float64, capacity)
	r.head, r.count = 0, 0
	for _, v := range kept {
		r.Push(v)
	}
}

// Normalized returns the samples oldest first, scaled so that the peak
// maps to 100. An all-zero buffer is returned unscaled.
func (r *RingBuffer) Normalized() []float64 {
	peak := seq.Reduce(r.All(), func(acc, v float64) float64 { return max(acc, v) }, 0)
	values := r.Slice()
	if peak <= 0 {
		return values
	}
	for i := range values {
		values[i] = values[i] / peak * 100
	}
	return values
}

// RenderSparkline draws one block per value. Values are percentages and are
// clamped to [0, 100].
func RenderSparkline(values []float64) string {
	runes := make([]rune, len(values))
	top := len(sparkLevels) - 1
	for i, v := range values {
		level := int(min(max(v, 0), 100) / 100 * float64(top))
		runes[i] = sparkLevels[level]
	}
	return string(runes)
}
