package tracking

import (
	"dispatch/internal/core/domain/model/location"
)

// TrailCap is the maximum number of samples retained per job for path display.
const TrailCap = 20

// Trail is a bounded, ordered list of location samples for one job.
// Appending beyond TrailCap evicts the oldest sample first.
type Trail struct {
	samples []location.Sample
}

// Append adds a sample to the end of the trail, evicting the oldest
// sample when the trail is full.
func (t *Trail) Append(sample location.Sample) {
	if len(t.samples) == TrailCap {
		copy(t.samples, t.samples[1:])
		t.samples[len(t.samples)-1] = sample
		return
	}
	t.samples = append(t.samples, sample)
}

// Samples returns the retained samples oldest-first.
// The returned slice is a copy; mutating it does not affect the trail.
func (t *Trail) Samples() []location.Sample {
	out := make([]location.Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

// Len returns the number of retained samples.
func (t *Trail) Len() int {
	return len(t.samples)
}
