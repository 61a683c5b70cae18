package models

import "sync"

// TimeSeries is the append-only record of a monitoring session: an ordered
// sequence of samples plus an ordered sequence of annotations. The sampler
// is the only caller of Append, the annotation listener the only caller of
// Annotate; one mutex serializes the two append paths. Historical entries
// are never mutated.
type TimeSeries struct {
	mu          sync.Mutex
	samples     []MetricSample
	annotations []Annotation
}

// NewTimeSeries returns an empty series.
func NewTimeSeries() *TimeSeries {
	return &TimeSeries{}
}

// Append adds one sample to the series.
func (ts *TimeSeries) Append(s MetricSample) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.samples = append(ts.samples, s)
}

// Annotate attaches a label to the most recently appended sample. When no
// sample exists yet there is nothing to anchor to and the annotation is
// dropped; Annotate reports whether the annotation was recorded.
func (ts *TimeSeries) Annotate(label string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if len(ts.samples) == 0 {
		return false
	}
	ts.annotations = append(ts.annotations, Annotation{
		SampleIndex: len(ts.samples) - 1,
		Label:       label,
	})
	return true
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.samples)
}

// AnnotationCount returns the number of recorded annotations.
func (ts *TimeSeries) AnnotationCount() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.annotations)
}

// Last returns the most recent sample, if any.
func (ts *TimeSeries) Last() (MetricSample, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if len(ts.samples) == 0 {
		return MetricSample{}, false
	}
	return ts.samples[len(ts.samples)-1], true
}

// Samples returns a copy of the sample sequence.
func (ts *TimeSeries) Samples() []MetricSample {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]MetricSample, len(ts.samples))
	copy(out, ts.samples)
	return out
}

// Annotations returns a copy of the annotation sequence.
func (ts *TimeSeries) Annotations() []Annotation {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]Annotation, len(ts.annotations))
	copy(out, ts.annotations)
	return out
}
