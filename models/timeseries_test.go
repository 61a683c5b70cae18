package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(ts time.Time, memMB float64) MetricSample {
	return MetricSample{Timestamp: ts, MemoryMB: memMB}
}

func TestAnnotateBeforeFirstSampleIsDropped(t *testing.T) {
	ts := NewTimeSeries()

	assert.False(t, ts.Annotate("too early"))
	assert.Equal(t, 0, ts.AnnotationCount())
	assert.Empty(t, ts.Annotations())
}

func TestAnnotateAnchorsToLastSample(t *testing.T) {
	ts := NewTimeSeries()
	now := time.Now()

	ts.Append(sampleAt(now, 100))
	require.True(t, ts.Annotate("first"))

	ts.Append(sampleAt(now.Add(time.Second), 110))
	ts.Append(sampleAt(now.Add(2*time.Second), 120))
	require.True(t, ts.Annotate("third"))
	require.True(t, ts.Annotate("also third"))

	anns := ts.Annotations()
	require.Len(t, anns, 3)
	assert.Equal(t, Annotation{SampleIndex: 0, Label: "first"}, anns[0])
	assert.Equal(t, Annotation{SampleIndex: 2, Label: "third"}, anns[1])
	assert.Equal(t, Annotation{SampleIndex: 2, Label: "also third"}, anns[2])
}

func TestAnnotationIndexesAreMonotonic(t *testing.T) {
	ts := NewTimeSeries()
	now := time.Now()

	for i := 0; i < 5; i++ {
		ts.Append(sampleAt(now.Add(time.Duration(i)*time.Second), 100))
		require.True(t, ts.Annotate("note"))
	}

	anns := ts.Annotations()
	for i := 1; i < len(anns); i++ {
		assert.LessOrEqual(t, anns[i-1].SampleIndex, anns[i].SampleIndex)
	}
	last := anns[len(anns)-1]
	assert.Less(t, last.SampleIndex, ts.Len())
}

func TestLastAndLen(t *testing.T) {
	ts := NewTimeSeries()

	_, ok := ts.Last()
	assert.False(t, ok)
	assert.Equal(t, 0, ts.Len())

	now := time.Now()
	ts.Append(sampleAt(now, 100))
	ts.Append(sampleAt(now.Add(time.Second), 200))

	last, ok := ts.Last()
	require.True(t, ok)
	assert.Equal(t, 200.0, last.MemoryMB)
	assert.Equal(t, 2, ts.Len())
}

func TestSnapshotsAreCopies(t *testing.T) {
	ts := NewTimeSeries()
	ts.Append(sampleAt(time.Now(), 100))
	require.True(t, ts.Annotate("a"))

	samples := ts.Samples()
	samples[0].MemoryMB = 999
	anns := ts.Annotations()
	anns[0].Label = "mutated"

	fresh, _ := ts.Last()
	assert.Equal(t, 100.0, fresh.MemoryMB)
	assert.Equal(t, "a", ts.Annotations()[0].Label)
}

func TestPressureLevelString(t *testing.T) {
	assert.Equal(t, "Normal", PressureNormal.String())
	assert.Equal(t, "Warning", PressureWarning.String())
	assert.Equal(t, "Critical", PressureCritical.String())
}
