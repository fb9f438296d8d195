package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		name      string
		planned   int
		effective int
		expected  StatusBucket
	}{
		{"finished", 50, 100, BucketCompleted},
		{"ahead of plan", 40, 60, BucketOnTrack},
		{"exactly on plan", 50, 50, BucketOnTrack},
		{"within grace gap", 50, 40, BucketOnTrack},
		{"just past grace gap", 50, 39, BucketAtRisk},
		{"double gap boundary", 60, 40, BucketAtRisk},
		{"far behind", 80, 40, BucketOffTrack},
		{"untouched late objective", 90, 0, BucketOffTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bucketFor(tt.planned, tt.effective))
		})
	}
}

func TestWeightedOverall(t *testing.T) {
	rows := []ProgressRow{
		{Weightage: 30, Planned: 100, Effective: 50},
		{Weightage: 10, Planned: 40, Effective: 100},
	}

	planned, effective := weightedOverall(rows)
	assert.Equal(t, 85, planned, "(100*30+40*10)/40")
	assert.Equal(t, 63, effective, "(50*30+100*10)/40 rounded")
}

func TestWeightedOverallEmpty(t *testing.T) {
	planned, effective := weightedOverall(nil)
	assert.Zero(t, planned)
	assert.Zero(t, effective)
}
