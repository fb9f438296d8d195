package objective

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var programStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}

func eff(v int) *int { return &v }

func TestPlannedProgress(t *testing.T) {
	target := day(time.December, 31)

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{"before program start", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), 0},
		{"at program start", programStart, 0},
		{"roughly mid year", day(time.July, 2), 50},
		{"at target", target, 100},
		{"after target", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlannedProgress(target, programStart, tt.now))
		})
	}
}

func TestPlannedProgressMonotonic(t *testing.T) {
	target := day(time.September, 30)

	prev := 0
	for now := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC); now.Before(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)); now = now.AddDate(0, 0, 7) {
		got := PlannedProgress(target, programStart, now)
		assert.GreaterOrEqual(t, got, prev, "planned progress regressed at %s", now)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
}

func TestPlannedProgressDegenerateWindow(t *testing.T) {
	// Target at or before the start collapses the window; anything at or
	// past the start is complete
	assert.Equal(t, 100, PlannedProgress(programStart, programStart, programStart))
	assert.Equal(t, 0, PlannedProgress(programStart, programStart, programStart.Add(-time.Hour)))
}

func TestEffectiveProgress(t *testing.T) {
	tests := []struct {
		name          string
		updates       []ObjectiveUpdate
		numActivities int
		expected      int
	}{
		{
			name:          "no updates",
			updates:       nil,
			numActivities: 10,
			expected:      0,
		},
		{
			name: "single update default efficiency",
			updates: []ObjectiveUpdate{
				{AchievedCount: 3, UpdateDate: day(time.February, 1)},
			},
			numActivities: 10,
			expected:      30,
		},
		{
			name: "deltas accumulate across updates",
			updates: []ObjectiveUpdate{
				{AchievedCount: 3, UpdateDate: day(time.February, 1)},
				{AchievedCount: 4, UpdateDate: day(time.March, 1)},
			},
			numActivities: 10,
			expected:      70,
		},
		{
			name: "efficiency of the latest update weights the total",
			updates: []ObjectiveUpdate{
				{AchievedCount: 5, UpdateDate: day(time.February, 1), Efficiency: eff(80)},
				{AchievedCount: 5, UpdateDate: day(time.April, 1), Efficiency: eff(50)},
			},
			numActivities: 20,
			expected:      25,
		},
		{
			name: "latest is by update date, not insertion order",
			updates: []ObjectiveUpdate{
				{AchievedCount: 5, UpdateDate: day(time.April, 1), Efficiency: eff(50)},
				{AchievedCount: 5, UpdateDate: day(time.February, 1), Efficiency: eff(80)},
			},
			numActivities: 20,
			expected:      25,
		},
		{
			name: "clamped at exactly 100 when complete",
			updates: []ObjectiveUpdate{
				{AchievedCount: 12, UpdateDate: day(time.February, 1)},
			},
			numActivities: 10,
			expected:      100,
		},
		{
			name: "low efficiency can pull an overshoot back under 100",
			updates: []ObjectiveUpdate{
				{AchievedCount: 15, UpdateDate: day(time.February, 1), Efficiency: eff(60)},
			},
			numActivities: 10,
			expected:      90,
		},
		{
			name: "zero num_activities yields zero instead of panicking",
			updates: []ObjectiveUpdate{
				{AchievedCount: 5, UpdateDate: day(time.February, 1)},
			},
			numActivities: 0,
			expected:      0,
		},
		{
			name: "rounds to nearest integer",
			updates: []ObjectiveUpdate{
				{AchievedCount: 1, UpdateDate: day(time.February, 1)},
			},
			numActivities: 3,
			expected:      33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveProgress(tt.updates, tt.numActivities))
		})
	}
}

func TestEffectiveProgressZeroDeltaAppendInvariant(t *testing.T) {
	updates := []ObjectiveUpdate{
		{AchievedCount: 4, UpdateDate: day(time.February, 1), Efficiency: eff(75)},
		{AchievedCount: 2, UpdateDate: day(time.March, 1), Efficiency: eff(75)},
	}
	before := EffectiveProgress(updates, 12)

	appended := append(updates, ObjectiveUpdate{
		AchievedCount: 0,
		UpdateDate:    day(time.May, 1),
		Efficiency:    eff(75),
	})
	assert.Equal(t, before, EffectiveProgress(appended, 12))
}

func TestEffectiveProgressDoesNotMutateInput(t *testing.T) {
	updates := []ObjectiveUpdate{
		{AchievedCount: 2, UpdateDate: day(time.March, 1)},
		{AchievedCount: 1, UpdateDate: day(time.February, 1)},
	}
	EffectiveProgress(updates, 10)
	assert.Equal(t, day(time.March, 1), updates[0].UpdateDate, "input order preserved")
}

func TestIsQuarterEnd(t *testing.T) {
	assert.True(t, IsQuarterEnd(day(time.March, 31), 2025))
	assert.True(t, IsQuarterEnd(day(time.June, 30), 2025))
	assert.True(t, IsQuarterEnd(day(time.September, 30), 2025))
	assert.True(t, IsQuarterEnd(day(time.December, 31), 2025))
	assert.False(t, IsQuarterEnd(day(time.December, 30), 2025))
	assert.False(t, IsQuarterEnd(day(time.January, 31), 2025))
	assert.False(t, IsQuarterEnd(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), 2025))
}
