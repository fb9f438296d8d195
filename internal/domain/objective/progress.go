package objective

import (
	"math"
	"sort"
	"time"
)

// DefaultEfficiency is applied when an update carries no efficiency value.
const DefaultEfficiency = 100

// PlannedProgress returns the progress expected purely from elapsed time
// between start and target, as an integer percentage in [0,100]. It is
// monotonically non-decreasing as now advances.
func PlannedProgress(target, start, now time.Time) int {
	if now.Before(start) {
		return 0
	}
	if now.After(target) {
		return 100
	}

	total := target.Sub(start)
	if total <= 0 {
		return 100
	}

	elapsed := now.Sub(start)
	pct := int(math.Round(100 * float64(elapsed) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// EffectiveProgress derives the efficiency-weighted achievement percentage
// from the complete update list. AchievedCount values are deltas and sum
// across updates; the efficiency of the latest update (by UpdateDate, stable
// for ties) weights the whole cumulative figure. The result is capped at 100.
//
// Callers must guarantee numActivities >= 1 at objective creation; a
// non-positive value yields 0 rather than a panic.
func EffectiveProgress(updates []ObjectiveUpdate, numActivities int) int {
	if len(updates) == 0 || numActivities < 1 {
		return 0
	}

	sorted := make([]ObjectiveUpdate, len(updates))
	copy(sorted, updates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdateDate.Before(sorted[j].UpdateDate)
	})

	cumulative := 0
	for _, u := range sorted {
		cumulative += u.AchievedCount
	}

	efficiency := DefaultEfficiency
	if latest := sorted[len(sorted)-1]; latest.Efficiency != nil {
		efficiency = *latest.Efficiency
	}

	raw := 100 * float64(cumulative) / float64(numActivities)
	effective := raw * float64(efficiency) / 100

	return int(math.Round(math.Min(100, effective)))
}

// CumulativeCount sums the achieved deltas over all updates.
func CumulativeCount(updates []ObjectiveUpdate) int {
	total := 0
	for _, u := range updates {
		total += u.AchievedCount
	}
	return total
}

// ComputeProgress assembles the derived progress view for one objective.
func ComputeProgress(o Objective, updates []ObjectiveUpdate, start, now time.Time) Progress {
	return Progress{
		Planned:         PlannedProgress(o.TargetDate, start, now),
		Effective:       EffectiveProgress(updates, o.NumActivities),
		CumulativeCount: CumulativeCount(updates),
	}
}
