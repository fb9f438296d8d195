package report

import (
	"github.com/google/uuid"
)

// StatusBucket classifies an objective by how effective progress tracks
// planned progress.
type StatusBucket string

const (
	BucketOnTrack   StatusBucket = "on_track"
	BucketAtRisk    StatusBucket = "at_risk"
	BucketOffTrack  StatusBucket = "off_track"
	BucketCompleted StatusBucket = "completed"
)

// atRiskGap is the planned-vs-effective gap, in percentage points, at which
// an objective stops counting as on track. Twice the gap counts as off track.
const atRiskGap = 10

// bucketFor classifies one objective's progress pair.
func bucketFor(planned, effective int) StatusBucket {
	switch {
	case effective >= 100:
		return BucketCompleted
	case planned-effective <= atRiskGap:
		return BucketOnTrack
	case planned-effective <= 2*atRiskGap:
		return BucketAtRisk
	default:
		return BucketOffTrack
	}
}

// ProgressRow is one objective in the progress report.
type ProgressRow struct {
	ObjectiveID uuid.UUID    `json:"objective_id"`
	Title       string       `json:"title"`
	OwnerID     uuid.UUID    `json:"owner_id"`
	OwnerName   string       `json:"owner_name"`
	Weightage   int          `json:"weightage"`
	Planned     int          `json:"planned"`
	Effective   int          `json:"effective"`
	Bucket      StatusBucket `json:"bucket"`
}

// ActionItemCounts breaks open work down by status.
type ActionItemCounts struct {
	Open                int `json:"open"`
	PendingVerification int `json:"pending_verification"`
	Closed              int `json:"closed"`
	Verified            int `json:"verified"`
}

// DashboardSummary is the JSON payload behind the admin dashboard. Overall
// scores are weightage-weighted means across all objectives.
type DashboardSummary struct {
	TotalObjectives  int              `json:"total_objectives"`
	OverallPlanned   int              `json:"overall_planned"`
	OverallEffective int              `json:"overall_effective"`
	Buckets          map[string]int   `json:"buckets"`
	ActionItems      ActionItemCounts `json:"action_items"`
	TotalUsers       int              `json:"total_users"`
	GeneratedAt      string           `json:"generated_at"`
}
