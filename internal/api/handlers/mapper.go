package handlers

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/dto"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/actionitem"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/dailywork"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/objective"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

func jsonToStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// ProfileToResponse converts a profile to its API representation
func ProfileToResponse(p *user.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		Role:        string(p.Role),
		BannedUntil: p.BannedUntil,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ObjectiveToResponse converts an objective with its progress to its API
// representation
func ObjectiveToResponse(o objective.ObjectiveWithProgress) dto.ObjectiveResponse {
	return dto.ObjectiveResponse{
		ID:            o.Objective.ID,
		Title:         o.Objective.Title,
		Description:   o.Objective.Description,
		Weightage:     o.Objective.Weightage,
		NumActivities: o.Objective.NumActivities,
		OwnerID:       o.Objective.OwnerID,
		CreatorID:     o.Objective.CreatorID,
		TargetDate:    o.Objective.TargetDate,
		Progress: dto.ProgressResponse{
			Planned:         o.Progress.Planned,
			Effective:       o.Progress.Effective,
			CumulativeCount: o.Progress.CumulativeCount,
		},
		CreatedAt: o.Objective.CreatedAt,
		UpdatedAt: o.Objective.UpdatedAt,
	}
}

// UpdateToResponse converts a progress update to its API representation
func UpdateToResponse(u *objective.ObjectiveUpdate) dto.UpdateResponse {
	return dto.UpdateResponse{
		ID:            u.ID,
		ObjectiveID:   u.ObjectiveID,
		UserID:        u.UserID,
		AchievedCount: u.AchievedCount,
		UpdateDate:    u.UpdateDate,
		Efficiency:    u.Efficiency,
		Photos:        jsonToStrings(u.Photos),
		Comments:      u.Comments,
		CreatedAt:     u.CreatedAt,
	}
}

// ActionItemToResponse converts an action item to its API representation
func ActionItemToResponse(a *actionitem.ActionItem) dto.ActionItemResponse {
	return dto.ActionItemResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		TargetDate:  a.TargetDate,
		Priority:    string(a.Priority),
		Status:      string(a.Status),
		AssigneeID:  a.AssigneeID,
		VerifierID:  a.VerifierID,
		CreatorID:   a.CreatorID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ItemDetailsToResponse converts an action item with its latest closure and
// verification to its API representation
func ItemDetailsToResponse(d *actionitem.ItemDetails) dto.ActionItemDetailsResponse {
	resp := dto.ActionItemDetailsResponse{
		Item: ActionItemToResponse(&d.Item),
	}
	if d.Closure != nil {
		resp.Closure = &dto.ClosureResponse{
			ID:          d.Closure.ID,
			ClosedBy:    d.Closure.ClosedBy,
			ClosureText: d.Closure.ClosureText,
			MediaURLs:   jsonToStrings(d.Closure.MediaURLs),
			CreatedAt:   d.Closure.CreatedAt,
		}
	}
	if d.Verification != nil {
		resp.Verification = &dto.VerificationResponse{
			ID:         d.Verification.ID,
			VerifiedBy: d.Verification.VerifiedBy,
			Approved:   d.Verification.Approved,
			Comments:   d.Verification.Comments,
			CreatedAt:  d.Verification.CreatedAt,
		}
	}
	return resp
}

// DailyWorkToResponse converts a daily work entry to its API representation
func DailyWorkToResponse(e *dailywork.Entry) dto.DailyWorkResponse {
	return dto.DailyWorkResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		WorkDate:     e.WorkDate,
		Description:  e.Description,
		AdminComment: e.AdminComment,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
