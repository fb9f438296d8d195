package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/actionitem"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/objective"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/cache"
)

var ErrForbidden = errors.New("insufficient role")

const (
	dashboardCacheKey = "report:dashboard"
	dashboardCacheTTL = 30 * time.Second

	// listPageSize is the page size used when walking the full objective
	// and action item lists for aggregation.
	listPageSize = 100
)

// Service produces the admin dashboard summary and the downloadable
// objective progress report.
type Service interface {
	Dashboard(ctx context.Context, actor user.Actor) (*DashboardSummary, error)
	ProgressRows(ctx context.Context, actor user.Actor) ([]ProgressRow, error)
	ProgressCSV(ctx context.Context, actor user.Actor) ([]byte, error)
}

type service struct {
	objectives objective.Service
	items      actionitem.Service
	users      user.Repository
	cache      *cache.Client
	log        *logrus.Logger
	now        func() time.Time
}

// NewService builds the report service. cache may be nil; the dashboard is
// then rebuilt on every call.
func NewService(objectives objective.Service, items actionitem.Service, users user.Repository, c *cache.Client) Service {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	return &service{
		objectives: objectives,
		items:      items,
		users:      users,
		cache:      c,
		log:        log,
		now:        time.Now,
	}
}

// ProgressRows computes one report row per objective, with the owner's name
// resolved and the progress pair bucketed. Admin and above only.
func (s *service) ProgressRows(ctx context.Context, actor user.Actor) ([]ProgressRow, error) {
	if !actor.Role.AtLeast(user.RoleAdmin) {
		return nil, ErrForbidden
	}

	objectives, err := s.allObjectives(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	rows := make([]ProgressRow, 0, len(objectives))
	for _, o := range objectives {
		name, ok := names[o.Objective.OwnerID]
		if !ok {
			profile, err := s.users.FindByID(ctx, o.Objective.OwnerID)
			switch {
			case err == nil:
				name = profile.FullName
			case errors.Is(err, user.ErrProfileNotFound):
				// Owner deleted after the objective was created; keep the
				// row with a blank name rather than losing the report.
				name = ""
			default:
				return nil, err
			}
			names[o.Objective.OwnerID] = name
		}
		rows = append(rows, ProgressRow{
			ObjectiveID: o.Objective.ID,
			Title:       o.Objective.Title,
			OwnerID:     o.Objective.OwnerID,
			OwnerName:   name,
			Weightage:   o.Objective.Weightage,
			Planned:     o.Progress.Planned,
			Effective:   o.Progress.Effective,
			Bucket:      bucketFor(o.Progress.Planned, o.Progress.Effective),
		})
	}
	return rows, nil
}

// ProgressCSV renders the progress report as a CSV document with a header
// row and a trailing weighted-overall row.
func (s *service) ProgressCSV(ctx context.Context, actor user.Actor) ([]byte, error) {
	rows, err := s.ProgressRows(ctx, actor)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"objective", "owner", "weightage", "planned %", "effective %", "status"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.Title,
			r.OwnerName,
			strconv.Itoa(r.Weightage),
			strconv.Itoa(r.Planned),
			strconv.Itoa(r.Effective),
			string(r.Bucket),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	planned, effective := weightedOverall(rows)
	if err := w.Write([]string{"OVERALL", "", "", strconv.Itoa(planned), strconv.Itoa(effective), ""}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"rows": len(rows),
		"by":   actor.Email,
	}).Info("progress report generated")
	return buf.Bytes(), nil
}

// Dashboard assembles the summary counters, serving from cache when a fresh
// copy exists. Cache faults are soft; the summary is rebuilt from the
// source services.
func (s *service) Dashboard(ctx context.Context, actor user.Actor) (*DashboardSummary, error) {
	if !actor.Role.AtLeast(user.RoleAdmin) {
		return nil, ErrForbidden
	}

	if s.cache != nil {
		var cached DashboardSummary
		if err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	rows, err := s.ProgressRows(ctx, actor)
	if err != nil {
		return nil, err
	}

	planned, effective := weightedOverall(rows)
	summary := &DashboardSummary{
		TotalObjectives:  len(rows),
		OverallPlanned:   planned,
		OverallEffective: effective,
		Buckets:          make(map[string]int, 4),
		GeneratedAt:      s.now().UTC().Format(time.RFC3339),
	}
	for _, r := range rows {
		summary.Buckets[string(r.Bucket)]++
	}

	if summary.ActionItems, err = s.countActionItems(ctx); err != nil {
		return nil, err
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	summary.TotalUsers = int(totalUsers)

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, dashboardCacheTTL); err != nil {
			s.log.WithError(err).Warn("dashboard cache write failed")
		}
	}
	return summary, nil
}

// allObjectives walks every page of the objective list.
func (s *service) allObjectives(ctx context.Context) ([]objective.ObjectiveWithProgress, error) {
	var all []objective.ObjectiveWithProgress
	for page := 0; ; page++ {
		batch, total, err := s.objectives.List(ctx, objective.ObjectiveFilter{
			Page:     page,
			PageSize: listPageSize,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}

func (s *service) countActionItems(ctx context.Context) (ActionItemCounts, error) {
	var counts ActionItemCounts
	for _, status := range []actionitem.Status{
		actionitem.StatusOpen,
		actionitem.StatusPendingVerification,
		actionitem.StatusClosed,
		actionitem.StatusVerified,
	} {
		st := status
		_, total, err := s.items.List(ctx, actionitem.ItemFilter{PageSize: 1, Status: &st})
		if err != nil {
			return counts, err
		}
		switch status {
		case actionitem.StatusOpen:
			counts.Open = int(total)
		case actionitem.StatusPendingVerification:
			counts.PendingVerification = int(total)
		case actionitem.StatusClosed:
			counts.Closed = int(total)
		case actionitem.StatusVerified:
			counts.Verified = int(total)
		}
	}
	return counts, nil
}

// weightedOverall computes the weightage-weighted mean of the planned and
// effective percentages. Zero total weight yields zero.
func weightedOverall(rows []ProgressRow) (planned, effective int) {
	totalWeight := 0
	plannedSum, effectiveSum := 0, 0
	for _, r := range rows {
		totalWeight += r.Weightage
		plannedSum += r.Planned * r.Weightage
		effectiveSum += r.Effective * r.Weightage
	}
	if totalWeight == 0 {
		return 0, 0
	}
	return (plannedSum + totalWeight/2) / totalWeight, (effectiveSum + totalWeight/2) / totalWeight
}
