package settings

import (
	"context"
	"strings"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/cache"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/logger"
	"go.uber.org/zap"
)

const (
	cacheKey = "settings:system"
	cacheTTL = 30 * time.Second
)

var log = logger.NewLogger()

// Service interface
type Service interface {
	Get(ctx context.Context) (SystemSettings, error)
	Update(ctx context.Context, actor user.Actor, s SystemSettings) (SystemSettings, error)
	ListPermissions(ctx context.Context) ([]ComponentPermission, error)
	SetPermission(ctx context.Context, actor user.Actor, component string, minRole user.Role) (*ComponentPermission, error)
	RemovePermission(ctx context.Context, actor user.Actor, component string) error
}

type service struct {
	repo  Repository
	cache *cache.Client
}

// NewService creates a settings service. cache may be nil; settings then load
// from the database on every call.
func NewService(repo Repository, c *cache.Client) Service {
	return &service{repo: repo, cache: c}
}

// Get loads the typed settings snapshot, preferring the cache. Cache errors
// are soft and fall through to the database.
func (s *service) Get(ctx context.Context) (SystemSettings, error) {
	if s.cache != nil {
		var cached SystemSettings
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return DefaultSettings(), err
	}
	snapshot := fromRows(rows)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, snapshot, cacheTTL); err != nil {
			log.Warn("Failed to cache settings snapshot", zap.Error(err))
		}
	}
	return snapshot, nil
}

func (s *service) Update(ctx context.Context, actor user.Actor, in SystemSettings) (SystemSettings, error) {
	if !actor.Role.AtLeast(user.RoleSuperadmin) {
		return SystemSettings{}, ErrForbidden
	}
	if in.DeadlineGraceDays < 0 {
		return SystemSettings{}, ErrInvalidInput
	}

	if err := s.repo.UpsertMany(ctx, in.toRows(), actor.ID); err != nil {
		return SystemSettings{}, err
	}

	if s.cache != nil {
		s.cache.Delete(ctx, cacheKey)
	}
	return in, nil
}

func (s *service) ListPermissions(ctx context.Context) ([]ComponentPermission, error) {
	return s.repo.FindPermissions(ctx)
}

func (s *service) SetPermission(ctx context.Context, actor user.Actor, component string, minRole user.Role) (*ComponentPermission, error) {
	if !actor.Role.AtLeast(user.RoleSuperadmin) {
		return nil, ErrForbidden
	}
	component = strings.TrimSpace(component)
	if component == "" {
		return nil, ErrInvalidComponent
	}
	if !minRole.IsValid() {
		return nil, ErrInvalidInput
	}

	perm := &ComponentPermission{
		Component: component,
		MinRole:   minRole,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.UpsertPermission(ctx, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

func (s *service) RemovePermission(ctx context.Context, actor user.Actor, component string) error {
	if !actor.Role.AtLeast(user.RoleSuperadmin) {
		return ErrForbidden
	}
	return s.repo.DeletePermission(ctx, component)
}
