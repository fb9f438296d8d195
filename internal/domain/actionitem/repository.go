package actionitem

import (
	"context"
	"errors"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for action item persistence operations
type Repository interface {
	Create(ctx context.Context, item *ActionItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*ActionItem, error)
	FindAll(ctx context.Context, filter ItemFilter) ([]ActionItem, int64, error)
	Update(ctx context.Context, item *ActionItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateClosure(ctx context.Context, closure *Closure) error
	LatestClosure(ctx context.Context, itemID uuid.UUID) (*Closure, error)
	CreateVerification(ctx context.Context, verification *Verification) error
	LatestVerification(ctx context.Context, itemID uuid.UUID) (*Verification, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *ActionItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*ActionItem, error) {
	var item ActionItem
	result := r.db.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

func (r *repository) FindAll(ctx context.Context, filter ItemFilter) ([]ActionItem, int64, error) {
	var items []ActionItem
	var total int64
	query := r.db.WithContext(ctx).Model(&ActionItem{})

	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("target_date asc, created_at asc").
		Offset(filter.Page * filter.PageSize).
		Limit(filter.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *repository) Update(ctx context.Context, item *ActionItem) error {
	result := r.db.WithContext(ctx).Save(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ActionItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) CreateClosure(ctx context.Context, closure *Closure) error {
	return r.db.WithContext(ctx).Create(closure).Error
}

// LatestClosure returns the most recent closure for the item, or nil when
// none exists. Closures are history; the newest row wins.
func (r *repository) LatestClosure(ctx context.Context, itemID uuid.UUID) (*Closure, error) {
	var closure Closure
	result := r.db.WithContext(ctx).
		Where("action_item_id = ?", itemID).
		Order("created_at desc").
		First(&closure)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &closure, nil
}

func (r *repository) CreateVerification(ctx context.Context, verification *Verification) error {
	return r.db.WithContext(ctx).Create(verification).Error
}

// LatestVerification returns the most recent verification for the item, or
// nil when none exists.
func (r *repository) LatestVerification(ctx context.Context, itemID uuid.UUID) (*Verification, error) {
	var verification Verification
	result := r.db.WithContext(ctx).
		Where("action_item_id = ?", itemID).
		Order("created_at desc").
		First(&verification)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &verification, nil
}
