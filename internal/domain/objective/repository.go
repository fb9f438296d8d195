package objective

import (
	"context"
	"errors"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for objective persistence operations
type Repository interface {
	Create(ctx context.Context, obj *Objective) error
	FindByID(ctx context.Context, id uuid.UUID) (*Objective, error)
	FindAll(ctx context.Context, filter ObjectiveFilter) ([]Objective, int64, error)
	Update(ctx context.Context, obj *Objective) error
	DeleteWithUpdates(ctx context.Context, id uuid.UUID) error

	CreateUpdate(ctx context.Context, update *ObjectiveUpdate) error
	FindUpdateByID(ctx context.Context, id uuid.UUID) (*ObjectiveUpdate, error)
	FindUpdates(ctx context.Context, objectiveID uuid.UUID) ([]ObjectiveUpdate, error)
	SaveUpdate(ctx context.Context, update *ObjectiveUpdate) error
	DeleteUpdate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, obj *Objective) error {
	return r.db.WithContext(ctx).Create(obj).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Objective, error) {
	var obj Objective
	result := r.db.WithContext(ctx).First(&obj, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrObjectiveNotFound
		}
		return nil, result.Error
	}
	return &obj, nil
}

func (r *repository) FindAll(ctx context.Context, filter ObjectiveFilter) ([]Objective, int64, error) {
	var objectives []Objective
	var total int64
	query := r.db.WithContext(ctx).Model(&Objective{})

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("target_date asc, created_at asc").
		Offset(filter.Page * filter.PageSize).
		Limit(filter.PageSize).
		Find(&objectives).Error
	if err != nil {
		return nil, 0, err
	}

	return objectives, total, nil
}

func (r *repository) Update(ctx context.Context, obj *Objective) error {
	result := r.db.WithContext(ctx).Save(obj)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrObjectiveNotFound
	}
	return nil
}

// DeleteWithUpdates removes an objective and all of its updates in one
// transaction, so a deleted objective never leaves orphaned updates behind.
func (r *repository) DeleteWithUpdates(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("objective_id = ?", id).Delete(&ObjectiveUpdate{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Objective{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrObjectiveNotFound
		}
		return nil
	})
}

func (r *repository) CreateUpdate(ctx context.Context, update *ObjectiveUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *repository) FindUpdateByID(ctx context.Context, id uuid.UUID) (*ObjectiveUpdate, error) {
	var update ObjectiveUpdate
	result := r.db.WithContext(ctx).First(&update, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUpdateNotFound
		}
		return nil, result.Error
	}
	return &update, nil
}

// FindUpdates returns every update for the objective in date order, with
// insertion order breaking ties.
func (r *repository) FindUpdates(ctx context.Context, objectiveID uuid.UUID) ([]ObjectiveUpdate, error) {
	var updates []ObjectiveUpdate
	err := r.db.WithContext(ctx).
		Where("objective_id = ?", objectiveID).
		Order("update_date asc, created_at asc").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *repository) SaveUpdate(ctx context.Context, update *ObjectiveUpdate) error {
	result := r.db.WithContext(ctx).Save(update)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUpdateNotFound
	}
	return nil
}

func (r *repository) DeleteUpdate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ObjectiveUpdate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUpdateNotFound
	}
	return nil
}
