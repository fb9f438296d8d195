package settings

import (
	"context"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for settings persistence operations
type Repository interface {
	FindAll(ctx context.Context) ([]Setting, error)
	UpsertMany(ctx context.Context, values map[string]string, updatedBy uuid.UUID) error
	FindPermissions(ctx context.Context) ([]ComponentPermission, error)
	UpsertPermission(ctx context.Context, perm *ComponentPermission) error
	DeletePermission(ctx context.Context, component string) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Setting, error) {
	var rows []Setting
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpsertMany(ctx context.Context, values map[string]string, updatedBy uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			row := Setting{
				ID:        uuid.New(),
				Key:       key,
				Value:     value,
				UpdatedBy: updatedBy,
				UpdatedAt: time.Now().UTC(),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) FindPermissions(ctx context.Context) ([]ComponentPermission, error) {
	var perms []ComponentPermission
	if err := r.db.WithContext(ctx).Order("component asc").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *repository) UpsertPermission(ctx context.Context, perm *ComponentPermission) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "component"}},
		DoUpdates: clause.AssignmentColumns([]string{"min_role", "updated_at"}),
	}).Create(perm).Error
}

func (r *repository) DeletePermission(ctx context.Context, component string) error {
	result := r.db.WithContext(ctx).Where("component = ?", component).Delete(&ComponentPermission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPermNotFound
	}
	return nil
}
