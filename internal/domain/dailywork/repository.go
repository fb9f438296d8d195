package dailywork

import (
	"context"
	"errors"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for daily work persistence operations
type Repository interface {
	Upsert(ctx context.Context, entry *Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindAll(ctx context.Context, filter EntryFilter) ([]Entry, int64, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

// upsertAssignments lists the columns replaced when an entry for the same
// (user, date) already exists. deleted_at must be among them: the unique
// index also covers soft-deleted rows, and the fresh entry's null deleted_at
// is what brings a previously deleted row back.
var upsertAssignments = []string{"description", "updated_at", "deleted_at"}

// Upsert inserts the entry or, when a row for (user, date) already exists,
// replaces its description.
func (r *repository) Upsert(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "work_date"}},
		DoUpdates: clause.AssignmentColumns(upsertAssignments),
	}).Create(entry).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	var entry Entry
	result := r.db.WithContext(ctx).First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

func (r *repository) FindAll(ctx context.Context, filter EntryFilter) ([]Entry, int64, error) {
	var entries []Entry
	var total int64
	query := r.db.WithContext(ctx).Model(&Entry{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.From != nil {
		query = query.Where("work_date >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("work_date <= ?", filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("work_date desc").
		Offset(filter.Page * filter.PageSize).
		Limit(filter.PageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *repository) Update(ctx context.Context, entry *Entry) error {
	result := r.db.WithContext(ctx).Save(entry)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Entry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
