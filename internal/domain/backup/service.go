package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/logger"
	"go.uber.org/zap"
)

// Version stamped into every backup document.
const Version = "1.0"

var log = logger.NewLogger()

// Service orchestrates full-database export and destructive re-import.
type Service interface {
	Backup(ctx context.Context, actor user.Actor) (*Document, error)
	Restore(ctx context.Context, actor user.Actor, doc *Document, platform string) (*Report, error)
}

type service struct {
	reader   Reader
	adapters map[Platform]StoreAdapter
	now      func() time.Time
}

// NewService wires the backup reader and the restore adapters. Adapters for
// unconfigured platforms may be absent; restores targeting them fail with
// ErrPlatformUnavailable.
func NewService(reader Reader, adapters ...StoreAdapter) Service {
	m := make(map[Platform]StoreAdapter, len(adapters))
	for _, a := range adapters {
		if a != nil {
			m[a.Platform()] = a
		}
	}
	return &service{
		reader:   reader,
		adapters: m,
		now:      time.Now,
	}
}

// Backup reads every table and assembles a single snapshot document. Any
// failed table read aborts the whole backup; no partial document is
// returned. Only superadmins may call it, checked before any read.
func (s *service) Backup(ctx context.Context, actor user.Actor) (*Document, error) {
	if !actor.Role.AtLeast(user.RoleSuperadmin) {
		return nil, ErrForbidden
	}

	tables := make(map[string][]Row, len(BackupTables))
	totalRows := 0
	for _, table := range BackupTables {
		rows, err := s.reader.ReadAll(ctx, table)
		if err != nil {
			log.Error("Backup aborted on table read",
				zap.String("table", table),
				zap.Error(err),
			)
			return nil, fmt.Errorf("backup failed on table %s: %w", table, err)
		}
		tables[table] = rows
		totalRows += len(rows)
	}

	doc := &Document{
		Version:   Version,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Tables:    tables,
		Metadata: Metadata{
			BackupBy:      actor.ID.String(),
			BackupByEmail: actor.Email,
			TotalTables:   len(tables),
			TotalRows:     totalRows,
		},
	}

	log.Info("Backup completed",
		zap.Int("tables", doc.Metadata.TotalTables),
		zap.Int("rows", doc.Metadata.TotalRows),
		zap.String("by", actor.Email),
	)
	return doc, nil
}

// Restore replays a backup document into the selected platform. Each table
// is wiped and re-inserted in dependency order; a failure on one table is
// recorded in its result entry and processing continues with the next. The
// operation is destructive and not atomic across tables: re-running the same
// document is the recovery path for a partial failure.
func (s *service) Restore(ctx context.Context, actor user.Actor, doc *Document, platform string) (*Report, error) {
	if !actor.Role.AtLeast(user.RoleSuperadmin) {
		return nil, ErrForbidden
	}

	target, err := NormalizePlatform(platform)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Tables == nil {
		return nil, ErrInvalidBackup
	}

	adapter, ok := s.adapters[target]
	if !ok {
		return nil, ErrPlatformUnavailable
	}

	report := &Report{
		Platform:   string(target),
		Results:    make(map[string]TableResult, len(RestoreOrder)),
		RestoredBy: actor.Email,
		RestoredAt: s.now().UTC().Format(time.RFC3339),
	}

	attempted, succeeded := 0, 0
	for _, table := range RestoreOrder {
		rows, present := doc.Tables[table]
		if !present {
			continue
		}
		attempted++

		result := TableResult{}
		if target == PlatformMongo {
			result.Collection = adapter.Target(table)
		}

		if err := adapter.DeleteAll(ctx, table); err != nil {
			result.Error = err.Error()
			report.Results[table] = result
			log.Error("Restore table wipe failed",
				zap.String("table", table),
				zap.Error(err),
			)
			continue
		}

		count, err := adapter.InsertMany(ctx, table, rows)
		if err != nil {
			result.Error = err.Error()
			report.Results[table] = result
			log.Error("Restore table insert failed",
				zap.String("table", table),
				zap.Error(err),
			)
			continue
		}

		result.Success = true
		if target == PlatformMongo {
			result.DocumentsRestored = &count
		} else {
			result.RowsRestored = &count
		}
		report.Results[table] = result
		succeeded++
	}

	report.Success = true
	report.Message = fmt.Sprintf("restored %d of %d tables to %s", succeeded, attempted, target)

	log.Info("Restore completed",
		zap.String("platform", string(target)),
		zap.Int("attempted", attempted),
		zap.Int("succeeded", succeeded),
		zap.String("by", actor.Email),
	)
	return report, nil
}
