package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/logger"
	"go.uber.org/zap"
)

// Snapshotter writes a nightly backup document to local disk. It runs the
// backup as a synthetic superadmin actor since no request context exists.
type Snapshotter struct {
	service Service
	dir     string
	logger  *logger.Logger
}

func NewSnapshotter(service Service, dir string, logger *logger.Logger) *Snapshotter {
	return &Snapshotter{
		service: service,
		dir:     dir,
		logger:  logger,
	}
}

// Start runs one snapshot immediately, then schedules one per midnight.
func (s *Snapshotter) Start() {
	s.run()

	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Backup snapshotter initialized",
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", timeUntilMidnight),
	)

	go func() {
		time.Sleep(timeUntilMidnight)

		ticker := time.NewTicker(24 * time.Hour)
		s.run()
		for range ticker.C {
			s.run()
		}
	}()
}

func (s *Snapshotter) run() {
	ctx := context.Background()
	start := time.Now()

	actor := user.Actor{Email: "snapshot@system", Role: user.RoleSuperadmin}
	doc, err := s.service.Backup(ctx, actor)
	if err != nil {
		s.logger.Error("Scheduled snapshot failed", zap.Error(err))
		return
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("Failed to create snapshot directory", zap.Error(err))
		return
	}

	name := fmt.Sprintf("backup-%s.json", start.UTC().Format("2006-01-02T15-04-05"))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.logger.Error("Failed to encode snapshot", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		s.logger.Error("Failed to write snapshot", zap.String("path", path), zap.Error(err))
		return
	}

	s.logger.Info("Snapshot written",
		zap.String("path", path),
		zap.Int("rows", doc.Metadata.TotalRows),
		zap.Duration("took", time.Since(start)),
	)
}
