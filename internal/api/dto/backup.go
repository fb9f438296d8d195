package dto

import (
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/backup"
)

// RestoreRequest represents the request body for restoring a backup. The
// backup document is carried verbatim; platform selects the target store and
// defaults to the relational one when empty.
type RestoreRequest struct {
	Platform string          `json:"platform"`
	Backup   backup.Document `json:"backup" binding:"required"`
}
