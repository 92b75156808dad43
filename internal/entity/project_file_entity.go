package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProjectFile struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectId   uuid.UUID `gorm:"type:uuid;index"`
	FileName    string
	StoragePath string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
