package entity

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Currency  string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
