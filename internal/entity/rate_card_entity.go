package entity

import (
	"time"

	"github.com/google/uuid"
)

type RateCard struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyId   uuid.UUID `gorm:"type:uuid;index"`
	Role        string
	MonthlyRate float64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
