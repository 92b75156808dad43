package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RateCard struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Role        string    `gorm:"type:varchar(255);not null"`
	MonthlyRate float64   `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (RateCard) TableName() string {
	return "rate_cards"
}
