package entity

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	Status            string
	Domain            string
	Complexity        string
	TechStack         string
	UseCases          string
	Compliance        string
	Duration          string
	UserUnderstanding string
	CompanyId         *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}
