package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Status            string    `gorm:"type:varchar(50);default:'draft'"`
	Domain            string    `gorm:"type:varchar(255)"`
	Complexity        string    `gorm:"type:varchar(50)"`
	TechStack         string    `gorm:"type:text"`
	UseCases          string    `gorm:"type:text"`
	Compliance        string    `gorm:"type:text"`
	Duration          string    `gorm:"type:varchar(100)"`
	UserUnderstanding string    `gorm:"type:text"`
	CompanyId         *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Project) TableName() string {
	return "projects"
}
