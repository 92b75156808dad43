package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name      string     `json:"name" validate:"required"`
	CompanyId *uuid.UUID `json:"company_id"`
}

type CreateProjectResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowProjectResponse struct {
	Id                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Status            string     `json:"status"`
	Domain            string     `json:"domain"`
	Complexity        string     `json:"complexity"`
	TechStack         string     `json:"tech_stack"`
	UseCases          string     `json:"use_cases"`
	Compliance        string     `json:"compliance"`
	Duration          string     `json:"duration"`
	UserUnderstanding string     `json:"user_understanding"`
	CompanyId         *uuid.UUID `json:"company_id"`
	Files             []ProjectFileItem `json:"files"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

type ProjectFileItem struct {
	Id          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
	SizeBytes   int64     `json:"size_bytes"`
}

type ListProjectItem struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadProjectFileResponse struct {
	Id          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
}
