package dto

import "github.com/google/uuid"

type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency"`
}

type CreateCompanyResponse struct {
	Id uuid.UUID `json:"id"`
}

type CompanyItem struct {
	Id       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
}

type UpsertRateCardRequest struct {
	Role        string  `json:"role" validate:"required"`
	MonthlyRate float64 `json:"monthly_rate" validate:"required,gt=0"`
}

type RateCardItem struct {
	Id          uuid.UUID `json:"id"`
	Role        string    `json:"role"`
	MonthlyRate float64   `json:"monthly_rate"`
}
