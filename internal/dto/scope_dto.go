package dto

import (
	"ai-scoping-be/pkg/scope"
)

type RegenerateScopeRequest struct {
	Instructions string `json:"instructions" validate:"required"`
}

type FinalizeScopeRequest struct {
	Scope scope.Document `json:"scope" validate:"required"`
}

type ScopeResponse struct {
	Scope     *scope.Document `json:"scope"`
	Finalized bool            `json:"finalized"`
}
