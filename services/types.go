package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors mapped to HTTP status codes by the controllers.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("resource already exists")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryInUse      = errors.New("category has associated products")
)

// ListProductsParams carries the parsed catalog query. Pointer fields
// distinguish "absent" from zero values.
type ListProductsParams struct {
	Page     int
	Limit    int
	Search   string
	Category string // hex ObjectID, exact match
	MinPrice *float64
	MaxPrice *float64
	Brand    string
	Status   string
	Featured *bool
	Sort     string
}

// Pagination is the metadata block returned by listing endpoints.
type Pagination struct {
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// ProductCreateRequest is the validated create payload. Specifications is the
// already-parsed map from the form's JSON-encoded string.
type ProductCreateRequest struct {
	Name           string
	Description    string
	Price          float64
	OriginalPrice  float64
	Category       primitive.ObjectID
	Brand          string
	Stock          int
	Featured       bool
	FreeShipping   bool
	Status         string
	Specifications map[string]interface{}
}

// CategoryCreateRequest is the validated category payload.
type CategoryCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
	Parent      string `json:"parent"` // hex ObjectID, optional
	Featured    bool   `json:"featured"`
	Order       int    `json:"order"`
}

// ReviewCreateRequest is the validated review payload.
type ReviewCreateRequest struct {
	Product string `json:"product" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}
