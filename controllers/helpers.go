package controllers

import (
	"errors"
	"net/http"

	"storefront-api/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func respondValidation(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": errs})
}

// handleServiceError maps service sentinel errors onto HTTP responses and
// forwards everything else to the generic 500 path.
func handleServiceError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, services.ErrDuplicate):
		respondError(c, http.StatusConflict, "Resource already exists")
	case errors.Is(err, services.ErrForbidden):
		respondError(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, services.ErrCategoryNotFound):
		respondError(c, http.StatusBadRequest, "Category not found")
	case errors.Is(err, services.ErrCategoryInUse):
		respondError(c, http.StatusBadRequest, "Category has associated products")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		zap.L().Error("Service error", zap.Error(err), zap.String("path", c.FullPath()))
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// fieldErrors converts validator.v10 failures into the structured error list
// carried by 400 responses.
func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "Invalid request body"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fe.Field() + " is required"
		case "email":
			msg = "Please include a valid email"
		case "min":
			msg = fe.Field() + " must be at least " + fe.Param()
		case "max":
			msg = fe.Field() + " must be at most " + fe.Param()
		default:
			msg = fe.Field() + " is invalid"
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
