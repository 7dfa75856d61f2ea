package controllers

import (
	"net/http"

	"storefront-api/middleware"
	"storefront-api/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewController handles product review endpoints.
type ReviewController struct {
	service   ReviewServiceAPI
	cache     *CacheManager
	validator *RequestValidator
}

func NewReviewController(service ReviewServiceAPI, cache *CacheManager, validator *RequestValidator) *ReviewController {
	return &ReviewController{service: service, cache: cache, validator: validator}
}

// CreateReview handles POST /api/reviews (authenticated).
func (rc *ReviewController) CreateReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authorized to access this resource")
		return
	}

	var req services.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, []FieldError{{Field: "body", Message: "Invalid request body"}})
		return
	}
	if err := rc.validator.Struct(req); err != nil {
		respondValidation(c, fieldErrors(err))
		return
	}
	if _, err := primitive.ObjectIDFromHex(req.Product); err != nil {
		respondValidation(c, []FieldError{{Field: "product", Message: "Product must be a valid id"}})
		return
	}

	review, err := rc.service.Create(c.Request.Context(), user, req)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}

	rc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": review})
}

// GetProductReviews handles GET /api/products/:id/reviews.
func (rc *ReviewController) GetProductReviews(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	reviews, err := rc.service.ListForProduct(c.Request.Context(), productID)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(reviews), "data": reviews})
}

// DeleteReview handles DELETE /api/reviews/:id (author or admin).
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authorized to access this resource")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Review not found")
		return
	}

	if err := rc.service.Delete(c.Request.Context(), user, id); err != nil {
		handleServiceError(c, err, "Review not found")
		return
	}

	rc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
