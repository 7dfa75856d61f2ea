package controllers

import (
	"net/http"
	"strings"

	"storefront-api/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CategoryController handles the category tree endpoints.
type CategoryController struct {
	service   CategoryServiceAPI
	cache     *CacheManager
	validator *RequestValidator
}

func NewCategoryController(service CategoryServiceAPI, cache *CacheManager, validator *RequestValidator) *CategoryController {
	return &CategoryController{service: service, cache: cache, validator: validator}
}

// CategoryUpdateRequest is the partial update payload. Pointer fields
// distinguish "leave unchanged" from explicit zero values.
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Parent      *string `json:"parent"`
	Featured    *bool   `json:"featured"`
	Order       *int    `json:"order"`
}

// GetCategories handles GET /api/categories and returns the nested tree.
func (cc *CategoryController) GetCategories(c *gin.Context) {
	categories, err := cc.service.Tree(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(categories), "data": categories})
}

// GetCategory handles GET /api/categories/:id.
func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	category, err := cc.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// GetCategoryBySlug handles GET /api/categories/slug/:slug.
func (cc *CategoryController) GetCategoryBySlug(c *gin.Context) {
	category, err := cc.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// CreateCategory handles POST /api/categories (admin).
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req services.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, []FieldError{{Field: "body", Message: "Invalid request body"}})
		return
	}
	if err := cc.validator.Struct(req); err != nil {
		respondValidation(c, fieldErrors(err))
		return
	}
	if req.Parent != "" {
		if _, err := primitive.ObjectIDFromHex(req.Parent); err != nil {
			respondValidation(c, []FieldError{{Field: "parent", Message: "Parent must be a valid id"}})
			return
		}
	}

	category, err := cc.service.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}

	zap.L().Info("Category created",
		zap.String("id", category.ID.Hex()),
		zap.String("slug", category.Slug))
	cc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
}

// UpdateCategory handles PUT /api/categories/:id (admin).
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, []FieldError{{Field: "body", Message: "Invalid request body"}})
		return
	}

	updates, errs := categoryUpdates(req)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	category, err := cc.service.Update(c.Request.Context(), id, updates)
	if err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}

	cc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// DeleteCategory handles DELETE /api/categories/:id (admin).
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	if err := cc.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}

	zap.L().Info("Category deleted", zap.String("id", id.Hex()))
	cc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

// categoryUpdates converts the partial payload into an update document. A
// present-but-empty parent clears the parent link.
func categoryUpdates(req CategoryUpdateRequest) (bson.M, []FieldError) {
	var errs []FieldError
	updates := bson.M{}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
		} else {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			errs = append(errs, FieldError{Field: "description", Message: "Description is required"})
		} else {
			updates["description"] = strings.TrimSpace(*req.Description)
		}
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Parent != nil {
		if *req.Parent == "" {
			updates["parent"] = nil
		} else if oid, err := primitive.ObjectIDFromHex(*req.Parent); err != nil {
			errs = append(errs, FieldError{Field: "parent", Message: "Parent must be a valid id"})
		} else {
			updates["parent"] = oid
		}
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}

	return updates, errs
}
