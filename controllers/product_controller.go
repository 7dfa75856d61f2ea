package controllers

import (
	"net/http"

	"storefront-api/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductController handles the catalog endpoints.
type ProductController struct {
	service   ProductServiceAPI
	cache     *CacheManager
	validator *RequestValidator
}

func NewProductController(service ProductServiceAPI, cache *CacheManager, validator *RequestValidator) *ProductController {
	return &ProductController{service: service, cache: cache, validator: validator}
}

// GetProducts handles GET /api/products with filtering, sorting and pagination.
func (pc *ProductController) GetProducts(c *gin.Context) {
	params := pc.validator.ParseListQuery(c)

	cached, version, ok := pc.cache.GetList(c.Request.Context(), params)
	if ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, total, err := pc.service.List(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}

	pages := int(total) / params.Limit
	if int(total)%params.Limit != 0 {
		pages++
	}

	response := gin.H{
		"success": true,
		"count":   len(products),
		"pagination": services.Pagination{
			Total: total,
			Pages: pages,
			Page:  params.Page,
			Limit: params.Limit,
		},
		"data": products,
	}
	pc.cache.SetListAsync(version, params, response)
	c.JSON(http.StatusOK, response)
}

// GetProduct handles GET /api/products/:id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	cached, version, ok := pc.cache.GetDetail(c.Request.Context(), id.Hex())
	if ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, err := pc.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}

	response := gin.H{"success": true, "data": product}
	pc.cache.SetDetailAsync(version, id.Hex(), response)
	c.JSON(http.StatusOK, response)
}

// GetProductBySlug handles GET /api/products/slug/:slug.
func (pc *ProductController) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	cached, version, ok := pc.cache.GetDetail(c.Request.Context(), slug)
	if ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, err := pc.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}

	response := gin.H{"success": true, "data": product}
	pc.cache.SetDetailAsync(version, slug, response)
	c.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/products (admin).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	req, images, errs := pc.validator.ParseProductCreateForm(c)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	product, err := pc.service.Create(c.Request.Context(), req, images)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}

	zap.L().Info("Product created",
		zap.String("id", product.ID.Hex()),
		zap.String("slug", product.Slug))
	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// UpdateProduct handles PUT /api/products/:id (admin).
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	updates, images, errs := pc.validator.ParseProductUpdateForm(c)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	product, err := pc.service.Update(c.Request.Context(), id, updates, images)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// DeleteProduct handles DELETE /api/products/:id (admin).
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	if err := pc.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}

	zap.L().Info("Product deleted", zap.String("id", id.Hex()))
	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
