package controllers

import (
	"encoding/json"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"storefront-api/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing defaults and upload limits.
const (
	DefaultPage  = 1
	DefaultLimit = 12

	MaxImageFiles = 5
	MaxImageSize  = 5 * 1024 * 1024 // 5MB per file
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var allowedImageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

var productStatuses = map[string]bool{
	"available":    true,
	"outOfStock":   true,
	"discontinued": true,
}

// RequestValidator handles input validation for all controllers.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (rv *RequestValidator) Struct(v interface{}) error {
	return rv.validate.Struct(v)
}

// ParseListQuery parses catalog query parameters. Absent or non-numeric page
// and limit silently fall back to their defaults; the featured filter only
// engages on the literal string "true".
func (rv *RequestValidator) ParseListQuery(c *gin.Context) services.ListProductsParams {
	params := services.ListProductsParams{
		Page:     DefaultPage,
		Limit:    DefaultLimit,
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Status:   c.Query("status"),
		Sort:     c.Query("sort"),
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page >= 1 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit >= 1 {
		params.Limit = limit
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		params.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		params.MaxPrice = &v
	}
	if c.Query("featured") == "true" {
		t := true
		params.Featured = &t
	}

	return params
}

// ParseProductCreateForm validates the multipart create payload, returning
// the structured list of failing fields on validation failure.
func (rv *RequestValidator) ParseProductCreateForm(c *gin.Context) (services.ProductCreateRequest, []*multipart.FileHeader, []FieldError) {
	var errs []FieldError
	req := services.ProductCreateRequest{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Brand:       strings.TrimSpace(c.PostForm("brand")),
		Status:      strings.TrimSpace(c.PostForm("status")),
	}

	if req.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	if req.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "Description is required"})
	}
	if req.Brand == "" {
		errs = append(errs, FieldError{Field: "brand", Message: "Brand is required"})
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		errs = append(errs, FieldError{Field: "price", Message: "Price is required"})
	}
	req.Price = price

	stock, err := strconv.Atoi(c.PostForm("stock"))
	if err != nil {
		errs = append(errs, FieldError{Field: "stock", Message: "Stock quantity is required"})
	}
	req.Stock = stock

	categoryHex := c.PostForm("category")
	if categoryHex == "" {
		errs = append(errs, FieldError{Field: "category", Message: "Category is required"})
	} else if oid, err := primitive.ObjectIDFromHex(categoryHex); err != nil {
		errs = append(errs, FieldError{Field: "category", Message: "Category must be a valid id"})
	} else {
		req.Category = oid
	}

	if v := c.PostForm("originalPrice"); v != "" {
		op, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: "originalPrice", Message: "Original price must be a number"})
		}
		req.OriginalPrice = op
	}
	if v := c.PostForm("featured"); v != "" {
		req.Featured = v == "true"
	}
	if v := c.PostForm("freeShipping"); v != "" {
		req.FreeShipping = v == "true"
	}
	if req.Status != "" && !productStatuses[req.Status] {
		errs = append(errs, FieldError{Field: "status", Message: "Status must be available, outOfStock or discontinued"})
	}

	if specs, ferr := parseSpecifications(c.PostForm("specifications")); ferr != nil {
		errs = append(errs, *ferr)
	} else {
		req.Specifications = specs
	}

	images, ferrs := rv.collectImages(c)
	errs = append(errs, ferrs...)

	return req, images, errs
}

// ParseProductUpdateForm validates the multipart update payload, where every
// field is optional, and builds the partial update document.
func (rv *RequestValidator) ParseProductUpdateForm(c *gin.Context) (bson.M, []*multipart.FileHeader, []FieldError) {
	var errs []FieldError
	updates := bson.M{}

	if v, ok := c.GetPostForm("name"); ok {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
		} else {
			updates["name"] = strings.TrimSpace(v)
		}
	}
	if v, ok := c.GetPostForm("description"); ok {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, FieldError{Field: "description", Message: "Description is required"})
		} else {
			updates["description"] = strings.TrimSpace(v)
		}
	}
	if v, ok := c.GetPostForm("brand"); ok {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, FieldError{Field: "brand", Message: "Brand is required"})
		} else {
			updates["brand"] = strings.TrimSpace(v)
		}
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: "price", Message: "Price must be a number"})
		} else {
			updates["price"] = price
		}
	}
	if v, ok := c.GetPostForm("originalPrice"); ok {
		op, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: "originalPrice", Message: "Original price must be a number"})
		} else {
			updates["originalPrice"] = op
		}
	}
	if v, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, FieldError{Field: "stock", Message: "Stock must be a number"})
		} else {
			updates["stock"] = stock
		}
	}
	if v, ok := c.GetPostForm("category"); ok {
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			errs = append(errs, FieldError{Field: "category", Message: "Category must be a valid id"})
		} else {
			updates["category"] = oid
		}
	}
	if v, ok := c.GetPostForm("featured"); ok {
		updates["featured"] = v == "true"
	}
	if v, ok := c.GetPostForm("freeShipping"); ok {
		updates["freeShipping"] = v == "true"
	}
	if v, ok := c.GetPostForm("status"); ok {
		if !productStatuses[v] {
			errs = append(errs, FieldError{Field: "status", Message: "Status must be available, outOfStock or discontinued"})
		} else {
			updates["status"] = v
		}
	}
	if v, ok := c.GetPostForm("sold"); ok {
		sold, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, FieldError{Field: "sold", Message: "Sold must be a number"})
		} else {
			updates["sold"] = sold
		}
	}
	if v, ok := c.GetPostForm("specifications"); ok {
		specs, ferr := parseSpecifications(v)
		if ferr != nil {
			errs = append(errs, *ferr)
		} else {
			updates["specifications"] = specs
		}
	}

	images, ferrs := rv.collectImages(c)
	errs = append(errs, ferrs...)

	return updates, images, errs
}

// collectImages gathers uploaded files from the "images" field and enforces
// count, size, and type limits.
func (rv *RequestValidator) collectImages(c *gin.Context) ([]*multipart.FileHeader, []FieldError) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	images := form.File["images"]
	if len(images) == 0 {
		return nil, nil
	}

	var errs []FieldError
	if len(images) > MaxImageFiles {
		errs = append(errs, FieldError{Field: "images", Message: "A maximum of 5 images is allowed"})
		return nil, errs
	}
	for _, img := range images {
		if img.Size > MaxImageSize {
			errs = append(errs, FieldError{Field: "images", Message: "Each image must be at most 5MB"})
			return nil, errs
		}
		if !isValidImage(img) {
			errs = append(errs, FieldError{Field: "images", Message: "Only jpeg, jpg, png and webp images are allowed"})
			return nil, errs
		}
	}
	return images, nil
}

// isValidImage requires both the declared MIME type and the file extension to
// be in the allowed set.
func isValidImage(file *multipart.FileHeader) bool {
	if !allowedImageTypes[file.Header.Get("Content-Type")] {
		return false
	}
	return allowedImageExtensions[strings.ToLower(filepath.Ext(file.Filename))]
}

// parseSpecifications decodes the optional JSON-encoded specification string.
// Malformed JSON surfaces as a field error, not a 500.
func parseSpecifications(raw string) (map[string]interface{}, *FieldError) {
	if raw == "" {
		return nil, nil
	}
	var specs map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, &FieldError{Field: "specifications", Message: "Specifications must be a JSON object"}
	}
	return specs, nil
}
