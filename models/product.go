package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product status values.
const (
	StatusAvailable    = "available"
	StatusOutOfStock   = "outOfStock"
	StatusDiscontinued = "discontinued"
)

// DefaultImage is used when no image has been uploaded for a product or category.
const DefaultImage = "no-image.jpg"

type Product struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Slug          string             `json:"slug" bson:"slug"`
	Description   string             `json:"description" bson:"description"`
	Price         float64            `json:"price" bson:"price"`
	OriginalPrice float64            `json:"originalPrice" bson:"originalPrice"`
	Discount      int                `json:"discount" bson:"discount"`

	// CategoryID is the stored reference; Category is populated with
	// name+slug when the product is returned from the API.
	CategoryID primitive.ObjectID `json:"-" bson:"category"`
	Category   *CategoryRef       `json:"category,omitempty" bson:"-"`

	Brand          string                 `json:"brand" bson:"brand"`
	Stock          int                    `json:"stock" bson:"stock"`
	Images         []string               `json:"images" bson:"images"`
	MainImage      string                 `json:"mainImage" bson:"mainImage"`
	Featured       bool                   `json:"featured" bson:"featured"`
	FreeShipping   bool                   `json:"freeShipping" bson:"freeShipping"`
	Specifications map[string]interface{} `json:"specifications" bson:"specifications"`
	Sold           int                    `json:"sold" bson:"sold"`
	AverageRating  float64                `json:"averageRating" bson:"averageRating"`
	NumReviews     int                    `json:"numReviews" bson:"numReviews"`
	Status         string                 `json:"status" bson:"status"`

	// Reviews is only populated on the product detail endpoints.
	Reviews []Review `json:"reviews,omitempty" bson:"-"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CategoryRef is the reduced category shape embedded in product responses.
type CategoryRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
	Slug string             `json:"slug"`
}
