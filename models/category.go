package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Slug        string              `json:"slug" bson:"slug"`
	Description string              `json:"description" bson:"description"`
	Image       string              `json:"image" bson:"image"`
	ParentID    *primitive.ObjectID `json:"parent,omitempty" bson:"parent,omitempty"` // nil for top-level categories
	Featured    bool                `json:"featured" bson:"featured"`
	Order       int                 `json:"order" bson:"order"`

	// Subcategories holds the categories whose parent is this one. It is
	// computed from the adjacency relation, never stored.
	Subcategories []*Category `json:"subcategories,omitempty" bson:"-"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Ref returns the reduced shape embedded in product responses.
func (c *Category) Ref() *CategoryRef {
	return &CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}
