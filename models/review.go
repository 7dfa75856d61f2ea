package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a rating and comment left by a user on a product. At most one
// review exists per (product, user) pair, enforced by a unique compound index.
type Review struct {
	ID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`

	UserID primitive.ObjectID `json:"-" bson:"user"`
	User   *UserRef           `json:"user,omitempty" bson:"-"`

	ProductID primitive.ObjectID `json:"product" bson:"product"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserRef is the reduced user shape embedded in review responses.
type UserRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}
