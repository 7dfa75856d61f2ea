package repository

import (
	"context"

	"storefront-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepo defines the product persistence operations used by the service
// layer. Keeping it as an interface lets service tests swap in fakes.
type ProductRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]*models.Product, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	// Update applies a partial $set and returns the matched document count.
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	// SetRating writes the derived review aggregates onto a product.
	SetRating(ctx context.Context, id primitive.ObjectID, averageRating float64, numReviews int64) error
	EnsureIndexes(ctx context.Context) error
}

// CategoryRepo defines the category persistence operations.
type CategoryRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByParent(ctx context.Context, parentID primitive.ObjectID) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	HasProducts(ctx context.Context, categoryID primitive.ObjectID) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

// ReviewRepo defines the review persistence operations.
type ReviewRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	// AggregateRating computes the mean rating and review count for a product.
	AggregateRating(ctx context.Context, productID primitive.ObjectID) (avg float64, count int64, err error)
	EnsureIndexes(ctx context.Context) error
}

// UserRepo defines the user persistence operations.
type UserRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	EnsureIndexes(ctx context.Context) error
}
