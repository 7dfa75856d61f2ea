package controllers

import (
	"context"
	"mime/multipart"

	"storefront-api/models"
	"storefront-api/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductServiceAPI defines the product operations the controller depends on.
type ProductServiceAPI interface {
	List(ctx context.Context, params services.ListProductsParams) ([]*models.Product, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, req services.ProductCreateRequest, images []*multipart.FileHeader) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M, images []*multipart.FileHeader) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryServiceAPI defines the category operations the controller depends on.
type CategoryServiceAPI interface {
	Tree(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, req services.CategoryCreateRequest) (*models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ReviewServiceAPI defines the review operations the controller depends on.
type ReviewServiceAPI interface {
	Create(ctx context.Context, user *models.User, req services.ReviewCreateRequest) (*models.Review, error)
	ListForProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	Delete(ctx context.Context, user *models.User, id primitive.ObjectID) error
}

// AuthServiceAPI defines the account operations the controller depends on.
type AuthServiceAPI interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}
