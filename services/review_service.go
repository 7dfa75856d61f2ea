package services

import (
	"context"
	"errors"
	"time"

	"storefront-api/models"
	"storefront-api/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ReviewService struct {
	reviewRepo  repository.ReviewRepo
	productRepo repository.ProductRepo
	userRepo    repository.UserRepo
}

func NewReviewService(rr repository.ReviewRepo, pr repository.ProductRepo, ur repository.UserRepo) *ReviewService {
	return &ReviewService{
		reviewRepo:  rr,
		productRepo: pr,
		userRepo:    ur,
	}
}

// Create stores a review and recomputes the product's rating aggregates. A
// second review by the same user on the same product violates the compound
// unique index and is rejected.
func (s *ReviewService) Create(ctx context.Context, user *models.User, req ReviewCreateRequest) (*models.Review, error) {
	productID, err := primitive.ObjectIDFromHex(req.Product)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	review := &models.Review{
		UserID:    user.ID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	if err := s.RecalcRating(ctx, productID); err != nil {
		// The review is committed; a failed aggregate write leaves the
		// stored average stale until the next review write.
		zap.L().Error("Failed to recompute product rating", zap.String("product", productID.Hex()), zap.Error(err))
	}

	review.User = user.Ref()
	return review, nil
}

// ListForProduct returns all reviews for a product with authors reduced to
// names. The product must exist.
func (s *ReviewService) ListForProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for i := range reviews {
		if !seen[reviews[i].UserID] {
			seen[reviews[i].UserID] = true
			ids = append(ids, reviews[i].UserID)
		}
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	refs := make(map[primitive.ObjectID]*models.UserRef, len(users))
	for i := range users {
		refs[users[i].ID] = users[i].Ref()
	}
	for i := range reviews {
		reviews[i].User = refs[reviews[i].UserID]
	}
	return reviews, nil
}

// Delete removes a review. Only the review's author or an admin may delete
// it. The rating aggregates are recomputed after the delete commits, so the
// removed review no longer counts toward the stored average.
func (s *ReviewService) Delete(ctx context.Context, user *models.User, id primitive.ObjectID) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	if review.UserID != user.ID && !user.IsAdmin() {
		return ErrForbidden
	}

	deleted, err := s.reviewRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}

	if err := s.RecalcRating(ctx, review.ProductID); err != nil {
		zap.L().Error("Failed to recompute product rating", zap.String("product", review.ProductID.Hex()), zap.Error(err))
	}
	return nil
}

// RecalcRating recomputes a product's averageRating and numReviews from the
// current review set. The average is rounded to one decimal place; a product
// with no reviews is reset to zero on both fields.
func (s *ReviewService) RecalcRating(ctx context.Context, productID primitive.ObjectID) error {
	avg, count, err := s.reviewRepo.AggregateRating(ctx, productID)
	if err != nil {
		return err
	}
	if count == 0 {
		return s.productRepo.SetRating(ctx, productID, 0, 0)
	}
	return s.productRepo.SetRating(ctx, productID, RoundRating(avg), count)
}
