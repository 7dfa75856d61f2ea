package services

import (
	"context"
	"errors"
	"time"

	"storefront-api/models"
	"storefront-api/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(cr repository.CategoryRepo) *CategoryService {
	return &CategoryService{categoryRepo: cr}
}

// Tree returns all categories as a forest: top-level categories with their
// subcategories attached from the adjacency relation. Built iteratively over
// a single query, so arbitrarily deep trees cost one pass.
func (s *CategoryService) Tree(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	var roots []*models.Category
	for i := range categories {
		c := &categories[i]
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Subcategories = append(parent.Subcategories, c)
		} else {
			// Orphaned parent reference; surface it at the top level.
			roots = append(roots, c)
		}
	}
	return roots, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.attachSubcategories(ctx, category)
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.attachSubcategories(ctx, category)
}

func (s *CategoryService) attachSubcategories(ctx context.Context, category *models.Category) (*models.Category, error) {
	children, err := s.categoryRepo.FindByParent(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	for i := range children {
		category.Subcategories = append(category.Subcategories, &children[i])
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req CategoryCreateRequest) (*models.Category, error) {
	var parentID *primitive.ObjectID
	if req.Parent != "" {
		oid, err := primitive.ObjectIDFromHex(req.Parent)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		if _, err := s.categoryRepo.FindByID(ctx, oid); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		parentID = &oid
	}

	now := time.Now().UTC()
	category := &models.Category{
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		Description: req.Description,
		Image:       req.Image,
		ParentID:    parentID,
		Featured:    req.Featured,
		Order:       req.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if category.Image == "" {
		category.Image = models.DefaultImage
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return category, nil
}

// Update applies a partial field replacement. Unlike products, a category's
// slug is recomputed whenever its name changes.
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Category, error) {
	if name, ok := updates["name"].(string); ok {
		updates["slug"] = Slugify(name)
	}

	if raw, ok := updates["parent"]; ok && raw != nil {
		parentID, ok := raw.(primitive.ObjectID)
		if !ok {
			return nil, ErrCategoryNotFound
		}
		if parentID == id {
			return nil, ErrCategoryNotFound
		}
		if _, err := s.categoryRepo.FindByID(ctx, parentID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	matched, err := s.categoryRepo.Update(ctx, id, updates)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	return s.categoryRepo.FindByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	inUse, err := s.categoryRepo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}

	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
