package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"storefront-api/models"
	"storefront-api/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ImageStore abstracts the image file lifecycle so service tests can fake it.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(relPath string) error
	RemoveAll(relPaths []string)
}

type ProductService struct {
	productRepo  repository.ProductRepo
	categoryRepo repository.CategoryRepo
	reviewRepo   repository.ReviewRepo
	userRepo     repository.UserRepo
	store        ImageStore
}

func NewProductService(pr repository.ProductRepo, cr repository.CategoryRepo, rr repository.ReviewRepo, ur repository.UserRepo, store ImageStore) *ProductService {
	return &ProductService{
		productRepo:  pr,
		categoryRepo: cr,
		reviewRepo:   rr,
		userRepo:     ur,
		store:        store,
	}
}

// buildListFilter translates catalog query parameters into a Mongo filter.
func buildListFilter(params ListProductsParams) bson.M {
	filter := bson.M{}

	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}
	if params.Category != "" {
		if oid, err := primitive.ObjectIDFromHex(params.Category); err == nil {
			filter["category"] = oid
		}
	}
	if params.MinPrice != nil || params.MaxPrice != nil {
		price := bson.M{}
		if params.MinPrice != nil {
			price["$gte"] = *params.MinPrice
		}
		if params.MaxPrice != nil {
			price["$lte"] = *params.MaxPrice
		}
		filter["price"] = price
	}
	if params.Brand != "" {
		filter["brand"] = params.Brand
	}
	if params.Status != "" {
		filter["status"] = params.Status
	}
	if params.Featured != nil && *params.Featured {
		filter["featured"] = true
	}

	return filter
}

// buildListSort maps a sort key onto a Mongo sort document. Unrecognized keys
// fall back to newest first.
func buildListSort(sort string) bson.D {
	switch sort {
	case "price-low":
		return bson.D{{Key: "price", Value: 1}}
	case "price-high":
		return bson.D{{Key: "price", Value: -1}}
	case "popular":
		return bson.D{{Key: "sold", Value: -1}}
	case "top-rated":
		return bson.D{{Key: "averageRating", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// List returns one page of the catalog plus the total match count. The count
// runs as a separate full-predicate query, not from the page result.
func (s *ProductService) List(ctx context.Context, params ListProductsParams) ([]*models.Product, int64, error) {
	filter := buildListFilter(params)

	findOptions := options.Find().
		SetSort(buildListSort(params.Sort)).
		SetSkip(int64((params.Page - 1) * params.Limit)).
		SetLimit(int64(params.Limit))

	products, err := s.productRepo.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if err := s.populateCategories(ctx, products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.expandDetail(ctx, product)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.expandDetail(ctx, product)
}

// expandDetail attaches the category reference and the product's reviews, with
// each review's author reduced to a name.
func (s *ProductService) expandDetail(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := s.populateCategories(ctx, []*models.Product{product}); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if err := s.populateReviewUsers(ctx, reviews); err != nil {
		return nil, err
	}
	product.Reviews = reviews
	return product, nil
}

// Create stages uploaded images, persists the product, and rolls the staged
// files back if the insert fails. The slug is derived from the name once, at
// creation; a later rename does not regenerate it.
func (s *ProductService) Create(ctx context.Context, req ProductCreateRequest, images []*multipart.FileHeader) (*models.Product, error) {
	category, err := s.categoryRepo.FindByID(ctx, req.Category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	staged, err := s.stageImages(images)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &models.Product{
		Name:           req.Name,
		Slug:           Slugify(req.Name),
		Description:    req.Description,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Discount:       ComputeDiscount(req.Price, req.OriginalPrice, 0),
		CategoryID:     req.Category,
		Brand:          req.Brand,
		Stock:          req.Stock,
		Images:         staged,
		MainImage:      models.DefaultImage,
		Featured:       req.Featured,
		FreeShipping:   req.FreeShipping,
		Specifications: req.Specifications,
		Status:         req.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if product.Specifications == nil {
		product.Specifications = map[string]interface{}{}
	}
	if product.Status == "" {
		product.Status = models.StatusAvailable
	}
	if len(staged) > 0 {
		product.MainImage = staged[0]
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.store.RemoveAll(staged)
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	product.Category = category.Ref()
	return product, nil
}

// Update applies a partial field replacement. New image uploads are staged
// first, the record is committed, and only then are the prior files deleted,
// so a failed update never strands the record without its images.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, updates bson.M, images []*multipart.FileHeader) (*models.Product, error) {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if raw, ok := updates["category"]; ok {
		categoryID, ok := raw.(primitive.ObjectID)
		if !ok {
			return nil, ErrCategoryNotFound
		}
		if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	// Recompute the discount against the post-update prices.
	price := existing.Price
	if v, ok := updates["price"].(float64); ok {
		price = v
	}
	originalPrice := existing.OriginalPrice
	if v, ok := updates["originalPrice"].(float64); ok {
		originalPrice = v
	}
	updates["discount"] = ComputeDiscount(price, originalPrice, existing.Discount)

	var staged []string
	if len(images) > 0 {
		staged, err = s.stageImages(images)
		if err != nil {
			return nil, err
		}
		updates["images"] = staged
		updates["mainImage"] = staged[0]
	}

	matched, err := s.productRepo.Update(ctx, id, updates)
	if err != nil {
		s.store.RemoveAll(staged)
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	if matched == 0 {
		s.store.RemoveAll(staged)
		return nil, ErrNotFound
	}

	if len(staged) > 0 {
		s.store.RemoveAll(existing.Images)
	}

	updated, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.populateCategories(ctx, []*models.Product{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the record first, then its image files. A file already
// missing from storage does not abort the deletion.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}

	s.store.RemoveAll(existing.Images)
	return nil
}

func (s *ProductService) stageImages(images []*multipart.FileHeader) ([]string, error) {
	var staged []string
	for _, file := range images {
		path, err := s.store.Save(file)
		if err != nil {
			s.store.RemoveAll(staged)
			return nil, err
		}
		staged = append(staged, path)
	}
	return staged, nil
}

// populateCategories resolves each product's category reference to name+slug
// with a single batched lookup.
func (s *ProductService) populateCategories(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, p := range products {
		if !seen[p.CategoryID] {
			seen[p.CategoryID] = true
			ids = append(ids, p.CategoryID)
		}
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	refs := make(map[primitive.ObjectID]*models.CategoryRef, len(categories))
	for i := range categories {
		refs[categories[i].ID] = categories[i].Ref()
	}
	for _, p := range products {
		p.Category = refs[p.CategoryID]
	}
	return nil
}

func (s *ProductService) populateReviewUsers(ctx context.Context, reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
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
		return err
	}
	refs := make(map[primitive.ObjectID]*models.UserRef, len(users))
	for i := range users {
		refs[users[i].ID] = users[i].Ref()
	}
	for i := range reviews {
		reviews[i].User = refs[reviews[i].UserID]
	}
	return nil
}
