package services

import (
	"context"
	"testing"

	"storefront-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCategoryTreeNestsSubcategories(t *testing.T) {
	electronicsID := primitive.NewObjectID()
	phonesID := primitive.NewObjectID()
	laptopsID := primitive.NewObjectID()
	booksID := primitive.NewObjectID()

	repo := new(mockCategoryRepo)
	repo.On("FindAll", mock.Anything).Return([]models.Category{
		{ID: electronicsID, Name: "Electronics"},
		{ID: phonesID, Name: "Phones", ParentID: &electronicsID},
		{ID: laptopsID, Name: "Laptops", ParentID: &electronicsID},
		{ID: booksID, Name: "Books"},
	}, nil)

	svc := NewCategoryService(repo)
	roots, err := svc.Tree(context.Background())

	assert.NoError(t, err)
	assert.Len(t, roots, 2)

	byName := make(map[string]*models.Category)
	for _, r := range roots {
		byName[r.Name] = r
	}
	assert.Len(t, byName["Electronics"].Subcategories, 2)
	assert.Empty(t, byName["Books"].Subcategories)
}

func TestCategoryTreeOrphanSurfacesAtTopLevel(t *testing.T) {
	goneParent := primitive.NewObjectID()

	repo := new(mockCategoryRepo)
	repo.On("FindAll", mock.Anything).Return([]models.Category{
		{ID: primitive.NewObjectID(), Name: "Stranded", ParentID: &goneParent},
	}, nil)

	svc := NewCategoryService(repo)
	roots, err := svc.Tree(context.Background())

	assert.NoError(t, err)
	assert.Len(t, roots, 1)
	assert.Equal(t, "Stranded", roots[0].Name)
}

func TestCategoryCreateDerivesSlugAndDefaultImage(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	svc := NewCategoryService(repo)
	category, err := svc.Create(context.Background(), CategoryCreateRequest{
		Name:        "Home & Garden",
		Description: "Everything for the house",
	})

	assert.NoError(t, err)
	assert.Equal(t, "home-garden", category.Slug)
	assert.Equal(t, models.DefaultImage, category.Image)
}

func TestCategoryCreateUnknownParent(t *testing.T) {
	parentID := primitive.NewObjectID()

	repo := new(mockCategoryRepo)
	repo.On("FindByID", mock.Anything, parentID).Return(nil, mongo.ErrNoDocuments)

	svc := NewCategoryService(repo)
	_, err := svc.Create(context.Background(), CategoryCreateRequest{
		Name:        "Phones",
		Description: "Smartphones",
		Parent:      parentID.Hex(),
	})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryUpdateRenameRecomputesSlug(t *testing.T) {
	id := primitive.NewObjectID()

	repo := new(mockCategoryRepo)
	repo.On("Update", mock.Anything, id, mock.MatchedBy(func(u bson.M) bool {
		return u["name"] == "Smart Phones" && u["slug"] == "smart-phones"
	})).Return(int64(1), nil)
	repo.On("FindByID", mock.Anything, id).Return(&models.Category{
		ID:   id,
		Name: "Smart Phones",
		Slug: "smart-phones",
	}, nil)

	svc := NewCategoryService(repo)
	category, err := svc.Update(context.Background(), id, bson.M{"name": "Smart Phones"})

	assert.NoError(t, err)
	assert.Equal(t, "smart-phones", category.Slug)
	repo.AssertExpectations(t)
}

func TestCategoryUpdateRejectsSelfParent(t *testing.T) {
	id := primitive.NewObjectID()

	svc := NewCategoryService(new(mockCategoryRepo))
	_, err := svc.Update(context.Background(), id, bson.M{"parent": id})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryDeleteBlockedWhileInUse(t *testing.T) {
	id := primitive.NewObjectID()

	repo := new(mockCategoryRepo)
	repo.On("HasProducts", mock.Anything, id).Return(true, nil)

	svc := NewCategoryService(repo)
	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, ErrCategoryInUse)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryDeleteMissing(t *testing.T) {
	id := primitive.NewObjectID()

	repo := new(mockCategoryRepo)
	repo.On("HasProducts", mock.Anything, id).Return(false, nil)
	repo.On("Delete", mock.Anything, id).Return(int64(0), nil)

	svc := NewCategoryService(repo)
	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, ErrNotFound)
}
