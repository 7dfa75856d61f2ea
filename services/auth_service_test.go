package services

import (
	"context"
	"testing"
	"time"

	"storefront-api/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "unit-test-secret"

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*models.User)
			u.ID = primitive.NewObjectID()
		}).Return(nil)

	svc := NewAuthService(userRepo, []byte(testSecret), time.Hour)
	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
		Phone:    "555-0100",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "hunter22", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims["user_id"])
	assert.Equal(t, models.RoleUser, claims["role"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	dupErr := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	userRepo.On("Create", mock.Anything, mock.Anything).Return(dupErr)

	svc := NewAuthService(userRepo, []byte(testSecret), time.Hour)
	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
		Phone:    "555-0100",
	})

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestLoginSuccess(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "alice@example.com",
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	userRepo := new(mockUserRepo)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

	svc := NewAuthService(userRepo, []byte(testSecret), time.Hour)
	user, token, err := svc.Login(context.Background(), "alice@example.com", "hunter22")

	assert.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)

	userRepo := new(mockUserRepo)
	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, mongo.ErrNoDocuments)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&models.User{
		ID:       primitive.NewObjectID(),
		Password: string(hashed),
	}, nil)

	svc := NewAuthService(userRepo, []byte(testSecret), time.Hour)

	_, _, unknownErr := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, _, wrongErr := svc.Login(context.Background(), "alice@example.com", "not-the-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}
