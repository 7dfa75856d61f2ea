package services

import (
	"context"
	"errors"
	"time"

	"storefront-api/models"
	"storefront-api/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo repository.UserRepo
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(ur repository.UserRepo, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: ur,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// RegisterRequest is the validated registration payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`
}

// Register hashes the password, stores the account, and issues a token. A
// duplicate email violates the unique index and is rejected.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Phone:     req.Phone,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrDuplicate
		}
		return nil, "", err
	}

	token, err := GenerateJWT(user.ID.Hex(), user.Role, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and issues a token. Unknown email and wrong
// password collapse into the same error so the response leaks nothing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(user.ID.Hex(), user.Role, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
