package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront-api/models"
	"storefront-api/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const userContextKey = "currentUser"

const unauthorizedMessage = "Not authorized to access this resource"

// Auth verifies bearer credentials and resolves the authenticated principal.
type Auth struct {
	secret   []byte
	userRepo repository.UserRepo
}

func NewAuth(secret []byte, userRepo repository.UserRepo) *Auth {
	return &Auth{secret: secret, userRepo: userRepo}
}

// Protect authenticates the request from an Authorization header or a token
// cookie and attaches the account to the context. Missing, expired, malformed,
// and tampered tokens all collapse into the same 401 so nothing about the
// verification failure leaks to the caller.
func (a *Auth) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c)
			return
		}

		user, err := a.resolveUser(c.Request.Context(), claims)
		if err != nil {
			// Includes the token subject no longer resolving to an
			// account; an orphaned token is not authenticated.
			abortUnauthorized(c)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// Admin restricts the route to admin accounts. Must run after Protect.
func (a *Auth) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied. Admin privileges required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the principal attached by Protect.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func (a *Auth) resolveUser(ctx context.Context, claims jwt.MapClaims) (*models.User, error) {
	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token missing subject")
	}
	userID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, err
	}
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("account no longer exists")
		}
		return nil, err
	}
	return user, nil
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   unauthorizedMessage,
	})
}
