package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT signs a token carrying the user id and role.
func GenerateJWT(userID, role string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
