package controllers

import (
	"net/http"
	"time"

	"storefront-api/middleware"
	"storefront-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController handles account registration and sessions. Tokens are
// returned in the response body and mirrored into an httpOnly cookie.
type AuthController struct {
	service   AuthServiceAPI
	validator *RequestValidator
	tokenTTL  time.Duration
}

func NewAuthController(service AuthServiceAPI, validator *RequestValidator, tokenTTL time.Duration) *AuthController {
	return &AuthController{service: service, validator: validator, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, []FieldError{{Field: "body", Message: "Invalid request body"}})
		return
	}
	if err := ac.validator.Struct(req); err != nil {
		respondValidation(c, fieldErrors(err))
		return
	}

	user, token, err := ac.service.Register(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Account not found")
		return
	}

	zap.L().Info("Account registered", zap.String("id", user.ID.Hex()))
	ac.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "data": user})
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, []FieldError{{Field: "body", Message: "Invalid request body"}})
		return
	}
	if err := ac.validator.Struct(req); err != nil {
		respondValidation(c, fieldErrors(err))
		return
	}

	user, token, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, "Account not found")
		return
	}

	ac.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "data": user})
}

// Me handles GET /api/auth/me (authenticated).
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authorized to access this resource")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// Logout handles POST /api/auth/logout and clears the session cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

func (ac *AuthController) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, int(ac.tokenTTL.Seconds()), "/", "", false, true)
}
