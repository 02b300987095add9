package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
)

// AuthController handles registration, login and logout endpoints.
type AuthController struct {
	service *auth.Service
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /api/user/register.
func (controller *AuthController) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	session, err := controller.service.Register(in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       session.User,
		"token":      session.Token,
		"token_type": session.TokenType,
	})
}

// Login handles POST /api/user/login.
func (controller *AuthController) Login(c *gin.Context) {
	var in auth.Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	session, err := controller.service.Login(in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       session.User,
		"token":      session.Token,
		"token_type": session.TokenType,
	})
}

// Logout handles DELETE /api/user/logout. The middleware has already resolved
// the bearer token, so the identity comes from the request context.
func (controller *AuthController) Logout(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	if err := controller.service.Logout(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have successfully logged out"})
}
