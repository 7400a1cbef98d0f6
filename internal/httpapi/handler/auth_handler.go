package handler

import (
	"errors"
	"net/http"

	"bookhub/internal/httpapi/dto"
	"bookhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.IdentityResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// Me returns the identity placed in the context by the basic-auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt64("userID")
	username := c.GetString("username")

	c.JSON(http.StatusOK, dto.IdentityResponse{
		ID:       userID,
		Username: username,
	})
}
