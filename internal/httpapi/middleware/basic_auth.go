package middleware

import (
	"net/http"

	"bookhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

const basicChallenge = `Basic realm="bookhub", charset="UTF-8"`

// BasicAuth is a Gin middleware that authenticates a request with HTTP basic
// credentials against the user store. Every request re-verifies from scratch;
// there is no session or token.
func BasicAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", basicChallenge)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing basic auth credentials"})
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			c.Header("WWW-Authenticate", basicChallenge)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			c.Abort()
			return
		}

		// Set user info in context for handlers to use
		c.Set("userID", user.ID)
		c.Set("username", user.Username)

		c.Next()
	}
}
