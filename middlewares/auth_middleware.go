package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Ajmalajjuca/Bite-check/models"
	"github.com/Ajmalajjuca/Bite-check/services"
	"github.com/Ajmalajjuca/Bite-check/utils"

	"github.com/gin-gonic/gin"
)

// AuthContextKey is where the resolved *services.AuthContext is stored.
const AuthContextKey = "auth"

type SessionChecker interface {
	ActiveSession(ctx context.Context, sessionID string) (*models.User, error)
}

func AuthMiddleware(secret []byte, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := utils.ParseJWT(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := sessions.ActiveSession(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please sign in again"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not verify session"})
			return
		}
		if user.ID != claims.Subject {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(AuthContextKey, &services.AuthContext{
			UserID:      user.ID,
			DisplayName: user.DisplayName(),
			Email:       user.Email,
			ImageURL:    user.ProfileImageURL,
			SessionID:   claims.SessionID,
		})
		c.Next()
	}
}

// bearerToken reads "Authorization: Bearer <jwt>", falling back to the
// access_token query parameter for websocket upgrades.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tok := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		return tok, tok != ""
	}
	if c.IsWebsocket() {
		if tok := c.Query("access_token"); tok != "" {
			return tok, true
		}
	}
	return "", false
}
