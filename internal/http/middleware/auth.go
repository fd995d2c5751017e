package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/store"
)

type contextKey string

const profileContextKey contextKey = "profile"

// RequireAuth resolves the bearer token to a marketplace profile and aborts
// with 401 when it cannot.
func RequireAuth(profiles store.ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		profile, err := profiles.GetByAPIToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), profileContextKey, profile)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func GetProfile(ctx context.Context) *model.Profile {
	profile, _ := ctx.Value(profileContextKey).(*model.Profile)
	return profile
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
