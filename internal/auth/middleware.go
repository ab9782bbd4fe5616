package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyCreatorID is where middleware stores the authenticated creator id.
const ContextKeyCreatorID = "creator_id"

// ContextKeyAdminID is where middleware stores the authenticated admin id.
const ContextKeyAdminID = "admin_id"

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// CreatorMiddleware validates creator JWTs and loads the creator id into the
// request context.
func CreatorMiddleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}
		claims, errVerify := issuer.Verify(token)
		if errVerify != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ContextKeyCreatorID, claims.Subject)
		c.Next()
	}
}

// AdminMiddleware validates admin JWTs, rejecting creator tokens.
func AdminMiddleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}
		claims, errVerify := issuer.Verify(token)
		if errVerify != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if !claims.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin token required"})
			return
		}
		c.Set(ContextKeyAdminID, claims.Subject)
		c.Next()
	}
}

// CreatorID returns the authenticated creator id from the request context.
func CreatorID(c *gin.Context) string {
	return c.GetString(ContextKeyCreatorID)
}
