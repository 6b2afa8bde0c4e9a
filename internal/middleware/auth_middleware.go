package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the authenticated *models.Session
const SessionKey = "session"

// TokenParser resolves a bearer token into a staff session
type TokenParser interface {
	ParseToken(token string) (*models.Session, error)
}

// JWTAuthMiddleware creates a gin middleware for JWT authentication.
func JWTAuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		const BearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "error": "Authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "error": "Authorization header must start with Bearer "})
			return
		}

		session, err := parser.ParseToken(strings.TrimSpace(authHeader[len(BearerSchema):]))
		if err != nil {
			// Handle specific errors like expiration
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "error": "Invalid token"})
			}
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// RequireRole lets through sessions holding one of roles. Admins pass every check.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "error": "authentication required"})
			return
		}
		if session.Role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, r := range roles {
			if session.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "PERMISSION_DENIED", "error": "insufficient role"})
	}
}

// CurrentSession returns the session set by JWTAuthMiddleware, or nil
func CurrentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*models.Session)
	return session
}
