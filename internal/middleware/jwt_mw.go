package middleware

import (
	"net/http"
	"strings"

	"stackshack/internal/model"
	"stackshack/internal/utils"

	"github.com/gin-gonic/gin"
)

const PrincipalKey = "authPrincipal"

// Principal returns the authenticated principal from the gin context, or nil
// for anonymous requests.
func Principal(c *gin.Context) *model.Principal {
	val, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}
	p, ok := val.(*model.Principal)
	if !ok {
		return nil
	}
	return p
}

func principalFromHeader(c *gin.Context, jwtUtil *utils.JWTUtil) (*model.Principal, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, false
	}
	claims, err := jwtUtil.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return &model.Principal{UserID: claims.UserID, Role: claims.Role}, true
}

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the acting principal in the context.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := principalFromHeader(c, jwtUtil)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing authorization token"})
			return
		}
		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// OptionalJWTAuthMiddleware stores the principal when a valid token is
// present but lets anonymous requests through. Used on registration, where
// an admin token permits assigning elevated roles.
func OptionalJWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, ok := principalFromHeader(c, jwtUtil); ok {
			c.Set(PrincipalKey, principal)
		}
		c.Next()
	}
}
