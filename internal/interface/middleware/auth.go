package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "currentUser"
)

// Authenticate validates the token cookie and loads the caller's user record.
// A token whose user no longer exists is rejected the same way as a missing
// or invalid token.
func Authenticate(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := helpers.Token(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "user is not authenticated", nil)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil {
			response.AbortError(c, http.StatusUnauthorized, "user is not authenticated", nil)
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// RequireRoles allows only callers whose role is in the given set.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.AbortError(c, http.StatusUnauthorized, "user is not authenticated", nil)
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusForbidden, "user with role "+string(u.Role)+" is not allowed to access this resource", nil)
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
