package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/apierrors"
	"github.com/intask-dev/intask/internal/database"
	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/token"
)

// ContextUserKey is the gin context key holding the authenticated user.
const ContextUserKey = "currentUser"

// RequireAuth verifies the Bearer token and re-resolves the user from the
// store, so role and team reflect current state rather than what the token
// was signed with. Tokens issued before the user's last password change are
// rejected.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthenticated(c, apierrors.CodeNoToken, "Authorization token required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthenticated(c, apierrors.CodeNoToken, "Authorization header format must be Bearer {token}")
			c.Abort()
			return
		}

		claims, err := token.Parse(jwtSecret, parts[1])
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				apierrors.Unauthenticated(c, apierrors.CodeTokenExpired, "Session expired. Please login again.")
			} else {
				apierrors.Unauthenticated(c, apierrors.CodeInvalidToken, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
			apierrors.Unauthenticated(c, apierrors.CodeUserNotFound, "The user belonging to this token no longer exists")
			c.Abort()
			return
		}

		if user.ChangedPasswordAfter(claims.IssuedAtTime()) {
			apierrors.Unauthenticated(c, apierrors.CodePasswordChanged, "User recently changed password. Please log in again.")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, &user)
		c.Next()
	}
}

// RequireRoles restricts a route to the given roles. Must run after
// RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		apierrors.ForbiddenWithRoles(c, "", roles, user.Role)
		c.Abort()
	}
}

// CurrentUser retrieves the authenticated user from the context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
