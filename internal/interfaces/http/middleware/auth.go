package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// Context keys set by the authentication middleware
const (
	UserIDKey     = "auth_user_id"
	RoleKey       = "auth_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticate validates the bearer token and stores the account
// identity in the gin context
func Authenticate(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Log in required")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		userID, role, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(RoleKey, role)
		c.Next()
	}
}

// RequireShop rejects requests from accounts without the shop role.
// Must run after Authenticate.
func RequireShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != string(identity.RoleShop) {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(
				dto.GetHTTPStatus(dto.ErrCodeForbidden),
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Only for shop accounts", requestID),
			)
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated account id from the gin context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// GetRole returns the authenticated account role from the gin context
func GetRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(
		dto.GetHTTPStatus(dto.ErrCodeAuthRequired),
		dto.NewErrorResponseWithRequestID(dto.ErrCodeAuthRequired, message, requestID),
	)
}
