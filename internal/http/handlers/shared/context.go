package shared

import (
	"github.com/cartloom/cartloom/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserID and friends are set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyAdminID   = "admin_id"
	ContextKeyAdminName = "admin_name"
	ContextKeyIsSuper   = "is_super"
)

// GetContextUint reads a uint value off the request context, responding with
// the right error envelope when it is missing or malformed.
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identity", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identity", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "invalid identity type", nil)
		return 0, false
	}
}

// GetUserID reads the authenticated storefront user's id.
func GetUserID(c *gin.Context) (uint, bool) {
	return GetContextUint(c, ContextKeyUserID)
}

// GetAdminID reads the authenticated admin's id.
func GetAdminID(c *gin.Context) (uint, bool) {
	return GetContextUint(c, ContextKeyAdminID)
}

// GetAdminName reads the authenticated admin's username, empty when absent.
func GetAdminName(c *gin.Context) string {
	if value, ok := c.Get(ContextKeyAdminName); ok {
		if name, ok := value.(string); ok {
			return name
		}
	}
	return ""
}
