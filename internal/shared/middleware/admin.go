package middleware

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/shared/response"
)

// RequireRoles lets the request through only when AuthMiddleware stored one
// of the given roles. It must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		name, _ := role.(string)

		if _, ok := allowed[name]; !ok {
			response.Forbidden(c, "access denied: insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminMiddleware admits admins and managers.
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles("admin", "manager")
}
