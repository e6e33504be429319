package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staffdesk.com/staffdesk/core"
	"staffdesk.com/staffdesk/web/common"
)

// RequireRole gates a route group on the role stored by Authentication.
func RequireRole(required core.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := core.ParseRole(c.GetString(ContextRole))
		if !ok || role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("Forbidden: insufficient privileges"))
			return
		}
		c.Next()
	}
}
