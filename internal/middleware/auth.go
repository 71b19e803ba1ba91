// internal/middleware/auth.go
package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/i18n"
	"github.com/phonemarket/backend/internal/utils"
)

// UserIDHeader carries the chat user id set by the front end.
const UserIDHeader = "X-User-ID"

// UserIdentity reads the caller's user id when present and marks allow-listed
// administrators. Requests without the header continue anonymously.
func UserIdentity(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if raw == "" {
			c.Next()
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			utils.UnauthorizedResponse(c, utils.Translate(c, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("is_admin", cfg.IsAdmin(userID))
		c.Next()
	}
}

func UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c); !ok {
			utils.UnauthorizedResponse(c, utils.Translate(c, i18n.KeyAuthRequired))
			c.Abort()
			return
		}
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c); !ok {
			utils.UnauthorizedResponse(c, utils.Translate(c, i18n.KeyAuthRequired))
			c.Abort()
			return
		}
		if !utils.IsAdminFromContext(c) {
			utils.ForbiddenResponse(c, utils.Translate(c, i18n.KeyAdminAccessDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}
