package app

import (
	"Gin_postgres_redis_equipment_loan/session"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// AuthRequired 所有改写台账的操作都要先过这道登录态校验。
// 会话存 Redis；staffName / isAdmin 放进 Context 供后续 handler 用。
func AuthRequired(appSess *session.AppSessionStore, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		c.Set("sessionID", ck.Value)
		c.Set("staffName", as.Name)
		name := strings.ToLower(as.Name)
		for _, admin := range cfg.AdminNames {
			if name == admin {
				c.Set("isAdmin", true)
			}
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, ok := c.Get("isAdmin"); !ok || v != true {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
