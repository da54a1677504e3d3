// controllers/auth_controller.go
package controllers

import (
	"net/http"

	"Gin_postgres_redis_equipment_loan/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// Login 共用口令登录：对上 STAFF_PASSWORD 就发会话。
// 没有用户表——名字只用来标注操作人和判管理员。
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Password != ac.Cfg.StaffPassword {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid password"})
		return
	}

	id := uuid.NewString()
	if err := ac.Sess.Create(c.Request.Context(), id, in.Name); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	ac.setAppCookie(c.Writer, id, ac.Cfg.SessionTTL)
	c.JSON(http.StatusOK, app.H{"ok": true, "name": in.Name})
}

// Logout 删 Redis 会话，会话 Cookie 置空
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.Sess.Delete(c.Request.Context(), ck.Value)
	}
	ac.clearAppCookie(c.Writer)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (ac *AuthController) WhoAmI(c *gin.Context) {
	name, _ := c.Get("staffName")
	_, isAdmin := c.Get("isAdmin")
	c.JSON(http.StatusOK, app.H{"name": name, "isAdmin": isAdmin})
}
