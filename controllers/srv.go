// controllers/srv.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_equipment_loan/app"
	"Gin_postgres_redis_equipment_loan/db"
	"Gin_postgres_redis_equipment_loan/session"
)

type Srv struct {
	Repo      *db.Repo
	Sess      *session.AppSessionStore
	Carts     *session.CartStore
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		Sess:      a.AppSessions(),
		Carts:     a.Carts(),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) clearAppCookie(w http.ResponseWriter) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}
