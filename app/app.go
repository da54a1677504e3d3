package app

import (
	"Gin_postgres_redis_equipment_loan/db"
	"Gin_postgres_redis_equipment_loan/session"
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	appSess *session.AppSessionStore
	carts   *session.CartStore
}

// Config 从环境变量读取
type Config struct {
	RedisAddr     string
	RedisPwd      string
	WebOrigin     string
	StaffPassword string
	AdminNames    []string
	SessionTTL    time.Duration
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }
func (a *App) Carts() *session.CartStore             { return a.carts }

func MustNew() *App {
	cfg := loadConfig()

	// --- DB: Postgres ---
	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a := &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
		// 购物车比登录会话活得久一点，跨次登录还能接着填
		carts: session.NewCartStore(rdb, 7*24*time.Hour),
	}
	return a
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	ttlSec := get("SESSION_TTL_SECONDS", "86400")
	var ttl time.Duration = 24 * time.Hour
	if d, err := time.ParseDuration(ttlSec + "s"); err == nil {
		ttl = d
	}
	adminsCSV := os.Getenv("ADMIN_NAMES") // 例如: "alice,bob"
	var admins []string
	for _, s := range strings.Split(adminsCSV, ",") {
		if t := strings.TrimSpace(s); t != "" {
			admins = append(admins, strings.ToLower(t))
		}
	}
	return Config{
		RedisAddr:     get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:      os.Getenv("REDIS_PASSWORD"),
		WebOrigin:     get("WEB_ORIGIN", "http://localhost:3000"),
		StaffPassword: get("STAFF_PASSWORD", "0000"),
		AdminNames:    admins,
		SessionTTL:    ttl,
	}
}
