package routes

import (
	"Gin_postgres_redis_equipment_loan/app"
	"Gin_postgres_redis_equipment_loan/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	equipCtl := controllers.NewEquipmentController(s)
	resCtl := controllers.NewReservationController(s)
	formCtl := controllers.NewFormController(s)

	// 复用的中间件
	authMW := app.AuthRequired(a.AppSessions(), a.Config)
	adminMW := app.AdminOnly()

	// ------------------------------
	// 公开：登录 + 仪表盘（只读）
	// ------------------------------
	r.POST("/api/login", authCtl.Login)
	r.GET("/api/dashboard", equipCtl.Dashboard)

	// ------------------------------
	// 登录后：借还台 / 购物车 / 预约 / 借用单
	// ------------------------------
	api := r.Group("/api", authMW)
	{
		api.POST("/logout", authCtl.Logout)
		api.GET("/whoami", authCtl.WhoAmI)

		api.GET("/units", equipCtl.ListUnits)
		api.POST("/loans/checkout", equipCtl.Checkout)
		api.POST("/loans/return", equipCtl.Return)

		api.GET("/forms", formCtl.ListForms)
		api.GET("/forms/:id", formCtl.GetForm)

		api.GET("/cart", resCtl.GetCart)
		api.POST("/cart", resCtl.UpdateCart)
		api.POST("/cart/clear", resCtl.ClearCart)

		api.POST("/reservations", resCtl.Submit)
		api.GET("/reservations/pending", resCtl.ListPending)
	}

	// ------------------------------
	// 仅管理员：设备建档/除档 + 预约裁决
	// ------------------------------
	admin := r.Group("/api", authMW, adminMW)
	{
		admin.POST("/units", equipCtl.CreateUnit)
		admin.DELETE("/units/:id", equipCtl.DeleteUnit)
		admin.POST("/reservations/:id/decide", resCtl.Decide)
	}
}
