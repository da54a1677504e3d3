// controllers/reservation_controller.go
package controllers

import (
	"net/http"
	"time"

	"Gin_postgres_redis_equipment_loan/app"
	"Gin_postgres_redis_equipment_loan/models"
	"Gin_postgres_redis_equipment_loan/session"

	"github.com/gin-gonic/gin"
)

type ReservationController struct{ *Srv }

func NewReservationController(s *Srv) *ReservationController {
	return &ReservationController{Srv: s}
}

func sessionID(c *gin.Context) string {
	v, _ := c.Get("sessionID")
	sid, _ := v.(string)
	return sid
}

// --- 申请购物车 ---

func (rc *ReservationController) GetCart(c *gin.Context) {
	lines, err := rc.Carts.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"totalItems": len(lines), "cart": lines})
}

// UpdateCart 数量大于 0 覆盖该 SKU，等于 0 移除
func (rc *ReservationController) UpdateCart(c *gin.Context) {
	var in session.CartLine
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	lines, err := rc.Carts.Upsert(c.Request.Context(), sessionID(c), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"totalItems": len(lines), "cart": lines})
}

func (rc *ReservationController) ClearCart(c *gin.Context) {
	if err := rc.Carts.Clear(c.Request.Context(), sessionID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// --- 预约 ---

type submitReq struct {
	LoanAt   time.Time `json:"loanAt" binding:"required"`
	ReturnAt time.Time `json:"returnAt" binding:"required"`
	// 不传行项目就用购物车里的
	Lines []models.ReservationLine `json:"lines"`
}

// Submit 提交预约单。成功后清掉购物车草稿。
func (rc *ReservationController) Submit(c *gin.Context) {
	var in submitReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	lines := in.Lines
	fromCart := false
	if len(lines) == 0 {
		cartLines, err := rc.Carts.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
		for _, l := range cartLines {
			lines = append(lines, models.ReservationLine{
				Name: l.Name, Brand: l.Brand, Type: l.Type, Category: l.Category, Qty: l.Qty,
			})
		}
		fromCart = true
	}

	res, err := rc.Repo.CreateReservation(c.Request.Context(), lines, in.LoanAt, in.ReturnAt)
	if err != nil {
		c.JSON(httpStatusFor(err), app.H{"error": err.Error()})
		return
	}
	if fromCart {
		_ = rc.Carts.Clear(c.Request.Context(), sessionID(c))
	}
	c.JSON(http.StatusCreated, res)
}

func (rc *ReservationController) ListPending(c *gin.Context) {
	rs, err := rc.Repo.ListPendingReservations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": rs})
}

type decideReq struct {
	Outcome string `json:"outcome" binding:"required,oneof=Processed Rejected"`
}

// Decide 管理员裁决预约。只改预约状态，不碰台账。
func (rc *ReservationController) Decide(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing reservation id"})
		return
	}
	var in decideReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	res, err := rc.Repo.DecideReservation(c.Request.Context(), id, models.RequestStatus(in.Outcome))
	if err != nil {
		c.JSON(httpStatusFor(err), app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
