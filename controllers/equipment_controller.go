// controllers/equipment_controller.go
package controllers

import (
	"net/http"
	"time"

	"Gin_postgres_redis_equipment_loan/app"
	"Gin_postgres_redis_equipment_loan/db"
	"Gin_postgres_redis_equipment_loan/ledger"
	"Gin_postgres_redis_equipment_loan/models"

	"github.com/gin-gonic/gin"
)

type EquipmentController struct{ *Srv }

func NewEquipmentController(s *Srv) *EquipmentController { return &EquipmentController{Srv: s} }

func filterFromQuery(c *gin.Context) db.UnitFilter {
	return db.UnitFilter{
		Name:         c.DefaultQuery("name", "ALL"),
		Brand:        c.DefaultQuery("brand", "ALL"),
		Type:         c.DefaultQuery("type", "ALL"),
		Category:     c.DefaultQuery("category", "ALL"),
		Availability: c.Query("status"), // "" | "available" | "loaned"
	}
}

// Dashboard 各 SKU 的对账结果 + 全局数字 + 筛选下拉选项。
// 台账行和待处理预约取自同一个快照，再走纯函数聚合/对账。
func (ec *EquipmentController) Dashboard(c *gin.Context) {
	f := filterFromQuery(c)
	rows, pending, err := ec.Repo.DashboardSnapshot(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	buckets, totals := ledger.Reconcile(ledger.Aggregate(rows), pending)

	brands, err := ec.Repo.DistinctBrands(c.Request.Context(), f.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	types, err := ec.Repo.DistinctTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, app.H{
		"buckets": buckets,
		"totals":  totals,
		"brands":  brands,
		"types":   types,
	})
}

// ListUnits 借还台：可借和已借出的设备各一列
func (ec *EquipmentController) ListUnits(c *gin.Context) {
	f := filterFromQuery(c)
	f.Availability = ""
	rows, err := ec.Repo.UnitRows(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	avail := make([]ledger.UnitRow, 0, len(rows))
	loaned := make([]ledger.UnitRow, 0)
	for _, r := range rows {
		if r.OnLoan {
			loaned = append(loaned, r)
		} else {
			avail = append(avail, r)
		}
	}
	c.JSON(http.StatusOK, app.H{"available": avail, "loaned": loaned})
}

// 管理员建档一件唯一设备
func (ec *EquipmentController) CreateUnit(c *gin.Context) {
	var in struct {
		ID       string `json:"id"`
		Name     string `json:"name" binding:"required"`
		Brand    string `json:"brand" binding:"required"`
		Type     string `json:"type" binding:"required"`
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	u := &models.Unit{ID: in.ID, Name: in.Name, Brand: in.Brand, Type: in.Type, Category: in.Category}
	if err := ec.Repo.AddUnit(c.Request.Context(), u); err != nil {
		c.JSON(httpStatusFor(err), app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ec *EquipmentController) DeleteUnit(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing unit id"})
		return
	}
	if err := ec.Repo.RemoveUnit(c.Request.Context(), id); err != nil {
		c.JSON(httpStatusFor(err), app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

type checkoutReq struct {
	UnitIDs  []string   `json:"unitIds" binding:"required"`
	FormID   string     `json:"formId" binding:"required"`
	LoanDate *time.Time `json:"loanDate"`
}

// Checkout 整批借出，部分失败就整批不动
func (ec *EquipmentController) Checkout(c *gin.Context) {
	var in checkoutReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	loanDate := time.Now().UTC()
	if in.LoanDate != nil {
		loanDate = *in.LoanDate
	}

	txns, err := ec.Repo.CheckoutUnits(c.Request.Context(), in.UnitIDs, in.FormID, loanDate)
	if err != nil {
		c.JSON(httpStatusFor(err), app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"formId": in.FormID, "txns": txns})
}

type returnReq struct {
	UnitIDs    []string   `json:"unitIds" binding:"required"`
	ReturnDate *time.Time `json:"returnDate"`
}

// Return 整批归还；重复归还同一批是安全的空操作
func (ec *EquipmentController) Return(c *gin.Context) {
	var in returnReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	returnDate := time.Now().UTC()
	if in.ReturnDate != nil {
		returnDate = *in.ReturnDate
	}

	n, err := ec.Repo.ReturnUnits(c.Request.Context(), in.UnitIDs, returnDate)
	if err != nil {
		c.JSON(httpStatusFor(err), app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"returned": n})
}
