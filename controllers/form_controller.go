// controllers/form_controller.go
package controllers

import (
	"net/http"

	"Gin_postgres_redis_equipment_loan/app"
	"Gin_postgres_redis_equipment_loan/ledger"

	"github.com/gin-gonic/gin"
)

type FormController struct{ *Srv }

func NewFormController(s *Srv) *FormController { return &FormController{Srv: s} }

// ListForms 全部借用单，最近借出的在前
func (fc *FormController) ListForms(c *gin.Context) {
	rows, err := fc.Repo.ListTransactionRows(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"forms": ledger.GroupForms(rows)})
}

// GetForm 单张借用单的交易明细 + 派生状态
func (fc *FormController) GetForm(c *gin.Context) {
	formID := c.Param("id")
	if formID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing form id"})
		return
	}
	rows, err := fc.Repo.TransactionsByForm(c.Request.Context(), formID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	// 借用单没有空壳：没有任何交易就是不存在
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, app.H{"error": "form not found"})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"formId": formID,
		"status": ledger.FormState(rows),
		"count":  len(rows),
		"items":  rows,
	})
}
