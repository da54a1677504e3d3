// controllers/errors.go
package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_equipment_loan/db"
	"Gin_postgres_redis_equipment_loan/ledger"
)

// 核心层的哨兵错误翻译成 HTTP 状态码：
// 入参问题 400，查无此物 404，状态冲突 409，其余当存储故障 500
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrValidation),
		errors.Is(err, db.ErrFormRequired),
		errors.Is(err, db.ErrNoUnitsSelected),
		errors.Is(err, db.ErrBadOutcome):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrUnitNotFound),
		errors.Is(err, db.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrUnitOnLoan),
		errors.Is(err, db.ErrUnitLoanOpen),
		errors.Is(err, db.ErrUnitExists),
		errors.Is(err, db.ErrRequestDecided):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
