// ledger/validate.go
package ledger

import (
	"errors"
	"fmt"
	"time"

	"Gin_postgres_redis_equipment_loan/models"
)

// 校验错误统一挂在 ErrValidation 下，调用方用 errors.Is 判断后可改正重提
var ErrValidation = errors.New("invalid request")

var (
	ErrNoLines     = fmt.Errorf("%w: no line items", ErrValidation)
	ErrBadQuantity = fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	ErrBadWindow   = fmt.Errorf("%w: loan date must be before return date", ErrValidation)
)

// ValidateRequest 预约提交前的入参校验。
// 注意：这里故意不看当前物理库存——超订在 Reconcile 阶段以 0 下限体现。
func ValidateRequest(lines []models.ReservationLine, loanAt, returnAt time.Time) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	for _, l := range lines {
		if l.Qty < 1 {
			return ErrBadQuantity
		}
	}
	if !loanAt.Before(returnAt) {
		return ErrBadWindow
	}
	return nil
}
