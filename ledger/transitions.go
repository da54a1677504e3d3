// ledger/transitions.go
package ledger

import (
	"errors"
	"fmt"
	"time"

	"Gin_postgres_redis_equipment_loan/models"
)

// 双重借出：设备已在借出状态
var ErrAlreadyOnLoan = errors.New("unit already on loan")

// CheckoutBatch 整批借出的纯迁移决策：每件 Available→OnLoan，绑定借用单
// 并规划一条 Active 交易。任何一件已借出整批报错，不产出半套结果。
// db 层在行锁事务里套用这里的决策，报错即整批回滚。
func CheckoutBatch(states []models.UnitStatus, formID string, loanDate time.Time) ([]models.UnitStatus, []models.LoanTransaction, error) {
	updated := make([]models.UnitStatus, 0, len(states))
	txns := make([]models.LoanTransaction, 0, len(states))
	for _, st := range states {
		if st.Status == models.AvailOnLoan {
			return nil, nil, fmt.Errorf("%w: %s", ErrAlreadyOnLoan, st.UnitID)
		}
		form := formID
		start := loanDate
		st.Status = models.AvailOnLoan
		st.CurrentForm = &form
		st.LoanStartAt = &start
		updated = append(updated, st)
		txns = append(txns, models.LoanTransaction{
			FormID:   formID,
			UnitID:   st.UnitID,
			LoanDate: loanDate,
			Status:   models.TxnActive,
		})
	}
	return updated, txns, nil
}

// ReturnBatch 整批归还的纯迁移决策：只返回真正发生 OnLoan→Available
// 的状态行，已经 Available 的原样跳过——重复提交归还单不是错误，
// 也不会再关一次交易。
func ReturnBatch(states []models.UnitStatus) []models.UnitStatus {
	flipped := make([]models.UnitStatus, 0, len(states))
	for _, st := range states {
		if st.Status == models.AvailFree {
			continue
		}
		st.Status = models.AvailFree
		st.CurrentForm = nil
		st.LoanStartAt = nil
		flipped = append(flipped, st)
	}
	return flipped
}
