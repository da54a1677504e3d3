package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"Gin_postgres_redis_equipment_loan/ledger"
	"Gin_postgres_redis_equipment_loan/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// 每次借出必须能追溯到一张借用单
	ErrFormRequired    = errors.New("loan form number is required")
	ErrNoUnitsSelected = errors.New("no units selected")
	// 复用核心层的双重借出哨兵，errors.Is 两边都认
	ErrUnitOnLoan = ledger.ErrAlreadyOnLoan
)

// lockStatuses 按排好序的 id 逐件拿行锁并读回状态行。
// 锁获取顺序全局一致，两批并发交错也不会互相死锁。
func lockStatuses(tx *gorm.DB, ids []string) ([]models.UnitStatus, error) {
	states := make([]models.UnitStatus, 0, len(ids))
	for _, id := range ids {
		var st models.UnitStatus
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&st, "unit_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnitNotFound, id)
			}
			return nil, err
		}
		states = append(states, st)
	}
	return states, nil
}

// CheckoutUnits 批量借出：锁行读回状态，迁移决策交给
// ledger.CheckoutBatch（纯函数），这里只负责落库。
// 整批要么全部成功要么全部回滚，不留半套状态。
func (r *Repo) CheckoutUnits(ctx context.Context, ids []string, formID string, loanDate time.Time) ([]models.LoanTransaction, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return nil, ErrFormRequired
	}
	ids = dedupSorted(ids)
	if len(ids) == 0 {
		return nil, ErrNoUnitsSelected
	}

	var txns []models.LoanTransaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		states, err := lockStatuses(tx, ids)
		if err != nil {
			return err
		}
		updated, planned, err := ledger.CheckoutBatch(states, formID, loanDate)
		if err != nil {
			return err
		}

		for _, st := range updated {
			if err := tx.Model(&models.UnitStatus{}).
				Where("unit_id = ?", st.UnitID).
				Updates(map[string]any{
					"status":        st.Status,
					"current_form":  st.CurrentForm,
					"loan_start_at": st.LoanStartAt,
				}).Error; err != nil {
				return err
			}
		}
		// 唯一部分索引兜底：并发重复开 Active 交易会在这里撞索引
		for _, l := range planned {
			l.ID = uuid.NewString()
			if err := tx.Create(&l).Error; err != nil {
				return err
			}
			txns = append(txns, l)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// ReturnUnits 批量归还：ledger.ReturnBatch 只交回真正要迁移的行，
// 已经 Available 的直接跳过——前台重复提交归还单不算错。
// 未知 id 仍然报错并回滚整批。返回实际归还件数。
func (r *Repo) ReturnUnits(ctx context.Context, ids []string, returnDate time.Time) (int, error) {
	ids = dedupSorted(ids)
	if len(ids) == 0 {
		return 0, ErrNoUnitsSelected
	}

	returned := 0
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		states, err := lockStatuses(tx, ids)
		if err != nil {
			return err
		}
		for _, st := range ledger.ReturnBatch(states) {
			if err := tx.Model(&models.UnitStatus{}).
				Where("unit_id = ?", st.UnitID).
				Updates(map[string]any{
					"status":        st.Status,
					"current_form":  nil,
					"loan_start_at": nil,
				}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.LoanTransaction{}).
				Where("unit_id = ? AND status = ?", st.UnitID, models.TxnActive).
				Updates(map[string]any{
					"status":      models.TxnReturned,
					"return_date": returnDate,
				}).Error; err != nil {
				return err
			}
			returned++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return returned, nil
}

// 去重 + 排序，保证锁获取顺序全局一致
func dedupSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
