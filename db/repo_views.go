// db/repo_views.go
package db

import (
	"context"
	"database/sql"

	"Gin_postgres_redis_equipment_loan/ledger"
	"Gin_postgres_redis_equipment_loan/models"

	"gorm.io/gorm"
)

// UnitFilter 台账快照的查询条件。空串或 "ALL" 表示不过滤。
// Availability: "" / "available" / "loaned"
type UnitFilter struct {
	Name         string
	Brand        string
	Type         string
	Category     string
	Availability string
}

// CategoryOthers 固定分类清单之外的其它分类
const CategoryOthers = "Others"

var knownCategories = []string{
	"Lights", "Camera", "Digital Tablet", "Audio", "MICs (Recording Studio)",
	"VR Headset", "Stabilizer", "Tripod", "Filter", "Lens",
	"DACI Lighting Set", "DACI Lighting Tripod",
}

// categoryCond 分类筛选的 SQL 条件："Others" 表示不在清单里的分类，
// 空串和 "ALL" 不筛选。
func categoryCond(col, category string) (string, any) {
	switch category {
	case "", "ALL":
		return "", nil
	case CategoryOthers:
		return col + " NOT IN ?", knownCategories
	default:
		return col + " = ?", category
	}
}

// UnitRows 一条 join 查询读回设备 + 状态，单条语句自身就是一致快照
func (r *Repo) UnitRows(ctx context.Context, f UnitFilter) ([]ledger.UnitRow, error) {
	return scanUnitRows(r.DB.WithContext(ctx), f)
}

// DashboardSnapshot 仪表盘一次性读：台账行 + 待处理预约放在同一个
// REPEATABLE READ 只读事务里取，避免对账数字混到并发借出提交前后
// 两个世代的状态。
func (r *Repo) DashboardSnapshot(ctx context.Context, f UnitFilter) ([]ledger.UnitRow, []models.Reservation, error) {
	var rows []ledger.UnitRow
	var pending []models.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if rows, err = scanUnitRows(tx, f); err != nil {
			return err
		}
		return tx.Preload("Lines").
			Where("status = ?", models.RequestPending).
			Order("created_at DESC").
			Find(&pending).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, nil, err
	}
	return rows, pending, nil
}

func scanUnitRows(tx *gorm.DB, f UnitFilter) ([]ledger.UnitRow, error) {
	q := tx.Table(models.UnitTable+" u").
		Select(`
			u.id AS unit_id, u.name, u.brand, u.type, u.category,
			s.status = 'OnLoan' AS on_loan,
			s.current_form AS form_id,
			s.loan_start_at
		`).
		Joins("JOIN " + models.UnitStatusTable + " s ON s.unit_id = u.id")

	if f.Name != "" && f.Name != "ALL" {
		q = q.Where("u.name = ?", f.Name)
	}
	if f.Brand != "" && f.Brand != "ALL" {
		q = q.Where("u.brand = ?", f.Brand)
	}
	if f.Type != "" && f.Type != "ALL" {
		q = q.Where("u.type = ?", f.Type)
	}
	if cond, arg := categoryCond("u.category", f.Category); cond != "" {
		q = q.Where(cond, arg)
	}
	switch f.Availability {
	case "available":
		q = q.Where("s.status = ?", models.AvailFree)
	case "loaned":
		q = q.Where("s.status = ?", models.AvailOnLoan)
	}

	var rows []ledger.UnitRow
	if err := q.Order("u.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListTransactionRows 全部借出交易连同设备属性（forms 视图）。
// 设备可能已除档，LEFT JOIN + COALESCE 保住历史行。
func (r *Repo) ListTransactionRows(ctx context.Context) ([]ledger.TxnRow, error) {
	return scanTxnRows(r.DB.WithContext(ctx), "")
}

// TransactionsByForm 单张借用单下的全部交易
func (r *Repo) TransactionsByForm(ctx context.Context, formID string) ([]ledger.TxnRow, error) {
	return scanTxnRows(r.DB.WithContext(ctx), formID)
}

func scanTxnRows(tx *gorm.DB, formID string) ([]ledger.TxnRow, error) {
	q := tx.Table(models.TxnTable+" t").
		Select(`
			t.id AS txn_id, t.form_id, t.unit_id,
			COALESCE(u.name, '') AS name,
			COALESCE(u.brand, '') AS brand,
			COALESCE(u.type, '') AS type,
			t.loan_date, t.return_date, t.status
		`).
		Joins("LEFT JOIN " + models.UnitTable + " u ON u.id = t.unit_id")
	if formID != "" {
		q = q.Where("t.form_id = ?", formID)
	}

	var rows []ledger.TxnRow
	if err := q.Order("t.loan_date DESC, t.form_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
