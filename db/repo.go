package db

import (
	"Gin_postgres_redis_equipment_loan/models"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

var (
	ErrUnitNotFound = errors.New("unit not found")
	ErrUnitExists   = errors.New("unit id already exists")
	// 设备身上还挂着未归还的借出，删不得
	ErrUnitLoanOpen = errors.New("unit has an open loan")
)

// AddUnit 建档：设备 + 初始 Available 状态行，一个事务里写完。
// 不传 ID 就用 UUID；Qty 固定为 1。
func (r *Repo) AddUnit(ctx context.Context, u *models.Unit) error {
	u.ID = strings.TrimSpace(u.ID)
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Qty = 1
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Unit{}).Where("id = ?", u.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %s", ErrUnitExists, u.ID)
		}
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return tx.Create(&models.UnitStatus{UnitID: u.ID, Status: models.AvailFree}).Error
	})
}

// RemoveUnit 除档。借出中的设备拒绝删除（与交易记录保持引用完整）。
// 历史交易保留不动，审计还要用。
func (r *Repo) RemoveUnit(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st models.UnitStatus
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&st, "unit_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrUnitNotFound, id)
			}
			return err
		}
		if st.Status == models.AvailOnLoan {
			return fmt.Errorf("%w: %s", ErrUnitLoanOpen, id)
		}
		if err := tx.Where("unit_id = ?", id).Delete(&models.UnitStatus{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Unit{}).Error
	})
}

func (r *Repo) FindUnitByID(ctx context.Context, id string) (*models.Unit, error) {
	var u models.Unit
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnitNotFound, id)
		}
		return nil, err
	}
	return &u, nil
}

// 筛选下拉框用的选项。分类传 "Others" 时取清单之外的品牌。
func (r *Repo) DistinctBrands(ctx context.Context, category string) ([]string, error) {
	q := r.DB.WithContext(ctx).Model(&models.Unit{}).Distinct("brand").Order("brand")
	if cond, arg := categoryCond("category", category); cond != "" {
		q = q.Where(cond, arg)
	}
	var brands []string
	err := q.Pluck("brand", &brands).Error
	return brands, err
}

func (r *Repo) DistinctTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.DB.WithContext(ctx).Model(&models.Unit{}).
		Distinct("type").Order("type").Pluck("type", &types).Error
	return types, err
}
