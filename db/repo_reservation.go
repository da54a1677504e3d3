package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Gin_postgres_redis_equipment_loan/ledger"
	"Gin_postgres_redis_equipment_loan/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRequestNotFound = errors.New("reservation not found")
	// Pending 状态只能裁决一次，不能改判
	ErrRequestDecided = errors.New("reservation already decided")
	ErrBadOutcome     = errors.New("outcome must be Processed or Rejected")
)

// CreateReservation 提交预约。只做入参校验，故意不对照当前库存——
// 允许先收下超出供给的申请，缺口由对账时的 0 下限体现。
func (r *Repo) CreateReservation(ctx context.Context, lines []models.ReservationLine, loanAt, returnAt time.Time) (*models.Reservation, error) {
	if err := ledger.ValidateRequest(lines, loanAt, returnAt); err != nil {
		return nil, err
	}
	res := &models.Reservation{
		ID:       uuid.NewString(),
		LoanAt:   loanAt,
		ReturnAt: returnAt,
		Status:   models.RequestPending,
		Lines:    lines,
	}
	if err := r.DB.WithContext(ctx).Create(res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

// DecideReservation 管理员裁决：Pending → Processed / Rejected，一次定死。
// 只是记账——批准并不代为借出设备，实际领用仍走 CheckoutUnits。
func (r *Repo) DecideReservation(ctx context.Context, id string, outcome models.RequestStatus) (*models.Reservation, error) {
	if outcome != models.RequestProcessed && outcome != models.RequestRejected {
		return nil, fmt.Errorf("%w: %s", ErrBadOutcome, outcome)
	}

	var res models.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&res, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrRequestNotFound, id)
			}
			return err
		}
		if res.Status != models.RequestPending {
			return fmt.Errorf("%w: %s is %s", ErrRequestDecided, id, res.Status)
		}
		if err := tx.Model(&models.Reservation{}).
			Where("id = ?", id).
			Update("status", outcome).Error; err != nil {
			return err
		}
		res.Status = outcome
		return tx.Where("reservation_id = ?", id).Find(&res.Lines).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListPendingReservations 待处理预约，最近提交的在前
func (r *Repo) ListPendingReservations(ctx context.Context) ([]models.Reservation, error) {
	var rs []models.Reservation
	err := r.DB.WithContext(ctx).
		Preload("Lines").
		Where("status = ?", models.RequestPending).
		Order("created_at DESC").
		Find(&rs).Error
	if err != nil {
		return nil, err
	}
	return rs, nil
}
