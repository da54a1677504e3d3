package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"Gin_postgres_redis_equipment_loan/ledger"
	"Gin_postgres_redis_equipment_loan/models"
)

func Test_ValidateRequest(t *testing.T) {
	loanAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	returnAt := time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC)
	okLine := models.ReservationLine{Name: "A7 IV", Brand: "Sony", Type: "DSLR", Category: "Camera", Qty: 1}

	tests := []struct {
		name     string
		lines    []models.ReservationLine
		loanAt   time.Time
		returnAt time.Time
		wantErr  error
	}{
		{
			name:     "valid_request",
			lines:    []models.ReservationLine{okLine},
			loanAt:   loanAt,
			returnAt: returnAt,
		},
		{
			name:     "no_lines",
			lines:    nil,
			loanAt:   loanAt,
			returnAt: returnAt,
			wantErr:  ledger.ErrNoLines,
		},
		{
			name: "zero_quantity",
			lines: []models.ReservationLine{
				okLine,
				{Name: "H6", Brand: "Zoom", Type: "Recorder", Category: "Audio", Qty: 0},
			},
			loanAt:   loanAt,
			returnAt: returnAt,
			wantErr:  ledger.ErrBadQuantity,
		},
		{
			name:     "negative_quantity",
			lines:    []models.ReservationLine{{Name: "H6", Brand: "Zoom", Type: "Recorder", Category: "Audio", Qty: -2}},
			loanAt:   loanAt,
			returnAt: returnAt,
			wantErr:  ledger.ErrBadQuantity,
		},
		{
			name:     "window_reversed",
			lines:    []models.ReservationLine{okLine},
			loanAt:   returnAt,
			returnAt: loanAt,
			wantErr:  ledger.ErrBadWindow,
		},
		{
			name:     "window_zero_length",
			lines:    []models.ReservationLine{okLine},
			loanAt:   loanAt,
			returnAt: loanAt,
			wantErr:  ledger.ErrBadWindow,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ledger.ValidateRequest(tc.lines, tc.loanAt, tc.returnAt)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			// 所有校验错误都归在 ErrValidation 下，调用方只判一个哨兵
			assert.ErrorIs(t, err, ledger.ErrValidation)
		})
	}
}
