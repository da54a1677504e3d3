// models/loan_txn.go
package models

import "time"

const TxnTable = "daci_loan_txns"

// TxnStatus 借出交易状态（关闭后不可再改）
type TxnStatus string

const (
	TxnActive   TxnStatus = "Active"
	TxnReturned TxnStatus = "Returned"
)

// LoanTransaction 一件设备在一张借用单下的一次借出记录。
// 归还时写入 ReturnDate 并置 Returned；历史记录只追加，从不删除。
type LoanTransaction struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	FormID     string     `gorm:"size:120;index;not null" json:"formId"`
	UnitID     string     `gorm:"size:64;index;not null" json:"unitId"`
	LoanDate   time.Time  `gorm:"index;not null" json:"loanDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     TxnStatus  `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (LoanTransaction) TableName() string { return TxnTable }
