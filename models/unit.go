// models/unit.go
package models

import "time"

const UnitTable = "daci_units"
const UnitStatusTable = "daci_unit_status"

// AvailState 设备当前可借状态
type AvailState string

const (
	AvailFree   AvailState = "Available"
	AvailOnLoan AvailState = "OnLoan"
)

type Unit struct {
	ID       string `gorm:"size:64;primaryKey" json:"id"`
	Name     string `gorm:"size:200;not null;index" json:"name"`
	Brand    string `gorm:"size:120;not null;index" json:"brand"`
	Type     string `gorm:"size:120;not null" json:"type"`
	Category string `gorm:"size:120;not null;index" json:"category"`
	// 每件设备单独追踪，数量恒为 1
	Qty       int       `gorm:"not null;default:1" json:"qty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UnitStatus 与 Unit 一对一：当前是否借出 + 借出表单绑定
// 不变式：Status = OnLoan ⇔ CurrentForm 非空 ⇔ 存在一条 Active 交易
type UnitStatus struct {
	UnitID      string     `gorm:"size:64;primaryKey" json:"unitId"`
	Status      AvailState `gorm:"size:20;not null;default:'Available'" json:"status"`
	CurrentForm *string    `gorm:"size:120" json:"currentForm,omitempty"`
	LoanStartAt *time.Time `json:"loanStartAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Unit) TableName() string       { return UnitTable }
func (UnitStatus) TableName() string { return UnitStatusTable }
