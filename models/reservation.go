// models/reservation.go
package models

import "time"

const ReservationTable = "daci_reservations"
const ReservationLineTable = "daci_reservation_lines"

// RequestStatus 预约单状态：Pending → Processed / Rejected，只转移一次
type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestProcessed RequestStatus = "Processed"
	RequestRejected  RequestStatus = "Rejected"
)

// Reservation 尚未绑定到具体设备的需求申请。
// Pending 期间其行项目计入对应 SKU 的待处理需求。
type Reservation struct {
	ID        string            `gorm:"type:uuid;primaryKey" json:"id"`
	LoanAt    time.Time         `gorm:"not null" json:"loanAt"`
	ReturnAt  time.Time         `gorm:"not null" json:"returnAt"`
	Status    RequestStatus     `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	Lines     []ReservationLine `gorm:"foreignKey:ReservationID" json:"lines"`
	CreatedAt time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ReservationLine 申请单里的一行：某个 SKU 要借几件
type ReservationLine struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	ReservationID string `gorm:"type:uuid;index;not null" json:"-"`
	Name          string `gorm:"size:200;not null" json:"name"`
	Brand         string `gorm:"size:120;not null" json:"brand"`
	Type          string `gorm:"size:120;not null" json:"type"`
	Category      string `gorm:"size:120;not null" json:"category"`
	Qty           int    `gorm:"not null" json:"qty"`
}

func (Reservation) TableName() string     { return ReservationTable }
func (ReservationLine) TableName() string { return ReservationLineTable }
