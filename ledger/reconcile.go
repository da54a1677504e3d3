// ledger/reconcile.go
package ledger

import "Gin_postgres_redis_equipment_loan/models"

// Totals 仪表盘全局数字。
// DisplayLoaned = 实际借出 + 全部待处理需求；DisplayAvailable 不会为负。
type Totals struct {
	TotalAssets      int `json:"total"`
	DisplayAvailable int `json:"available"`
	DisplayLoaned    int `json:"loaned"`
}

// Reconcile 把待处理预约的需求净算进各 SKU 的物理可借数。
// 纯函数：只看参数，不碰台账和预约存储，方便单独测试。
// 每个 bucket 的 NetAvailable = max(0, Available − PendingDemand)，
// 需求超过供给时压到 0，不出现负数（原系统行为，PendingDemand 原样暴露
// 以便调用方自行发现超订）。
func Reconcile(buckets []Bucket, pending []models.Reservation) ([]Bucket, Totals) {
	demand := make(map[SKUKey]int)
	for _, res := range pending {
		if res.Status != models.RequestPending {
			continue
		}
		for _, line := range res.Lines {
			demand[LineKey(line)] += line.Qty
		}
	}

	out := make([]Bucket, len(buckets))
	t := Totals{}
	demandTotal := 0
	for i, b := range buckets {
		b.PendingDemand = demand[b.Key]
		b.NetAvailable = b.Available - b.PendingDemand
		if b.NetAvailable < 0 {
			b.NetAvailable = 0
		}
		out[i] = b

		t.TotalAssets += b.Total
		t.DisplayLoaned += b.Loaned
		demandTotal += b.PendingDemand
	}

	t.DisplayLoaned += demandTotal
	t.DisplayAvailable = t.TotalAssets - t.DisplayLoaned
	if t.DisplayAvailable < 0 {
		t.DisplayAvailable = 0
	}
	return out, t
}
