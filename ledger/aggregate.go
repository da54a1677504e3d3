// ledger/aggregate.go
package ledger

import (
	"sort"
	"time"
)

// UnitRow 台账快照里的一行：一件设备 + 它当前的可借状态。
// 由 db 层的一致性读填充，这里只做纯计算。
type UnitRow struct {
	UnitID      string     `json:"unitId"`
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	OnLoan      bool       `json:"onLoan"`
	FormID      *string    `json:"formId,omitempty"`
	LoanStartAt *time.Time `json:"loanStartAt,omitempty"`
}

func (r UnitRow) Key() SKUKey {
	return SKUKey{Name: r.Name, Brand: r.Brand, Type: r.Type, Category: r.Category}
}

// Bucket 一个 SKU 的汇总。恒有 Available + Loaned = Total。
// PendingDemand / NetAvailable 由 Reconcile 填充。
type Bucket struct {
	Key           SKUKey `json:"key"`
	Total         int    `json:"total"`
	Available     int    `json:"available"`
	Loaned        int    `json:"loaned"`
	PendingDemand int    `json:"pendingDemand"`
	NetAvailable  int    `json:"netAvailable"`
}

// Aggregate 按 SKU 分组统计台账快照。空输入返回空切片，不算错误。
func Aggregate(rows []UnitRow) []Bucket {
	byKey := make(map[SKUKey]*Bucket, len(rows))
	for _, r := range rows {
		k := r.Key()
		b, ok := byKey[k]
		if !ok {
			b = &Bucket{Key: k}
			byKey[k] = b
		}
		b.Total++
		if r.OnLoan {
			b.Loaned++
		} else {
			b.Available++
		}
	}

	out := make([]Bucket, 0, len(byKey))
	for _, b := range byKey {
		b.NetAvailable = b.Available // 还没净掉预约需求
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}
