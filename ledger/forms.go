// ledger/forms.go
package ledger

import (
	"sort"
	"time"

	"Gin_postgres_redis_equipment_loan/models"
)

// FormStatus 借用单派生状态：全部归还才算 Complete
type FormStatus string

const (
	FormActive   FormStatus = "Active"
	FormComplete FormStatus = "Complete"
)

// TxnRow 一条借出交易连同设备属性（forms 视图用）。
// 设备被删除后历史仍在，此时设备字段为空串。
type TxnRow struct {
	TxnID      string           `json:"txnId"`
	FormID     string           `json:"formId"`
	UnitID     string           `json:"unitId"`
	Name       string           `json:"name"`
	Brand      string           `json:"brand"`
	Type       string           `json:"type"`
	LoanDate   time.Time        `json:"loanDate"`
	ReturnDate *time.Time       `json:"returnDate,omitempty"`
	Status     models.TxnStatus `json:"status"`
}

// Form 同一 FormID 下全部交易的分组视图
type Form struct {
	FormID     string     `json:"formId"`
	LatestLoan time.Time  `json:"latestLoan"`
	Count      int        `json:"count"`
	Status     FormStatus `json:"status"`
	Items      []TxnRow   `json:"items"`
}

// FormState 借用单不能没有交易：空集合视为 Active（上层应当先判 404）。
func FormState(rows []TxnRow) FormStatus {
	if len(rows) == 0 {
		return FormActive
	}
	for _, r := range rows {
		if r.Status != models.TxnReturned {
			return FormActive
		}
	}
	return FormComplete
}

// GroupForms 把交易流按 FormID 分组并派生状态。
// 排序：最近借出时间倒序，时间相同按 FormID 升序。
func GroupForms(rows []TxnRow) []Form {
	byForm := make(map[string]*Form)
	for _, r := range rows {
		f, ok := byForm[r.FormID]
		if !ok {
			f = &Form{FormID: r.FormID}
			byForm[r.FormID] = f
		}
		f.Items = append(f.Items, r)
		if r.LoanDate.After(f.LatestLoan) {
			f.LatestLoan = r.LoanDate
		}
	}

	out := make([]Form, 0, len(byForm))
	for _, f := range byForm {
		sort.Slice(f.Items, func(i, j int) bool {
			a, b := f.Items[i], f.Items[j]
			if !a.LoanDate.Equal(b.LoanDate) {
				return a.LoanDate.Before(b.LoanDate)
			}
			return a.UnitID < b.UnitID
		})
		f.Count = len(f.Items)
		f.Status = FormState(f.Items)
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.LatestLoan.Equal(b.LatestLoan) {
			return a.LatestLoan.After(b.LatestLoan)
		}
		return a.FormID < b.FormID
	})
	return out
}
