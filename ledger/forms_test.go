package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Gin_postgres_redis_equipment_loan/ledger"
	"Gin_postgres_redis_equipment_loan/models"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func txnRow(form, unit string, loan time.Time, returned *time.Time) ledger.TxnRow {
	status := models.TxnActive
	if returned != nil {
		status = models.TxnReturned
	}
	return ledger.TxnRow{
		TxnID: form + "/" + unit, FormID: form, UnitID: unit,
		Name: "A7 IV", Brand: "Sony", Type: "DSLR",
		LoanDate: loan, ReturnDate: returned, Status: status,
	}
}

func Test_FormState_CompleteOnlyWhenAllReturned(t *testing.T) {
	d1, d2 := day(1), day(2)

	// 借出两件：还了一件仍是 Active，全还才 Complete
	rows := []ledger.TxnRow{
		txnRow("F100", "U1", d1, nil),
		txnRow("F100", "U2", d1, nil),
	}
	assert.Equal(t, ledger.FormActive, ledger.FormState(rows))

	rows[0] = txnRow("F100", "U1", d1, &d2)
	assert.Equal(t, ledger.FormActive, ledger.FormState(rows))

	rows[1] = txnRow("F100", "U2", d1, &d2)
	assert.Equal(t, ledger.FormComplete, ledger.FormState(rows))
}

func Test_FormState_EmptyIsActive(t *testing.T) {
	assert.Equal(t, ledger.FormActive, ledger.FormState(nil))
}

func Test_GroupForms_DerivesStatusPerForm(t *testing.T) {
	d1, d2 := day(1), day(2)
	rows := []ledger.TxnRow{
		txnRow("F100", "U1", d1, &d2),
		txnRow("F100", "U2", d1, &d2),
		txnRow("F200", "U3", d2, nil),
	}

	forms := ledger.GroupForms(rows)
	require.Len(t, forms, 2)

	byID := map[string]ledger.Form{}
	for _, f := range forms {
		byID[f.FormID] = f
	}
	assert.Equal(t, ledger.FormComplete, byID["F100"].Status)
	assert.Equal(t, 2, byID["F100"].Count)
	assert.Equal(t, ledger.FormActive, byID["F200"].Status)
}

func Test_GroupForms_Ordering(t *testing.T) {
	rows := []ledger.TxnRow{
		txnRow("F300", "U1", day(1), nil),
		txnRow("F100", "U2", day(5), nil),
		// F300 后来又追加了一件：整单以最近一次借出时间排序
		txnRow("F300", "U3", day(9), nil),
		txnRow("F200", "U4", day(5), nil),
	}

	forms := ledger.GroupForms(rows)
	require.Len(t, forms, 3)

	assert.Equal(t, "F300", forms[0].FormID)
	assert.Equal(t, day(9), forms[0].LatestLoan)
	// 时间并列按 FormID 升序
	assert.Equal(t, "F100", forms[1].FormID)
	assert.Equal(t, "F200", forms[2].FormID)
}

func Test_GroupForms_ItemsSortedWithinForm(t *testing.T) {
	rows := []ledger.TxnRow{
		txnRow("F100", "U3", day(2), nil),
		txnRow("F100", "U1", day(1), nil),
		txnRow("F100", "U2", day(1), nil),
	}

	forms := ledger.GroupForms(rows)
	require.Len(t, forms, 1)
	require.Len(t, forms[0].Items, 3)
	assert.Equal(t, "U1", forms[0].Items[0].UnitID)
	assert.Equal(t, "U2", forms[0].Items[1].UnitID)
	assert.Equal(t, "U3", forms[0].Items[2].UnitID)
}

func Test_GroupForms_Empty(t *testing.T) {
	assert.Empty(t, ledger.GroupForms(nil))
}
