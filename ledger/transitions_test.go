package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Gin_postgres_redis_equipment_loan/ledger"
	"Gin_postgres_redis_equipment_loan/models"
)

func freeStatus(id string) models.UnitStatus {
	return models.UnitStatus{UnitID: id, Status: models.AvailFree}
}

func loanedStatus(id, form string, since time.Time) models.UnitStatus {
	return models.UnitStatus{
		UnitID: id, Status: models.AvailOnLoan, CurrentForm: &form, LoanStartAt: &since,
	}
}

func Test_CheckoutBatch_BindsFormAndOpensOneActiveTxnPerUnit(t *testing.T) {
	d := day(1)
	states := []models.UnitStatus{freeStatus("U1"), freeStatus("U2")}

	updated, txns, err := ledger.CheckoutBatch(states, "F100", d)
	require.NoError(t, err)
	require.Len(t, updated, 2)
	require.Len(t, txns, 2)

	for i, st := range updated {
		assert.Equal(t, models.AvailOnLoan, st.Status)
		require.NotNil(t, st.CurrentForm)
		assert.Equal(t, "F100", *st.CurrentForm)
		require.NotNil(t, st.LoanStartAt)
		assert.Equal(t, d, *st.LoanStartAt)

		// OnLoan ⇔ 恰好一条 Active 交易，且指向同一件设备
		assert.Equal(t, st.UnitID, txns[i].UnitID)
		assert.Equal(t, models.TxnActive, txns[i].Status)
		assert.Equal(t, "F100", txns[i].FormID)
		assert.Equal(t, d, txns[i].LoanDate)
	}
}

func Test_CheckoutBatch_AllOrNothing(t *testing.T) {
	d := day(1)
	// 三件里第二件已借出：整批失败，一件都不动
	states := []models.UnitStatus{
		freeStatus("U1"),
		loanedStatus("U2", "F099", d),
		freeStatus("U3"),
	}

	updated, txns, err := ledger.CheckoutBatch(states, "F100", day(2))
	assert.ErrorIs(t, err, ledger.ErrAlreadyOnLoan)
	assert.Nil(t, updated)
	assert.Nil(t, txns)

	// 入参按值传递，失败后原状态原封不动
	assert.Equal(t, models.AvailFree, states[0].Status)
	assert.Nil(t, states[0].CurrentForm)
	assert.Equal(t, models.AvailFree, states[2].Status)
}

func Test_ReturnBatch_IdempotentSkip(t *testing.T) {
	d := day(1)
	states := []models.UnitStatus{
		loanedStatus("U1", "F100", d),
		freeStatus("U2"),
	}

	flipped := ledger.ReturnBatch(states)
	require.Len(t, flipped, 1)
	assert.Equal(t, "U1", flipped[0].UnitID)
	assert.Equal(t, models.AvailFree, flipped[0].Status)
	assert.Nil(t, flipped[0].CurrentForm)
	assert.Nil(t, flipped[0].LoanStartAt)

	// 再还一次：没有可迁移的行，不报错也不会再关一次交易
	assert.Empty(t, ledger.ReturnBatch([]models.UnitStatus{flipped[0], freeStatus("U2")}))
}

// 借出 → 部分归还 → 全部归还，串起迁移、聚合和借用单状态
func Test_CheckoutThenReturn_FormLifecycle(t *testing.T) {
	d1, d2, d3 := day(1), day(2), day(3)

	// 三件同 SKU，先借出 U1、U2
	updated, planned, err := ledger.CheckoutBatch(
		[]models.UnitStatus{freeStatus("U1"), freeStatus("U2")}, "F100", d1)
	require.NoError(t, err)

	rows := []ledger.UnitRow{
		unitRow("U1", "A7 IV", "Sony", "DSLR", "Camera", true),
		unitRow("U2", "A7 IV", "Sony", "DSLR", "Camera", true),
		unitRow("U3", "A7 IV", "Sony", "DSLR", "Camera", false),
	}
	buckets := ledger.Aggregate(rows)
	require.Len(t, buckets, 1)
	assert.Equal(t, 3, buckets[0].Total)
	assert.Equal(t, 1, buckets[0].Available)
	assert.Equal(t, 2, buckets[0].Loaned)

	formRows := make([]ledger.TxnRow, len(planned))
	for i, l := range planned {
		formRows[i] = ledger.TxnRow{
			FormID: l.FormID, UnitID: l.UnitID, LoanDate: l.LoanDate, Status: l.Status,
		}
	}
	assert.Equal(t, ledger.FormActive, ledger.FormState(formRows))

	// 还 U1：交易关一条，单子还挂着 U2，仍是 Active
	flipped := ledger.ReturnBatch(updated[:1])
	require.Len(t, flipped, 1)
	formRows[0].Status = models.TxnReturned
	formRows[0].ReturnDate = &d2
	assert.Equal(t, ledger.FormActive, ledger.FormState(formRows))

	// 还 U2：全部归还，单子 Complete
	flipped = ledger.ReturnBatch(updated[1:])
	require.Len(t, flipped, 1)
	formRows[1].Status = models.TxnReturned
	formRows[1].ReturnDate = &d3
	assert.Equal(t, ledger.FormComplete, ledger.FormState(formRows))
}
