package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Gin_postgres_redis_equipment_loan/ledger"
	"Gin_postgres_redis_equipment_loan/models"
)

func camKey() ledger.SKUKey {
	return ledger.SKUKey{Name: "A7 IV", Brand: "Sony", Type: "DSLR", Category: "Camera"}
}

func camLine(qty int) models.ReservationLine {
	return models.ReservationLine{Name: "A7 IV", Brand: "Sony", Type: "DSLR", Category: "Camera", Qty: qty}
}

func pendingRes(lines ...models.ReservationLine) models.Reservation {
	return models.Reservation{Status: models.RequestPending, Lines: lines}
}

func Test_Reconcile_NetsPendingDemand(t *testing.T) {
	buckets := []ledger.Bucket{{Key: camKey(), Total: 5, Available: 5, NetAvailable: 5}}

	out, _ := ledger.Reconcile(buckets, []models.Reservation{pendingRes(camLine(2))})
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].PendingDemand)
	assert.Equal(t, 3, out[0].NetAvailable)

	// 第二张 Pending 预约再要 4 件：需求 6 > 供给 5，压到 0 而不是 −1
	out, _ = ledger.Reconcile(buckets, []models.Reservation{
		pendingRes(camLine(2)),
		pendingRes(camLine(4)),
	})
	assert.Equal(t, 6, out[0].PendingDemand)
	assert.Equal(t, 0, out[0].NetAvailable)
}

func Test_Reconcile_OnlyMatchingLinesCount(t *testing.T) {
	buckets := []ledger.Bucket{{Key: camKey(), Total: 3, Available: 3, NetAvailable: 3}}

	// 一张预约可以跨多个 SKU，只有对得上 key 的行计入
	mixed := pendingRes(
		camLine(1),
		models.ReservationLine{Name: "Key Light", Brand: "Elgato", Type: "LED", Category: "Lights", Qty: 10},
	)

	out, _ := ledger.Reconcile(buckets, []models.Reservation{mixed})
	assert.Equal(t, 1, out[0].PendingDemand)
	assert.Equal(t, 2, out[0].NetAvailable)
}

func Test_Reconcile_DecidedRequestsDoNotCount(t *testing.T) {
	buckets := []ledger.Bucket{{Key: camKey(), Total: 5, Available: 5, NetAvailable: 5}}

	reqs := []models.Reservation{
		{Status: models.RequestProcessed, Lines: []models.ReservationLine{camLine(3)}},
		{Status: models.RequestRejected, Lines: []models.ReservationLine{camLine(2)}},
		pendingRes(camLine(1)),
	}

	out, _ := ledger.Reconcile(buckets, reqs)
	assert.Equal(t, 1, out[0].PendingDemand)
	assert.Equal(t, 4, out[0].NetAvailable)
}

func Test_Reconcile_Totals(t *testing.T) {
	buckets := []ledger.Bucket{
		{Key: camKey(), Total: 5, Available: 3, Loaned: 2},
		{Key: ledger.SKUKey{Name: "H6", Brand: "Zoom", Type: "Recorder", Category: "Audio"}, Total: 2, Available: 2},
	}

	_, totals := ledger.Reconcile(buckets, []models.Reservation{pendingRes(camLine(4))})
	assert.Equal(t, 7, totals.TotalAssets)
	// 实际借出 2 + 待处理需求 4
	assert.Equal(t, 6, totals.DisplayLoaned)
	assert.Equal(t, 1, totals.DisplayAvailable)
}

func Test_Reconcile_DisplayAvailableFloorsAtZero(t *testing.T) {
	buckets := []ledger.Bucket{{Key: camKey(), Total: 2, Available: 1, Loaned: 1}}

	_, totals := ledger.Reconcile(buckets, []models.Reservation{pendingRes(camLine(9))})
	assert.Equal(t, 10, totals.DisplayLoaned)
	assert.Equal(t, 0, totals.DisplayAvailable)
}

func Test_Reconcile_DoesNotMutateInput(t *testing.T) {
	buckets := []ledger.Bucket{{Key: camKey(), Total: 5, Available: 5, NetAvailable: 5}}

	_, _ = ledger.Reconcile(buckets, []models.Reservation{pendingRes(camLine(2))})
	assert.Equal(t, 0, buckets[0].PendingDemand)
	assert.Equal(t, 5, buckets[0].NetAvailable)
}

func Test_Reconcile_EmptyInputs(t *testing.T) {
	out, totals := ledger.Reconcile(nil, nil)
	assert.Empty(t, out)
	assert.Zero(t, totals.TotalAssets)
	assert.Zero(t, totals.DisplayLoaned)
	assert.Zero(t, totals.DisplayAvailable)
}
