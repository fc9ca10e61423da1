package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenwine/db"
	"goldenwine/errs"
	"goldenwine/models"
	"goldenwine/store"
)

func newTestLedger(now time.Time) (*Ledger, *store.MemStore) {
	st := store.NewMemStore()
	l := NewLedger(st)
	l.now = func() time.Time { return now }
	return l, st
}

func TestRecordComputesTotalAndDate(t *testing.T) {
	ctx := context.Background()
	l, st := newTestLedger(time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC))

	rec, err := l.Record(ctx, &RecordInput{
		Person:   "lan",
		Product:  "Red 2018",
		Quantity: 3,
		Price:    "250000",
	})
	require.NoError(t, err)
	assert.Equal(t, "750000", rec.TotalAmount)
	assert.Equal(t, "2026-08-30", rec.Date)
	assert.Equal(t, models.ApprovalApproved, rec.ApprovalStatus)

	var saved models.SalesRecord
	require.NoError(t, st.Get(ctx, db.SalesCollection, rec.ID, &saved))
	assert.Equal(t, "750000", saved.TotalAmount)
}

func TestRecordUsesLocalCalendarDay(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC; the record must keep
	// the seller's local day
	lima := time.FixedZone("UTC-5", -5*3600)
	l, _ := newTestLedger(time.Date(2026, 8, 30, 23, 30, 0, 0, lima))

	rec, err := l.Record(context.Background(), &RecordInput{
		Person: "lan", Product: "Red", Quantity: 1, Price: "100000",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", rec.Date)
}

func TestRecordAcceptsExplicitDate(t *testing.T) {
	l, _ := newTestLedger(time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC))

	rec, err := l.Record(context.Background(), &RecordInput{
		Person: "lan", Product: "Red", Quantity: 1, Price: "100000", Date: "2026-08-25",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-25", rec.Date)

	// a malformed date falls back to today
	rec, err = l.Record(context.Background(), &RecordInput{
		Person: "lan", Product: "Red", Quantity: 1, Price: "100000", Date: "25/08/2026",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", rec.Date)
}

func TestRecordValidation(t *testing.T) {
	l, _ := newTestLedger(time.Now())
	ctx := context.Background()

	_, err := l.Record(ctx, &RecordInput{Product: "Red", Quantity: 1, Price: "1"})
	assert.True(t, errs.IsValidation(err))
	_, err = l.Record(ctx, &RecordInput{Person: "lan", Quantity: 1, Price: "1"})
	assert.True(t, errs.IsValidation(err))
	_, err = l.Record(ctx, &RecordInput{Person: "lan", Product: "Red", Quantity: 0, Price: "1"})
	assert.True(t, errs.IsValidation(err))
	_, err = l.Record(ctx, &RecordInput{Person: "lan", Product: "Red", Quantity: 1, Price: "x"})
	assert.True(t, errs.IsValidation(err))
	_, err = l.Record(ctx, &RecordInput{Person: "lan", Product: "Red", Quantity: 1, Price: "0"})
	assert.True(t, errs.IsValidation(err))
}

func TestRecordFractionalQuantity(t *testing.T) {
	l, _ := newTestLedger(time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC))

	rec, err := l.Record(context.Background(), &RecordInput{
		Person: "lan", Product: "Bulk red", Quantity: 2.5, Price: "100000",
	})
	require.NoError(t, err)
	assert.Equal(t, "250000", rec.TotalAmount)
}

func seedRecords(t *testing.T, l *Ledger) {
	t.Helper()
	ctx := context.Background()
	for _, in := range []RecordInput{
		{Person: "lan", Product: "Red", Quantity: 1, Price: "100000", Date: "2026-08-29"},
		{Person: "lan", Product: "White", Quantity: 2, Price: "80000", Date: "2026-08-30"},
		{Person: "minh", Product: "Rosé", Quantity: 1, Price: "120000", Date: "2026-09-05"},
	} {
		_, err := l.Record(ctx, &in)
		require.NoError(t, err)
	}
}

func TestQueries(t *testing.T) {
	l, _ := newTestLedger(time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC))
	seedRecords(t, l)
	ctx := context.Background()

	byPerson, err := l.ByPerson(ctx, "lan")
	require.NoError(t, err)
	assert.Len(t, byPerson, 2)

	byDate, err := l.ByDate(ctx, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "White", byDate[0].Product)

	inRange, err := l.ByDateRange(ctx, "2026-08-29", "2026-08-30")
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	_, err = l.ByDate(ctx, "30-08-2026")
	assert.True(t, errs.IsValidation(err))
}

func TestThisWeekSundayToSaturday(t *testing.T) {
	// 2026-09-02 is a Wednesday; its week runs 2026-08-30 .. 2026-09-05
	l, _ := newTestLedger(time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC))
	seedRecords(t, l)

	week, err := l.ThisWeek(context.Background())
	require.NoError(t, err)
	require.Len(t, week, 2)
	assert.Equal(t, "2026-08-30", week[0].Date)
	assert.Equal(t, "2026-09-05", week[1].Date)
}

func TestEditRecomputesTotal(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC))

	rec, err := l.Record(ctx, &RecordInput{
		Person: "lan", Product: "Red", Quantity: 2, Price: "100000",
	})
	require.NoError(t, err)

	// quantity change alone recomputes against the stored price
	edited, err := l.Edit(ctx, rec.ID, map[string]any{"quantity": float64(5)})
	require.NoError(t, err)
	assert.Equal(t, "500000", edited.TotalAmount)

	// price change alone recomputes against the merged quantity
	edited, err = l.Edit(ctx, rec.ID, map[string]any{"price": "90000"})
	require.NoError(t, err)
	assert.Equal(t, float64(5), edited.Quantity)
	assert.Equal(t, "450000", edited.TotalAmount)
}

func TestEditValidation(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(time.Now())
	rec, err := l.Record(ctx, &RecordInput{Person: "lan", Product: "Red", Quantity: 1, Price: "100000"})
	require.NoError(t, err)

	_, err = l.Edit(ctx, rec.ID, map[string]any{"quantity": float64(0)})
	assert.True(t, errs.IsValidation(err))
	_, err = l.Edit(ctx, rec.ID, map[string]any{"price": "junk"})
	assert.True(t, errs.IsValidation(err))
	_, err = l.Edit(ctx, "missing", map[string]any{"note": "x"})
	assert.True(t, errs.IsNotFound(err))
}

func TestSetApproval(t *testing.T) {
	ctx := context.Background()
	l, st := newTestLedger(time.Now())
	rec, err := l.Record(ctx, &RecordInput{Person: "lan", Product: "Red", Quantity: 1, Price: "100000"})
	require.NoError(t, err)

	require.NoError(t, l.SetApproval(ctx, rec.ID, models.ApprovalRejected, "wrong price", "admin1"))

	var saved models.SalesRecord
	require.NoError(t, st.Get(ctx, db.SalesCollection, rec.ID, &saved))
	assert.Equal(t, models.ApprovalRejected, saved.ApprovalStatus)
	assert.Equal(t, "wrong price", saved.ApprovalNote)
	assert.Equal(t, "admin1", saved.ApprovedBy)

	err = l.SetApproval(ctx, rec.ID, "maybe", "", "admin1")
	assert.True(t, errs.IsValidation(err))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(time.Now())
	rec, err := l.Record(ctx, &RecordInput{Person: "lan", Product: "Red", Quantity: 1, Price: "100000"})
	require.NoError(t, err)

	require.NoError(t, l.Delete(ctx, rec.ID))
	assert.True(t, errs.IsNotFound(l.Delete(ctx, rec.ID)))
}
