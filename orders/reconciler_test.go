package orders

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenwine/db"
	"goldenwine/errs"
	"goldenwine/models"
	"goldenwine/store"
	"goldenwine/tasks"
)

type stubMirror struct {
	createID    string
	createErr   error
	updateErr   error
	createCalls int
	updateCalls int
	lastFields  map[string]any
}

func (m *stubMirror) CreateOrder(ctx context.Context, o *models.Order) (string, error) {
	m.createCalls++
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.createID, nil
}

func (m *stubMirror) UpdateOrder(ctx context.Context, platformID string, fields map[string]any) error {
	m.updateCalls++
	m.lastFields = fields
	return m.updateErr
}

type stubNotifier struct {
	mu    sync.Mutex
	calls int
	last  *models.Order
}

func (n *stubNotifier) OrderPaid(ctx context.Context, o *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	n.last = o
	return nil
}

func newTestReconciler() (*Reconciler, *store.MemStore, *stubMirror, *stubNotifier) {
	st := store.NewMemStore()
	mirror := &stubMirror{createID: "990001"}
	notifier := &stubNotifier{}
	rc := NewReconciler(st, mirror, notifier, tasks.NewRunner())
	rc.now = func() time.Time { return time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC) }
	return rc, st, mirror, notifier
}

func TestCreateComputesMoneyStrings(t *testing.T) {
	ctx := context.Background()
	rc, st, _, _ := newTestReconciler()

	order, err := rc.Create(ctx, &CreateInput{
		LineItems:     []models.LineItem{{Title: "Red 2018", Quantity: 1, Price: "100000"}},
		DiscountCodes: []models.DiscountCode{{Code: "TEN", Type: models.DiscountPercentage, Amount: "10"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "100000", order.SubtotalPrice)
	assert.Equal(t, "10000", order.TotalDiscounts)
	assert.Equal(t, "90000", order.TotalPrice)
	assert.Equal(t, "VND", order.Currency)
	assert.Equal(t, models.StatusPending, order.FinancialStatus)
	assert.Equal(t, models.GuestCustomerID, order.CustomerID)
	assert.Equal(t, "990001", order.ShopifyOrderID)

	var saved models.Order
	require.NoError(t, st.Get(ctx, db.OrdersCollection, order.ID, &saved))
	assert.Equal(t, "990001", saved.ShopifyOrderID)
	assert.Equal(t, "90000", saved.TotalPrice)
}

func TestCreateMirrorFailureKeepsLocalOrder(t *testing.T) {
	ctx := context.Background()
	rc, st, mirror, _ := newTestReconciler()
	mirror.createErr = errs.External("orders.json", assert.AnError)

	order, err := rc.Create(ctx, &CreateInput{
		LineItems: []models.LineItem{{Title: "Red 2018", Quantity: 2, Price: "250000"}},
	})
	require.NoError(t, err, "mirror failure must not fail the sale")
	assert.Empty(t, order.ShopifyOrderID)
	assert.Equal(t, "500000", order.TotalPrice)

	var saved models.Order
	require.NoError(t, st.Get(ctx, db.OrdersCollection, order.ID, &saved))
	assert.Empty(t, saved.ShopifyOrderID)
}

func TestCreateCashReceivedOnlyForCash(t *testing.T) {
	ctx := context.Background()
	rc, _, _, _ := newTestReconciler()

	in := CreateInput{
		LineItems:     []models.LineItem{{Title: "Red", Quantity: 1, Price: "100000"}},
		PaymentMethod: "transfer",
		CashReceived:  "200000",
	}
	order, err := rc.Create(ctx, &in)
	require.NoError(t, err)
	assert.Empty(t, order.CashReceived)

	in.PaymentMethod = "cash"
	order, err = rc.Create(ctx, &in)
	require.NoError(t, err)
	assert.Equal(t, "200000", order.CashReceived)
}

func TestCreateRequiresLineItems(t *testing.T) {
	rc, _, mirror, _ := newTestReconciler()
	_, err := rc.Create(context.Background(), &CreateInput{})
	assert.True(t, errs.IsValidation(err))
	assert.Zero(t, mirror.createCalls)
}

func TestUpdateStatusPaidNotifies(t *testing.T) {
	ctx := context.Background()
	rc, st, mirror, notifier := newTestReconciler()

	order, err := rc.Create(ctx, &CreateInput{
		LineItems: []models.LineItem{{Title: "Red", Quantity: 1, Price: "100000"}},
	})
	require.NoError(t, err)

	updated, err := rc.UpdateStatus(ctx, order.ID, models.StatusPaid, "bank transfer received")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, updated.FinancialStatus)
	assert.Equal(t, "bank transfer received", updated.Note)
	assert.Equal(t, map[string]any{"financial_status": "paid"}, mirror.lastFields)

	rc.Tasks.Wait()
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, order.ID, notifier.last.ID)

	var saved models.Order
	require.NoError(t, st.Get(ctx, db.OrdersCollection, order.ID, &saved))
	assert.Equal(t, models.StatusPaid, saved.FinancialStatus)

	// a second identical call is idempotent on state and notifies once more,
	// never retried beyond that
	again, err := rc.UpdateStatus(ctx, order.ID, models.StatusPaid, "bank transfer received")
	require.NoError(t, err)
	assert.Equal(t, saved.FinancialStatus, again.FinancialStatus)
	rc.Tasks.Wait()
	assert.Equal(t, 2, notifier.calls)
}

func TestUpdateStatusSkipsMirrorWithoutPlatformID(t *testing.T) {
	ctx := context.Background()
	rc, _, mirror, _ := newTestReconciler()
	mirror.createErr = errs.External("orders.json", assert.AnError)

	order, err := rc.Create(ctx, &CreateInput{
		LineItems: []models.LineItem{{Title: "Red", Quantity: 1, Price: "100000"}},
	})
	require.NoError(t, err)

	_, err = rc.UpdateStatus(ctx, order.ID, models.StatusVoided, "")
	require.NoError(t, err)
	assert.Zero(t, mirror.updateCalls, "no platform id means no remote update")
	rc.Tasks.Wait()
}

func TestUpdateStatusToleratesRemoteNotFound(t *testing.T) {
	ctx := context.Background()
	rc, st, mirror, _ := newTestReconciler()

	order, err := rc.Create(ctx, &CreateInput{
		LineItems: []models.LineItem{{Title: "Red", Quantity: 1, Price: "100000"}},
	})
	require.NoError(t, err)

	mirror.updateErr = errs.NotFound("orders/990001.json", "")
	updated, err := rc.UpdateStatus(ctx, order.ID, models.StatusRefunded, "")
	require.NoError(t, err, "remote drift must not fail the local update")
	assert.Equal(t, models.StatusRefunded, updated.FinancialStatus)

	var saved models.Order
	require.NoError(t, st.Get(ctx, db.OrdersCollection, order.ID, &saved))
	assert.Equal(t, models.StatusRefunded, saved.FinancialStatus)
	rc.Tasks.Wait()
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	rc, _, _, _ := newTestReconciler()
	_, err := rc.UpdateStatus(context.Background(), "nope", models.StatusPaid, "")
	assert.True(t, errs.IsNotFound(err))
}

func TestListByCustomerNewestFirst(t *testing.T) {
	ctx := context.Background()
	rc, _, _, _ := newTestReconciler()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		when := base.Add(time.Duration(i) * 24 * time.Hour)
		rc.now = func() time.Time { return when }
		_, err := rc.Create(ctx, &CreateInput{
			CustomerID: "7001",
			LineItems:  []models.LineItem{{Title: "Red", Quantity: 1, Price: "100000"}},
		})
		require.NoError(t, err)
	}
	_, err := rc.Create(ctx, &CreateInput{
		CustomerID: "7002",
		LineItems:  []models.LineItem{{Title: "White", Quantity: 1, Price: "80000"}},
	})
	require.NoError(t, err)

	list, err := rc.ListByCustomer(ctx, "7001")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.True(t, list[1].CreatedAt.After(list[2].CreatedAt))
}

func TestListByRangeInclusive(t *testing.T) {
	ctx := context.Background()
	rc, _, _, _ := newTestReconciler()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		when := base.Add(time.Duration(i) * 24 * time.Hour)
		rc.now = func() time.Time { return when }
		_, err := rc.Create(ctx, &CreateInput{
			LineItems: []models.LineItem{{Title: "Red", Quantity: 1, Price: "100000"}},
		})
		require.NoError(t, err)
	}

	list, err := rc.ListByRange(ctx, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
