// Package orders records sales orders. The local store is the source of
// truth; the commerce platform is mirrored best-effort and never blocks or
// fails a local write.
package orders

import (
	"context"
	"log"
	"time"

	"goldenwine/db"
	"goldenwine/errs"
	"goldenwine/models"
	"goldenwine/pricing"
	"goldenwine/store"
	"goldenwine/tasks"
	"goldenwine/utils"
)

// Mirror pushes order state to the commerce platform.
type Mirror interface {
	CreateOrder(ctx context.Context, o *models.Order) (string, error)
	UpdateOrder(ctx context.Context, platformID string, fields map[string]any) error
}

// Notifier is told when an order is paid.
type Notifier interface {
	OrderPaid(ctx context.Context, o *models.Order) error
}

type Reconciler struct {
	Store  store.Store
	Mirror Mirror
	Notify Notifier
	Tasks  *tasks.Runner

	now func() time.Time
}

func NewReconciler(st store.Store, mirror Mirror, notifier Notifier, runner *tasks.Runner) *Reconciler {
	return &Reconciler{Store: st, Mirror: mirror, Notify: notifier, Tasks: runner, now: time.Now}
}

type CreateInput struct {
	CustomerID      string                `json:"customer_id"`
	LineItems       []models.LineItem     `json:"line_items"`
	DiscountCodes   []models.DiscountCode `json:"discount_codes"`
	FinancialStatus string                `json:"financial_status"`
	PaymentMethod   string                `json:"payment_method"`
	CashReceived    string                `json:"cash_received"`
	Note            string                `json:"note"`

	// filled from the authenticated request, not the body
	CreatedBy     string `json:"-"`
	CreatedByName string `json:"-"`
}

// Create prices the order, persists it locally, then mirrors it. A mirror
// failure is logged and the local order stays authoritative; on success the
// platform's order id is merged back in.
func (rc *Reconciler) Create(ctx context.Context, in *CreateInput) (*models.Order, error) {
	if len(in.LineItems) == 0 {
		return nil, errs.Validation("order needs at least one line item")
	}

	subtotal, discount, total, err := pricing.ComputeTotal(in.LineItems, in.DiscountCodes)
	if err != nil {
		return nil, err
	}

	now := rc.now()
	order := &models.Order{
		ID:              utils.GetUUID(),
		CustomerID:      in.CustomerID,
		LineItems:       in.LineItems,
		DiscountCodes:   in.DiscountCodes,
		SubtotalPrice:   pricing.FormatAmount(subtotal),
		TotalDiscounts:  pricing.FormatAmount(discount),
		TotalPrice:      pricing.FormatAmount(total),
		Currency:        "VND",
		FinancialStatus: in.FinancialStatus,
		PaymentMethod:   in.PaymentMethod,
		Note:            in.Note,
		CreatedBy:       in.CreatedBy,
		CreatedByName:   in.CreatedByName,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if order.CustomerID == "" {
		order.CustomerID = models.GuestCustomerID
	}
	if order.FinancialStatus == "" {
		order.FinancialStatus = models.StatusPending
	}
	if in.PaymentMethod == "cash" {
		order.CashReceived = in.CashReceived
	}

	if err := rc.Store.Set(ctx, db.OrdersCollection, order.ID, order); err != nil {
		return nil, err
	}

	platformID, err := rc.Mirror.CreateOrder(ctx, order)
	if err != nil {
		log.Printf("Create: mirror failed for order %s, local copy kept: %v", order.ID, err)
		return order, nil
	}
	order.ShopifyOrderID = platformID
	if err := rc.Store.Update(ctx, db.OrdersCollection, order.ID,
		map[string]any{"shopify_order_id": platformID}); err != nil {
		log.Printf("Create: saving platform id for order %s: %v", order.ID, err)
	}
	return order, nil
}

// UpdateStatus applies a status/note change locally first, then mirrors it.
// A paid transition kicks off the invoice notification in the background.
func (rc *Reconciler) UpdateStatus(ctx context.Context, id, status, note string) (*models.Order, error) {
	if status == "" {
		return nil, errs.Validation("financial_status is required")
	}

	var order models.Order
	if err := rc.Store.Get(ctx, db.OrdersCollection, id, &order); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"financial_status": status,
		"updated_at":       rc.now(),
	}
	if note != "" {
		fields["note"] = note
	}
	if err := rc.Store.Update(ctx, db.OrdersCollection, id, fields); err != nil {
		return nil, err
	}
	order.FinancialStatus = status
	if note != "" {
		order.Note = note
	}
	order.UpdatedAt = rc.now()

	if order.ShopifyOrderID == "" {
		log.Printf("UpdateStatus: order %s has no platform mirror, skipping remote update", id)
	} else {
		err := rc.Mirror.UpdateOrder(ctx, order.ShopifyOrderID, map[string]any{"financial_status": status})
		if err != nil {
			if errs.IsNotFound(err) {
				log.Printf("UpdateStatus: order %s no longer on platform, drift tolerated", id)
			} else {
				log.Printf("UpdateStatus: mirror failed for order %s: %v", id, err)
			}
		}
	}

	if status == models.StatusPaid && rc.Notify != nil {
		paid := order
		rc.Tasks.Go("order-paid-notify", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return rc.Notify.OrderPaid(ctx, &paid)
		})
	}
	return &order, nil
}

func (rc *Reconciler) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := rc.Store.Get(ctx, db.OrdersCollection, id, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer returns the customer's orders, newest first, capped at 100.
func (rc *Reconciler) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	var out []models.Order
	q := store.Query{
		Filter: []store.Predicate{store.Eq("customer_id", customerID)},
		SortBy: "created_at",
		Desc:   true,
		Limit:  100,
	}
	if err := rc.Store.Find(ctx, db.OrdersCollection, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByRange returns orders created within [start, end], newest first.
func (rc *Reconciler) ListByRange(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	var out []models.Order
	q := store.Query{
		Filter: []store.Predicate{
			store.Gte("created_at", start),
			store.Lte("created_at", end),
		},
		SortBy: "created_at",
		Desc:   true,
	}
	if err := rc.Store.Find(ctx, db.OrdersCollection, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
