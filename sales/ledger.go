// Package sales keeps the hand-entered sales ledger. Records live only in
// the local store and are keyed to the seller's local calendar day.
package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"goldenwine/db"
	"goldenwine/errs"
	"goldenwine/models"
	"goldenwine/pricing"
	"goldenwine/store"
	"goldenwine/utils"
)

type Ledger struct {
	Store store.Store

	now func() time.Time
}

func NewLedger(st store.Store) *Ledger {
	return &Ledger{Store: st, now: time.Now}
}

type RecordInput struct {
	Person        string  `json:"person"`
	CustomerName  string  `json:"customer_name"`
	Product       string  `json:"product"`
	Quantity      float64 `json:"quantity"`
	Price         string  `json:"price"`
	OriginalPrice string  `json:"original_price"`
	PaymentMethod string  `json:"payment_method"`
	Note          string  `json:"note"`
	Date          string  `json:"date"`
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Record appends a sales line. Total is quantity*price; the date defaults to
// today in local time.
func (l *Ledger) Record(ctx context.Context, in *RecordInput) (*models.SalesRecord, error) {
	if in.Person == "" {
		return nil, errs.Validation("person is required")
	}
	if in.Product == "" {
		return nil, errs.Validation("product is required")
	}
	if in.Quantity <= 0 {
		return nil, errs.Validation("quantity must be positive")
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return nil, errs.Validation("bad price %q", in.Price)
	}
	if !price.IsPositive() {
		return nil, errs.Validation("price must be positive")
	}

	date := in.Date
	if !validDate(date) {
		date = utils.LocalDate(l.now())
	}

	now := l.now()
	rec := &models.SalesRecord{
		ID:             utils.GetUUID(),
		Person:         in.Person,
		CustomerName:   in.CustomerName,
		Product:        in.Product,
		Quantity:       in.Quantity,
		Price:          pricing.FormatAmount(price),
		OriginalPrice:  in.OriginalPrice,
		TotalAmount:    pricing.FormatAmount(price.Mul(decimal.NewFromFloat(in.Quantity))),
		Date:           date,
		PaymentMethod:  in.PaymentMethod,
		Note:           in.Note,
		ApprovalStatus: models.ApprovalApproved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := l.Store.Set(ctx, db.SalesCollection, rec.ID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (l *Ledger) find(ctx context.Context, q store.Query) ([]models.SalesRecord, error) {
	var out []models.SalesRecord
	if err := l.Store.Find(ctx, db.SalesCollection, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Ledger) ByPerson(ctx context.Context, person string) ([]models.SalesRecord, error) {
	return l.find(ctx, store.Query{
		Filter: []store.Predicate{store.Eq("person", person)},
		SortBy: "date", Desc: true,
	})
}

func (l *Ledger) ByDate(ctx context.Context, date string) ([]models.SalesRecord, error) {
	if !validDate(date) {
		return nil, errs.Validation("date must be YYYY-MM-DD")
	}
	return l.find(ctx, store.Query{
		Filter: []store.Predicate{store.Eq("date", date)},
	})
}

// ByDateRange is inclusive on both ends; YYYY-MM-DD strings compare
// lexicographically so range predicates work in both store backends.
func (l *Ledger) ByDateRange(ctx context.Context, start, end string) ([]models.SalesRecord, error) {
	if !validDate(start) || !validDate(end) {
		return nil, errs.Validation("start and end must be YYYY-MM-DD")
	}
	return l.find(ctx, store.Query{
		Filter: []store.Predicate{store.Gte("date", start), store.Lte("date", end)},
		SortBy: "date",
	})
}

// ThisWeek covers Sunday through Saturday of the current local week.
func (l *Ledger) ThisWeek(ctx context.Context) ([]models.SalesRecord, error) {
	start, end := utils.WeekWindow(l.now())
	return l.ByDateRange(ctx, start, end)
}

// Edit merges the submitted fields over the stored record and recomputes the
// total from the merged quantity and price.
func (l *Ledger) Edit(ctx context.Context, id string, changes map[string]any) (*models.SalesRecord, error) {
	var rec models.SalesRecord
	if err := l.Store.Get(ctx, db.SalesCollection, id, &rec); err != nil {
		return nil, err
	}

	for k, v := range changes {
		switch k {
		case "person":
			rec.Person, _ = v.(string)
		case "customer_name":
			rec.CustomerName, _ = v.(string)
		case "product":
			rec.Product, _ = v.(string)
		case "quantity":
			if f, ok := v.(float64); ok {
				rec.Quantity = f
			}
		case "price":
			rec.Price, _ = v.(string)
		case "payment_method":
			rec.PaymentMethod, _ = v.(string)
		case "note":
			rec.Note, _ = v.(string)
		case "date":
			if s, ok := v.(string); ok && validDate(s) {
				rec.Date = s
			}
		}
	}
	if rec.Quantity <= 0 {
		return nil, errs.Validation("quantity must be positive")
	}
	price, err := decimal.NewFromString(rec.Price)
	if err != nil {
		return nil, errs.Validation("bad price %q", rec.Price)
	}
	rec.Price = pricing.FormatAmount(price)
	rec.TotalAmount = pricing.FormatAmount(price.Mul(decimal.NewFromFloat(rec.Quantity)))
	rec.UpdatedAt = l.now()

	if err := l.Store.Set(ctx, db.SalesCollection, rec.ID, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetApproval moves a record through the review workflow.
func (l *Ledger) SetApproval(ctx context.Context, id, status, note, approver string) error {
	switch status {
	case models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected:
	default:
		return errs.Validation("unknown approval status %q", status)
	}
	now := l.now()
	return l.Store.Update(ctx, db.SalesCollection, id, map[string]any{
		"approval_status": status,
		"approval_note":   note,
		"approved_by":     approver,
		"approved_at":     now,
		"updated_at":      now,
	})
}

func (l *Ledger) Delete(ctx context.Context, id string) error {
	return l.Store.Delete(ctx, db.SalesCollection, id)
}
