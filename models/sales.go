package models

import "time"

// Approval states for a sales record. New records start approved; a reviewer
// can move them to pending or rejected afterwards.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// SalesRecord is one hand-entered sale line. Date is the local calendar day
// in YYYY-MM-DD, money fields are decimal strings. Quantity is fractional to
// allow bulk-unit goods.
type SalesRecord struct {
	ID             string     `json:"id" bson:"_id"`
	Person         string     `json:"person" bson:"person"`
	CustomerName   string     `json:"customer_name,omitempty" bson:"customer_name,omitempty"`
	Product        string     `json:"product" bson:"product"`
	Quantity       float64    `json:"quantity" bson:"quantity"`
	Price          string     `json:"price" bson:"price"`
	OriginalPrice  string     `json:"original_price,omitempty" bson:"original_price,omitempty"`
	TotalAmount    string     `json:"total_amount" bson:"total_amount"`
	Date           string     `json:"date" bson:"date"`
	PaymentMethod  string     `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	Note           string     `json:"note,omitempty" bson:"note,omitempty"`
	ApprovalStatus string     `json:"approval_status" bson:"approval_status"`
	ApprovalNote   string     `json:"approval_note,omitempty" bson:"approval_note,omitempty"`
	ApprovedBy     string     `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
}
