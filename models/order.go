package models

import "time"

// GuestCustomerID marks orders recorded without a resolved customer.
const GuestCustomerID = "guest"

// Discount code value types. The platform's price rules spell fixed
// discounts "fixed_amount"; both spellings are honored.
const (
	DiscountPercentage  = "percentage"
	DiscountFixed       = "fixed"
	DiscountFixedAmount = "fixed_amount"
)

// Financial statuses an order moves through. Transitions are deliberately
// unrestricted; the cashier UI is trusted to send sensible updates.
const (
	StatusPending           = "pending"
	StatusAuthorized        = "authorized"
	StatusPartiallyPaid     = "partially_paid"
	StatusPaid              = "paid"
	StatusPartiallyRefunded = "partially_refunded"
	StatusRefunded          = "refunded"
	StatusVoided            = "voided"
)

type LineItem struct {
	ProductID string `json:"product_id,omitempty" bson:"product_id,omitempty"`
	VariantID string `json:"variant_id,omitempty" bson:"variant_id,omitempty"`
	Title     string `json:"title" bson:"title"`
	Quantity  int    `json:"quantity" bson:"quantity"`
	Price     string `json:"price" bson:"price"`
}

type DiscountCode struct {
	Code   string `json:"code" bson:"code"`
	Type   string `json:"type" bson:"type"`
	Amount string `json:"amount" bson:"amount"`
}

type Order struct {
	ID                string         `json:"id" bson:"_id"`
	ShopifyOrderID    string         `json:"shopify_order_id,omitempty" bson:"shopify_order_id,omitempty"`
	CustomerID        string         `json:"customer_id" bson:"customer_id"`
	LineItems         []LineItem     `json:"line_items" bson:"line_items"`
	DiscountCodes     []DiscountCode `json:"discount_codes,omitempty" bson:"discount_codes,omitempty"`
	SubtotalPrice     string         `json:"subtotal_price" bson:"subtotal_price"`
	TotalDiscounts    string         `json:"total_discounts,omitempty" bson:"total_discounts,omitempty"`
	TotalPrice        string         `json:"total_price" bson:"total_price"`
	Currency          string         `json:"currency" bson:"currency"`
	FinancialStatus   string         `json:"financial_status" bson:"financial_status"`
	FulfillmentStatus string         `json:"fulfillment_status,omitempty" bson:"fulfillment_status,omitempty"`
	PaymentMethod     string         `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	CashReceived      string         `json:"cash_received,omitempty" bson:"cash_received,omitempty"`
	Note              string         `json:"note,omitempty" bson:"note,omitempty"`
	CreatedBy         string         `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedByName     string         `json:"created_by_name,omitempty" bson:"created_by_name,omitempty"`
	CreatedAt         time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" bson:"updated_at"`
}
