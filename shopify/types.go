package shopify

import (
	"strconv"
	"time"

	"goldenwine/models"
)

// Admin REST wire shapes. Entity ids are numeric on the wire; the rest of
// the service handles them as strings.

type addressWire struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Address1  string `json:"address1,omitempty"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city,omitempty"`
	Province  string `json:"province,omitempty"`
	Country   string `json:"country,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Name      string `json:"name,omitempty"`
}

func (a *addressWire) model() *models.Address {
	if a == nil {
		return nil
	}
	return &models.Address{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Province:  a.Province,
		Country:   a.Country,
		Zip:       a.Zip,
		Phone:     a.Phone,
		Name:      a.Name,
	}
}

type customerWire struct {
	ID             int64         `json:"id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Company        string        `json:"company"`
	State          string        `json:"state"`
	Note           string        `json:"note"`
	Tags           string        `json:"tags"`
	OrdersCount    int           `json:"orders_count"`
	TotalSpent     string        `json:"total_spent"`
	DefaultAddress *addressWire  `json:"default_address"`
	Addresses      []addressWire `json:"addresses"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (c *customerWire) model() *models.Customer {
	out := &models.Customer{
		ID:             strconv.FormatInt(c.ID, 10),
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Company:        c.Company,
		State:          c.State,
		Note:           c.Note,
		Tags:           c.Tags,
		OrdersCount:    c.OrdersCount,
		TotalSpent:     c.TotalSpent,
		DefaultAddress: c.DefaultAddress.model(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		IdentityLocked: true,
	}
	for _, a := range c.Addresses {
		out.Addresses = append(out.Addresses, *a.model())
	}
	return out
}

type lineItemWire struct {
	ProductID int64  `json:"product_id,omitempty"`
	VariantID int64  `json:"variant_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price,omitempty"`
}

type orderWire struct {
	ID              int64          `json:"id"`
	Email           string         `json:"email"`
	CreatedAt       time.Time      `json:"created_at"`
	TotalPrice      string         `json:"total_price"`
	FinancialStatus string         `json:"financial_status"`
	LineItems       []lineItemWire `json:"line_items"`
	BillingAddress  *addressWire   `json:"billing_address"`
	ShippingAddress *addressWire   `json:"shipping_address"`
}

// PlatformOrder is the slice of a remote order the resolver needs for
// historical-contact enrichment.
type PlatformOrder struct {
	ID              string
	Email           string
	CreatedAt       time.Time
	TotalPrice      string
	FinancialStatus string
	ContactPhone    string
	ContactAddress  *models.Address
}

func (o *orderWire) platformOrder() PlatformOrder {
	addr := o.BillingAddress
	if addr == nil {
		addr = o.ShippingAddress
	}
	out := PlatformOrder{
		ID:              strconv.FormatInt(o.ID, 10),
		Email:           o.Email,
		CreatedAt:       o.CreatedAt,
		TotalPrice:      o.TotalPrice,
		FinancialStatus: o.FinancialStatus,
	}
	if addr != nil {
		out.ContactPhone = addr.Phone
		out.ContactAddress = addr.model()
	}
	return out
}

// PriceRule is an active discount rule. Value arrives as a negative decimal
// string ("-10.0" means 10 off).
type PriceRule struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	ValueType string `json:"value_type"`
	Value     string `json:"value"`
}
