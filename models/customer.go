package models

import "time"

// Address mirrors the commerce platform's customer address shape.
type Address struct {
	FirstName string `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Address1  string `json:"address1,omitempty" bson:"address1,omitempty"`
	Address2  string `json:"address2,omitempty" bson:"address2,omitempty"`
	City      string `json:"city,omitempty" bson:"city,omitempty"`
	Province  string `json:"province,omitempty" bson:"province,omitempty"`
	Country   string `json:"country,omitempty" bson:"country,omitempty"`
	Zip       string `json:"zip,omitempty" bson:"zip,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Name      string `json:"name,omitempty" bson:"name,omitempty"`
}

type Customer struct {
	ID             string    `json:"id" bson:"_id"`
	FirstName      string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Email          string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Company        string    `json:"company,omitempty" bson:"company,omitempty"`
	State          string    `json:"state,omitempty" bson:"state,omitempty"`
	Note           string    `json:"note,omitempty" bson:"note,omitempty"`
	Tags           string    `json:"tags,omitempty" bson:"tags,omitempty"`
	OrdersCount    int       `json:"orders_count,omitempty" bson:"orders_count,omitempty"`
	TotalSpent     string    `json:"total_spent,omitempty" bson:"total_spent,omitempty"`
	DefaultAddress *Address  `json:"default_address,omitempty" bson:"default_address,omitempty"`
	Addresses      []Address `json:"addresses,omitempty" bson:"addresses,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`

	// IdentityLocked is computed at resolve time: true when the customer is
	// mirrored on the commerce platform, where phone/email edits are restricted.
	IdentityLocked bool `json:"identity_locked" bson:"-"`
}

// IsTemp reports whether the customer only exists locally under a temp id.
func (c *Customer) IsTemp() bool {
	return len(c.ID) > 5 && c.ID[:5] == "temp_"
}

// FullName joins first and last name, tolerating either being empty.
func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
