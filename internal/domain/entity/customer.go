package entity

import "strings"

// WalkInCustomerName is the name of the default billing party
const WalkInCustomerName = "Walk-in Customer"

// Customer represents a billing party
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin,omitempty"`
}

// IsWalkIn reports whether c is the walk-in sentinel
func (c *Customer) IsWalkIn() bool {
	return c.Name == WalkInCustomerName
}

// Matches reports whether the name contains query ignoring case or the
// mobile number contains it literally.
func (c *Customer) Matches(query string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) ||
		strings.Contains(c.Mobile, query)
}
