package enum

import (
	"encoding/json"
	"fmt"
)

// Capability names an operation area a role may access
type Capability string

const (
	CapabilityDashboard Capability = "dashboard"
	CapabilityBilling   Capability = "billing"
	CapabilityInventory Capability = "inventory"
	CapabilityCustomers Capability = "customers"
	CapabilityReports   Capability = "reports"
	CapabilitySettings  Capability = "settings"
)

// Role represents a user's role in the shop
type Role int

const (
	RoleAdmin Role = 0
	RoleStaff Role = 1
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapabilityDashboard,
		CapabilityBilling,
		CapabilityInventory,
		CapabilityCustomers,
		CapabilityReports,
		CapabilitySettings,
	},
	RoleStaff: {
		CapabilityDashboard,
		CapabilityBilling,
		CapabilityInventory,
		CapabilityCustomers,
	},
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleStaff:
		return "STAFF"
	default:
		return "STAFF"
	}
}

// ParseRole converts a role name into a Role
func ParseRole(s string) (Role, error) {
	switch s {
	case "ADMIN":
		return RoleAdmin, nil
	case "STAFF":
		return RoleStaff, nil
	}
	return RoleStaff, fmt.Errorf("unknown role %q", s)
}

// Capabilities returns the capability set granted to the role
func (r Role) Capabilities() []Capability {
	caps := roleCapabilities[r]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// Can reports whether the role grants the capability
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	role, err := ParseRole(str)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
