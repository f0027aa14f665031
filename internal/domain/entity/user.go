package entity

import (
	"github.com/sangkips/shopflow/internal/domain/enum"
)

// User is one of the fixed shop accounts
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Role     enum.Role `json:"role"`
	Name     string    `json:"name"`
}

// Can reports whether the user's role grants the capability
func (u *User) Can(c enum.Capability) bool {
	return u.Role.Can(c)
}

// Users is the account roster. Login is a username lookup against it.
var Users = []User{
	{ID: "1", Username: "admin", Role: enum.RoleAdmin, Name: "Store Owner"},
	{ID: "2", Username: "staff", Role: enum.RoleStaff, Name: "Sales Executive"},
}

// FindUser returns the roster entry for username, or nil
func FindUser(username string) *User {
	for i := range Users {
		if Users[i].Username == username {
			u := Users[i]
			return &u
		}
	}
	return nil
}
