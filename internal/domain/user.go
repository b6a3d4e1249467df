package domain

import "time"

// Role is the registered role of a participant.
type Role string

const (
	RoleRider  Role = "RIDER"
	RoleDriver Role = "DRIVER"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleRider || r == RoleDriver
}

// User represents a registered participant.
// Identity fields (Address, Name, Contact, Role) are immutable once set;
// only the rating fields change, and only through the rating operation.
type User struct {
	Address     string
	Name        string
	Contact     string
	Role        Role
	Registered  bool
	Rating      float64 // running mean, 0-5
	RatingCount int64
	CreatedAt   time.Time
}
