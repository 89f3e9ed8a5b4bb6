package domain

import "time"

type UserRole string

const (
	UserRoleRenter UserRole = "RENTER"
	UserRoleOwner  UserRole = "OWNER"
)

// User carries only what the settlement engine needs: an identity to
// authorize claims against and an address for notifications. Signup, OTP
// login and document verification live outside this service.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      UserRole  `json:"role"`
	CreatedOn time.Time `json:"created_on"`
}
