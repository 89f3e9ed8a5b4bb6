package domain

import "time"

type CarVerificationStatus string

const (
	CarVerificationPending   CarVerificationStatus = "PENDING"
	CarVerificationInProcess CarVerificationStatus = "IN_PROCESS"
	CarVerificationApproved  CarVerificationStatus = "APPROVED"
	CarVerificationRejected  CarVerificationStatus = "REJECTED"
)

// Car is a listed vehicle. Visibility is owner-controlled, verification is
// employee-controlled; both happen outside the booking engine, which only
// reads the flags when pricing a draft.
type Car struct {
	ID                 int64                 `json:"id"`
	OwnerID            int64                 `json:"owner_id"`
	Model              string                `json:"model"`
	RegistrationNumber string                `json:"registration_number"`
	PricePerHour       int64                 `json:"price_per_hour"`
	Address            string                `json:"address"`
	Latitude           float64               `json:"latitude"`
	Longitude          float64               `json:"longitude"`
	Visible            bool                  `json:"visible"`
	Verification       CarVerificationStatus `json:"verification_status"`
	CreatedOn          time.Time             `json:"created_on"`
	UpdatedOn          time.Time             `json:"updated_on"`
}

// Rentable reports whether the car can appear in a priced draft.
func (c *Car) Rentable() bool {
	return c.Visible && c.Verification == CarVerificationApproved
}
