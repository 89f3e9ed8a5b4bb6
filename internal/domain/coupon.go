package domain

import "time"

// InvalidDiscountSentinel is the discount value stored by the legacy issuance
// path for codes it could not resolve. It must always be read as "invalid
// code", never as a -1% discount.
const InvalidDiscountSentinel = -1

// Coupon is a single-use discount issued to one renter. Consumption is two
// phase: an apply reserves the coupon against a draft token, confirmation
// burns it (used=true). Abandoned drafts release the reservation instead of
// losing the coupon.
type Coupon struct {
	ID                 int64      `json:"id"`
	Code               string     `json:"code"`
	RenterID           int64      `json:"renter_id"`
	DiscountPercentage int32      `json:"discount_percentage"`
	IssuedFor          string     `json:"issued_for,omitempty"`
	Used               bool       `json:"used"`
	ReservedBy         *string    `json:"reserved_by,omitempty"`
	ReservedOn         *time.Time `json:"reserved_on,omitempty"`
	CreatedOn          time.Time  `json:"created_on"`
}
