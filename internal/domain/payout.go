package domain

import "time"

type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "PENDING"
	PayoutStatusProcessing PayoutStatus = "PROCESSING"
	PayoutStatusClaimed    PayoutStatus = "CLAIMED"
)

// Payout is the owner's net earning for one completed booking: gross fare
// minus platform commission and the absorbed coupon discount, plus any late
// charge collected from the renter.
type Payout struct {
	ID                 int64        `json:"id"`
	BookingID          int64        `json:"booking_id"`
	CarID              int64        `json:"car_id"`
	OwnerID            int64        `json:"owner_id"`
	PricePerHour       int64        `json:"price_per_hour"`
	TotalHours         int32        `json:"total_hours"`
	LateCharge         int64        `json:"late_charge"`
	CouponDiscount     int32        `json:"coupon_discount_percentage"`
	PlatformCommission int64        `json:"platform_commission"`
	PayoutAmount       int64        `json:"payout_amount"`
	Status             PayoutStatus `json:"status"`
	UpiID              *string      `json:"upi_id,omitempty"`
	CreatedOn          time.Time    `json:"created_on"`
	UpdatedOn          time.Time    `json:"updated_on"`
}
