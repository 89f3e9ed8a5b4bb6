package domain

import "time"

type BookingStatus string

const (
	BookingStatusBooked           BookingStatus = "BOOKED"
	BookingStatusPickedUp         BookingStatus = "PICKED_UP"
	BookingStatusCompleted        BookingStatus = "COMPLETED"
	BookingStatusCancelledByUser  BookingStatus = "CANCELLED_BY_USER"
	BookingStatusCancelledByOwner BookingStatus = "CANCELLED_BY_OWNER"
)

// Terminal reports whether the status has no outgoing transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelledByUser, BookingStatusCancelledByOwner:
		return true
	}
	return false
}

// Active reports whether the booking occupies the car's calendar. Used by the
// overlap check at confirmation time.
func (s BookingStatus) Active() bool {
	return s == BookingStatusBooked || s == BookingStatusPickedUp
}

// PhotoSet holds the handover evidence URLs for one side of a trip.
// Front and rear are mandatory; left, right and interior are best-effort.
type PhotoSet struct {
	Front    string `json:"front"`
	Rear     string `json:"rear"`
	Left     string `json:"left,omitempty"`
	Right    string `json:"right,omitempty"`
	Interior string `json:"interior,omitempty"`
}

// Complete reports whether the mandatory angles are present.
func (p PhotoSet) Complete() bool {
	return p.Front != "" && p.Rear != ""
}

type Booking struct {
	ID       int64 `json:"id"`
	CarID    int64 `json:"car_id"`
	OwnerID  int64 `json:"owner_id"`
	RenterID int64 `json:"renter_id"`

	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TotalHours int32     `json:"total_hours"`

	// Price snapshot fields, captured from the car at confirmation time.
	// All settlement math uses these snapshots, never live car prices.
	PricePerHour    int64 `json:"price_per_hour"`
	SubAmount       int64 `json:"sub_amount"`
	DiscountAmount  int64 `json:"discount_amount"`
	MainAmount      int64 `json:"main_amount"`
	SecurityDeposit int64 `json:"security_deposit"`
	TotalAmount     int64 `json:"total_amount"`

	CouponID       *int64 `json:"coupon_id,omitempty"`
	CouponDiscount int32  `json:"coupon_discount_percentage"`

	PaymentOrderID string `json:"payment_order_id"`
	PaymentID      string `json:"payment_id"`

	PickupOTP    string     `json:"-"`
	DropOTP      string     `json:"-"`
	PickupTime   *time.Time `json:"pickup_time,omitempty"`
	DropTime     *time.Time `json:"drop_time,omitempty"`
	BeforePhotos PhotoSet   `json:"before_photos"`
	AfterPhotos  PhotoSet   `json:"after_photos"`

	Status         BookingStatus `json:"status"`
	LateFeeCharged bool          `json:"late_fee_charged"`
	LateFeeAmount  int64         `json:"late_fee_amount"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
