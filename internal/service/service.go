package service

import (
	"context"
	"time"

	"driveshare-backend/internal/domain"
)

// BookingDraft is a priced order awaiting payment. Nothing is persisted for a
// draft; the gateway order id and the draft token carry all state until
// confirmation.
type BookingDraft struct {
	DraftToken      string `json:"draft_token"`
	CarID           int64  `json:"car_id"`
	TotalHours      int32  `json:"total_hours"`
	PricePerHour    int64  `json:"price_per_hour"`
	SubAmount       int64  `json:"sub_amount"`
	DiscountAmount  int64  `json:"discount_amount"`
	MainAmount      int64  `json:"main_amount"`
	SecurityDeposit int64  `json:"security_deposit"`
	TotalAmount     int64  `json:"total_amount"`
	PaymentOrderID  string `json:"payment_order_id"`
}

// ConfirmBookingRequest carries the payment proof back from the client after
// the gateway captured the draft's order.
type ConfirmBookingRequest struct {
	CarID          int64     `json:"car_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	DraftToken     string    `json:"draft_token"`
	PaymentOrderID string    `json:"payment_order_id"`
	PaymentID      string    `json:"payment_id"`
	Signature      string    `json:"signature"`
}

type BookingService interface {
	// CreatePaymentOrder prices the window, applies any coupon reserved under
	// the draft token and registers a gateway order for the total.
	CreatePaymentOrder(ctx context.Context, renterID, carID int64, start, end time.Time, draftToken string) (*BookingDraft, error)
	// ConfirmBooking verifies the payment proof and creates the booking. A
	// failed verification leaves no booking behind.
	ConfirmBooking(ctx context.Context, renterID int64, req ConfirmBookingRequest) (*domain.Booking, error)
	ConfirmPickup(ctx context.Context, ownerID, bookingID int64, otp string, photos domain.PhotoSet) (*domain.Booking, error)
	ConfirmDrop(ctx context.Context, ownerID, bookingID int64, otp string, photos domain.PhotoSet) (*domain.Booking, error)
	CancelByUser(ctx context.Context, renterID, bookingID int64) (*domain.Refund, error)
	CancelByOwner(ctx context.Context, ownerID, bookingID int64) (*domain.Refund, error)
	GetBooking(ctx context.Context, userID, bookingID int64) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type CouponService interface {
	// ApplyCoupon validates a code for the renter and reserves it under the
	// draft token. Codes carrying the invalid-discount sentinel resolve to
	// domain.ErrNotFound.
	ApplyCoupon(ctx context.Context, renterID int64, code, draftToken string) (*domain.Coupon, error)
	// ReleaseCoupon frees a reservation for an abandoned draft.
	ReleaseCoupon(ctx context.Context, renterID int64, draftToken string) error
}

type RefundService interface {
	// ClaimRefund records the payout destination and moves the refund to
	// processing. Blank destinations fail with domain.ErrInvalidDestination.
	ClaimRefund(ctx context.Context, renterID, refundID int64, upiID string) (*domain.Refund, error)
	ListRefunds(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Refund, int32, error)
}

type PayoutService interface {
	ClaimPayout(ctx context.Context, ownerID, payoutID int64, upiID string) (*domain.Payout, error)
	ListPayouts(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Payout, int32, error)
}

type PenaltyService interface {
	// ReportDamage opens a damage penalty against the renter of a completed
	// trip, priced by the owner and annotated with evidence.
	ReportDamage(ctx context.Context, ownerID, bookingID int64, amount int64, note string) (*domain.Penalty, error)
	// CreatePenaltyOrder registers a gateway order for an unpaid penalty.
	CreatePenaltyOrder(ctx context.Context, userID, penaltyID int64) (*domain.Penalty, error)
	// ConfirmPenaltyPayment verifies the payment proof and marks the penalty
	// paid exactly once.
	ConfirmPenaltyPayment(ctx context.Context, userID, penaltyID int64, orderID, paymentID, signature string) (*domain.Penalty, error)
	ListPenalties(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Penalty, int32, error)
}

type EvidenceService interface {
	// GetUploadURL issues a presigned upload slot for a handover photo.
	GetUploadURL(ctx context.Context, userID, bookingID int64, angle, contentType string) (uploadURL, key string, err error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name, carModel string, totalAmount int64, pickupOTP string) error
	SendCancellationNotice(ctx context.Context, email, name, carModel string, refundAmount int64, byOwner bool) error
	SendCompensationCoupon(ctx context.Context, email, name, code string, discountPct int32) error
	SendPenaltyNotice(ctx context.Context, email, name string, amount int64, reason string) error
	// SendTripStarted delivers the drop code the owner will ask for at return.
	SendTripStarted(ctx context.Context, email, name, carModel, dropOTP string) error
	SendTripCompleted(ctx context.Context, email, name, carModel string, lateFee int64) error
}
