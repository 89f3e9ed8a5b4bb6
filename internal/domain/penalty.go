package domain

import "time"

type PenaltyReason string

const (
	PenaltyReasonCancelledByOwner PenaltyReason = "CANCELLED_BY_OWNER"
	PenaltyReasonLateReturn       PenaltyReason = "LATE_RETURN"
	PenaltyReasonLateDrop         PenaltyReason = "LATE_DROP"
	PenaltyReasonDamage           PenaltyReason = "DAMAGE"
	PenaltyReasonRuleViolation    PenaltyReason = "RULE_VIOLATION"
	PenaltyReasonOther            PenaltyReason = "OTHER"
)

type PenaltyPaymentStatus string

const (
	PenaltyUnpaid PenaltyPaymentStatus = "UNPAID"
	PenaltyPaid   PenaltyPaymentStatus = "PAID"
)

// Penalty is a charge against a user (owner or renter). It is paid in full
// through the gateway or stays unpaid; there is no partial payment.
type Penalty struct {
	ID               int64                `json:"id"`
	BookingID        int64                `json:"booking_id"`
	UserID           int64                `json:"user_id"`
	Reason           PenaltyReason        `json:"reason"`
	Note             string               `json:"note,omitempty"`
	PenaltyAmount    int64                `json:"penalty_amount"`
	PaymentStatus    PenaltyPaymentStatus `json:"payment_status"`
	GatewayOrderID   *string              `json:"gateway_order_id,omitempty"`
	GatewayPaymentID *string              `json:"gateway_payment_id,omitempty"`
	CreatedOn        time.Time            `json:"created_on"`
	UpdatedOn        time.Time            `json:"updated_on"`
}
