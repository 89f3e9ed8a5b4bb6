package domain

import "time"

type RefundReason string

const (
	RefundReasonRefundable       RefundReason = "REFUNDABLE"
	RefundReasonCancellation     RefundReason = "CANCELLATION"
	RefundReasonCancelledByOwner RefundReason = "CANCELLED_BY_OWNER"
	RefundReasonCancelledByUser  RefundReason = "CANCELLED_BY_USER"
	RefundReasonPartialRefund    RefundReason = "PARTIAL_REFUND"
	RefundReasonOther            RefundReason = "OTHER"
)

type RefundStatus string

const (
	RefundStatusPending    RefundStatus = "PENDING"
	RefundStatusProcessing RefundStatus = "PROCESSING"
	RefundStatusCompleted  RefundStatus = "COMPLETED"
	RefundStatusFailed     RefundStatus = "FAILED"
)

// Refund is money owed back to the renter. It is not paid automatically: the
// renter claims it with a payout destination (pending → processing) and the
// external settlement confirmation moves it to completed. Both moves are
// one-way.
type Refund struct {
	ID              int64        `json:"id"`
	BookingID       int64        `json:"booking_id"`
	RenterID        int64        `json:"renter_id"`
	Reason          RefundReason `json:"reason"`
	RefundAmount    int64        `json:"refund_amount"`
	DeductionAmount int64        `json:"deduction_amount"`
	DeductionReason string       `json:"deduction_reason,omitempty"`
	Status          RefundStatus `json:"status"`
	UpiID           *string      `json:"upi_id,omitempty"`
	CreatedOn       time.Time    `json:"created_on"`
	UpdatedOn       time.Time    `json:"updated_on"`
}
