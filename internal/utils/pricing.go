package utils

import (
	"fmt"
	"math"
	"time"

	"driveshare-backend/internal/domain"
)

// DefaultDepositHourMultiple is the security deposit expressed in hours of
// rental: deposit = price_per_hour * multiple. Overridable via config.
const DefaultDepositHourMultiple = 5

// Quote is the priced breakdown of a booking window before any coupon.
type Quote struct {
	TotalHours      int32
	SubAmount       int64
	SecurityDeposit int64
}

// CalculateBookingQuote prices a rental window at the given hourly rate.
// The billable duration is the window length in hours rounded to the nearest
// whole hour, with a minimum of one hour.
func CalculateBookingQuote(pricePerHour int64, start, end time.Time, depositHourMultiple int32) (Quote, error) {
	if pricePerHour < 0 {
		return Quote{}, fmt.Errorf("%w: price per hour must not be negative", domain.ErrValidation)
	}
	if start.IsZero() || end.IsZero() {
		return Quote{}, fmt.Errorf("%w: start and end times are required", domain.ErrValidation)
	}
	if !end.After(start) {
		return Quote{}, fmt.Errorf("%w: end time must be after start time", domain.ErrValidation)
	}
	if depositHourMultiple <= 0 {
		depositHourMultiple = DefaultDepositHourMultiple
	}

	hours := int32(math.Round(end.Sub(start).Hours()))
	if hours < 1 {
		hours = 1
	}

	return Quote{
		TotalHours:      hours,
		SubAmount:       pricePerHour * int64(hours),
		SecurityDeposit: pricePerHour * int64(depositHourMultiple),
	}, nil
}

// ApplyDiscount splits a sub amount into the rounded discount and the
// remaining main amount, floored at zero.
func ApplyDiscount(subAmount int64, discountPercentage int32) (discount, main int64) {
	if discountPercentage <= 0 || subAmount <= 0 {
		return 0, subAmount
	}
	discount = (subAmount*int64(discountPercentage) + 50) / 100
	main = subAmount - discount
	if main < 0 {
		main = 0
	}
	return discount, main
}

// DaysUntilStart returns the whole days remaining before the trip starts.
// Partial days do not count: a booking starting later today is zero days out,
// which lands it in the lowest refund band.
func DaysUntilStart(now, start time.Time) int {
	if !start.After(now) {
		return 0
	}
	return int(start.Sub(now).Hours() / 24)
}

// RenterRefundRate is the percentage of the net base amount refunded on a
// renter-initiated cancellation, as a step function of days remaining until
// the trip start. Lower bounds are inclusive: exactly 7 days out still earns
// the 90% band.
func RenterRefundRate(daysRemaining int) int {
	switch {
	case daysRemaining >= 7:
		return 90
	case daysRemaining >= 5:
		return 70
	case daysRemaining >= 3:
		return 50
	case daysRemaining >= 1:
		return 30
	default:
		return 10
	}
}

// RefundBreakdown is the result of the cancellation refund policy for one
// booking. The security deposit is always returned in full; only the net base
// amount is subject to the rate.
type RefundBreakdown struct {
	RateApplied      int
	RefundableAmount int64
	SecurityDeposit  int64
	TotalRefund      int64
	Deduction        int64
}

// ComputeRenterRefund applies the time-based refund schedule to a booking
// cancelled by the renter. netBase = (total - deposit) - coupon discount;
// refundable = floor(netBase * rate / 100).
func ComputeRenterRefund(b *domain.Booking, now time.Time) RefundBreakdown {
	rate := RenterRefundRate(DaysUntilStart(now, b.StartTime))
	netBase := (b.TotalAmount - b.SecurityDeposit) - b.DiscountAmount
	if netBase < 0 {
		netBase = 0
	}
	refundable := netBase * int64(rate) / 100
	total := refundable + b.SecurityDeposit
	return RefundBreakdown{
		RateApplied:      rate,
		RefundableAmount: refundable,
		SecurityDeposit:  b.SecurityDeposit,
		TotalRefund:      total,
		Deduction:        b.TotalAmount - total,
	}
}

// ComputeOwnerCancelRefund returns the renter's refund when the owner cancels:
// the full main amount plus the security deposit, independent of timing.
func ComputeOwnerCancelRefund(b *domain.Booking) RefundBreakdown {
	total := b.MainAmount + b.SecurityDeposit
	return RefundBreakdown{
		RateApplied:      100,
		RefundableAmount: b.MainAmount,
		SecurityDeposit:  b.SecurityDeposit,
		TotalRefund:      total,
		Deduction:        b.TotalAmount - total,
	}
}

// ComputeLateFee charges for a drop beyond the grace period after the
// scheduled end. Overage is billed per started hour: fee = feePerHour *
// ceil(overdue hours). A drop within the grace period costs nothing.
func ComputeLateFee(scheduledEnd, dropTime time.Time, grace time.Duration, feePerHour int64) (hoursLate int32, fee int64) {
	overdue := dropTime.Sub(scheduledEnd)
	if overdue <= grace {
		return 0, 0
	}
	hoursLate = int32(math.Ceil(overdue.Hours()))
	return hoursLate, int64(hoursLate) * feePerHour
}

// PayoutBreakdown is the owner's earning computation for a completed booking.
type PayoutBreakdown struct {
	GrossEarning       int64
	DiscountShare      int64
	PlatformCommission int64
	LateCharge         int64
	PayoutAmount       int64
}

// ComputePayout derives the owner's net earning: gross fare minus the absorbed
// coupon discount and the platform commission, plus the late charge collected
// from the renter. The commission is a percentage of the gross fare.
func ComputePayout(totalHours int32, pricePerHour int64, couponDiscountPct int32, lateCharge int64, commissionPct int32) PayoutBreakdown {
	gross := int64(totalHours) * pricePerHour
	var discountShare int64
	if couponDiscountPct > 0 {
		discountShare = gross * int64(couponDiscountPct) / 100
	}
	var commission int64
	if commissionPct > 0 {
		commission = gross * int64(commissionPct) / 100
	}
	payout := gross - discountShare + lateCharge - commission
	if payout < 0 {
		payout = 0
	}
	return PayoutBreakdown{
		GrossEarning:       gross,
		DiscountShare:      discountShare,
		PlatformCommission: commission,
		LateCharge:         lateCharge,
		PayoutAmount:       payout,
	}
}

// PenaltyForAmount computes a percentage penalty on a booking total, rounded.
func PenaltyForAmount(amount int64, percent int32) int64 {
	if percent <= 0 || amount <= 0 {
		return 0
	}
	return (amount*int64(percent) + 50) / 100
}
