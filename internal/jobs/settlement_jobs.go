package jobs

import (
	"context"
	"time"

	"driveshare-backend/internal/logger"
)

// MarkOverdueDrops flags picked-up bookings whose scheduled end plus grace
// has passed without a drop. The late fee itself is only charged when the
// drop finally happens; this job gives operations visibility in the meantime.
func (jr *JobRunner) MarkOverdueDrops() {
	jr.runWithRecovery("MarkOverdueDrops", func() {
		ctx := context.Background()
		grace := time.Duration(jr.config.Policy.LateGraceMinutes) * time.Minute

		overdue, err := jr.store.Bookings.ListOverdueDrops(ctx, time.Now(), grace)
		if err != nil {
			logger.Error("Failed to list overdue drops", "error", err)
			return
		}

		logger.Info("Overdue drops found", "count", len(overdue))
		for _, b := range overdue {
			logger.Debug("Booking overdue for drop",
				"booking_id", b.ID,
				"renter_id", b.RenterID,
				"car_id", b.CarID,
				"scheduled_end", b.EndTime)
		}
	})
}

// ReleaseStaleCouponReservations frees coupons reserved by drafts that were
// never confirmed, so abandoned checkouts do not strand discounts.
func (jr *JobRunner) ReleaseStaleCouponReservations() {
	jr.runWithRecovery("ReleaseStaleCouponReservations", func() {
		ctx := context.Background()
		ttl := time.Duration(jr.config.Policy.CouponReservationTTLMinute) * time.Minute
		cutoff := time.Now().Add(-ttl)

		released, err := jr.store.Coupons.ReleaseStaleReservations(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to release stale coupon reservations", "error", err)
			return
		}
		logger.Info("Released stale coupon reservations", "count", released)
	})
}

// SettleProcessingRefunds completes refunds that have sat in processing past
// the settlement window. The external transfer has long since happened; this
// reconciles the record.
func (jr *JobRunner) SettleProcessingRefunds() {
	jr.runWithRecovery("SettleProcessingRefunds", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-24 * time.Hour)

		settled, err := jr.store.Refunds.SettleProcessing(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to settle processing refunds", "error", err)
			return
		}
		logger.Info("Settled processing refunds", "count", settled)
	})
}
