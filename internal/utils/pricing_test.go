package utils

import (
	"testing"
	"time"

	"driveshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return ts
}

func TestCalculateBookingQuote(t *testing.T) {
	t.Run("Four hour window", func(t *testing.T) {
		start := mustTime(t, "2025-03-01 10:00")
		end := mustTime(t, "2025-03-01 14:00")
		q, err := CalculateBookingQuote(100, start, end, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), q.TotalHours)
		assert.Equal(t, int64(400), q.SubAmount)
		assert.Equal(t, int64(500), q.SecurityDeposit)
	})

	t.Run("Partial hours round to nearest", func(t *testing.T) {
		// 10:00 to 13:40 is 3h40m and bills as 4 hours.
		start := mustTime(t, "2025-03-01 10:00")
		end := mustTime(t, "2025-03-01 13:40")
		q, err := CalculateBookingQuote(100, start, end, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), q.TotalHours)
		assert.Equal(t, int64(400), q.SubAmount)
	})

	t.Run("Short window bills minimum one hour", func(t *testing.T) {
		start := mustTime(t, "2025-03-01 10:00")
		end := mustTime(t, "2025-03-01 10:10")
		q, err := CalculateBookingQuote(80, start, end, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), q.TotalHours)
		assert.Equal(t, int64(80), q.SubAmount)
	})

	t.Run("End before start rejected", func(t *testing.T) {
		start := mustTime(t, "2025-03-01 10:00")
		_, err := CalculateBookingQuote(100, start, start, 5)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Negative rate rejected", func(t *testing.T) {
		start := mustTime(t, "2025-03-01 10:00")
		end := mustTime(t, "2025-03-01 12:00")
		_, err := CalculateBookingQuote(-1, start, end, 5)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Zero deposit multiple falls back to default", func(t *testing.T) {
		start := mustTime(t, "2025-03-01 10:00")
		end := mustTime(t, "2025-03-01 12:00")
		q, err := CalculateBookingQuote(100, start, end, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(500), q.SecurityDeposit)
	})
}

func TestApplyDiscount(t *testing.T) {
	t.Run("Twenty percent", func(t *testing.T) {
		discount, main := ApplyDiscount(400, 20)
		assert.Equal(t, int64(80), discount)
		assert.Equal(t, int64(320), main)
	})

	t.Run("Rounds to nearest", func(t *testing.T) {
		// 15% of 333 = 49.95, rounds to 50.
		discount, main := ApplyDiscount(333, 15)
		assert.Equal(t, int64(50), discount)
		assert.Equal(t, int64(283), main)
	})

	t.Run("Full discount floors main at zero", func(t *testing.T) {
		discount, main := ApplyDiscount(250, 100)
		assert.Equal(t, int64(250), discount)
		assert.Equal(t, int64(0), main)
	})

	t.Run("Non-positive percentage is a no-op", func(t *testing.T) {
		discount, main := ApplyDiscount(400, 0)
		assert.Equal(t, int64(0), discount)
		assert.Equal(t, int64(400), main)
	})
}

func TestRenterRefundRate(t *testing.T) {
	tests := []struct {
		days int
		rate int
	}{
		{8, 90},
		{7, 90}, // inclusive lower bound
		{6, 70},
		{5, 70},
		{4, 50},
		{3, 50},
		{2, 30},
		{1, 30},
		{0, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.rate, RenterRefundRate(tt.days), "days=%d", tt.days)
	}
}

func TestDaysUntilStart(t *testing.T) {
	now := mustTime(t, "2025-03-01 10:00")

	t.Run("Partial days do not count", func(t *testing.T) {
		start := now.Add(25 * time.Hour)
		assert.Equal(t, 1, DaysUntilStart(now, start))
	})

	t.Run("Exactly seven days counts as seven", func(t *testing.T) {
		start := now.Add(7 * 24 * time.Hour)
		assert.Equal(t, 7, DaysUntilStart(now, start))
	})

	t.Run("Later today counts as zero", func(t *testing.T) {
		start := now.Add(3 * time.Hour)
		assert.Equal(t, 0, DaysUntilStart(now, start))
	})

	t.Run("Started trips floor at zero", func(t *testing.T) {
		start := now.Add(-time.Hour)
		assert.Equal(t, 0, DaysUntilStart(now, start))
	})
}

func TestComputeRenterRefund(t *testing.T) {
	// Worked example: Rs.100/hr, 4 hours, 20% coupon.
	// sub=400 deposit=500 discount=80 main=320 total=820.
	booking := &domain.Booking{
		PricePerHour:    100,
		TotalHours:      4,
		SubAmount:       400,
		DiscountAmount:  80,
		MainAmount:      320,
		SecurityDeposit: 500,
		TotalAmount:     820,
	}

	t.Run("Six days out earns seventy percent", func(t *testing.T) {
		now := mustTime(t, "2025-03-01 10:00")
		booking.StartTime = now.Add(6 * 24 * time.Hour)
		got := ComputeRenterRefund(booking, now)
		assert.Equal(t, 70, got.RateApplied)
		assert.Equal(t, int64(168), got.RefundableAmount) // floor(240 * 0.7)
		assert.Equal(t, int64(500), got.SecurityDeposit)
		assert.Equal(t, int64(668), got.TotalRefund)
		assert.Equal(t, int64(152), got.Deduction)
	})

	t.Run("Eight days out earns ninety percent", func(t *testing.T) {
		now := mustTime(t, "2025-03-01 10:00")
		booking.StartTime = now.Add(8 * 24 * time.Hour)
		got := ComputeRenterRefund(booking, now)
		assert.Equal(t, 90, got.RateApplied)
		assert.Equal(t, int64(216), got.RefundableAmount)
	})

	t.Run("Same day earns ten percent, deposit still whole", func(t *testing.T) {
		now := mustTime(t, "2025-03-01 10:00")
		booking.StartTime = now.Add(2 * time.Hour)
		got := ComputeRenterRefund(booking, now)
		assert.Equal(t, 10, got.RateApplied)
		assert.Equal(t, int64(24), got.RefundableAmount)
		assert.Equal(t, int64(524), got.TotalRefund)
	})
}

func TestComputeOwnerCancelRefund(t *testing.T) {
	booking := &domain.Booking{
		MainAmount:      320,
		SecurityDeposit: 500,
		TotalAmount:     820,
		StartTime:       time.Now().Add(time.Hour), // timing must not matter
	}
	got := ComputeOwnerCancelRefund(booking)
	assert.Equal(t, int64(820), got.TotalRefund)
	assert.Equal(t, int64(0), got.Deduction)
}

func TestComputeLateFee(t *testing.T) {
	end := mustTime(t, "2025-03-01 14:00")

	t.Run("Within grace is free", func(t *testing.T) {
		hours, fee := ComputeLateFee(end, end.Add(45*time.Minute), time.Hour, 150)
		assert.Equal(t, int32(0), hours)
		assert.Equal(t, int64(0), fee)
	})

	t.Run("Past grace bills per started hour", func(t *testing.T) {
		hours, fee := ComputeLateFee(end, end.Add(2*time.Hour+30*time.Minute), time.Hour, 150)
		assert.Equal(t, int32(3), hours)
		assert.Equal(t, int64(450), fee)
	})

	t.Run("Exactly at grace boundary is free", func(t *testing.T) {
		hours, fee := ComputeLateFee(end, end.Add(time.Hour), time.Hour, 150)
		assert.Equal(t, int32(0), hours)
		assert.Equal(t, int64(0), fee)
	})
}

func TestComputePayout(t *testing.T) {
	t.Run("Commission and coupon share deducted", func(t *testing.T) {
		// gross 400, 20% coupon share 80, 10% commission 40, late 150.
		got := ComputePayout(4, 100, 20, 150, 10)
		assert.Equal(t, int64(400), got.GrossEarning)
		assert.Equal(t, int64(80), got.DiscountShare)
		assert.Equal(t, int64(40), got.PlatformCommission)
		assert.Equal(t, int64(430), got.PayoutAmount)
	})

	t.Run("No coupon no commission", func(t *testing.T) {
		got := ComputePayout(4, 100, 0, 0, 0)
		assert.Equal(t, int64(400), got.PayoutAmount)
	})
}

func TestPenaltyForAmount(t *testing.T) {
	assert.Equal(t, int64(123), PenaltyForAmount(820, 15))
	assert.Equal(t, int64(82), PenaltyForAmount(820, 10))
	assert.Equal(t, int64(0), PenaltyForAmount(820, 0))
}
