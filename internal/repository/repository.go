package repository

import (
	"context"
	"time"

	"driveshare-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	ListByOwner(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Car, int32, error)
}

type BookingRepository interface {
	// Create inserts the booking inside a transaction that serializes on the
	// car row and rejects any window overlapping an active booking with
	// domain.ErrSlotUnavailable.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ListOverdueDrops returns picked-up bookings whose scheduled end plus
	// grace has passed without a recorded late fee.
	ListOverdueDrops(ctx context.Context, asOf time.Time, grace time.Duration) ([]domain.Booking, error)
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	GetByID(ctx context.Context, id int64) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	GetByReservation(ctx context.Context, draftToken string) (*domain.Coupon, error)
	// Reserve attaches an unused, unreserved coupon to a draft token.
	// A lost race returns domain.ErrAlreadyUsed.
	Reserve(ctx context.Context, id int64, draftToken string) error
	// Release clears a reservation that was never burned.
	Release(ctx context.Context, id int64, draftToken string) error
	// Burn flips used=false to true exactly once; a second burn returns
	// domain.ErrAlreadyUsed.
	Burn(ctx context.Context, id int64) error
	// Restore reverts a burn whose booking failed to commit, handing the
	// reservation back to the draft.
	Restore(ctx context.Context, id int64, draftToken string) error
	// ReleaseStaleReservations frees reservations older than the cutoff and
	// returns how many were released.
	ReleaseStaleReservations(ctx context.Context, olderThan time.Time) (int64, error)
}

type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) error
	GetByID(ctx context.Context, id int64) (*domain.Refund, error)
	// Claim moves pending to processing and records the destination.
	// Non-pending records return domain.ErrAlreadyClaimed untouched.
	Claim(ctx context.Context, id int64, upiID string) error
	MarkCompleted(ctx context.Context, id int64) error
	ListByRenter(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Refund, int32, error)
	// SettleProcessing completes processing refunds older than the cutoff.
	SettleProcessing(ctx context.Context, olderThan time.Time) (int64, error)
}

type PenaltyRepository interface {
	Create(ctx context.Context, penalty *domain.Penalty) error
	GetByID(ctx context.Context, id int64) (*domain.Penalty, error)
	AttachGatewayOrder(ctx context.Context, id int64, orderID string) error
	// MarkPaid flips unpaid to paid and records the gateway payment id.
	// Already-paid penalties return domain.ErrAlreadyClaimed.
	MarkPaid(ctx context.Context, id int64, paymentID string) error
	ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Penalty, int32, error)
}

type PayoutRepository interface {
	Create(ctx context.Context, payout *domain.Payout) error
	GetByID(ctx context.Context, id int64) (*domain.Payout, error)
	// Claim moves pending to processing, same contract as RefundRepository.
	Claim(ctx context.Context, id int64, upiID string) error
	MarkClaimed(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Payout, int32, error)
}
