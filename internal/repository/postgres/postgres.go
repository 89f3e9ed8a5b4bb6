package postgres

import (
	"database/sql"

	"driveshare-backend/internal/repository"

	"github.com/lib/pq"
)

// Store bundles every repository over one database handle.
type Store struct {
	db        *sql.DB
	Users     repository.UserRepository
	Cars      repository.CarRepository
	Bookings  repository.BookingRepository
	Coupons   repository.CouponRepository
	Refunds   repository.RefundRepository
	Penalties repository.PenaltyRepository
	Payouts   repository.PayoutRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		Users:     NewUserRepository(db),
		Cars:      NewCarRepository(db),
		Bookings:  NewBookingRepository(db),
		Coupons:   NewCouponRepository(db),
		Refunds:   NewRefundRepository(db),
		Penalties: NewPenaltyRepository(db),
		Payouts:   NewPayoutRepository(db),
	}
}

// isConstraintConflict reports whether err is the schema-level backstop for
// the booking overlap invariant (exclusion or unique violation).
func isConstraintConflict(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23P01" || pqErr.Code == "23505"
	}
	return false
}
