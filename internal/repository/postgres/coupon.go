package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
)

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

const couponColumns = `id, code, renter_id, discount_percentage, COALESCE(issued_for,''), used, reserved_by, reserved_on, created_on`

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	err := row.Scan(&c.ID, &c.Code, &c.RenterID, &c.DiscountPercentage, &c.IssuedFor,
		&c.Used, &c.ReservedBy, &c.ReservedOn, &c.CreatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	query := `INSERT INTO coupons (code, renter_id, discount_percentage, issued_for, used, created_on)
	          VALUES ($1, $2, $3, $4, false, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Code, c.RenterID, c.DiscountPercentage, c.IssuedFor, time.Now()).Scan(&c.ID)
}

func (r *couponRepository) GetByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coupon %d: %w", id, domain.ErrNotFound)
	}
	return c, err
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coupon %q: %w", code, domain.ErrNotFound)
	}
	return c, err
}

func (r *couponRepository) GetByReservation(ctx context.Context, draftToken string) (*domain.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE reserved_by = $1 AND used = false`, draftToken))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coupon reservation: %w", domain.ErrNotFound)
	}
	return c, err
}

// Reserve is compare-and-swap on the reservation columns: it only succeeds if
// the coupon is unused and either free or already held by the same draft.
func (r *couponRepository) Reserve(ctx context.Context, id int64, draftToken string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET reserved_by = $1, reserved_on = $2
		 WHERE id = $3 AND used = false AND (reserved_by IS NULL OR reserved_by = $1)`,
		draftToken, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("coupon %d: %w", id, domain.ErrAlreadyUsed)
	}
	return nil
}

func (r *couponRepository) Release(ctx context.Context, id int64, draftToken string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET reserved_by = NULL, reserved_on = NULL
		 WHERE id = $1 AND reserved_by = $2 AND used = false`, id, draftToken)
	return err
}

// Burn consumes the coupon exactly once. Two concurrent bookings cannot both
// succeed: the second sees zero rows affected.
func (r *couponRepository) Burn(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET used = true, reserved_by = NULL, reserved_on = NULL
		 WHERE id = $1 AND used = false`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("coupon %d: %w", id, domain.ErrAlreadyUsed)
	}
	return nil
}

// Restore puts a burned coupon back into play after the booking it paid for
// failed to commit, re-reserving it for the same draft.
func (r *couponRepository) Restore(ctx context.Context, id int64, draftToken string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET used = false, reserved_by = $2, reserved_on = $3
		 WHERE id = $1 AND used = true`, id, draftToken, time.Now())
	return err
}

func (r *couponRepository) ReleaseStaleReservations(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET reserved_by = NULL, reserved_on = NULL
		 WHERE used = false AND reserved_on IS NOT NULL AND reserved_on < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
