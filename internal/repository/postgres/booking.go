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

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, car_id, owner_id, renter_id, start_time, end_time, total_hours,
	price_per_hour, sub_amount, discount_amount, main_amount, security_deposit, total_amount,
	coupon_id, coupon_discount, payment_order_id, payment_id, pickup_otp, drop_otp,
	pickup_time, drop_time,
	COALESCE(before_front,''), COALESCE(before_rear,''), COALESCE(before_left,''), COALESCE(before_right,''), COALESCE(before_interior,''),
	COALESCE(after_front,''), COALESCE(after_rear,''), COALESCE(after_left,''), COALESCE(after_right,''), COALESCE(after_interior,''),
	status, late_fee_charged, late_fee_amount, created_on, updated_on`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(
		&b.ID, &b.CarID, &b.OwnerID, &b.RenterID, &b.StartTime, &b.EndTime, &b.TotalHours,
		&b.PricePerHour, &b.SubAmount, &b.DiscountAmount, &b.MainAmount, &b.SecurityDeposit, &b.TotalAmount,
		&b.CouponID, &b.CouponDiscount, &b.PaymentOrderID, &b.PaymentID, &b.PickupOTP, &b.DropOTP,
		&b.PickupTime, &b.DropTime,
		&b.BeforePhotos.Front, &b.BeforePhotos.Rear, &b.BeforePhotos.Left, &b.BeforePhotos.Right, &b.BeforePhotos.Interior,
		&b.AfterPhotos.Front, &b.AfterPhotos.Rear, &b.AfterPhotos.Left, &b.AfterPhotos.Right, &b.AfterPhotos.Interior,
		&b.Status, &b.LateFeeCharged, &b.LateFeeAmount, &b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create serializes on the car row, checks the window against active bookings
// and inserts. The schema's exclusion constraint is the backstop for anything
// the check misses under concurrency.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var carID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM cars WHERE id = $1 FOR UPDATE`, b.CarID).Scan(&carID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("car %d: %w", b.CarID, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}

	var conflicts int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings
		 WHERE car_id = $1 AND status IN ('BOOKED', 'PICKED_UP')
		   AND start_time < $3 AND end_time > $2`,
		b.CarID, b.StartTime, b.EndTime).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return domain.ErrSlotUnavailable
	}

	now := time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO bookings (car_id, owner_id, renter_id, start_time, end_time, total_hours,
		   price_per_hour, sub_amount, discount_amount, main_amount, security_deposit, total_amount,
		   coupon_id, coupon_discount, payment_order_id, payment_id, pickup_otp, drop_otp,
		   status, late_fee_charged, late_fee_amount, created_on, updated_on)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
		 RETURNING id`,
		b.CarID, b.OwnerID, b.RenterID, b.StartTime, b.EndTime, b.TotalHours,
		b.PricePerHour, b.SubAmount, b.DiscountAmount, b.MainAmount, b.SecurityDeposit, b.TotalAmount,
		b.CouponID, b.CouponDiscount, b.PaymentOrderID, b.PaymentID, b.PickupOTP, b.DropOTP,
		b.Status, b.LateFeeCharged, b.LateFeeAmount, now, now).Scan(&b.ID)
	if err != nil {
		if isConstraintConflict(err) {
			return domain.ErrSlotUnavailable
		}
		return err
	}

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, pickup_time=$2, drop_time=$3,
		before_front=$4, before_rear=$5, before_left=$6, before_right=$7, before_interior=$8,
		after_front=$9, after_rear=$10, after_left=$11, after_right=$12, after_interior=$13,
		late_fee_charged=$14, late_fee_amount=$15, updated_on=$16
		WHERE id=$17`
	_, err := r.db.ExecContext(ctx, query, b.Status, b.PickupTime, b.DropTime,
		b.BeforePhotos.Front, b.BeforePhotos.Rear, b.BeforePhotos.Left, b.BeforePhotos.Right, b.BeforePhotos.Interior,
		b.AfterPhotos.Front, b.AfterPhotos.Rear, b.AfterPhotos.Left, b.AfterPhotos.Right, b.AfterPhotos.Interior,
		b.LateFeeCharged, b.LateFeeAmount, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) list(ctx context.Context, column string, userID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1`
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *bookingRepository) ListOverdueDrops(ctx context.Context, asOf time.Time, grace time.Duration) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE status = 'PICKED_UP' AND late_fee_charged = false AND end_time < $1`
	rows, err := r.db.QueryContext(ctx, query, asOf.Add(-grace))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
