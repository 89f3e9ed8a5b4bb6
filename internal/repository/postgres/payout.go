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

type payoutRepository struct {
	db *sql.DB
}

func NewPayoutRepository(db *sql.DB) repository.PayoutRepository {
	return &payoutRepository{db: db}
}

const payoutColumns = `id, booking_id, car_id, owner_id, price_per_hour, total_hours, late_charge,
	coupon_discount, platform_commission, payout_amount, status, upi_id, created_on, updated_on`

func scanPayout(row rowScanner) (*domain.Payout, error) {
	p := &domain.Payout{}
	err := row.Scan(&p.ID, &p.BookingID, &p.CarID, &p.OwnerID, &p.PricePerHour, &p.TotalHours,
		&p.LateCharge, &p.CouponDiscount, &p.PlatformCommission, &p.PayoutAmount, &p.Status,
		&p.UpiID, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *payoutRepository) Create(ctx context.Context, p *domain.Payout) error {
	now := time.Now()
	query := `INSERT INTO payouts (booking_id, car_id, owner_id, price_per_hour, total_hours,
	            late_charge, coupon_discount, platform_commission, payout_amount, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.BookingID, p.CarID, p.OwnerID, p.PricePerHour,
		p.TotalHours, p.LateCharge, p.CouponDiscount, p.PlatformCommission, p.PayoutAmount,
		p.Status, now, now).Scan(&p.ID)
}

func (r *payoutRepository) GetByID(ctx context.Context, id int64) (*domain.Payout, error) {
	p, err := scanPayout(r.db.QueryRowContext(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payout %d: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (r *payoutRepository) Claim(ctx context.Context, id int64, upiID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payouts SET status = 'PROCESSING', upi_id = $1, updated_on = $2
		 WHERE id = $3 AND status = 'PENDING'`, upiID, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("payout %d: %w", id, domain.ErrAlreadyClaimed)
	}
	return nil
}

func (r *payoutRepository) MarkClaimed(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payouts SET status = 'CLAIMED', updated_on = $1
		 WHERE id = $2 AND status = 'PROCESSING'`, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("payout %d is not processing: %w", id, domain.ErrInvalidTransition)
	}
	return nil
}

func (r *payoutRepository) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Payout, int32, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM payouts WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+payoutColumns+` FROM payouts WHERE owner_id = $1
		 ORDER BY created_on DESC LIMIT $2 OFFSET $3`, ownerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payouts []domain.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, 0, err
		}
		payouts = append(payouts, *p)
	}
	return payouts, count, rows.Err()
}
