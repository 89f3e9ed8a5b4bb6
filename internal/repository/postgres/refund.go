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

type refundRepository struct {
	db *sql.DB
}

func NewRefundRepository(db *sql.DB) repository.RefundRepository {
	return &refundRepository{db: db}
}

const refundColumns = `id, booking_id, renter_id, reason, refund_amount, deduction_amount,
	COALESCE(deduction_reason,''), status, upi_id, created_on, updated_on`

func scanRefund(row rowScanner) (*domain.Refund, error) {
	rf := &domain.Refund{}
	err := row.Scan(&rf.ID, &rf.BookingID, &rf.RenterID, &rf.Reason, &rf.RefundAmount,
		&rf.DeductionAmount, &rf.DeductionReason, &rf.Status, &rf.UpiID, &rf.CreatedOn, &rf.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rf, nil
}

func (r *refundRepository) Create(ctx context.Context, rf *domain.Refund) error {
	now := time.Now()
	query := `INSERT INTO refunds (booking_id, renter_id, reason, refund_amount, deduction_amount,
	            deduction_reason, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rf.BookingID, rf.RenterID, rf.Reason, rf.RefundAmount,
		rf.DeductionAmount, rf.DeductionReason, rf.Status, now, now).Scan(&rf.ID)
}

func (r *refundRepository) GetByID(ctx context.Context, id int64) (*domain.Refund, error) {
	rf, err := scanRefund(r.db.QueryRowContext(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("refund %d: %w", id, domain.ErrNotFound)
	}
	return rf, err
}

// Claim is one-way: only a pending refund accepts a destination. Zero rows
// affected means the record exists in another state (or not at all); the
// follow-up read distinguishes the two without mutating anything.
func (r *refundRepository) Claim(ctx context.Context, id int64, upiID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refunds SET status = 'PROCESSING', upi_id = $1, updated_on = $2
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
		return fmt.Errorf("refund %d: %w", id, domain.ErrAlreadyClaimed)
	}
	return nil
}

func (r *refundRepository) MarkCompleted(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refunds SET status = 'COMPLETED', updated_on = $1
		 WHERE id = $2 AND status = 'PROCESSING'`, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("refund %d is not processing: %w", id, domain.ErrInvalidTransition)
	}
	return nil
}

func (r *refundRepository) ListByRenter(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Refund, int32, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM refunds WHERE renter_id = $1`, renterID).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+refundColumns+` FROM refunds WHERE renter_id = $1
		 ORDER BY created_on DESC LIMIT $2 OFFSET $3`, renterID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		rf, err := scanRefund(rows)
		if err != nil {
			return nil, 0, err
		}
		refunds = append(refunds, *rf)
	}
	return refunds, count, rows.Err()
}

func (r *refundRepository) SettleProcessing(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refunds SET status = 'COMPLETED', updated_on = $1
		 WHERE status = 'PROCESSING' AND updated_on < $2`, time.Now(), olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
