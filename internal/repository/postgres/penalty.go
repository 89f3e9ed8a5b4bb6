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

type penaltyRepository struct {
	db *sql.DB
}

func NewPenaltyRepository(db *sql.DB) repository.PenaltyRepository {
	return &penaltyRepository{db: db}
}

const penaltyColumns = `id, booking_id, user_id, reason, COALESCE(note,''), penalty_amount,
	payment_status, gateway_order_id, gateway_payment_id, created_on, updated_on`

func scanPenalty(row rowScanner) (*domain.Penalty, error) {
	p := &domain.Penalty{}
	err := row.Scan(&p.ID, &p.BookingID, &p.UserID, &p.Reason, &p.Note, &p.PenaltyAmount,
		&p.PaymentStatus, &p.GatewayOrderID, &p.GatewayPaymentID, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *penaltyRepository) Create(ctx context.Context, p *domain.Penalty) error {
	now := time.Now()
	query := `INSERT INTO penalties (booking_id, user_id, reason, note, penalty_amount, payment_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.BookingID, p.UserID, p.Reason, p.Note,
		p.PenaltyAmount, p.PaymentStatus, now, now).Scan(&p.ID)
}

func (r *penaltyRepository) GetByID(ctx context.Context, id int64) (*domain.Penalty, error) {
	p, err := scanPenalty(r.db.QueryRowContext(ctx, `SELECT `+penaltyColumns+` FROM penalties WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("penalty %d: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (r *penaltyRepository) AttachGatewayOrder(ctx context.Context, id int64, orderID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE penalties SET gateway_order_id = $1, updated_on = $2 WHERE id = $3 AND payment_status = 'UNPAID'`,
		orderID, time.Now(), id)
	return err
}

func (r *penaltyRepository) MarkPaid(ctx context.Context, id int64, paymentID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE penalties SET payment_status = 'PAID', gateway_payment_id = $1, updated_on = $2
		 WHERE id = $3 AND payment_status = 'UNPAID'`, paymentID, time.Now(), id)
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
		return fmt.Errorf("penalty %d: %w", id, domain.ErrAlreadyClaimed)
	}
	return nil
}

func (r *penaltyRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Penalty, int32, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM penalties WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+penaltyColumns+` FROM penalties WHERE user_id = $1
		 ORDER BY created_on DESC LIMIT $2 OFFSET $3`, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var penalties []domain.Penalty
	for rows.Next() {
		p, err := scanPenalty(rows)
		if err != nil {
			return nil, 0, err
		}
		penalties = append(penalties, *p)
	}
	return penalties, count, rows.Err()
}
