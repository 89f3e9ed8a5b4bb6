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

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, owner_id, model, registration_number, price_per_hour, address,
	latitude, longitude, visible, verification_status, created_on, updated_on`

func scanCar(row rowScanner) (*domain.Car, error) {
	c := &domain.Car{}
	err := row.Scan(&c.ID, &c.OwnerID, &c.Model, &c.RegistrationNumber, &c.PricePerHour,
		&c.Address, &c.Latitude, &c.Longitude, &c.Visible, &c.Verification, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	now := time.Now()
	query := `INSERT INTO cars (owner_id, model, registration_number, price_per_hour, address,
	            latitude, longitude, visible, verification_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.OwnerID, c.Model, c.RegistrationNumber,
		c.PricePerHour, c.Address, c.Latitude, c.Longitude, c.Visible, c.Verification, now, now).Scan(&c.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	c, err := scanCar(r.db.QueryRowContext(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("car %d: %w", id, domain.ErrNotFound)
	}
	return c, err
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET price_per_hour=$1, address=$2, latitude=$3, longitude=$4,
	            visible=$5, verification_status=$6, updated_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, c.PricePerHour, c.Address, c.Latitude, c.Longitude,
		c.Visible, c.Verification, time.Now(), c.ID)
	return err
}

func (r *carRepository) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Car, int32, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM cars WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+carColumns+` FROM cars WHERE owner_id = $1
		 ORDER BY created_on DESC LIMIT $2 OFFSET $3`, ownerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, 0, err
		}
		cars = append(cars, *c)
	}
	return cars, count, rows.Err()
}
