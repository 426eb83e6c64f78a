package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"truckpro/internal/models"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `id, shipper_name, pickup, drop_off, load_tonnes, booking_date, booking_time,
	goods_type, truck_id, distance_km, status, calculated_price, contact_phone, contact_email, notes,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.ShipperName, &b.Pickup, &b.Drop, &b.LoadTonnes, &b.BookingDate, &b.BookingTime,
		&b.GoodsType, &b.TruckID, &b.DistanceKm, &b.Status, &b.CalculatedPrice, &b.ContactPhone,
		&b.ContactEmail, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new booking and returns it with its timestamps filled.
func (r *Repository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (id, shipper_name, pickup, drop_off, load_tonnes, booking_date, booking_time,
			goods_type, truck_id, distance_km, status, calculated_price, contact_phone, contact_email, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + bookingColumns

	row := r.db.QueryRow(ctx, query,
		b.ID, b.ShipperName, b.Pickup, b.Drop, b.LoadTonnes, b.BookingDate, b.BookingTime,
		b.GoodsType, b.TruckID, b.DistanceKm, b.Status, b.CalculatedPrice, b.ContactPhone,
		b.ContactEmail, b.Notes,
	)
	created, err := scanBooking(row)
	if err != nil {
		return nil, fmt.Errorf("repository.Create: %w", err)
	}
	return created, nil
}

// FindByID fetches one booking by its reference.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return b, nil
}

// List returns bookings newest first, optionally filtered by shipper and/or
// status, with offset pagination.
func (r *Repository) List(ctx context.Context, shipperName, status string, page, limit int) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE ($1 = '' OR shipper_name = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, shipperName, status, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.List: scan: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	return bookings, nil
}

// UpdateStatus moves a booking to a new status and returns the updated row.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1
		RETURNING ` + bookingColumns

	b, err := scanBooking(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	return b, nil
}
