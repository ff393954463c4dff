package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	appErrors "github.com/lunchly/lunchly-backend/internal/errors"
	"github.com/lunchly/lunchly-backend/internal/model"
)

type ReservationRepositoryInterface interface {
	ReservationFinder
	Get(ctx context.Context, id int) (*model.Reservation, error)
	Save(ctx context.Context, res *model.Reservation) error
}

type ReservationRepository struct {
	DB *sqlx.DB
}

type reservationRow struct {
	ID         int            `db:"id"`
	CustomerID int            `db:"customer_id"`
	NumGuests  int            `db:"num_guests"`
	StartAt    time.Time      `db:"start_at"`
	Notes      sql.NullString `db:"notes"`
}

func (row reservationRow) toReservation() model.Reservation {
	return model.Reservation{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		NumGuests:  row.NumGuests,
		StartAt:    row.StartAt,
		Notes:      row.Notes.String,
	}
}

// GetReservationsForCustomer fetches a customer's reservations, earliest first
func (r *ReservationRepository) GetReservationsForCustomer(ctx context.Context, customerID int) ([]model.Reservation, error) {
	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE customer_id = $1
        ORDER BY start_at
    `
	var rows []reservationRow
	if err := r.DB.SelectContext(ctx, &rows, query, customerID); err != nil {
		return nil, err
	}

	reservations := make([]model.Reservation, 0, len(rows))
	for _, row := range rows {
		reservations = append(reservations, row.toReservation())
	}
	return reservations, nil
}

func (r *ReservationRepository) Get(ctx context.Context, id int) (*model.Reservation, error) {
	query := `
        SELECT id, customer_id, num_guests, start_at, notes
        FROM reservations
        WHERE id = $1
    `
	var row reservationRow
	if err := r.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewReservationNotFound(id)
		}
		return nil, err
	}

	res := row.toReservation()
	return &res, nil
}

// Save inserts a new reservation (assigning its ID) or updates an existing one
func (r *ReservationRepository) Save(ctx context.Context, res *model.Reservation) error {
	if res.ID == 0 {
		query := `
            INSERT INTO reservations (customer_id, num_guests, start_at, notes)
            VALUES ($1, $2, $3, $4)
            RETURNING id
        `
		return r.DB.QueryRowxContext(ctx, query, res.CustomerID, res.NumGuests, res.StartAt, res.Notes).Scan(&res.ID)
	}

	query := `
        UPDATE reservations
        SET customer_id=$1, num_guests=$2, start_at=$3, notes=$4
        WHERE id=$5
    `
	result, err := r.DB.ExecContext(ctx, query, res.CustomerID, res.NumGuests, res.StartAt, res.Notes, res.ID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewReservationNotFound(res.ID)
	}
	return nil
}

var _ ReservationRepositoryInterface = (*ReservationRepository)(nil)
