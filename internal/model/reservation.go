package model

import (
    "time"

    appErrors "github.com/lunchly/lunchly-backend/internal/errors"
)

type Reservation struct {
    ID         int       `db:"id" json:"id"`
    CustomerID int       `db:"customer_id" json:"customer_id"`
    NumGuests  int       `db:"num_guests" json:"num_guests"`
    StartAt    time.Time `db:"start_at" json:"start_at"`
    Notes      string    `db:"notes" json:"notes"`
}

// Validate checks the fields a reservation needs before it can be saved.
func (r *Reservation) Validate() error {
    if r.NumGuests < 1 {
        return appErrors.NewInvalidReservation("num_guests must be at least 1")
    }
    if r.StartAt.IsZero() {
        return appErrors.NewInvalidReservation("start_at is required")
    }
    return nil
}
