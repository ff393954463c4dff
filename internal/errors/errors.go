// internal/errors/errors.go
package appErrors

import (
    "fmt"
    "net/http"

    "github.com/cockroachdb/errors"
)

// ErrInvalidRecord is returned when a stored row is missing a required column.
var ErrInvalidRecord = errors.New("invalid record")

// ErrCustomerNotFound is returned when no customer has the given ID
type ErrCustomerNotFound struct {
    CustomerID int
}

func (e *ErrCustomerNotFound) Error() string {
    return fmt.Sprintf("No such customer: %d", e.CustomerID)
}

func (e *ErrCustomerNotFound) Status() int { return http.StatusNotFound }

// ErrReservationNotFound is returned when no reservation has the given ID
type ErrReservationNotFound struct {
    ReservationID int
}

func (e *ErrReservationNotFound) Error() string {
    return fmt.Sprintf("No such reservation: %d", e.ReservationID)
}

func (e *ErrReservationNotFound) Status() int { return http.StatusNotFound }

// ErrInvalidReservation carries the reason a reservation was rejected
type ErrInvalidReservation struct {
    Reason string
}

func (e *ErrInvalidReservation) Error() string {
    return "invalid reservation: " + e.Reason
}

func (e *ErrInvalidReservation) Status() int { return http.StatusBadRequest }

// Helper constructors
func NewCustomerNotFound(id int) error {
    return &ErrCustomerNotFound{CustomerID: id}
}

func NewReservationNotFound(id int) error {
    return &ErrReservationNotFound{ReservationID: id}
}

func NewInvalidReservation(reason string) error {
    return &ErrInvalidReservation{Reason: reason}
}

// IsNotFound reports whether err is a customer or reservation not-found error,
// anywhere in its chain.
func IsNotFound(err error) bool {
    var c *ErrCustomerNotFound
    var r *ErrReservationNotFound
    return errors.As(err, &c) || errors.As(err, &r)
}

// HTTPStatus maps an error to the status code a handler should answer with.
func HTTPStatus(err error) int {
    var s interface{ Status() int }
    if errors.As(err, &s) {
        return s.Status()
    }
    return http.StatusInternalServerError
}
