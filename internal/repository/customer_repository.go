package repository

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	appErrors "github.com/lunchly/lunchly-backend/internal/errors"
	"github.com/lunchly/lunchly-backend/internal/model"
)

const topCustomersLimit = 10

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	All(ctx context.Context) ([]model.Customer, error)
	Get(ctx context.Context, id int) (*model.Customer, error)
	FindAll(ctx context.Context, firstName, lastName string) ([]model.Customer, error)
	TopCustomers(ctx context.Context) ([]model.TopCustomer, error)
	Save(ctx context.Context, c *model.Customer) error
	GetReservations(ctx context.Context, c *model.Customer) ([]model.Reservation, error)
}

// ReservationFinder is the part of the reservation store customers depend on.
type ReservationFinder interface {
	GetReservationsForCustomer(ctx context.Context, customerID int) ([]model.Reservation, error)
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB           *sqlx.DB
	Reservations ReservationFinder
}

// customerRow mirrors the customers table, nullable columns included.
type customerRow struct {
	ID        sql.NullInt64  `db:"id"`
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	Phone     sql.NullString `db:"phone"`
	Notes     sql.NullString `db:"notes"`
}

type topCustomerRow struct {
	customerRow
	ReservationCount int `db:"reservation_count"`
}

// toCustomer maps a row onto the entity. id, first_name and last_name are required.
func (row customerRow) toCustomer() (model.Customer, error) {
	switch {
	case !row.ID.Valid:
		return model.Customer{}, errors.Wrap(appErrors.ErrInvalidRecord, "customers row without id")
	case !row.FirstName.Valid:
		return model.Customer{}, errors.Wrapf(appErrors.ErrInvalidRecord, "customer %d has no first_name", row.ID.Int64)
	case !row.LastName.Valid:
		return model.Customer{}, errors.Wrapf(appErrors.ErrInvalidRecord, "customer %d has no last_name", row.ID.Int64)
	}

	return model.Customer{
		ID:        int(row.ID.Int64),
		FirstName: row.FirstName.String,
		LastName:  row.LastName.String,
		Phone:     row.Phone.String,
		Notes:     row.Notes.String,
	}, nil
}

func toCustomers(rows []customerRow) ([]model.Customer, error) {
	customers := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := row.toCustomer()
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// All fetches every customer ordered by last name, then first name
func (r *CustomerRepository) All(ctx context.Context) ([]model.Customer, error) {
	query := `
        SELECT id, first_name, last_name, phone, notes
        FROM customers
        ORDER BY last_name, first_name
    `
	var rows []customerRow
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	return toCustomers(rows)
}

// Get fetches a customer by ID
func (r *CustomerRepository) Get(ctx context.Context, id int) (*model.Customer, error) {
	query := `
        SELECT id, first_name, last_name, phone, notes
        FROM customers
        WHERE id = $1
    `
	var row customerRow
	if err := r.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}

	c, err := row.toCustomer()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAll searches customers by case-insensitive name fragments. An empty
// fragment means "not given"; with neither given nothing can match.
func (r *CustomerRepository) FindAll(ctx context.Context, firstName, lastName string) ([]model.Customer, error) {
	var (
		query string
		args  []interface{}
	)

	switch {
	case firstName == "" && lastName == "":
		return []model.Customer{}, nil
	case lastName == "":
		query = `
            SELECT id, first_name, last_name, phone, notes
            FROM customers
            WHERE lower(first_name) LIKE '%' || lower($1) || '%'
            ORDER BY last_name, first_name
        `
		args = []interface{}{firstName}
	case firstName == "":
		query = `
            SELECT id, first_name, last_name, phone, notes
            FROM customers
            WHERE lower(last_name) LIKE '%' || lower($1) || '%'
            ORDER BY last_name, first_name
        `
		args = []interface{}{lastName}
	default:
		query = `
            SELECT id, first_name, last_name, phone, notes
            FROM customers
            WHERE lower(first_name) LIKE '%' || lower($1) || '%'
              AND lower(last_name) LIKE '%' || lower($2) || '%'
            ORDER BY last_name, first_name
        `
		args = []interface{}{firstName, lastName}
	}

	var rows []customerRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return toCustomers(rows)
}

// TopCustomers returns the customers with the most reservations, most first.
// Customers without reservations are never included.
func (r *CustomerRepository) TopCustomers(ctx context.Context) ([]model.TopCustomer, error) {
	query := `
        SELECT c.id, c.first_name, c.last_name, c.phone, c.notes,
               COUNT(res.id) AS reservation_count
        FROM customers c
        JOIN reservations res ON res.customer_id = c.id
        GROUP BY c.id, c.first_name, c.last_name, c.phone, c.notes
        ORDER BY reservation_count DESC, c.last_name, c.first_name
        LIMIT $1
    `
	var rows []topCustomerRow
	if err := r.DB.SelectContext(ctx, &rows, query, topCustomersLimit); err != nil {
		return nil, err
	}

	top := make([]model.TopCustomer, 0, len(rows))
	for _, row := range rows {
		c, err := row.toCustomer()
		if err != nil {
			return nil, err
		}
		top = append(top, model.TopCustomer{Customer: c, ReservationCount: row.ReservationCount})
	}
	return top, nil
}

// Save inserts a new customer and assigns its ID, or overwrites every mutable
// field of an existing one. Last write wins.
func (r *CustomerRepository) Save(ctx context.Context, c *model.Customer) error {
	if c.IsNew() {
		query := `
            INSERT INTO customers (first_name, last_name, phone, notes)
            VALUES ($1, $2, $3, $4)
            RETURNING id
        `
		return r.DB.QueryRowxContext(ctx, query, c.FirstName, c.LastName, c.Phone, c.Notes).Scan(&c.ID)
	}

	query := `
        UPDATE customers
        SET first_name=$1, last_name=$2, phone=$3, notes=$4
        WHERE id=$5
    `
	res, err := r.DB.ExecContext(ctx, query, c.FirstName, c.LastName, c.Phone, c.Notes, c.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewCustomerNotFound(c.ID)
	}
	return nil
}

// GetReservations returns the customer's reservations as the reservation store reports them.
func (r *CustomerRepository) GetReservations(ctx context.Context, c *model.Customer) ([]model.Reservation, error) {
	return r.Reservations.GetReservationsForCustomer(ctx, c.ID)
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
