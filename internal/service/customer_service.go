// internal/service/customer_service.go
package service

import (
    "context"
    "strings"
    "time"

    "github.com/cockroachdb/errors"

    "github.com/lunchly/lunchly-backend/internal/logger"
    "github.com/lunchly/lunchly-backend/internal/model"
    "github.com/lunchly/lunchly-backend/internal/queue"
    "github.com/lunchly/lunchly-backend/internal/repository"
)

type CustomerService struct {
    CustomerRepo    repository.CustomerRepositoryInterface
    ReservationRepo repository.ReservationRepositoryInterface
    Queue           queue.Queue
    Logger          *logger.Logger
}

// CustomerInput is the editable part of a customer
type CustomerInput struct {
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
    Phone     string `json:"phone"`
    Notes     string `json:"notes"`
}

type ReservationInput struct {
    NumGuests int       `json:"num_guests"`
    StartAt   time.Time `json:"start_at"`
    Notes     string    `json:"notes"`
}

type CustomerDetails struct {
    model.Customer
    FullName     string              `json:"full_name"`
    Reservations []model.Reservation `json:"reservations"`
}

// ReservationCreated is published once a reservation has been stored
type ReservationCreated struct {
    ReservationID int `json:"reservation_id"`
}

// ListCustomers searches by name fragments when any is given, otherwise lists everyone
func (s *CustomerService) ListCustomers(ctx context.Context, firstName, lastName string) ([]model.Customer, error) {
    firstName = strings.TrimSpace(firstName)
    lastName = strings.TrimSpace(lastName)

    if firstName == "" && lastName == "" {
        return s.CustomerRepo.All(ctx)
    }
    return s.CustomerRepo.FindAll(ctx, firstName, lastName)
}

func (s *CustomerService) GetCustomerDetail(ctx context.Context, id int) (*CustomerDetails, error) {
    c, err := s.CustomerRepo.Get(ctx, id)
    if err != nil {
        return nil, err
    }

    reservations, err := s.CustomerRepo.GetReservations(ctx, c)
    if err != nil {
        return nil, errors.Wrapf(err, "load reservations for customer %d", id)
    }

    return &CustomerDetails{
        Customer:     *c,
        FullName:     c.FullName(),
        Reservations: reservations,
    }, nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, in CustomerInput) (*model.Customer, error) {
    c := &model.Customer{
        FirstName: in.FirstName,
        LastName:  in.LastName,
        Phone:     in.Phone,
        Notes:     in.Notes,
    }
    if err := s.CustomerRepo.Save(ctx, c); err != nil {
        return nil, err
    }

    s.Logger.Infow("customer created", "customer_id", c.ID)
    return c, nil
}

// UpdateCustomer overwrites every editable field of an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, in CustomerInput) (*model.Customer, error) {
    c, err := s.CustomerRepo.Get(ctx, id)
    if err != nil {
        return nil, err
    }

    c.FirstName = in.FirstName
    c.LastName = in.LastName
    c.Phone = in.Phone
    c.Notes = in.Notes

    if err := s.CustomerRepo.Save(ctx, c); err != nil {
        return nil, err
    }

    s.Logger.Infow("customer updated", "customer_id", c.ID)
    return c, nil
}

func (s *CustomerService) TopCustomers(ctx context.Context) ([]model.TopCustomer, error) {
    return s.CustomerRepo.TopCustomers(ctx)
}

func (s *CustomerService) GetReservations(ctx context.Context, customerID int) ([]model.Reservation, error) {
    c, err := s.CustomerRepo.Get(ctx, customerID)
    if err != nil {
        return nil, err
    }
    return s.CustomerRepo.GetReservations(ctx, c)
}

// AddReservation books a table for an existing customer and queues a confirmation
func (s *CustomerService) AddReservation(ctx context.Context, customerID int, in ReservationInput) (*model.Reservation, error) {
    if _, err := s.CustomerRepo.Get(ctx, customerID); err != nil {
        return nil, err
    }

    res := &model.Reservation{
        CustomerID: customerID,
        NumGuests:  in.NumGuests,
        StartAt:    in.StartAt,
        Notes:      in.Notes,
    }
    if err := res.Validate(); err != nil {
        return nil, err
    }

    if err := s.ReservationRepo.Save(ctx, res); err != nil {
        return nil, err
    }

    s.Logger.Infow("reservation created", "reservation_id", res.ID, "customer_id", customerID)

    // The reservation is already stored; a lost confirmation is not worth failing the request.
    if err := s.Queue.Publish(queue.TopicReservationConfirmations, ReservationCreated{ReservationID: res.ID}); err != nil {
        s.Logger.Warnw("failed to enqueue reservation confirmation", "reservation_id", res.ID, "error", err)
    }

    return res, nil
}

func (s *CustomerService) GetReservation(ctx context.Context, id int) (*model.Reservation, error) {
    return s.ReservationRepo.Get(ctx, id)
}
