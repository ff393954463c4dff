package service_test

import (
    "context"
    "sort"
    "strings"
    "sync"

    appErrors "github.com/lunchly/lunchly-backend/internal/errors"
    "github.com/lunchly/lunchly-backend/internal/model"
    "github.com/lunchly/lunchly-backend/internal/queue"
)

// MockCustomerRepo keeps customers in memory and follows the repository contract
type MockCustomerRepo struct {
    mu           sync.Mutex
    customers    map[int]model.Customer
    nextID       int
    reservations *MockReservationRepo
}

func NewMockCustomerRepo(reservations *MockReservationRepo) *MockCustomerRepo {
    return &MockCustomerRepo{customers: map[int]model.Customer{}, nextID: 1, reservations: reservations}
}

func (m *MockCustomerRepo) sorted(keep func(model.Customer) bool) []model.Customer {
    out := []model.Customer{}
    for _, c := range m.customers {
        if keep(c) {
            out = append(out, c)
        }
    }
    sort.Slice(out, func(i, j int) bool {
        if out[i].LastName != out[j].LastName {
            return out[i].LastName < out[j].LastName
        }
        return out[i].FirstName < out[j].FirstName
    })
    return out
}

func (m *MockCustomerRepo) All(_ context.Context) ([]model.Customer, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    return m.sorted(func(model.Customer) bool { return true }), nil
}

func (m *MockCustomerRepo) Get(_ context.Context, id int) (*model.Customer, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    c, ok := m.customers[id]
    if !ok {
        return nil, appErrors.NewCustomerNotFound(id)
    }
    return &c, nil
}

func (m *MockCustomerRepo) FindAll(_ context.Context, firstName, lastName string) ([]model.Customer, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    if firstName == "" && lastName == "" {
        return []model.Customer{}, nil
    }
    return m.sorted(func(c model.Customer) bool {
        return strings.Contains(strings.ToLower(c.FirstName), strings.ToLower(firstName)) &&
            strings.Contains(strings.ToLower(c.LastName), strings.ToLower(lastName))
    }), nil
}

func (m *MockCustomerRepo) TopCustomers(_ context.Context) ([]model.TopCustomer, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    counts := m.reservations.counts()
    top := []model.TopCustomer{}
    for _, c := range m.sorted(func(c model.Customer) bool { return counts[c.ID] > 0 }) {
        top = append(top, model.TopCustomer{Customer: c, ReservationCount: counts[c.ID]})
    }
    sort.SliceStable(top, func(i, j int) bool { return top[i].ReservationCount > top[j].ReservationCount })
    if len(top) > 10 {
        top = top[:10]
    }
    return top, nil
}

func (m *MockCustomerRepo) Save(_ context.Context, c *model.Customer) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    if c.IsNew() {
        c.ID = m.nextID
        m.nextID++
    } else if _, ok := m.customers[c.ID]; !ok {
        return appErrors.NewCustomerNotFound(c.ID)
    }
    m.customers[c.ID] = *c
    return nil
}

func (m *MockCustomerRepo) GetReservations(ctx context.Context, c *model.Customer) ([]model.Reservation, error) {
    return m.reservations.GetReservationsForCustomer(ctx, c.ID)
}

type MockReservationRepo struct {
    mu           sync.Mutex
    reservations map[int]model.Reservation
    nextID       int
    SaveErr      error
}

func NewMockReservationRepo() *MockReservationRepo {
    return &MockReservationRepo{reservations: map[int]model.Reservation{}, nextID: 1}
}

func (m *MockReservationRepo) counts() map[int]int {
    m.mu.Lock()
    defer m.mu.Unlock()
    counts := map[int]int{}
    for _, r := range m.reservations {
        counts[r.CustomerID]++
    }
    return counts
}

func (m *MockReservationRepo) GetReservationsForCustomer(_ context.Context, customerID int) ([]model.Reservation, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    out := []model.Reservation{}
    for _, r := range m.reservations {
        if r.CustomerID == customerID {
            out = append(out, r)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
    return out, nil
}

func (m *MockReservationRepo) Get(_ context.Context, id int) (*model.Reservation, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    r, ok := m.reservations[id]
    if !ok {
        return nil, appErrors.NewReservationNotFound(id)
    }
    return &r, nil
}

func (m *MockReservationRepo) Save(_ context.Context, r *model.Reservation) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    if m.SaveErr != nil {
        return m.SaveErr
    }
    if r.ID == 0 {
        r.ID = m.nextID
        m.nextID++
    }
    m.reservations[r.ID] = *r
    return nil
}

// MockQueue records what was published
type MockQueue struct {
    mu         sync.Mutex
    Published  []any
    PublishErr error
}

func (q *MockQueue) Publish(_ string, payload any) error {
    q.mu.Lock()
    defer q.mu.Unlock()
    if q.PublishErr != nil {
        return q.PublishErr
    }
    q.Published = append(q.Published, payload)
    return nil
}

func (q *MockQueue) Subscribe(string, queue.Handler) error { return nil }
