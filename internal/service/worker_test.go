package service_test

import (
    "context"
    "encoding/json"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/lunchly/lunchly-backend/internal/logger"
    "github.com/lunchly/lunchly-backend/internal/model"
    "github.com/lunchly/lunchly-backend/internal/queue"
    "github.com/lunchly/lunchly-backend/internal/service"
)

func seedReservation(t *testing.T) (*MockCustomerRepo, *MockReservationRepo, *model.Reservation) {
    t.Helper()
    ctx := context.Background()

    reservations := NewMockReservationRepo()
    customers := NewMockCustomerRepo(reservations)

    c := &model.Customer{FirstName: "Jane", LastName: "Doe", Phone: "555-1234"}
    require.NoError(t, customers.Save(ctx, c))

    res := &model.Reservation{
        CustomerID: c.ID,
        NumGuests:  4,
        StartAt:    time.Date(2026, 10, 20, 19, 30, 0, 0, time.UTC),
    }
    require.NoError(t, reservations.Save(ctx, res))

    return customers, reservations, res
}

func TestConfirmationWorker_ThroughQueue(t *testing.T) {
    customers, reservations, res := seedReservation(t)

    var (
        wg      sync.WaitGroup
        gotTo   string
        gotBody string
    )
    wg.Add(1)

    w := service.NewConfirmationWorker(reservations, customers, func(_ context.Context, phone, msg string) error {
        defer wg.Done()
        gotTo, gotBody = phone, msg
        return nil
    }, logger.NewNop())

    q := queue.NewInMemoryQueue(logger.NewNop())
    require.NoError(t, w.Start(q))
    require.NoError(t, q.Publish(queue.TopicReservationConfirmations, service.ReservationCreated{ReservationID: res.ID}))

    wg.Wait()

    assert.Equal(t, "555-1234", gotTo)
    assert.Equal(t, "Hi Jane, your table for 4 on Tue Oct 20 2026, 7:30 PM is confirmed.", gotBody)
}

func TestConfirmationWorker_Handle(t *testing.T) {
    customers, reservations, res := seedReservation(t)
    sendErr := errors.New("sms gateway down")

    w := service.NewConfirmationWorker(reservations, customers, func(context.Context, string, string) error {
        return sendErr
    }, logger.NewNop())

    body, err := json.Marshal(service.ReservationCreated{ReservationID: res.ID})
    require.NoError(t, err)

    assert.ErrorIs(t, w.Handle(body), sendErr, "send failures must be retried")
    assert.NoError(t, w.Handle([]byte("not json")), "malformed jobs are dropped")

    missing, err := json.Marshal(service.ReservationCreated{ReservationID: 999})
    require.NoError(t, err)
    assert.NoError(t, w.Handle(missing), "unknown reservations are dropped")
}

func TestRenderTemplate(t *testing.T) {
    got := service.RenderTemplate("Hi {first_name} {last_name}", map[string]string{
        "first_name": "Jane",
        "last_name":  "",
    })
    assert.Equal(t, "Hi Jane N/A", got)
}

func TestRenderTemplate_DoesNotExpandSubstitutedValues(t *testing.T) {
    data := map[string]string{
        "first_name": "{num_guests}",
        "num_guests": "4",
        "start_at":   "noon",
    }
    for i := 0; i < 50; i++ {
        got := service.RenderTemplate("Hi {first_name}, table for {num_guests} at {start_at}", data)
        assert.Equal(t, "Hi {num_guests}, table for 4 at noon", got)
    }
}
