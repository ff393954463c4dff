package service

import (
    "context"
    "encoding/json"
    "strconv"

    "github.com/cockroachdb/errors"

    appErrors "github.com/lunchly/lunchly-backend/internal/errors"
    "github.com/lunchly/lunchly-backend/internal/logger"
    "github.com/lunchly/lunchly-backend/internal/model"
    "github.com/lunchly/lunchly-backend/internal/queue"
)

const startAtLayout = "Mon Jan 2 2006, 3:04 PM"

// ReservationGetter and CustomerGetter are what the worker needs from storage
type ReservationGetter interface {
    Get(ctx context.Context, id int) (*model.Reservation, error)
}

type CustomerGetter interface {
    Get(ctx context.Context, id int) (*model.Customer, error)
}

// ConfirmationWorker sends a confirmation for every ReservationCreated event
type ConfirmationWorker struct {
    Reservations ReservationGetter
    Customers    CustomerGetter
    SendFunc     func(ctx context.Context, phone, msg string) error
    Logger       *logger.Logger
}

func NewConfirmationWorker(reservations ReservationGetter, customers CustomerGetter, send func(ctx context.Context, phone, msg string) error, log *logger.Logger) *ConfirmationWorker {
    return &ConfirmationWorker{
        Reservations: reservations,
        Customers:    customers,
        SendFunc:     send,
        Logger:       log,
    }
}

// Start subscribes the worker to the confirmation topic
func (w *ConfirmationWorker) Start(q queue.Queue) error {
    return q.Subscribe(queue.TopicReservationConfirmations, w.Handle)
}

// Handle decodes one event and processes it. Malformed payloads and unknown
// records are dropped; anything else is returned so the queue retries.
func (w *ConfirmationWorker) Handle(body []byte) error {
    var event ReservationCreated
    if err := json.Unmarshal(body, &event); err != nil {
        w.Logger.Warnw("dropping malformed confirmation job", "body", string(body), "error", err)
        return nil
    }

    err := w.Process(context.Background(), event.ReservationID)
    if appErrors.IsNotFound(err) {
        w.Logger.Warnw("dropping confirmation for missing record", "reservation_id", event.ReservationID, "error", err)
        return nil
    }
    return err
}

func (w *ConfirmationWorker) Process(ctx context.Context, reservationID int) error {
    res, err := w.Reservations.Get(ctx, reservationID)
    if err != nil {
        return err
    }

    c, err := w.Customers.Get(ctx, res.CustomerID)
    if err != nil {
        return err
    }

    msg := RenderTemplate(ConfirmationTemplate, map[string]string{
        "first_name": c.FirstName,
        "last_name":  c.LastName,
        "num_guests": strconv.Itoa(res.NumGuests),
        "start_at":   res.StartAt.Format(startAtLayout),
    })

    if err := w.SendFunc(ctx, c.Phone, msg); err != nil {
        return errors.Wrapf(err, "send confirmation for reservation %d", reservationID)
    }

    w.Logger.Infow("confirmation sent", "reservation_id", reservationID, "customer_id", c.ID)
    return nil
}

// LogSender stands in for an SMS gateway: it only logs the message.
func LogSender(log *logger.Logger) func(ctx context.Context, phone, msg string) error {
    return func(_ context.Context, phone, msg string) error {
        if phone == "" {
            log.Infow("customer has no phone, confirmation not sent", "message", msg)
            return nil
        }
        log.Infow("sending confirmation", "to", phone, "message", msg)
        return nil
    }
}
