package model_test

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    appErrors "github.com/lunchly/lunchly-backend/internal/errors"
    "github.com/lunchly/lunchly-backend/internal/model"
)

func TestCustomerFullName(t *testing.T) {
    c := &model.Customer{FirstName: "Jane", LastName: "Doe"}
    assert.Equal(t, "Jane Doe", c.FullName())
    assert.True(t, c.IsNew())

    c.ID = 7
    assert.False(t, c.IsNew())
}

func TestReservationValidate(t *testing.T) {
    start := time.Date(2026, 10, 20, 19, 30, 0, 0, time.UTC)

    tests := []struct {
        name    string
        r       model.Reservation
        wantErr bool
    }{
        {name: "valid", r: model.Reservation{NumGuests: 2, StartAt: start}},
        {name: "no guests", r: model.Reservation{NumGuests: 0, StartAt: start}, wantErr: true},
        {name: "no start", r: model.Reservation{NumGuests: 4}, wantErr: true},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            err := tt.r.Validate()
            if !tt.wantErr {
                assert.NoError(t, err)
                return
            }
            var invalid *appErrors.ErrInvalidReservation
            assert.ErrorAs(t, err, &invalid)
            assert.Equal(t, 400, appErrors.HTTPStatus(err))
        })
    }
}
