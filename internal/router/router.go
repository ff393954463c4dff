package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lunchly/lunchly-backend/internal/controller"
	"github.com/lunchly/lunchly-backend/internal/handler"
	"github.com/lunchly/lunchly-backend/internal/tracing"
)

type Handlers struct {
	Customers    *controller.CustomerController
	Reservations *handler.ReservationHandler
}

// New builds the HTTP API
func New(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(tracing.Middleware("lunchly-http"))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/customers", func(r chi.Router) {
		h.Customers.Routes(r)
		r.Get("/{id}/reservations", h.Reservations.ListForCustomer)
		r.Post("/{id}/reservations", h.Reservations.AddReservation)
	})
	r.Get("/reservations/{id}", h.Reservations.GetReservation)

	return r
}
