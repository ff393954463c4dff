// internal/handler/reservation_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lunchly/lunchly-backend/internal/controller"
	"github.com/lunchly/lunchly-backend/internal/logger"
	"github.com/lunchly/lunchly-backend/internal/service"
)

// ReservationHandler holds the dependencies for reservation HTTP handlers
type ReservationHandler struct {
	Service *service.CustomerService
	Logger  *logger.Logger
}

// ListForCustomer handles GET /customers/{id}/reservations
func (h *ReservationHandler) ListForCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := controller.IDParam(w, r, "id")
	if !ok {
		return
	}

	reservations, err := h.Service.GetReservations(r.Context(), customerID)
	if err != nil {
		controller.WriteError(w, h.Logger, err)
		return
	}

	controller.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": reservations})
}

// AddReservation handles POST /customers/{id}/reservations
func (h *ReservationHandler) AddReservation(w http.ResponseWriter, r *http.Request) {
	customerID, ok := controller.IDParam(w, r, "id")
	if !ok {
		return
	}

	var payload service.ReservationInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		controller.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	h.Logger.Debugw("adding reservation", "customer_id", customerID, "num_guests", payload.NumGuests)

	res, err := h.Service.AddReservation(r.Context(), customerID, payload)
	if err != nil {
		controller.WriteError(w, h.Logger, err)
		return
	}

	controller.WriteJSON(w, http.StatusCreated, res)
}

// GetReservation handles GET /reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := controller.IDParam(w, r, "id")
	if !ok {
		return
	}

	res, err := h.Service.GetReservation(r.Context(), id)
	if err != nil {
		controller.WriteError(w, h.Logger, err)
		return
	}

	controller.WriteJSON(w, http.StatusOK, res)
}
