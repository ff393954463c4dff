// internal/controller/customer_controller.go
package controller

import (
    "encoding/json"
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/lunchly/lunchly-backend/internal/logger"
    "github.com/lunchly/lunchly-backend/internal/service"
)

type CustomerController struct {
    CustomerService *service.CustomerService
    Logger          *logger.Logger
}

// Routes mounts the customer endpoints
func (c *CustomerController) Routes(r chi.Router) {
    r.Get("/", c.ListCustomers)
    r.Post("/", c.CreateCustomer)
    r.Get("/top", c.TopCustomers)
    r.Get("/{id}", c.GetCustomer)
    r.Put("/{id}", c.UpdateCustomer)
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
    firstName := r.URL.Query().Get("first_name")
    lastName := r.URL.Query().Get("last_name")

    customers, err := c.CustomerService.ListCustomers(r.Context(), firstName, lastName)
    if err != nil {
        WriteError(w, c.Logger, err)
        return
    }

    WriteJSON(w, http.StatusOK, map[string]interface{}{"data": customers})
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
    var body service.CustomerInput
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
        return
    }

    customer, err := c.CustomerService.CreateCustomer(r.Context(), body)
    if err != nil {
        WriteError(w, c.Logger, err)
        return
    }

    WriteJSON(w, http.StatusCreated, customer)
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
    id, ok := IDParam(w, r, "id")
    if !ok {
        return
    }

    details, err := c.CustomerService.GetCustomerDetail(r.Context(), id)
    if err != nil {
        WriteError(w, c.Logger, err)
        return
    }

    WriteJSON(w, http.StatusOK, details)
}

func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
    id, ok := IDParam(w, r, "id")
    if !ok {
        return
    }

    var body service.CustomerInput
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
        return
    }

    customer, err := c.CustomerService.UpdateCustomer(r.Context(), id, body)
    if err != nil {
        WriteError(w, c.Logger, err)
        return
    }

    WriteJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) TopCustomers(w http.ResponseWriter, r *http.Request) {
    top, err := c.CustomerService.TopCustomers(r.Context())
    if err != nil {
        WriteError(w, c.Logger, err)
        return
    }

    WriteJSON(w, http.StatusOK, map[string]interface{}{"data": top})
}
