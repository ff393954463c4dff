package controller

import (
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/lunchly/lunchly-backend/internal/errors"
    "github.com/lunchly/lunchly-backend/internal/logger"
)

// WriteJSON encodes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

// WriteError answers with the status the error maps to. Server errors are
// logged and their detail is not exposed.
func WriteError(w http.ResponseWriter, log *logger.Logger, err error) {
    status := appErrors.HTTPStatus(err)
    msg := err.Error()
    if status >= http.StatusInternalServerError {
        log.Errorw("request failed", "error", err)
        msg = http.StatusText(status)
    }
    WriteJSON(w, status, map[string]string{"error": msg})
}

// IDParam reads a positive integer URL parameter, answering 400 when it is not one
func IDParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
    id, err := strconv.Atoi(chi.URLParam(r, name))
    if err != nil || id < 1 {
        WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name})
        return 0, false
    }
    return id, true
}
