// Package httpx is the single place where domain failures are translated
// into HTTP status codes and response envelopes.
package httpx

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/clmarcel/pokedex-api/internal/domain"
)

// envelope is the success response shape: {data, message?, count?}.
type envelope struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int64 `json:"count,omitempty"`
}

// errEnvelope is the failure response shape: {success:false, message}.
type errEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Data writes a success envelope holding data only.
func Data(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Data: data})
}

// DataMessage writes a success envelope with data and a message.
func DataMessage(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Data: data, Message: message})
}

// DataCount writes a success envelope with data and a total count.
func DataCount(w http.ResponseWriter, status int, data any, count int64) {
	writeJSON(w, status, envelope{Data: data, Count: &count})
}

// Message writes a success envelope with a message only.
func Message(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Message: message})
}

// Fail writes a failure envelope with an explicit status.
func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errEnvelope{Success: false, Message: message})
}

// Error maps a domain failure to its status code and writes the failure
// envelope. Untyped errors become an opaque 500.
func Error(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		Fail(w, http.StatusBadRequest, err.Error())
	case domain.KindUnauthorized:
		Fail(w, http.StatusUnauthorized, err.Error())
	case domain.KindForbidden:
		Fail(w, http.StatusForbidden, err.Error())
	case domain.KindNotFound:
		Fail(w, http.StatusNotFound, err.Error())
	case domain.KindConflict:
		Fail(w, http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		Fail(w, http.StatusInternalServerError, "internal server error")
	}
}
