package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error — an application error carrying the HTTP status it maps to.
// Every boundary handler converts failures into one of these; nothing else
// crosses the API boundary.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error { return &Error{Code: http.StatusBadRequest, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Code: http.StatusNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Code: http.StatusConflict, Message: msg} }
// Storage marks an artifact write failure.
func Storage(msg string) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: msg}
}

// Internal covers everything the taxonomy doesn't name.
func Internal(msg string) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: msg}
}

// JSON writes v as an application/json response.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Write converts err into the {"error": msg} shape. Unclassified errors
// become a generic 500 so internals never leak to the client.
func Write(w http.ResponseWriter, err error) {
	var e *Error
	if errors.As(err, &e) {
		JSON(w, e.Code, e)
		return
	}
	JSON(w, http.StatusInternalServerError, &Error{Message: "internal server error"})
}

// StatusOf returns the HTTP status err maps to.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}
