package core

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-barry/items/store"
)

var ErrNotFound = store.ErrNotFound

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// BodyError is returned when a request body cannot be turned into a
// payload. Status is the HTTP status the client should see.
type BodyError struct {
	Status  int
	Message string
	Err     error
}

func (e *BodyError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *BodyError) Unwrap() error {
	return e.Err
}

func invalidJSON(err error) *BodyError {
	return &BodyError{Status: http.StatusBadRequest, Message: "Invalid JSON", Err: err}
}

func bodyTooLarge(err error) *BodyError {
	return &BodyError{Status: http.StatusRequestEntityTooLarge, Message: "Request body too large", Err: err}
}
