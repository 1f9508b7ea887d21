package schedule

import "fmt"

// BookingError is a business-rule rejection surfaced to the public caller
// as a human-readable message. It never wraps storage internals.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newBookingError(code, msg string) error {
	return &BookingError{Code: code, Message: msg}
}

// Rejection codes for the public booking flow.
const (
	CodeInvalidInput  = "invalidInput"
	CodeNotFound      = "professionalNotFound"
	CodeDayOff        = "dayOff"
	CodeBeforeOpening = "beforeOpening"
	CodeAfterClosing  = "afterClosing"
	CodeConflict      = "slotTaken"
)
