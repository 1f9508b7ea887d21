package appointment

import "fmt"

// RuleError is a business-rule rejection with a stable code and a message
// safe to show to the professional.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newRuleError(code, msg string) error {
	return &RuleError{Code: code, Message: msg}
}

const (
	CodeInvalidInput = "invalidInput"
	CodeNotFound     = "notFound"
	CodeDayOff       = "dayOff"
	CodeOutsideHours = "outsideWorkingHours"
	CodeConflict     = "scheduleConflict"
)
