package slots

import (
	"errors"
	"fmt"
)

// Error codes for slot reservation failures.
const (
	CodeMalformedSlot  = "malformedSlot"
	CodeSlotContention = "slotContention"
	CodeHoldExpired    = "holdExpired"
	CodeNotOwner       = "notOwner"
)

// SlotError carries a stable code alongside the human-readable message.
type SlotError struct {
	Code    string
	Message string
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newSlotError(code, format string, args ...interface{}) error {
	return &SlotError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// HasCode reports whether err is a SlotError with the given code.
func HasCode(err error, code string) bool {
	var se *SlotError
	return errors.As(err, &se) && se.Code == code
}
