package service

import "fmt"

// ValidationError marks user-correctable input problems so handlers can
// answer 400 instead of 500.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
