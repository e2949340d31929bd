// Package common holds small helpers shared across the portal.
package common

import (
	"errors"
	"fmt"

	"github.com/officeportal/portal/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

// Recover must be deferred directly (defer common.Recover("...", &err)); it logs
// the panic and, when errp is not nil, stores it there as an error.
func Recover(msg string, errp *error) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
		if errp != nil {
			*errp = NewErrorf("panic: %v", panicErr)
		}
	}
	return panicErr
}

// Combine joins the non-nil errors, returning nil when there are none.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}
