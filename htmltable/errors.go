/* SPDX-License-Identifier: BSD-2-Clause */

package htmltable

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput     = errors.New("HTML cannot be empty")
	ErrHeaderMismatch = errors.New("header count mismatch")
	ErrMissingFooter  = errors.New("no <tfoot> element found in the table, but footer option is enabled")
	ErrMissingBody    = errors.New("no <tbody> element found in the HTML")
	ErrMissingHeaders = errors.New("no footer headers found and no headers provided")
	ErrInvalidLocator = errors.New("invalid row locator")
	ErrRowIndex       = errors.New("row index out of range")
)

// HeaderMismatchError reports user headers that do not line up with the
// header cells of the table.
type HeaderMismatchError struct {
	Provided int
	Columns  int
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("The number of provided headers (%d) does not match the number of columns in the table (%d).",
		e.Provided, e.Columns)
}

func (e *HeaderMismatchError) Is(target error) bool {
	return target == ErrHeaderMismatch
}
