package certgen

import (
	"errors"
	"fmt"
)

// ErrConfig indicates the configuration document could not be read or parsed.
var ErrConfig = errors.New("invalid configuration")

// ErrSpreadsheet indicates the spreadsheet could not be read or parsed.
var ErrSpreadsheet = errors.New("unreadable spreadsheet")

// ErrTemplate indicates the template PDF could not be read.
var ErrTemplate = errors.New("unreadable template")

// ErrMissingEmail indicates a row resolved no email field.
var ErrMissingEmail = errors.New("missing email field")

// RowError represents a failure to produce the certificate of one row.
type RowError struct {
	Index int
	Name  string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// NewRowError creates a new RowError.
func NewRowError(index int, name string, err error) *RowError {
	return &RowError{
		Index: index,
		Name:  name,
		Err:   err,
	}
}
