package apperror

import (
	"errors"
	"fmt"
)

// Filter errors surfaced before any query runs.
var (
	ErrInvalidPeriod     = errors.New("invalid period: end date is before start date")
	ErrUnknownReportType = errors.New("unknown report type")
)

// DataSourceError wraps a failure of the operational store (unreachable,
// timeout, malformed query). It is never retried here; the caller maps it
// to a protocol-level error.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source failure in %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// WrapDataSource annotates a store error with the failing operation name.
// A nil err returns nil so call sites can wrap unconditionally.
func WrapDataSource(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DataSourceError{Op: op, Err: err}
}

// IsDataSource reports whether err originated in the operational store.
func IsDataSource(err error) bool {
	var dsErr *DataSourceError
	return errors.As(err, &dsErr)
}
