package duet

import (
	stderrors "errors"
	"fmt"
)

// StatusError carries the HTTP status of a request the printer refused.
type StatusError struct {
	StatusCode int
	Reason     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Reason)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is nil or
// was not caused by a refused request.
func StatusCode(err error) int {
	var statusErr *StatusError
	if stderrors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
