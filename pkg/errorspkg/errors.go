// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrOperationFailed indicates that a multi-step balance operation was
// rolled back; no partial effect was persisted.
var ErrOperationFailed = errors.New("operation failed")
