package services

import "errors"

// ErrPermissionDenied is returned when a caller holds a valid credential but
// lacks the privilege or scope for the operation.
var ErrPermissionDenied = errors.New("permission denied")
