package domain

import "errors"

// ErrNotFound marks a lookup miss. Repositories wrap it so callers can
// separate absence from storage failures with errors.Is.
var ErrNotFound = errors.New("not found")
