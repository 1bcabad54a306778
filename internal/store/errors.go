package store

import "errors"

// ErrUnavailable indicates a storage backend is not initialized or
// reachable.
var ErrUnavailable = errors.New("storage unavailable")
