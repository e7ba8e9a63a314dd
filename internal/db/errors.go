package db

import "errors"

// ErrNotFound is returned when an operation targets an id that no longer
// exists. Callers recover by re-resolving their selection.
var ErrNotFound = errors.New("record not found")

// ErrNameRequired is returned when a create or rename is attempted with a
// name that is empty after trimming.
var ErrNameRequired = errors.New("name must not be empty")
