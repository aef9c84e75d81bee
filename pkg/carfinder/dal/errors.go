package dal

import "errors"

// ErrNotFound is returned when a car id is not in the catalog.
var ErrNotFound = errors.New("car not found")
