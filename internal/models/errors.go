package models

import "errors"

// ErrVersionConflict is returned by a transaction store when the record changed since it was loaded.
var ErrVersionConflict = errors.New("transaction was modified concurrently")
