// Package errors provides custom error types for catalog operations.
package errors

import "errors"

var (
	// ErrProductNotFound is returned when a well-formed id has no matching record.
	ErrProductNotFound = errors.New("product not found")

	// ErrStoreUnavailable is returned when the document store connection
	// was never established.
	ErrStoreUnavailable = errors.New("document store not available")
)
