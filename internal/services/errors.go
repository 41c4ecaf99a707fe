// File: internal/services/errors.go
package services

import "errors"

var (
	// ErrNotFound signals that a referenced entity does not exist; handlers
	// render it as HTTP 404.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden signals an ownership violation (non-host room mutation,
	// non-author message mutation); handlers render it as HTTP 403.
	ErrForbidden = errors.New("permission denied")
)
