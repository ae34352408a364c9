package repository

import "errors"

var (
	// ErrOwnerNotFound is returned when an owner has no stored quota row.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrItemNotFound is returned when a tracked item to update does not exist.
	ErrItemNotFound = errors.New("tracked item not found")
	// ErrQuotaExceeded is returned when an owner has no free tracking slot left.
	ErrQuotaExceeded = errors.New("tracking quota exceeded")
)
