package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate key violation")
	ErrInvalidID        = errors.New("invalid ID format")
	ErrPlayerNotFound   = errors.New("player could not be resolved")
	ErrEmptySnapshot    = errors.New("snapshot is empty")
	ErrMissingSpread    = errors.New("market line has no spread")
)
