package models

import "errors"

var (
	ErrNotFound       = errors.New("artifact not found")
	ErrDuplicateName  = errors.New("artifact name already registered")
	ErrStorageFetch   = errors.New("storage fetch failed")
	ErrStagingIO      = errors.New("staging file failure")
	ErrInvalidLocator = errors.New("invalid storage locator")
)
