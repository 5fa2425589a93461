package util

import "errors"

var (
	ErrInvalidCapacity    = errors.New("invalid capacity")
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrUnsupportedMode    = errors.New("unsupported access mode")
	ErrAddressOutOfBounds = errors.New("address out of bounds")
	ErrPoolExhausted      = errors.New("no free frames")
	ErrAllocationFailure  = errors.New("used frame record allocation failed")
	ErrPoolInitialized    = errors.New("frame pool already initialized")
	ErrFrameNotUsed       = errors.New("frame is not in the used pool")
	ErrInvalidWorkers     = errors.New("workers must be positive")
	ErrInvalidRecordLimit = errors.New("record limit must not be negative")
)
