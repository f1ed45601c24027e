package service

import "errors"

var (
	ErrValidation = errors.New("validation")  // 400
	ErrNotFound   = errors.New("not found")   // 404
	ErrConflict   = errors.New("conflict")    // 409
	ErrCartEmpty  = errors.New("cart is empty")

	// ErrOrderFailed is the generic retryable checkout outcome. The
	// transaction rolled back, nothing was applied.
	ErrOrderFailed = errors.New("order could not be processed")
)
