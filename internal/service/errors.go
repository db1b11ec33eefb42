package service

import "errors"

// Error definitions
var (
	ErrValidation           = errors.New("invalid input")
	ErrBatchNotFound        = errors.New("batch not found")
	ErrInvalidState         = errors.New("operation not allowed in current batch status")
	ErrInsufficientQuantity = errors.New("insufficient quantity remaining")
)
