package service

import "errors"

// Sentinel errors shared across services. Handlers map them to HTTP
// statuses with errors.Is.
var (
	ErrValidation = errors.New("missing or invalid input")
	ErrForbidden  = errors.New("forbidden: user does not have permission for this action")
)
