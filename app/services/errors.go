package services

import "errors"

// Domain errors. Each one is recovered locally and translated into a flash
// message plus a navigation target; none reach the caller as a fault.
var (
	ErrValidation         = errors.New("required field is empty")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("login required")
	ErrStorage            = errors.New("storage failure")
)
