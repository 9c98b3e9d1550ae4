package domain

import "errors"

var (
	ErrNotFound           = errors.New("booking not found")
	ErrNotRegistered      = errors.New("phone not registered for this date")
	ErrDuplicateBooking   = errors.New("phone already has a booking on this date")
	ErrDuplicateCustomer  = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
