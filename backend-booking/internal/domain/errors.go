package domain

import "errors"

// Domain errors
var (
	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidRole  = errors.New("role must be USER or ADMIN")

	// Booking errors
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidBookingState = errors.New("only confirmed bookings can be cancelled")
	ErrIllegalTransition   = errors.New("illegal booking status transition")
	ErrAccessDenied        = errors.New("access denied")
	ErrNoRoomsAvailable    = errors.New("no rooms available")

	// Room ledger errors, as reported by the hotel service
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room is not available")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrNoRoomsAvailable) ||
		errors.Is(err, ErrRoomNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidRole)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrUserAlreadyExists) ||
		errors.Is(err, ErrInvalidBookingState) ||
		errors.Is(err, ErrIllegalTransition) ||
		errors.Is(err, ErrRoomUnavailable)
}

// IsForbiddenError checks if the error is an ownership violation
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}
