package domain

import "errors"

// Domain errors
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room is not available")
	ErrInvalidHotel    = errors.New("hotel name is required")
	ErrInvalidRoom     = errors.New("room hotel and number are required")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrHotelNotFound) || errors.Is(err, ErrRoomNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidHotel) ||
		errors.Is(err, ErrInvalidRoom)
}

// IsConflictError checks if the error is a state conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrRoomUnavailable)
}
