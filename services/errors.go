package services

import "errors"

// Sentinel errors returned by the service layer; controllers map them onto
// HTTP statuses.
var (
	ErrPrayerNotFound    = errors.New("prayer not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidMonth      = errors.New("invalid month")
	ErrInvalidPoints     = errors.New("points must be 0, 1 or 5")
	ErrEmailTaken        = errors.New("email already registered")
	ErrIncorrectPassword = errors.New("incorrect current password")
)
