package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login never reveals which half was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUserNotFound = errors.New("user not found")

	ErrEmailTaken    = errors.New("email already exists")
	ErrUsernameTaken = errors.New("username already exists")
	ErrPhoneTaken    = errors.New("phone number already exists")

	ErrInvalidRole   = errors.New("invalid role value")
	ErrMissingFields = errors.New("missing required fields")
	ErrWeakPassword  = errors.New("new password must be at least 6 characters")
	ErrWrongPassword = errors.New("incorrect old password")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	ErrBanned    = errors.New("account is banned")
	ErrForbidden = errors.New("access forbidden")
)
