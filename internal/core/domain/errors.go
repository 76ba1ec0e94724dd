package domain

import "errors"

// UserErrors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing-fields")
	ErrDuplicateStudentID = errors.New("duplicate-student-id")
	ErrDuplicateEmail     = errors.New("duplicate-email")
)

// PassErrors
var (
	ErrPassNotFound    = errors.New("pass not found")
	ErrPassNotApproved = errors.New("pass not approved")
)
