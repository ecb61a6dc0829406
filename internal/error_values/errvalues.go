package errorvalues

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrUsernameTaken    = errors.New("such username is already taken")
	ErrAccountNotFound  = errors.New("account doesn't exist")
	ErrWrongCredentials = errors.New("wrong username or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrRoutineNotFound  = errors.New("routine doesn't exist")
	ErrExerciseNotFound = errors.New("exercise doesn't exist")
	ErrLogNotFound      = errors.New("log doesn't exist")
	ErrWrongOwner       = errors.New("entity has different owner")

	ErrEmptyRoutineName  = errors.New("routine name is required")
	ErrNoDaysSelected    = errors.New("at least one weekday is required")
	ErrEmptyExerciseName = errors.New("exercise name is required")

	ErrConfirmationNotFound = errors.New("no pending deletion for token")
	ErrConfirmationExpired  = errors.New("deletion confirmation expired")
)
