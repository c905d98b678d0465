package quiz

import "errors"

var (
	// ErrUnknownTest indicates no test exists for the requested id.
	ErrUnknownTest = errors.New("unknown test")

	// ErrMissingGender indicates a gender-based test was used without a gender.
	ErrMissingGender = errors.New("gender required for this test")

	// ErrInvalidGender indicates a gender parameter other than male or female.
	ErrInvalidGender = errors.New("gender must be male or female")

	// ErrNoResults indicates the selected content defines no results.
	ErrNoResults = errors.New("test defines no results")
)
