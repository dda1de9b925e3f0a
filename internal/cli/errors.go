package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrInvalidSymbol indicates an empty or malformed symbol list.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInvalidTime indicates a time string could not be parsed.
	ErrInvalidTime = errors.New("invalid time format")

	// ErrInvalidCalculation indicates an unknown calculation type.
	ErrInvalidCalculation = errors.New("invalid calculation type")

	// ErrUnexpectedPayload indicates a response that --plain cannot render.
	ErrUnexpectedPayload = errors.New("unexpected response shape")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")
)
