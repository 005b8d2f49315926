package domain

import "errors"

// Domain errors. Callers match them with errors.Is, so wrap with %w when
// adding context.
var (
	// ErrNotFound indicates no link exists for the identifier.
	ErrNotFound = errors.New("short link not found")

	// ErrIdentifierTaken indicates a generated identifier is already in use.
	// It never leaves the link store; Create retries with a fresh identifier.
	ErrIdentifierTaken = errors.New("identifier already in use")

	// ErrIdentifierSpaceExhausted indicates Create ran out of attempts to find
	// a free identifier.
	ErrIdentifierSpaceExhausted = errors.New("unable to allocate a unique identifier")

	// ErrInvalidInput indicates the target was rejected before reaching storage.
	ErrInvalidInput = errors.New("invalid input")
)
