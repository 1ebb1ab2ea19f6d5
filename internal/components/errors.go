package components

import "errors"

var (
	// ErrDuplicateComponent indicates an attempt to register a tag name twice.
	ErrDuplicateComponent = errors.New("components: duplicate component")
	// ErrInvalidComponent indicates a definition failed registration checks.
	ErrInvalidComponent = errors.New("components: invalid component")
)
