package application

import (
	"errors"
	"fmt"

	"indexmd/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrNotDirectory  = errors.New("not a directory")
	ErrNothingToFind = errors.New("a search term or at least one tag is required")
	ErrUnknownKind   = domain.ErrUnknownKind
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TraversalError reports the directory in which a traversal branch failed
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("failed to index %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}
