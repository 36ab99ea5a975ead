package application

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to readable words for error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"rootPath": "root path",
		"term":     "search term",
		"dirPath":  "directory path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateDirectory checks that path names an existing directory.
// The returned ValidationError wraps ErrNotFound or ErrNotDirectory.
func ValidateDirectory(fieldName, path string) error {
	if err := ValidateRequired(fieldName, path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &FieldError{
			ValidationError: ValidationError{Field: fieldName, Message: fmt.Sprintf("%s does not exist", path)},
			Err:             ErrNotFound,
		}
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return &FieldError{
			ValidationError: ValidationError{Field: fieldName, Message: fmt.Sprintf("%s is not a directory", path)},
			Err:             ErrNotDirectory,
		}
	}
	return nil
}

// FieldError is a ValidationError caused by a known condition
type FieldError struct {
	ValidationError
	Err error
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
