package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTooFewSteps is returned when a process has fewer than two steps
	ErrTooFewSteps = errors.New("catalog needs at least two steps")

	// ErrUnknownProcess is returned by Builtin for an unregistered name
	ErrUnknownProcess = errors.New("unknown process")

	// ErrUnsupportedFormat is returned for catalog files that are neither TOML nor YAML
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // path of the offending field, e.g. "steps[2].dwell"
	Value   any
	Message string
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
