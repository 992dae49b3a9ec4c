package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tessro/verse/internal/lyrics"
)

// Error types for common failure scenarios.
var (
	ErrNoLyrics        = errors.New("no lyrics available")
	ErrTrackNotFound   = errors.New("track not found")
	ErrInvalidPosition = lyrics.ErrInvalidPosition
	ErrUntaggable      = lyrics.ErrUntaggable
	ErrConfigNotFound  = errors.New("config file not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrNotTerminal     = errors.New("not a terminal")
)

// VerseError wraps an error with a user-friendly suggestion.
type VerseError struct {
	Err        error
	Suggestion string
}

func (e *VerseError) Error() string {
	return e.Err.Error()
}

func (e *VerseError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &VerseError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a VerseError with suggestion
	var verseErr *VerseError
	if errors.As(err, &verseErr) && verseErr.Suggestion != "" {
		return verseErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Lyrics errors
	if errors.Is(err, ErrNoLyrics) {
		return "The source is empty. Check the file, or add lyrics with 'verse store put'"
	}

	if errors.Is(err, ErrTrackNotFound) {
		return "Run 'verse store list' to see stored tracks"
	}

	if errors.Is(err, ErrInvalidPosition) {
		return "Positions are mm:ss, mm:ss.fff or a number of milliseconds, e.g. 01:15.5 or 75500"
	}

	if errors.Is(err, ErrUntaggable) {
		return "Time tags stop at [99:99.999]; split the lyrics or drop the late lines"
	}

	// Terminal errors
	if errors.Is(err, ErrNotTerminal) {
		return "Run this command in an interactive terminal, or use 'verse follow' instead"
	}

	// File errors
	if strings.Contains(errStr, "no such file") {
		return "Check the path, or use '-' to read lyrics from stdin"
	}

	// Store errors
	if strings.Contains(errStr, "database") || strings.Contains(errStr, "sqlite") {
		return "Check store.path in your config and that its directory is writable"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'verse config init' to create a configuration file"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// Err joins all collected errors, or returns nil.
func (p *PartialResult[T]) Err() error {
	return errors.Join(p.Errors...)
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
