package middleware

import (
	"strconv"
	"strings"
	"unicode/utf8"

	domain "github.com/bryanwahyu/textlens/internal/domain/analysis"
)

// Boundary validation helpers shared by the HTTP handlers. Input rejected
// here never reaches the pipeline or the store.

// ValidateText checks the analyze request body text.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrBlankText
	}
	if utf8.RuneCountInString(text) > domain.MaxTextLen {
		return domain.ErrTextTooLong
	}
	return nil
}

// ParseLimit parses an optional limit query parameter. Absent means the
// default of 50; anything outside [1,100] is a validation error.
func ParseLimit(raw string) (int, error) {
	if raw == "" {
		return 50, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 100 {
		return 0, domain.Validation("invalid limit parameter, must be between 1 and 100")
	}
	return limit, nil
}
