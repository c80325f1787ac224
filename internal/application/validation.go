package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "exportRoot" -> "export folder")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"exportRoot": "export folder",
		"years":      "year range",
		"newestYear": "newest year",
		"oldestYear": "oldest year",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}

// ValidateYearRange checks that a run tracks at least one year
func ValidateYearRange(fieldName string, years YearRange) error {
	if years.Len() == 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must contain at least one year", formatFieldName(fieldName)),
		}
	}
	return nil
}
