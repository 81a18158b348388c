package application

import (
	"fmt"
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

// ValidateLocalID checks that an ID could belong to a stored entity
func ValidateLocalID(fieldName string, id int64) error {
	if id <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s: %d", ErrInvalidID, id),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "userID" -> "user ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"userID": "user ID",
		"postID": "post ID",
		"name":   "name",
		"email":  "email",
		"title":  "title",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}
