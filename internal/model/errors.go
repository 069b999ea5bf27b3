package model

import (
	"fmt"
	"strings"
)

// ValidationError reports missing or malformed user input. It is raised
// before any store mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateItemInput checks the fields required to store an item.
func ValidateItemInput(in ItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// ValidateAnnouncement checks an announcement before it is posted.
func ValidateAnnouncement(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "announcement text is required"}
	}
	return nil
}
