package usecase

import (
	"regexp"
	"strings"
)

// Digits, whitespace, +, -, and parentheses only.
var phonePattern = regexp.MustCompile(`^[\d\s+()-]+$`)

func ValidateCreateLeadInput(input CreateLeadInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !phonePattern.MatchString(input.Phone) {
		errors = append(errors, ValidationError{"phone", "has an invalid format"})
	}

	return errors
}
