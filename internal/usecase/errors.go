package usecase

import "strings"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// Technical error codes.
const (
	CodeDatabaseError          = "DATABASE_ERROR"
	CodeGenerationSubmitFailed = "GENERATION_SUBMIT_FAILED"
	CodeGenerationStatusFailed = "GENERATION_STATUS_FAILED"
	CodeGenerationTimeout      = "GENERATION_TIMEOUT"
	CodeGenerationCancelled    = "GENERATION_CANCELLED"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors carries every failed field so the boundary can report
// them all at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
