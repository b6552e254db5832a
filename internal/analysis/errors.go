package analysis

import "strings"

// ValidationError reports request fields that are missing or invalid.
// It is raised before any model call.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// UserMessage is the text shown to the person who submitted the request.
func (e *ValidationError) UserMessage() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

func missing(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
