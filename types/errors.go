/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "fmt"

// StatusError provides structured error information for user-visible
// statuses. The code names the failure class (e.g. "not_understood",
// "interpretation_in_flight"); the message is shown to the user verbatim.
type StatusError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewStatusError creates a new structured status error
func NewStatusError(code string, message string, details map[string]interface{}) *StatusError {
	return &StatusError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
