package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Deck specific errors
	CodeDataUnavailable ErrorCode = "DATA_UNAVAILABLE"
	CodeEmptyCategory   ErrorCode = "EMPTY_CATEGORY"
	CodeEmptySubmission ErrorCode = "EMPTY_SUBMISSION"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewQuestionNotFoundError(id string) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("Question not found with ID: %s", id), nil)
}

func NewCategoryNotFoundError(name string) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("Category not found: %s", name), nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewDataUnavailableError(message string, err error) *DomainError {
	return NewError(CodeDataUnavailable, message, err)
}

func NewEmptyCategoryError(name string) *DomainError {
	return NewError(CodeEmptyCategory, fmt.Sprintf("%s has no questions", name), nil)
}

func NewEmptySubmissionError() *DomainError {
	return NewError(CodeEmptySubmission, "Select an option before submitting", nil)
}

// CodeOf returns the code carried by err, or CodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return CodeValidation
	}
	return CodeInternal
}

// ValidationError describes one rejected field of a request or draft.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field error found in one pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidValueError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}
