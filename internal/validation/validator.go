package validation

import (
	"regexp"
	"strings"

	"quiz-deck/internal/domain"
)

const (
	maxQuestionLength = 5000
	maxSearchLength   = 200
)

var optionKeyPattern = regexp.MustCompile(`^[A-Za-z]$`)

// Validator provides request and draft validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDraft checks the fields an admin draft must carry before it is saved.
func (v *Validator) ValidateDraft(draft domain.EditingQuestion) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(draft.Text) == "" {
		errors = append(errors, domain.NewMissingFieldError("question"))
	} else if len(draft.Text) > maxQuestionLength {
		errors = append(errors, domain.NewInvalidValueError("question", "is too long"))
	}

	if strings.TrimSpace(draft.Category) == "" {
		errors = append(errors, domain.NewMissingFieldError("category"))
	}

	for key := range draft.Options {
		if !optionKeyPattern.MatchString(strings.TrimSpace(key)) {
			errors = append(errors, domain.NewInvalidValueError("options", "keys must be single letters, got "+key))
		}
	}

	return errors
}

// ValidateOptionKey checks an option key sent with a selection.
func (v *Validator) ValidateOptionKey(key string) domain.ValidationErrors {
	if strings.TrimSpace(key) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("option")}
	}
	return nil
}

// ValidateSearchQuery bounds the admin search box input.
func (v *Validator) ValidateSearchQuery(query string) domain.ValidationErrors {
	if len(query) > maxSearchLength {
		return domain.ValidationErrors{domain.NewInvalidValueError("search", "is too long")}
	}
	return nil
}
