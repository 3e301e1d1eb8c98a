package validation

import (
	"strings"
	"testing"

	"quiz-deck/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidateDraft(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		draft      domain.EditingQuestion
		wantFields []string
	}{
		{
			name: "valid multiple choice",
			draft: domain.EditingQuestion{
				Question: domain.Question{Text: "Pick one", Options: map[string]string{"A": "x", "B": "y"}, Answer: "A"},
				Category: "General",
			},
		},
		{
			name:       "missing question",
			draft:      domain.EditingQuestion{Question: domain.Question{Text: "  "}, Category: "General"},
			wantFields: []string{"question"},
		},
		{
			name:       "missing category",
			draft:      domain.EditingQuestion{Question: domain.Question{Text: "Q"}},
			wantFields: []string{"category"},
		},
		{
			name:       "both missing",
			draft:      domain.EditingQuestion{},
			wantFields: []string{"question", "category"},
		},
		{
			name:       "too long question",
			draft:      domain.EditingQuestion{Question: domain.Question{Text: strings.Repeat("q", maxQuestionLength+1)}, Category: "General"},
			wantFields: []string{"question"},
		},
		{
			name: "bad option key",
			draft: domain.EditingQuestion{
				Question: domain.Question{Text: "Q", Options: map[string]string{"AB": "x"}},
				Category: "General",
			},
			wantFields: []string{"options"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateDraft(tt.draft)
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidateOptionKey(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateOptionKey("C"))
	assert.Len(t, v.ValidateOptionKey(""), 1)
	assert.Empty(t, v.ValidateOptionKey("c"))
	assert.Len(t, v.ValidateOptionKey(" "), 1)
}

func TestValidateSearchQuery(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSearchQuery("agentforce"))
	assert.Len(t, v.ValidateSearchQuery(strings.Repeat("x", maxSearchLength+1)), 1)
}
