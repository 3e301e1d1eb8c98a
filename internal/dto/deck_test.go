package dto

import (
	"encoding/json"
	"testing"

	"quiz-deck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionResponse(t *testing.T) {
	q := domain.Question{
		ID:               "V1Q1",
		Text:             "Which one?",
		Options:          map[string]string{"A": "this", "B": "that"},
		Answer:           "A",
		Number:           1,
		RevealLabel:      domain.LabelShowAnswer,
		SelectedOptions:  []string{"B"},
		IsSubmitted:      true,
		Feedback:         "Incorrect. The correct answer is A.",
		SubmitButtonText: domain.LabelSubmitted,
		OptionDisplayState: []domain.OptionState{
			{Key: "A", Value: "this", ResultClass: domain.ResultCorrect},
			{Key: "B", Value: "that", Selected: true, ResultClass: domain.ResultIncorrect},
		},
	}

	resp := NewQuestionResponse(q)
	assert.Equal(t, "Which one?", resp.Question)
	require.Len(t, resp.OptionDisplayState, 2)
	assert.Equal(t, OptionResponse{Key: "B", Value: "that", Selected: true, ResultClass: "incorrect"}, resp.OptionDisplayState[1])

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, key := range []string{`"reveal_label"`, `"selected_options"`, `"is_submitted"`, `"is_correct"`, `"submit_button_text"`, `"option_display_state"`, `"result_class"`} {
		assert.Contains(t, string(data), key)
	}
	assert.NotContains(t, string(data), `"isSubmitted"`)
}

func TestNewEditingQuestionResponse(t *testing.T) {
	assert.Nil(t, NewEditingQuestionResponse(nil))

	draft := &domain.EditingQuestion{
		Question:         domain.Question{ID: "F1", Text: "Flow?"},
		Category:         "Flows",
		OriginalQuestion: "F1",
	}
	data, err := json.Marshal(NewEditingQuestionResponse(draft))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"original_question":"F1"`)
	assert.Contains(t, string(data), `"category":"Flows"`)
	assert.NotContains(t, string(data), `"originalQuestion"`)
}

func TestNewAdminQuestionResponses(t *testing.T) {
	rows := NewAdminQuestionResponses([]domain.FlatQuestion{
		{Category: "Flows", Question: domain.Question{ID: "F1", Text: "Flow?", Answer: "A"}},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "F1", rows[0].ID)
	assert.Equal(t, "Flows", rows[0].Category)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"F1"`)
	assert.Contains(t, string(data), `"category":"Flows"`)
}
