package service

import (
	"fmt"
	"slices"
	"sort"

	"quiz-deck/internal/domain"
)

// resetQuestionState returns q with every UI-derived field at its default.
func resetQuestionState(q domain.Question) domain.Question {
	q.Revealed = false
	q.RevealLabel = domain.LabelShowAnswer
	q.SelectedOptions = []string{}
	q.IsSubmitted = false
	q.IsCorrect = false
	q.Feedback = ""
	q.SubmitButtonText = domain.LabelSubmit

	keys := make([]string, 0, len(q.Options))
	for key := range q.Options {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	q.OptionDisplayState = make([]domain.OptionState, 0, len(keys))
	for _, key := range keys {
		q.OptionDisplayState = append(q.OptionDisplayState, domain.OptionState{Key: key, Value: q.Options[key]})
	}
	return q
}

// ToggleReveal flips the answer visibility. Submission state is untouched.
func ToggleReveal(q domain.Question) domain.Question {
	q.Revealed = !q.Revealed
	if q.Revealed {
		q.RevealLabel = domain.LabelHideAnswer
	} else {
		q.RevealLabel = domain.LabelShowAnswer
	}
	return q
}

// SelectOption makes key the only selected option. checked is accepted from
// checkbox-style controls but ignored: selection is always single. Result
// classes of a previous submission stay as they were until the next Submit.
func SelectOption(q domain.Question, key string, checked bool) (domain.Question, error) {
	if !q.HasOption(key) {
		return q, domain.ValidationErrors{
			domain.NewInvalidValueError("option", fmt.Sprintf("%q is not an option of question %s", key, q.ID)),
		}
	}

	q.SelectedOptions = []string{key}
	states := slices.Clone(q.OptionDisplayState)
	for i := range states {
		states[i].Selected = states[i].Key == key
	}
	q.OptionDisplayState = states
	return q, nil
}

// Submit grades the current selection. Calling it again after a new
// selection re-grades.
func Submit(q domain.Question) (domain.Question, error) {
	if len(q.SelectedOptions) == 0 {
		return q, domain.NewEmptySubmissionError()
	}

	q.IsSubmitted = true
	q.IsCorrect = q.IsSelected(q.Answer)
	if q.IsCorrect {
		q.Feedback = domain.FeedbackCorrect
	} else {
		q.Feedback = fmt.Sprintf("Incorrect. The correct answer is %s.", q.Answer)
	}

	states := slices.Clone(q.OptionDisplayState)
	for i := range states {
		switch {
		case states[i].Key == q.Answer:
			states[i].ResultClass = domain.ResultCorrect
		case q.IsSelected(states[i].Key):
			states[i].ResultClass = domain.ResultIncorrect
		default:
			states[i].ResultClass = ""
		}
	}
	q.OptionDisplayState = states
	q.SubmitButtonText = domain.LabelSubmitted
	return q, nil
}
