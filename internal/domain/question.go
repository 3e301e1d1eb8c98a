package domain

// Labels shown on the per-question controls.
const (
	LabelShowAnswer = "Show Answer"
	LabelHideAnswer = "Hide Answer"
	LabelSubmit     = "Submit"
	LabelSubmitted  = "Submitted"

	FeedbackCorrect = "Correct!"

	ResultCorrect   = "correct"
	ResultIncorrect = "incorrect"
)

// OptionState is the display row of one answer option.
type OptionState struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Selected    bool   `json:"selected"`
	ResultClass string `json:"resultClass"`
}

// Question is a single deck item. Only ID, Text, Options, Answer and
// Explanation are persisted; everything else is rebuilt on load.
type Question struct {
	ID          string            `json:"id"`
	Text        string            `json:"question"`
	Options     map[string]string `json:"options,omitempty"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation,omitempty"`

	Number             int           `json:"number"`
	Revealed           bool          `json:"revealed"`
	RevealLabel        string        `json:"revealLabel"`
	SelectedOptions    []string      `json:"selectedOptions"`
	IsSubmitted        bool          `json:"isSubmitted"`
	IsCorrect          bool          `json:"isCorrect"`
	Feedback           string        `json:"feedback"`
	SubmitButtonText   string        `json:"submitButtonText"`
	OptionDisplayState []OptionState `json:"optionDisplayState"`
}

// HasOption reports whether key is one of the question's option keys.
func (q Question) HasOption(key string) bool {
	_, ok := q.Options[key]
	return ok
}

// IsSelected reports whether key is part of the current selection.
func (q Question) IsSelected(key string) bool {
	for _, k := range q.SelectedOptions {
		if k == key {
			return true
		}
	}
	return false
}

// Category is a named bucket of questions, identified by Name.
type Category struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
	IsActive  bool       `json:"isActive"`
}

// Test is a synthetic grouping of a category's questions sharing a V<n> id prefix.
type Test struct {
	Name          string     `json:"name"`
	Version       int        `json:"version"`
	Questions     []Question `json:"questions"`
	QuestionCount int        `json:"questionCount"`
	Range         string     `json:"range"`
}

// PageState is the visible window over the active question list.
type PageState struct {
	PageSize           int        `json:"pageSize"`
	CurrentPage        int        `json:"currentPage"`
	TotalPages         int        `json:"totalPages"`
	PagedQuestions     []Question `json:"pagedQuestions"`
	IsFirstPage        bool       `json:"isFirstPage"`
	IsLastPage         bool       `json:"isLastPage"`
	ProgressPercentage float64    `json:"progressPercentage"`
}

// EditingQuestion is the admin draft of a new or existing question.
type EditingQuestion struct {
	Question
	Category string `json:"category"`
	// OriginalQuestion is the ID of the entry being replaced; empty when adding.
	OriginalQuestion string `json:"originalQuestion"`
}

// FlatQuestion is a question paired with the name of its category.
type FlatQuestion struct {
	Category string   `json:"category"`
	Question Question `json:"question"`
}
