package dto

import "quiz-deck/internal/domain"

// CategoryResponse represents a category tab in the API response
// @Description Category information
type CategoryResponse struct {
	Name           string `json:"name"`
	QuestionCount  int    `json:"question_count"`
	IsActive       bool   `json:"is_active"`
	IsTestCategory bool   `json:"is_test_category"`
}

// CategoriesResponse lists the loaded categories in deck order
type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// OptionResponse is the display row of one answer option
type OptionResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Selected    bool   `json:"selected"`
	ResultClass string `json:"result_class"`
}

// QuestionResponse represents a question with its interaction state
// @Description Question information
type QuestionResponse struct {
	ID                 string            `json:"id"`
	Question           string            `json:"question"`
	Options            map[string]string `json:"options,omitempty"`
	Answer             string            `json:"answer"`
	Explanation        string            `json:"explanation,omitempty"`
	Number             int               `json:"number"`
	Revealed           bool              `json:"revealed"`
	RevealLabel        string            `json:"reveal_label"`
	SelectedOptions    []string          `json:"selected_options"`
	IsSubmitted        bool              `json:"is_submitted"`
	IsCorrect          bool              `json:"is_correct"`
	Feedback           string            `json:"feedback"`
	SubmitButtonText   string            `json:"submit_button_text"`
	OptionDisplayState []OptionResponse  `json:"option_display_state"`
}

// EditingQuestionResponse is the open admin draft
type EditingQuestionResponse struct {
	QuestionResponse
	Category         string `json:"category"`
	OriginalQuestion string `json:"original_question,omitempty"`
}

// AdminQuestionResponse is one row of the admin list
type AdminQuestionResponse struct {
	QuestionResponse
	Category string `json:"category"`
}

// TestResponse represents a synthesized test tile
// @Description Test information
type TestResponse struct {
	Name          string `json:"name"`
	Version       int    `json:"version"`
	QuestionCount int    `json:"question_count"`
	Range         string `json:"range"`
}

// PageResponse is the visible page of the active question list
type PageResponse struct {
	CurrentPage        int                `json:"current_page"`
	TotalPages         int                `json:"total_pages"`
	PageSize           int                `json:"page_size"`
	IsFirstPage        bool               `json:"is_first_page"`
	IsLastPage         bool               `json:"is_last_page"`
	ProgressPercentage float64            `json:"progress_percentage"`
	Questions          []QuestionResponse `json:"questions"`
}

// StateResponse is the session state a client renders from
// @Description Current view state
type StateResponse struct {
	View           string                   `json:"view"`
	AdminView      string                   `json:"admin_view,omitempty"`
	LoadError      string                   `json:"load_error,omitempty"`
	Categories     []CategoryResponse       `json:"categories"`
	ActiveCategory string                   `json:"active_category,omitempty"`
	Tests          []TestResponse           `json:"tests,omitempty"`
	SelectedTest   *TestResponse            `json:"selected_test,omitempty"`
	Page           *PageResponse            `json:"page,omitempty"`
	Editing        *EditingQuestionResponse `json:"editing,omitempty"`
}

// SelectOptionRequest selects an answer option
// @Description Request body for selecting an option
type SelectOptionRequest struct {
	Option  string `json:"option"`
	Checked bool   `json:"checked"`
}

// DraftRequest carries the admin form fields on save
// @Description Request body for saving a question draft
type DraftRequest struct {
	ID          string            `json:"id"`
	Question    string            `json:"question"`
	Category    string            `json:"category"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
}

// AdminQuestionsResponse is the filtered admin list
type AdminQuestionsResponse struct {
	Query     string                  `json:"query,omitempty"`
	Total     int                     `json:"total"`
	Questions []AdminQuestionResponse `json:"questions"`
}

// HealthResponse reports liveness and store reachability
type HealthResponse struct {
	Status string `json:"status"`
	View   string `json:"view"`
	Store  string `json:"store"`
}

// ToEditingQuestion converts the form into a draft. Identity fields are
// filled in by the controller from the open draft.
func (r DraftRequest) ToEditingQuestion() domain.EditingQuestion {
	return domain.EditingQuestion{
		Question: domain.Question{
			ID:          r.ID,
			Text:        r.Question,
			Options:     r.Options,
			Answer:      r.Answer,
			Explanation: r.Explanation,
		},
		Category: r.Category,
	}
}

// NewQuestionResponse maps a domain question to its API shape.
func NewQuestionResponse(q domain.Question) QuestionResponse {
	options := make([]OptionResponse, 0, len(q.OptionDisplayState))
	for _, o := range q.OptionDisplayState {
		options = append(options, OptionResponse{
			Key:         o.Key,
			Value:       o.Value,
			Selected:    o.Selected,
			ResultClass: o.ResultClass,
		})
	}
	return QuestionResponse{
		ID:                 q.ID,
		Question:           q.Text,
		Options:            q.Options,
		Answer:             q.Answer,
		Explanation:        q.Explanation,
		Number:             q.Number,
		Revealed:           q.Revealed,
		RevealLabel:        q.RevealLabel,
		SelectedOptions:    q.SelectedOptions,
		IsSubmitted:        q.IsSubmitted,
		IsCorrect:          q.IsCorrect,
		Feedback:           q.Feedback,
		SubmitButtonText:   q.SubmitButtonText,
		OptionDisplayState: options,
	}
}

// NewQuestionResponses maps a page of questions.
func NewQuestionResponses(questions []domain.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, NewQuestionResponse(q))
	}
	return responses
}

// NewEditingQuestionResponse maps the admin draft; nil stays nil.
func NewEditingQuestionResponse(draft *domain.EditingQuestion) *EditingQuestionResponse {
	if draft == nil {
		return nil
	}
	return &EditingQuestionResponse{
		QuestionResponse: NewQuestionResponse(draft.Question),
		Category:         draft.Category,
		OriginalQuestion: draft.OriginalQuestion,
	}
}

// NewAdminQuestionResponses maps the flattened admin list.
func NewAdminQuestionResponses(flat []domain.FlatQuestion) []AdminQuestionResponse {
	responses := make([]AdminQuestionResponse, 0, len(flat))
	for _, fq := range flat {
		responses = append(responses, AdminQuestionResponse{
			QuestionResponse: NewQuestionResponse(fq.Question),
			Category:         fq.Category,
		})
	}
	return responses
}
