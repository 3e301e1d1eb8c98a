package service

import (
	"context"
	"maps"
	"strings"

	"quiz-deck/internal/domain"
	"quiz-deck/internal/logger"
	"quiz-deck/internal/util"
	"quiz-deck/internal/validation"

	"go.uber.org/zap"
)

// Option slots offered by a fresh draft.
var draftOptionKeys = []string{"A", "B", "C", "D"}

// AdminEditor performs CRUD over the flattened question set. Every successful
// mutation is persisted and the deck is reloaded through QuestionStore so UI
// state comes back at its defaults.
type AdminEditor struct {
	store     QuestionStore
	validator *validation.Validator
	newID     func() string
}

func NewAdminEditor(store QuestionStore) *AdminEditor {
	return &AdminEditor{
		store:     store,
		validator: validation.NewValidator(),
		newID:     util.NewULID,
	}
}

// StartAdd returns an empty draft with option slots A..D.
func (e *AdminEditor) StartAdd() domain.EditingQuestion {
	options := make(map[string]string, len(draftOptionKeys))
	for _, key := range draftOptionKeys {
		options[key] = ""
	}
	return domain.EditingQuestion{Question: domain.Question{Options: options}}
}

// StartEdit clones the question with the given id into a draft.
func (e *AdminEditor) StartEdit(categories []domain.Category, id string) (domain.EditingQuestion, error) {
	for _, fq := range Flatten(categories) {
		if fq.Question.ID == id {
			q := fq.Question
			q.Options = maps.Clone(q.Options)
			return domain.EditingQuestion{
				Question:         resetQuestionState(q),
				Category:         fq.Category,
				OriginalQuestion: id,
			}, nil
		}
	}
	return domain.EditingQuestion{}, domain.NewQuestionNotFoundError(id)
}

// Save adds the draft (adding == true) or replaces the entry whose id equals
// draft.OriginalQuestion, then persists and reloads the deck.
func (e *AdminEditor) Save(ctx context.Context, categories []domain.Category, draft domain.EditingQuestion, adding bool) ([]domain.Category, error) {
	if errs := e.validator.ValidateDraft(draft); len(errs) > 0 {
		return nil, errs
	}

	entry := domain.FlatQuestion{Category: strings.TrimSpace(draft.Category), Question: draftToQuestion(draft)}
	flat := Flatten(categories)

	if adding {
		if entry.Question.ID == "" {
			entry.Question.ID = e.newID()
		}
		if indexOf(flat, entry.Question.ID) >= 0 {
			return nil, domain.ValidationErrors{domain.NewInvalidValueError("id", "is already used by another question")}
		}
		flat = append(flat, entry)
	} else {
		i := indexOf(flat, draft.OriginalQuestion)
		if i < 0 {
			return nil, domain.NewQuestionNotFoundError(draft.OriginalQuestion)
		}
		if entry.Question.ID == "" {
			entry.Question.ID = draft.OriginalQuestion
		}
		if j := indexOf(flat, entry.Question.ID); j >= 0 && j != i {
			return nil, domain.ValidationErrors{domain.NewInvalidValueError("id", "is already used by another question")}
		}
		flat[i] = entry
	}

	reloaded, err := e.persist(ctx, categories, flat)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Saved question",
		zap.String("id", entry.Question.ID),
		zap.String("category", entry.Category),
		zap.Bool("added", adding))
	return reloaded, nil
}

// Delete removes the question with the given id, then persists and reloads.
// Callers must have obtained the user's confirmation.
func (e *AdminEditor) Delete(ctx context.Context, categories []domain.Category, id string) ([]domain.Category, error) {
	flat := Flatten(categories)
	i := indexOf(flat, id)
	if i < 0 {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	flat = append(flat[:i], flat[i+1:]...)

	reloaded, err := e.persist(ctx, categories, flat)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Deleted question", zap.String("id", id))
	return reloaded, nil
}

func (e *AdminEditor) persist(ctx context.Context, existing []domain.Category, flat []domain.FlatQuestion) ([]domain.Category, error) {
	if err := e.store.Persist(ctx, Unflatten(existing, flat)); err != nil {
		return nil, err
	}
	return e.store.Reload(ctx)
}

// Flatten lists every question with its category name, in deck order.
func Flatten(categories []domain.Category) []domain.FlatQuestion {
	var flat []domain.FlatQuestion
	for _, category := range categories {
		for _, q := range category.Questions {
			flat = append(flat, domain.FlatQuestion{Category: category.Name, Question: q})
		}
	}
	return flat
}

// Unflatten groups flat back into categories. Existing categories keep their
// order (and survive even when left empty); unseen names are appended in the
// order they first appear.
func Unflatten(existing []domain.Category, flat []domain.FlatQuestion) []domain.Category {
	categories := make([]domain.Category, 0, len(existing))
	index := make(map[string]int, len(existing))
	for _, category := range existing {
		if _, ok := index[category.Name]; ok {
			continue
		}
		index[category.Name] = len(categories)
		categories = append(categories, domain.Category{Name: category.Name, Questions: []domain.Question{}})
	}

	for _, fq := range flat {
		i, ok := index[fq.Category]
		if !ok {
			i = len(categories)
			index[fq.Category] = i
			categories = append(categories, domain.Category{Name: fq.Category, Questions: []domain.Question{}})
		}
		categories[i].Questions = append(categories[i].Questions, fq.Question)
	}
	return categories
}

// Search filters the flattened set case-insensitively by text, id, category,
// answer or option text. An empty query matches everything.
func Search(flat []domain.FlatQuestion, query string) []domain.FlatQuestion {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return flat
	}

	matches := make([]domain.FlatQuestion, 0)
	for _, fq := range flat {
		if matchesQuery(fq, query) {
			matches = append(matches, fq)
		}
	}
	return matches
}

func matchesQuery(fq domain.FlatQuestion, query string) bool {
	fields := []string{fq.Question.Text, fq.Question.ID, fq.Category, fq.Question.Answer}
	for _, value := range fq.Question.Options {
		fields = append(fields, value)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func indexOf(flat []domain.FlatQuestion, id string) int {
	for i, fq := range flat {
		if fq.Question.ID == id {
			return i
		}
	}
	return -1
}

// draftToQuestion keeps persisted fields only; blank option slots are dropped.
func draftToQuestion(draft domain.EditingQuestion) domain.Question {
	q := domain.Question{
		ID:          strings.TrimSpace(draft.ID),
		Text:        strings.TrimSpace(draft.Text),
		Answer:      strings.TrimSpace(draft.Answer),
		Explanation: strings.TrimSpace(draft.Explanation),
	}

	for key, value := range draft.Options {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if q.Options == nil {
			q.Options = make(map[string]string, len(draft.Options))
		}
		q.Options[strings.TrimSpace(key)] = value
	}
	return q
}
