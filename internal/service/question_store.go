package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	"quiz-deck/internal/domain"
	"quiz-deck/internal/logger"
	"quiz-deck/internal/util"

	"go.uber.org/zap"
)

// QuestionStore resolves the deck from the override store or the remote source
// and writes edited decks back to the override store.
type QuestionStore interface {
	Load(ctx context.Context) ([]domain.Category, error)
	// Reload reads back the override only; it never falls back to the remote source.
	Reload(ctx context.Context) ([]domain.Category, error)
	Persist(ctx context.Context, categories []domain.Category) error
}

type questionStore struct {
	overrides domain.OverrideStore
	source    domain.QuestionSource
	key       string
	newID     func() string
}

// NewQuestionStore creates a QuestionStore that keeps its override under key.
func NewQuestionStore(overrides domain.OverrideStore, source domain.QuestionSource, key string) QuestionStore {
	return &questionStore{
		overrides: overrides,
		source:    source,
		key:       key,
		newID:     util.NewULID,
	}
}

// Load implements QuestionStore. A present, well-formed override always wins.
func (s *questionStore) Load(ctx context.Context) ([]domain.Category, error) {
	raw, err := s.overrides.Get(ctx, s.key)
	switch {
	case err == nil:
		categories, decodeErr := decodePayload([]byte(raw))
		if decodeErr == nil {
			logger.Get().Info("Loaded questions from override store",
				zap.String("key", s.key),
				zap.Int("categories", len(categories)))
			return s.normalize(categories), nil
		}
		logger.Get().Warn("Ignoring malformed override, falling back to remote source",
			zap.String("key", s.key),
			zap.Error(decodeErr))
	case errors.Is(err, domain.ErrStoreMiss):
		logger.Get().Debug("No override stored", zap.String("key", s.key))
	default:
		logger.Get().Warn("Override store unavailable, falling back to remote source",
			zap.String("key", s.key),
			zap.Error(err))
	}

	body, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, domain.NewDataUnavailableError("Failed to fetch questions", err)
	}
	categories, err := decodePayload(body)
	if err != nil {
		return nil, domain.NewDataUnavailableError("Question data is malformed", err)
	}
	logger.Get().Info("Loaded questions from remote source", zap.Int("categories", len(categories)))
	return s.normalize(categories), nil
}

// Reload implements QuestionStore.
func (s *questionStore) Reload(ctx context.Context) ([]domain.Category, error) {
	raw, err := s.overrides.Get(ctx, s.key)
	if err != nil {
		return nil, domain.NewInternalError("Failed to reload questions", err)
	}
	categories, err := decodePayload([]byte(raw))
	if err != nil {
		return nil, domain.NewInternalError("Stored questions are malformed", err)
	}
	return s.normalize(categories), nil
}

// Persist implements QuestionStore. Only persisted question fields are written.
func (s *questionStore) Persist(ctx context.Context, categories []domain.Category) error {
	raw := make([]domain.RawCategory, 0, len(categories))
	for _, category := range categories {
		rc := domain.RawCategory{Name: category.Name, Questions: make([]domain.RawQuestion, 0, len(category.Questions))}
		for _, q := range category.Questions {
			rc.Questions = append(rc.Questions, toRawQuestion(q))
		}
		raw = append(raw, rc)
	}

	data, err := json.Marshal(domain.NewPayload(raw))
	if err != nil {
		return domain.NewInternalError("Failed to encode questions", err)
	}
	if err := s.overrides.Set(ctx, s.key, string(data)); err != nil {
		return domain.NewInternalError("Failed to persist questions", err)
	}
	logger.Get().Info("Persisted questions to override store",
		zap.String("key", s.key),
		zap.Int("categories", len(raw)),
		zap.Int("bytes", len(data)))
	return nil
}

// decodePayload parses a deck document, merging categories that share a name.
func decodePayload(data []byte) ([]domain.RawCategory, error) {
	var payload domain.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid question document: %w", err)
	}
	if payload.Categories == nil {
		return nil, errors.New("invalid question document: missing categories")
	}

	merged := make([]domain.RawCategory, 0, len(*payload.Categories))
	index := make(map[string]int)
	for _, category := range *payload.Categories {
		if i, ok := index[category.Name]; ok {
			merged[i].Questions = append(merged[i].Questions, category.Questions...)
			continue
		}
		index[category.Name] = len(merged)
		merged = append(merged, category)
	}
	return merged, nil
}

// normalize builds the entity model: numbers, identities and default UI state.
func (s *questionStore) normalize(raw []domain.RawCategory) []domain.Category {
	seen := make(map[string]bool)
	categories := make([]domain.Category, 0, len(raw))
	for _, rc := range raw {
		category := domain.Category{Name: rc.Name, Questions: make([]domain.Question, 0, len(rc.Questions))}
		for i, rq := range rc.Questions {
			q := newQuestion(rq, i+1)
			q.ID = s.uniqueID(q.ID, seen)
			category.Questions = append(category.Questions, q)
		}
		categories = append(categories, category)
	}
	return categories
}

// uniqueID synthesizes missing ids and suffixes repeated ones with ~n,
// which keeps any V<n> prefix intact.
func (s *questionStore) uniqueID(id string, seen map[string]bool) string {
	if id == "" {
		id = s.newID()
	}
	candidate := id
	for n := 2; seen[candidate]; n++ {
		candidate = fmt.Sprintf("%s~%d", id, n)
	}
	seen[candidate] = true
	return candidate
}

func newQuestion(rq domain.RawQuestion, number int) domain.Question {
	q := domain.Question{
		ID:          strings.TrimSpace(rq.ID),
		Text:        rq.Question,
		Answer:      rq.Answer,
		Explanation: rq.Explanation,
		Number:      number,
	}
	if len(rq.Options) > 0 {
		q.Options = maps.Clone(rq.Options)
	}
	return resetQuestionState(q)
}

func toRawQuestion(q domain.Question) domain.RawQuestion {
	rq := domain.RawQuestion{
		ID:          q.ID,
		Question:    q.Text,
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}
	if len(q.Options) > 0 {
		rq.Options = maps.Clone(q.Options)
	}
	return rq
}
