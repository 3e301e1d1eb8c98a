package service

import (
	"context"
	"fmt"
	"os"
	"testing"

	"quiz-deck/internal/config"
	"quiz-deck/internal/domain"
	"quiz-deck/internal/logger"

	"github.com/stretchr/testify/mock"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}

	exitVal := m.Run()

	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- MockOverrideStore ---
type MockOverrideStore struct {
	mock.Mock
}

func (m *MockOverrideStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockOverrideStore) Set(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockOverrideStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockOverrideStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.OverrideStore = (*MockOverrideStore)(nil)

// --- MockQuestionSource ---
type MockQuestionSource struct {
	mock.Mock
}

func (m *MockQuestionSource) Fetch(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ domain.QuestionSource = (*MockQuestionSource)(nil)

// --- MockQuestionStore ---
type MockQuestionStore struct {
	mock.Mock
}

func (m *MockQuestionStore) Load(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockQuestionStore) Reload(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockQuestionStore) Persist(ctx context.Context, categories []domain.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

var _ QuestionStore = (*MockQuestionStore)(nil)

// fixture helpers

func testDeckConfig() config.DeckConfig {
	return config.DeckConfig{PageSize: 5, TestCategory: "Agentforce", TestBlockSize: 60}
}

func newTestQuestion(id, answer string, options ...string) domain.Question {
	opts := make(map[string]string, len(options))
	for i, text := range options {
		opts[string(rune('A'+i))] = text
	}
	return resetQuestionState(domain.Question{
		ID:      id,
		Text:    "Question " + id,
		Options: opts,
		Answer:  answer,
	})
}

func questions(prefix string, n int) []domain.Question {
	list := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		item := newTestQuestion(fmt.Sprintf("%s%d", prefix, i), "A", "yes", "no")
		item.Number = i
		list = append(list, item)
	}
	return list
}
