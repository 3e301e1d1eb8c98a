package adapter

import (
	"context"
	"fmt"
	"os"

	"quiz-deck/internal/domain"
)

// FileQuestionSource reads the default deck document from disk.
type FileQuestionSource struct {
	path string
}

func NewFileQuestionSource(path string) domain.QuestionSource {
	return &FileQuestionSource{path: path}
}

func (s *FileQuestionSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file %s: %w", s.path, err)
	}
	return data, nil
}
