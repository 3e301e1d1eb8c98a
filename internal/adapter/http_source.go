package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-deck/internal/domain"
	"quiz-deck/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HTTPQuestionSource fetches the default deck document with a single GET.
type HTTPQuestionSource struct {
	url     string
	timeout time.Duration
}

func NewHTTPQuestionSource(url string, timeout time.Duration) domain.QuestionSource {
	return &HTTPQuestionSource{url: url, timeout: timeout}
}

// Fetch implements domain.QuestionSource. There is no retry. The request is
// bounded by the configured timeout or the context deadline, whichever is sooner.
func (s *HTTPQuestionSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Get(s.url)
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, fmt.Errorf("invalid question source url %q: %w", s.url, err)
	}

	start := time.Now()
	code, body, errs := agent.Bytes()
	logger.Get().Debug("Fetched question source",
		zap.String("url", s.url),
		zap.Int("status", code),
		zap.Duration("duration", time.Since(start)),
	)
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.url, errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", s.url, code)
	}
	return body, nil
}
