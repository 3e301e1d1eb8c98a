package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"quiz-deck/internal/domain"
	"quiz-deck/internal/logger"
	"quiz-deck/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	questionSeparator = regexp.MustCompile(`(?i)NEW QUESTION\s*\d+`)
	answerMarker      = regexp.MustCompile(`(?i)\bAnswer:\s*`)
	answerLine        = regexp.MustCompile(`(?i)Answer:\s*([^\r\n]+)`)
	explanationMarker = regexp.MustCompile(`(?i)\bExplanation:?`)
	lineBreaks        = regexp.MustCompile(`(\r?\n)+`)
)

// maxParallelFiles bounds how many dump files are read at once.
const maxParallelFiles = 4

// ParseDump extracts questions from a raw exam dump. Blocks start at
// "NEW QUESTION <n>"; a block without an "Answer:" marker or without
// question text is skipped.
func ParseDump(raw string) []domain.RawQuestion {
	items := make([]domain.RawQuestion, 0)
	for _, part := range questionSeparator.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		answerLoc := answerMarker.FindStringIndex(part)
		if answerLoc == nil {
			continue
		}
		text := strings.TrimSpace(lineBreaks.ReplaceAllString(part[:answerLoc[0]], " "))
		if text == "" {
			continue
		}

		answerBlock := strings.TrimSpace(part[answerLoc[0]:])
		explanation := ""
		if loc := explanationMarker.FindStringIndex(part); loc != nil {
			if loc[0] >= answerLoc[0] {
				answerBlock = strings.TrimSpace(part[answerLoc[0]:loc[0]])
			}
			explanation = strings.TrimSpace(part[loc[1]:])
		}

		answer := answerBlock
		if match := answerLine.FindStringSubmatch(answerBlock); match != nil {
			answer = strings.TrimSpace(match[1])
		}

		items = append(items, domain.RawQuestion{
			Question:    text,
			Answer:      answer,
			Explanation: explanation,
		})
	}
	return items
}

// ParseFiles reads and parses every dump concurrently. The result keeps the
// order of paths.
func ParseFiles(ctx context.Context, paths []string) ([]domain.RawQuestion, error) {
	results := make([][]domain.RawQuestion, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFiles)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read dump %s: %w", path, err)
			}
			results[i] = ParseDump(string(raw))
			logger.Get().Info("Parsed dump", zap.String("path", path), zap.Int("questions", len(results[i])))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.RawQuestion
	for _, items := range results {
		all = append(all, items...)
	}
	return all, nil
}

// AppendToCategory adds items to the named category of a question document,
// creating the category (and the document) when missing. Items without an id
// get V<version>Q<k> so the test grouping picks them up; a version <= 0 means
// one past the highest version already in the category. The version used is
// returned.
func AppendToCategory(doc []byte, category string, version int, items []domain.RawQuestion) ([]byte, int, error) {
	var payload domain.Payload
	if len(strings.TrimSpace(string(doc))) > 0 {
		if err := json.Unmarshal(doc, &payload); err != nil {
			return nil, 0, fmt.Errorf("invalid question document: %w", err)
		}
	}

	var categories []domain.RawCategory
	if payload.Categories != nil {
		categories = *payload.Categories
	}

	target := -1
	taken := make(map[string]bool)
	for i, c := range categories {
		if c.Name == category && target < 0 {
			target = i
		}
		for _, q := range c.Questions {
			taken[strings.TrimSpace(q.ID)] = true
		}
	}
	if target < 0 {
		categories = append(categories, domain.RawCategory{Name: category})
		target = len(categories) - 1
	}

	if version <= 0 {
		version = NextVersion(categories[target].Questions)
	}

	k := 1
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			for taken[questionID(version, k)] {
				k++
			}
			item.ID = questionID(version, k)
		}
		taken[item.ID] = true
		categories[target].Questions = append(categories[target].Questions, item)
	}

	out, err := json.MarshalIndent(domain.NewPayload(categories), "", "  ")
	if err != nil {
		return nil, 0, err
	}
	return out, version, nil
}

// NextVersion returns one past the highest V<n> prefix among questions.
func NextVersion(questions []domain.RawQuestion) int {
	highest := 0
	for _, q := range questions {
		if v, ok := service.ParseVersion(strings.TrimSpace(q.ID)); ok && v > highest {
			highest = v
		}
	}
	return highest + 1
}

func questionID(version, k int) string {
	return fmt.Sprintf("V%dQ%d", version, k)
}
