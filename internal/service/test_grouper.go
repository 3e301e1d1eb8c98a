package service

import (
	"fmt"
	"regexp"
	"strconv"

	"quiz-deck/internal/domain"
)

var versionPrefix = regexp.MustCompile(`^V(\d+)`)

// ParseVersion returns the number in a leading V<digits> token of id. Ids
// without that token belong to no test.
func ParseVersion(id string) (int, bool) {
	match := versionPrefix.FindStringSubmatch(id)
	if match == nil {
		return 0, false
	}
	version, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return version, true
}

// GroupTests buckets questions by the version prefix of their id, in first-seen
// version order. Questions whose id has no V<digits> prefix belong to no test.
// The range label of the i-th test covers block i of blockSize questions,
// regardless of how many questions the bucket holds.
func GroupTests(questions []domain.Question, blockSize int) []domain.Test {
	var tests []domain.Test
	index := make(map[int]int)
	for _, q := range questions {
		version, ok := ParseVersion(q.ID)
		if !ok {
			continue
		}
		i, ok := index[version]
		if !ok {
			i = len(tests)
			index[version] = i
			tests = append(tests, domain.Test{
				Name:    fmt.Sprintf("Test %d", version),
				Version: version,
			})
		}
		tests[i].Questions = append(tests[i].Questions, q)
	}

	for i := range tests {
		tests[i].QuestionCount = len(tests[i].Questions)
		tests[i].Range = fmt.Sprintf("%d - %d", i*blockSize+1, (i+1)*blockSize)
	}
	return tests
}
