package service

import (
	"testing"

	"quiz-deck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		id      string
		version int
		ok      bool
	}{
		{"V1Q1", 1, true},
		{"V12-Q3", 12, true},
		{"V7", 7, true},
		{"v1Q1", 0, false},
		{"Q1V1", 0, false},
		{"V", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			version, ok := ParseVersion(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestGroupTests(t *testing.T) {
	t.Run("groups by version in first seen order", func(t *testing.T) {
		list := []domain.Question{
			newTestQuestion("V1Q1", "A", "x"),
			newTestQuestion("V1Q2", "A", "x"),
			newTestQuestion("V2Q1", "A", "x"),
		}

		tests := GroupTests(list, 60)

		require.Len(t, tests, 2)
		assert.Equal(t, "Test 1", tests[0].Name)
		assert.Equal(t, 1, tests[0].Version)
		assert.Equal(t, 2, tests[0].QuestionCount)
		assert.Equal(t, "1 - 60", tests[0].Range)
		assert.Equal(t, "V1Q1", tests[0].Questions[0].ID)
		assert.Equal(t, "V1Q2", tests[0].Questions[1].ID)

		assert.Equal(t, "Test 2", tests[1].Name)
		assert.Equal(t, 1, tests[1].QuestionCount)
		assert.Equal(t, "61 - 120", tests[1].Range)
	})

	t.Run("interleaved versions keep relative order", func(t *testing.T) {
		list := []domain.Question{
			newTestQuestion("V3Q1", "A", "x"),
			newTestQuestion("V1Q1", "A", "x"),
			newTestQuestion("V3Q2", "A", "x"),
		}

		tests := GroupTests(list, 60)

		require.Len(t, tests, 2)
		assert.Equal(t, "Test 3", tests[0].Name)
		assert.Equal(t, []string{"V3Q1", "V3Q2"}, ids(tests[0].Questions))
		assert.Equal(t, "Test 1", tests[1].Name)
		assert.Equal(t, "61 - 120", tests[1].Range)
	})

	t.Run("ids without version prefix are dropped", func(t *testing.T) {
		list := []domain.Question{
			newTestQuestion("V1Q1", "A", "x"),
			newTestQuestion("misc-1", "A", "x"),
		}

		tests := GroupTests(list, 60)

		require.Len(t, tests, 1)
		assert.Equal(t, 1, tests[0].QuestionCount)
	})

	t.Run("no versioned ids yields no tests", func(t *testing.T) {
		assert.Empty(t, GroupTests([]domain.Question{newTestQuestion("plain", "A", "x")}, 60))
		assert.Empty(t, GroupTests(nil, 60))
	})

	t.Run("counts add up to the versioned questions", func(t *testing.T) {
		list := append(questions("V1Q", 7), questions("V2Q", 4)...)
		list = append(list, questions("other", 3)...)

		total := 0
		for _, test := range GroupTests(list, 60) {
			assert.Equal(t, len(test.Questions), test.QuestionCount)
			total += test.QuestionCount
		}
		assert.Equal(t, 11, total)
	})
}

func ids(list []domain.Question) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.ID)
	}
	return out
}
