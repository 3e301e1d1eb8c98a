package service

import (
	"testing"

	"quiz-deck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 3, TotalPages(12, 5))
}

func TestPaginate(t *testing.T) {
	list := questions("Q", 12)

	t.Run("first page", func(t *testing.T) {
		page := Paginate(list, 5, 1)

		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4", "Q5"}, ids(page.PagedQuestions))
		assert.True(t, page.IsFirstPage)
		assert.False(t, page.IsLastPage)
		assert.InDelta(t, 33.33, page.ProgressPercentage, 0.01)
	})

	t.Run("last page is partial", func(t *testing.T) {
		page := Paginate(list, 5, 3)

		assert.Equal(t, []string{"Q11", "Q12"}, ids(page.PagedQuestions))
		assert.False(t, page.IsFirstPage)
		assert.True(t, page.IsLastPage)
		assert.InDelta(t, 100.0, page.ProgressPercentage, 0.001)
	})

	t.Run("empty list has one empty page", func(t *testing.T) {
		page := Paginate(nil, 5, 1)

		assert.Equal(t, 1, page.TotalPages)
		assert.Empty(t, page.PagedQuestions)
		assert.True(t, page.IsFirstPage)
		assert.True(t, page.IsLastPage)
	})

	t.Run("pages reconstruct the list", func(t *testing.T) {
		var rebuilt []domain.Question
		total := TotalPages(len(list), 5)
		for p := 1; p <= total; p++ {
			page := Paginate(list, 5, p)
			assert.LessOrEqual(t, len(page.PagedQuestions), 5)
			rebuilt = append(rebuilt, page.PagedQuestions...)
		}
		require.Len(t, rebuilt, len(list))
		assert.Equal(t, ids(list), ids(rebuilt))
	})

	t.Run("paged slice does not alias the list", func(t *testing.T) {
		page := Paginate(list, 5, 1)
		page.PagedQuestions[0].ID = "changed"
		assert.Equal(t, "Q1", list[0].ID)
	})
}
