package service

import (
	"slices"

	"quiz-deck/internal/domain"
	"quiz-deck/internal/util"
)

// TotalPages is max(1, ceil(n/pageSize)).
func TotalPages(n, pageSize int) int {
	return max(1, util.CeilDiv(n, pageSize))
}

// Paginate returns the page window [(currentPage-1)*pageSize, currentPage*pageSize)
// over list. currentPage must already be clamped by the caller.
func Paginate(list []domain.Question, pageSize, currentPage int) domain.PageState {
	totalPages := TotalPages(len(list), pageSize)

	start := min(max(0, (currentPage-1)*pageSize), len(list))
	end := min(start+pageSize, len(list))

	return domain.PageState{
		PageSize:           pageSize,
		CurrentPage:        currentPage,
		TotalPages:         totalPages,
		PagedQuestions:     slices.Clone(list[start:end]),
		IsFirstPage:        currentPage == 1,
		IsLastPage:         currentPage == totalPages,
		ProgressPercentage: util.Percentage(currentPage, totalPages),
	}
}
