package handler

import (
	"context"
	"net/url"
	"sync"
	"time"

	"quiz-deck/internal/domain"
	"quiz-deck/internal/dto"
	"quiz-deck/internal/logger"
	"quiz-deck/internal/middleware"
	"quiz-deck/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// DeckHandler exposes the browsing session over HTTP. The process holds one
// session; requests are serialized because the controller is single-threaded.
type DeckHandler struct {
	mu        sync.Mutex
	nav       *service.NavigationController
	overrides domain.OverrideStore
}

// NewDeckHandler creates a new DeckHandler instance
func NewDeckHandler(nav *service.NavigationController, overrides domain.OverrideStore) *DeckHandler {
	return &DeckHandler{
		nav:       nav,
		overrides: overrides,
	}
}

// GetState godoc
// @Summary Get the session state
// @Description Returns the current view, categories, tests, page and draft
// @Tags deck
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /state [get]
func (h *DeckHandler) GetState(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(h.stateResponse())
}

// GetCategories godoc
// @Summary List categories
// @Description Returns the loaded categories in deck order
// @Tags deck
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /categories [get]
func (h *DeckHandler) GetCategories(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	state := h.nav.State()
	if state.View == service.ViewLoading || state.View == service.ViewError {
		return domain.NewDataUnavailableError("Questions are not available", nil)
	}
	return c.JSON(dto.CategoriesResponse{Categories: h.categories(state)})
}

// OpenCategory godoc
// @Summary Open a category
// @Description Shows the category's questions, or its tests for the test category
// @Tags deck
// @Produce json
// @Param name path string true "Category name"
// @Success 200 {object} dto.StateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /categories/{name}/open [post]
func (h *DeckHandler) OpenCategory(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	return h.apply(c, func() error { return h.nav.SelectCategory(name) })
}

// OpenTest godoc
// @Summary Open a test
// @Description Shows the questions of a test from the test selection
// @Tags deck
// @Produce json
// @Param name path string true "Test name"
// @Success 200 {object} dto.StateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /tests/{name}/open [post]
func (h *DeckHandler) OpenTest(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	return h.apply(c, func() error { return h.nav.SelectTest(name) })
}

// Back godoc
// @Summary Navigate back
// @Tags deck
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /back [post]
func (h *DeckHandler) Back(c *fiber.Ctx) error {
	return h.apply(c, h.nav.Back)
}

// NextPage godoc
// @Summary Go to the next page
// @Tags deck
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /pages/next [post]
func (h *DeckHandler) NextPage(c *fiber.Ctx) error {
	return h.apply(c, func() error {
		h.nav.NextPage()
		return nil
	})
}

// PrevPage godoc
// @Summary Go to the previous page
// @Tags deck
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /pages/prev [post]
func (h *DeckHandler) PrevPage(c *fiber.Ctx) error {
	return h.apply(c, func() error {
		h.nav.PrevPage()
		return nil
	})
}

// RevealAnswer godoc
// @Summary Toggle the answer of a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.StateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id}/reveal [post]
func (h *DeckHandler) RevealAnswer(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	return h.apply(c, func() error { return h.nav.ToggleReveal(id) })
}

// SelectOption godoc
// @Summary Select an answer option
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.SelectOptionRequest true "Selected option"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id}/select [post]
func (h *DeckHandler) SelectOption(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	req, ok := c.Locals(middleware.LocalSelectOption).(dto.SelectOptionRequest)
	if !ok {
		return domain.ValidationErrors{domain.NewMissingFieldError("option")}
	}
	return h.apply(c, func() error { return h.nav.SelectOption(id, req.Option, req.Checked) })
}

// SubmitAnswer godoc
// @Summary Submit the selected option
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.StateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /questions/{id}/submit [post]
func (h *DeckHandler) SubmitAnswer(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	return h.apply(c, func() error {
		if err := h.nav.Submit(id); err != nil {
			return err
		}
		graded, _ := h.nav.Question(id)
		result := domain.ResultIncorrect
		if graded.IsCorrect {
			result = domain.ResultCorrect
		}
		middleware.SubmissionCounter.WithLabelValues(result).Inc()
		logger.Get().Debug("Answer submitted", zap.String("id", id), zap.Bool("correct", graded.IsCorrect))
		return nil
	})
}

// ToggleAdmin godoc
// @Summary Enter or leave admin mode
// @Tags admin
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /admin/toggle [post]
func (h *DeckHandler) ToggleAdmin(c *fiber.Ctx) error {
	return h.apply(c, h.nav.ToggleAdmin)
}

// ListAdminQuestions godoc
// @Summary List questions for editing
// @Description Returns every question with its category, filtered by search
// @Tags admin
// @Produce json
// @Param search query string false "Search text"
// @Success 200 {object} dto.AdminQuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/questions [get]
func (h *DeckHandler) ListAdminQuestions(c *fiber.Ctx) error {
	query, _ := c.Locals(middleware.LocalSearchQuery).(string)

	h.mu.Lock()
	defer h.mu.Unlock()

	questions, err := h.nav.AdminQuestions(query)
	if err != nil {
		return err
	}
	return c.JSON(dto.AdminQuestionsResponse{
		Query:     query,
		Total:     len(questions),
		Questions: dto.NewAdminQuestionResponses(questions),
	})
}

// StartAdd godoc
// @Summary Open an empty draft
// @Tags admin
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /admin/drafts [post]
func (h *DeckHandler) StartAdd(c *fiber.Ctx) error {
	return h.apply(c, h.nav.StartAdd)
}

// StartEdit godoc
// @Summary Open a draft of an existing question
// @Tags admin
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.StateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id}/edit [post]
func (h *DeckHandler) StartEdit(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	return h.apply(c, func() error { return h.nav.StartEdit(id) })
}

// SaveDraft godoc
// @Summary Save the open draft
// @Description Adds or replaces the question, persists the deck and reloads it
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.DraftRequest true "Draft fields"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/drafts [put]
func (h *DeckHandler) SaveDraft(c *fiber.Ctx) error {
	var req dto.DraftRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidValueError("body", "must be a JSON object")}
	}

	return h.apply(c, func() error {
		operation := "update"
		if h.nav.State().AdminView == service.AdminViewAdd {
			operation = "add"
		}
		if err := h.nav.SaveDraft(c.UserContext(), req.ToEditingQuestion()); err != nil {
			return err
		}
		middleware.DeckMutationCounter.WithLabelValues(operation).Inc()
		return nil
	})
}

// CancelDraft godoc
// @Summary Discard the open draft
// @Tags admin
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /admin/drafts [delete]
func (h *DeckHandler) CancelDraft(c *fiber.Ctx) error {
	return h.apply(c, func() error {
		h.nav.CancelEdit()
		return nil
	})
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Requires confirm=true
// @Tags admin
// @Produce json
// @Param id path string true "Question ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (h *DeckHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	confirmed, _ := c.Locals(middleware.LocalConfirmed).(bool)

	return h.apply(c, func() error {
		if err := h.nav.DeleteQuestion(c.UserContext(), id, confirmed); err != nil {
			return err
		}
		middleware.DeckMutationCounter.WithLabelValues("delete").Inc()
		return nil
	})
}

// Health godoc
// @Summary Health check
// @Description Reports the session view and override store reachability
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *DeckHandler) Health(c *fiber.Ctx) error {
	h.mu.Lock()
	view := h.nav.State().View
	h.mu.Unlock()

	resp := dto.HealthResponse{Status: "ok", View: string(view), Store: "up"}
	status := fiber.StatusOK

	ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
	defer cancel()
	if err := h.overrides.Ping(ctx); err != nil {
		logger.Get().Warn("Override store ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Store = "down"
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}

// apply runs a controller action under the session lock and answers with the
// resulting state.
func (h *DeckHandler) apply(c *fiber.Ctx, action func() error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := action(); err != nil {
		return err
	}
	return c.JSON(h.stateResponse())
}

func (h *DeckHandler) stateResponse() dto.StateResponse {
	state := h.nav.State()
	resp := dto.StateResponse{
		View:       string(state.View),
		AdminView:  string(state.AdminView),
		LoadError:  state.LoadError,
		Categories: h.categories(state),
		Editing:    dto.NewEditingQuestionResponse(state.Editing),
	}

	for _, test := range state.Tests {
		resp.Tests = append(resp.Tests, toTestResponse(test))
	}
	if state.SelectedTest != nil {
		selected := toTestResponse(*state.SelectedTest)
		resp.SelectedTest = &selected
	}
	if state.ActiveCategory != nil {
		resp.ActiveCategory = state.ActiveCategory.Name
	}
	if state.View == service.ViewQuestions {
		resp.Page = &dto.PageResponse{
			CurrentPage:        state.Page.CurrentPage,
			TotalPages:         state.Page.TotalPages,
			PageSize:           state.Page.PageSize,
			IsFirstPage:        state.Page.IsFirstPage,
			IsLastPage:         state.Page.IsLastPage,
			ProgressPercentage: state.Page.ProgressPercentage,
			Questions:          dto.NewQuestionResponses(state.Page.PagedQuestions),
		}
	}
	return resp
}

func (h *DeckHandler) categories(state service.AppState) []dto.CategoryResponse {
	categories := make([]dto.CategoryResponse, 0, len(state.Categories))
	for _, category := range state.Categories {
		categories = append(categories, dto.CategoryResponse{
			Name:           category.Name,
			QuestionCount:  len(category.Questions),
			IsActive:       category.IsActive,
			IsTestCategory: h.nav.IsTestCategory(category.Name),
		})
	}
	return categories
}

func toTestResponse(test domain.Test) dto.TestResponse {
	return dto.TestResponse{
		Name:          test.Name,
		Version:       test.Version,
		QuestionCount: test.QuestionCount,
		Range:         test.Range,
	}
}

// pathParam returns the unescaped route parameter key.
func pathParam(c *fiber.Ctx, key string) (string, error) {
	value, err := url.PathUnescape(c.Params(key))
	if err != nil || value == "" {
		return "", domain.ValidationErrors{domain.NewInvalidValueError(key, "is not a valid path segment")}
	}
	return value, nil
}

// RegisterRoutes mounts the deck API on router.
func (h *DeckHandler) RegisterRoutes(router fiber.Router, vm *middleware.ValidationMiddleware) {
	router.Get("/state", h.GetState)
	router.Get("/categories", h.GetCategories)
	router.Post("/categories/:name/open", h.OpenCategory)
	router.Post("/tests/:name/open", h.OpenTest)
	router.Post("/back", h.Back)
	router.Post("/pages/next", h.NextPage)
	router.Post("/pages/prev", h.PrevPage)

	questions := router.Group("/questions")
	questions.Post("/:id/reveal", h.RevealAnswer)
	questions.Post("/:id/select", vm.ValidateSelectOption(), h.SelectOption)
	questions.Post("/:id/submit", h.SubmitAnswer)

	admin := router.Group("/admin")
	admin.Post("/toggle", h.ToggleAdmin)
	admin.Get("/questions", vm.ValidateSearch(), h.ListAdminQuestions)
	admin.Post("/questions/:id/edit", h.StartEdit)
	admin.Delete("/questions/:id", vm.ValidateConfirm(), h.DeleteQuestion)
	admin.Post("/drafts", h.StartAdd)
	admin.Put("/drafts", h.SaveDraft)
	admin.Delete("/drafts", h.CancelDraft)
}
