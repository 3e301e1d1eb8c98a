package service

import (
	"context"
	"slices"

	"quiz-deck/internal/config"
	"quiz-deck/internal/domain"
	"quiz-deck/internal/logger"

	"go.uber.org/zap"
)

// View is the screen the session is showing.
type View string

const (
	ViewLoading       View = "loading"
	ViewError         View = "error"
	ViewHome          View = "home"
	ViewTestSelection View = "test-selection"
	ViewQuestions     View = "questions"
	ViewAdmin         View = "admin"
)

// AdminView is the sub-screen of admin mode.
type AdminView string

const (
	AdminViewList AdminView = "list"
	AdminViewAdd  AdminView = "add"
	AdminViewEdit AdminView = "edit"
)

// AppState is the whole state of a browsing session. Transitions build a new
// AppState from the old one and replace it.
type AppState struct {
	View           View
	Categories     []domain.Category
	ActiveCategory *domain.Category
	Tests          []domain.Test
	SelectedTest   *domain.Test
	Page           domain.PageState
	AdminView      AdminView
	Editing        *domain.EditingQuestion
	LoadError      string
}

// NavigationController owns AppState and routes user actions to the grouping,
// pagination, evaluation and admin components. It is not safe for concurrent
// use; callers serialize access.
type NavigationController struct {
	store  QuestionStore
	editor *AdminEditor
	deck   config.DeckConfig
	state  AppState
}

func NewNavigationController(store QuestionStore, deck config.DeckConfig) *NavigationController {
	return &NavigationController{
		store:  store,
		editor: NewAdminEditor(store),
		deck:   deck,
		state: AppState{
			View: ViewLoading,
			Page: Paginate(nil, deck.PageSize, 1),
		},
	}
}

// Start performs the one load attempt of the session. On failure the session
// stays in the error view for good.
func (c *NavigationController) Start(ctx context.Context) error {
	categories, err := c.store.Load(ctx)
	if err != nil {
		next := c.state
		next.View = ViewError
		next.LoadError = err.Error()
		c.state = next
		logger.Get().Error("Failed to load questions", zap.Error(err))
		return err
	}

	c.state = AppState{
		View:       ViewHome,
		Categories: categories,
		Page:       Paginate(nil, c.deck.PageSize, 1),
	}
	logger.Get().Info("Deck ready", zap.Int("categories", len(categories)))
	return nil
}

// State returns the current state. Callers must treat it as read-only.
func (c *NavigationController) State() AppState {
	return c.state
}

func (c *NavigationController) ready() error {
	switch c.state.View {
	case ViewLoading:
		return domain.NewDataUnavailableError("Questions are still loading", nil)
	case ViewError:
		return domain.NewDataUnavailableError(c.state.LoadError, nil)
	}
	return nil
}

func invalidTransition(message string) error {
	return domain.ValidationErrors{domain.NewInvalidValueError("view", message)}
}

// SelectCategory opens a category: the test-grouping category goes to test
// selection, every other category straight to its questions.
func (c *NavigationController) SelectCategory(name string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.state.View == ViewAdmin {
		return invalidTransition("leave admin mode before browsing categories")
	}

	i := slices.IndexFunc(c.state.Categories, func(cat domain.Category) bool { return cat.Name == name })
	if i < 0 {
		return domain.NewCategoryNotFoundError(name)
	}
	category := c.state.Categories[i]
	if len(category.Questions) == 0 {
		return domain.NewEmptyCategoryError(name)
	}

	if name == c.deck.TestCategory {
		return c.showTests(category)
	}
	return c.showCategory(category)
}

func (c *NavigationController) showCategory(category domain.Category) error {
	next := c.state
	next.Categories = markActive(next.Categories, category.Name)
	active := category
	active.IsActive = true
	active.Questions = slices.Clone(category.Questions)
	next.ActiveCategory = &active
	next.Tests = nil
	next.SelectedTest = nil
	next.View = ViewQuestions
	c.state = resetPagination(next, c.deck.PageSize)

	logger.Get().Debug("Showing category", zap.String("category", category.Name), zap.Int("questions", len(active.Questions)))
	return nil
}

func (c *NavigationController) showTests(category domain.Category) error {
	tests := GroupTests(category.Questions, c.deck.TestBlockSize)
	if len(tests) == 0 {
		return domain.NewEmptyCategoryError(category.Name)
	}

	next := c.state
	next.Categories = markActive(next.Categories, category.Name)
	next.Tests = tests
	next.SelectedTest = nil
	next.ActiveCategory = nil
	next.View = ViewTestSelection
	c.state = resetPagination(next, c.deck.PageSize)

	logger.Get().Debug("Showing tests", zap.String("category", category.Name), zap.Int("tests", len(tests)))
	return nil
}

// SelectTest opens one of the synthesized tests as a category of its own.
func (c *NavigationController) SelectTest(name string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.state.View != ViewTestSelection {
		return invalidTransition("no test selection is showing")
	}

	i := slices.IndexFunc(c.state.Tests, func(t domain.Test) bool { return t.Name == name })
	if i < 0 {
		return domain.NewNotFoundError("Test not found: " + name)
	}
	test := c.state.Tests[i]
	if len(test.Questions) == 0 {
		return domain.NewEmptyCategoryError(name)
	}

	next := c.state
	next.SelectedTest = &test
	next.ActiveCategory = &domain.Category{
		Name:      test.Name,
		Questions: slices.Clone(test.Questions),
		IsActive:  true,
	}
	next.View = ViewQuestions
	c.state = resetPagination(next, c.deck.PageSize)
	return nil
}

// Back leaves the current view: a test's questions return to its test
// selection, everything else returns home. In admin mode an open draft is
// discarded first.
func (c *NavigationController) Back() error {
	if err := c.ready(); err != nil {
		return err
	}

	next := c.state
	switch next.View {
	case ViewQuestions:
		next.ActiveCategory = nil
		if next.SelectedTest != nil {
			next.SelectedTest = nil
			next.View = ViewTestSelection
			c.state = resetPagination(next, c.deck.PageSize)
			return nil
		}
		c.state = goHome(next, c.deck.PageSize)
	case ViewTestSelection:
		c.state = goHome(next, c.deck.PageSize)
	case ViewAdmin:
		if next.AdminView != AdminViewList {
			c.CancelEdit()
			return nil
		}
		c.state = goHome(next, c.deck.PageSize)
	}
	return nil
}

// ToggleAdmin enters admin mode from any view, or leaves it for home.
func (c *NavigationController) ToggleAdmin() error {
	if err := c.ready(); err != nil {
		return err
	}

	next := c.state
	if next.View == ViewAdmin {
		c.state = goHome(next, c.deck.PageSize)
		return nil
	}
	next = goHome(next, c.deck.PageSize)
	next.View = ViewAdmin
	next.AdminView = AdminViewList
	c.state = next
	return nil
}

// NextPage advances one page; it is a no-op on the last page.
func (c *NavigationController) NextPage() {
	if c.state.View != ViewQuestions || c.state.Page.CurrentPage >= c.state.Page.TotalPages {
		return
	}
	next := c.state
	next.Page.CurrentPage++
	c.state = updatePagedQuestions(next, c.deck.PageSize)
}

// PrevPage goes back one page; it is a no-op on the first page.
func (c *NavigationController) PrevPage() {
	if c.state.View != ViewQuestions || c.state.Page.CurrentPage <= 1 {
		return
	}
	next := c.state
	next.Page.CurrentPage--
	c.state = updatePagedQuestions(next, c.deck.PageSize)
}

// ToggleReveal shows or hides the answer of a question on the active list.
func (c *NavigationController) ToggleReveal(id string) error {
	return c.updateQuestion(id, func(q domain.Question) (domain.Question, error) {
		return ToggleReveal(q), nil
	})
}

// SelectOption selects key on a question of the active list.
func (c *NavigationController) SelectOption(id, key string, checked bool) error {
	return c.updateQuestion(id, func(q domain.Question) (domain.Question, error) {
		return SelectOption(q, key, checked)
	})
}

// Submit grades a question of the active list.
func (c *NavigationController) Submit(id string) error {
	return c.updateQuestion(id, Submit)
}

// Question returns a question of the active list by id.
func (c *NavigationController) Question(id string) (domain.Question, bool) {
	if c.state.ActiveCategory == nil {
		return domain.Question{}, false
	}
	i := slices.IndexFunc(c.state.ActiveCategory.Questions, func(q domain.Question) bool { return q.ID == id })
	if i < 0 {
		return domain.Question{}, false
	}
	return c.state.ActiveCategory.Questions[i], true
}

func (c *NavigationController) updateQuestion(id string, apply func(domain.Question) (domain.Question, error)) error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.state.View != ViewQuestions || c.state.ActiveCategory == nil {
		return invalidTransition("no question list is showing")
	}

	questions := c.state.ActiveCategory.Questions
	i := slices.IndexFunc(questions, func(q domain.Question) bool { return q.ID == id })
	if i < 0 {
		return domain.NewQuestionNotFoundError(id)
	}

	updated, err := apply(questions[i])
	if err != nil {
		return err
	}

	next := c.state
	active := *next.ActiveCategory
	active.Questions = slices.Clone(questions)
	active.Questions[i] = updated
	next.ActiveCategory = &active
	c.state = updatePagedQuestions(next, c.deck.PageSize)
	return nil
}

// StartAdd opens an empty draft.
func (c *NavigationController) StartAdd() error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	draft := c.editor.StartAdd()
	next := c.state
	next.Editing = &draft
	next.AdminView = AdminViewAdd
	c.state = next
	return nil
}

// StartEdit opens a draft of an existing question.
func (c *NavigationController) StartEdit(id string) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	draft, err := c.editor.StartEdit(c.state.Categories, id)
	if err != nil {
		return err
	}
	next := c.state
	next.Editing = &draft
	next.AdminView = AdminViewEdit
	c.state = next
	return nil
}

// CancelEdit discards the draft and returns to the admin list.
func (c *NavigationController) CancelEdit() {
	if c.state.View != ViewAdmin {
		return
	}
	next := c.state
	next.Editing = nil
	next.AdminView = AdminViewList
	c.state = next
}

// SaveDraft saves draft in the mode of the open draft. The identity of the
// edited question comes from the open draft, not from the submitted one.
func (c *NavigationController) SaveDraft(ctx context.Context, draft domain.EditingQuestion) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if c.state.Editing == nil || c.state.AdminView == AdminViewList {
		return invalidTransition("no question is being edited")
	}

	adding := c.state.AdminView == AdminViewAdd
	draft.OriginalQuestion = c.state.Editing.OriginalQuestion
	categories, err := c.editor.Save(ctx, c.state.Categories, draft, adding)
	if err != nil {
		return err
	}
	c.replaceCategories(categories)
	return nil
}

// DeleteQuestion removes a question once the user has confirmed.
func (c *NavigationController) DeleteQuestion(ctx context.Context, id string, confirmed bool) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if !confirmed {
		return domain.ValidationErrors{domain.NewInvalidValueError("confirm", "deletion must be confirmed")}
	}
	categories, err := c.editor.Delete(ctx, c.state.Categories, id)
	if err != nil {
		return err
	}
	c.replaceCategories(categories)
	return nil
}

// AdminQuestions lists the flattened question set filtered by query.
func (c *NavigationController) AdminQuestions(query string) ([]domain.FlatQuestion, error) {
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	return Search(Flatten(c.state.Categories), query), nil
}

func (c *NavigationController) requireAdmin() error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.state.View != ViewAdmin {
		return invalidTransition("admin mode is off")
	}
	return nil
}

func (c *NavigationController) replaceCategories(categories []domain.Category) {
	next := c.state
	next.Categories = categories
	next.Editing = nil
	next.AdminView = AdminViewList
	c.state = next
}

// CategoryNames lists the loaded categories in deck order.
func (c *NavigationController) CategoryNames() []string {
	names := make([]string, 0, len(c.state.Categories))
	for _, category := range c.state.Categories {
		names = append(names, category.Name)
	}
	return names
}

// IsTestCategory reports whether name is grouped into tests when opened.
func (c *NavigationController) IsTestCategory(name string) bool {
	return name == c.deck.TestCategory
}

func goHome(s AppState, pageSize int) AppState {
	s.View = ViewHome
	s.Categories = markActive(s.Categories, "")
	s.ActiveCategory = nil
	s.Tests = nil
	s.SelectedTest = nil
	s.AdminView = ""
	s.Editing = nil
	return resetPagination(s, pageSize)
}

func resetPagination(s AppState, pageSize int) AppState {
	s.Page.CurrentPage = 1
	return updatePagedQuestions(s, pageSize)
}

func updatePagedQuestions(s AppState, pageSize int) AppState {
	var list []domain.Question
	if s.ActiveCategory != nil {
		list = s.ActiveCategory.Questions
	}
	current := min(max(1, s.Page.CurrentPage), TotalPages(len(list), pageSize))
	s.Page = Paginate(list, pageSize, current)
	return s
}

// markActive returns a copy of categories with only name flagged active.
func markActive(categories []domain.Category, name string) []domain.Category {
	marked := slices.Clone(categories)
	for i := range marked {
		marked[i].IsActive = marked[i].Name == name
	}
	return marked
}
