package importer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"quiz-deck/internal/adapter"
	"quiz-deck/internal/config"
	"quiz-deck/internal/domain"
	"quiz-deck/internal/logger"
	"quiz-deck/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

const sampleDump = `Exam dump header
NEW QUESTION 1
Which tool grounds
an agent in CRM data?
A. Prompt Builder
B. Flow Builder
Answer: A
Explanation:
Prompt templates can merge record fields.

NEW QUESTION 2
This block has no answer marker.

new question 3
What limits topic scope?
answer: Classification description
More detail on a second line.
EXPLANATION Topic instructions and scope.
NEW QUESTION 4
Answer: B
`

func TestParseDump(t *testing.T) {
	items := ParseDump(sampleDump)
	require.Len(t, items, 2)

	assert.Equal(t, "Which tool grounds an agent in CRM data? A. Prompt Builder B. Flow Builder", items[0].Question)
	assert.Equal(t, "A", items[0].Answer)
	assert.Equal(t, "Prompt templates can merge record fields.", items[0].Explanation)
	assert.Empty(t, items[0].ID)
	assert.Empty(t, items[0].Options)

	assert.Equal(t, "What limits topic scope?", items[1].Question)
	assert.Equal(t, "Classification description", items[1].Answer)
	assert.Equal(t, "Topic instructions and scope.", items[1].Explanation)
}

func TestParseDump_NoQuestions(t *testing.T) {
	assert.Empty(t, ParseDump(""))
	assert.Empty(t, ParseDump("just some notes\nwithout markers"))
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("NEW QUESTION 1\nFirst?\nAnswer: A\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("NEW QUESTION 1\nSecond?\nAnswer: B\nNEW QUESTION 2\nThird?\nAnswer: C\n"), 0o644))

	items, err := ParseFiles(context.Background(), []string{second, first})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Second?", items[0].Question)
	assert.Equal(t, "Third?", items[1].Question)
	assert.Equal(t, "First?", items[2].Question)

	_, err = ParseFiles(context.Background(), []string{first, filepath.Join(dir, "missing.txt")})
	assert.Error(t, err)
}

func TestAppendToCategory(t *testing.T) {
	items := []domain.RawQuestion{{Question: "New?", Answer: "A"}}

	t.Run("existing category gets the next version", func(t *testing.T) {
		doc := []byte(`{"categories":[{"name":"Agentforce","questions":[{"id":"V1Q1","question":"Old?","answer":"B"},{"id":"V4Q1","question":"Older?","answer":"C"}]},{"name":"Flows","questions":[]}]}`)
		out, version, err := AppendToCategory(doc, "Agentforce", 0, items)
		require.NoError(t, err)
		assert.Equal(t, 5, version)

		var payload domain.Payload
		require.NoError(t, json.Unmarshal(out, &payload))
		require.NotNil(t, payload.Categories)
		cats := *payload.Categories
		require.Len(t, cats, 2)
		require.Len(t, cats[0].Questions, 3)
		assert.Equal(t, "V1Q1", cats[0].Questions[0].ID)
		assert.Equal(t, "V5Q1", cats[0].Questions[2].ID)
		assert.Equal(t, "New?", cats[0].Questions[2].Question)
		assert.Equal(t, "Flows", cats[1].Name)
	})

	t.Run("explicit version skips ids already used", func(t *testing.T) {
		doc := []byte(`{"categories":[{"name":"Agentforce","questions":[{"id":"V2Q1","question":"Old?","answer":"B"}]},{"name":"Flows","questions":[{"id":"V2Q2","question":"Flow?","answer":"A"}]}]}`)
		two := []domain.RawQuestion{{Question: "One?", Answer: "A"}, {Question: "Two?", Answer: "B"}}
		out, version, err := AppendToCategory(doc, "Agentforce", 2, two)
		require.NoError(t, err)
		assert.Equal(t, 2, version)

		var payload domain.Payload
		require.NoError(t, json.Unmarshal(out, &payload))
		agentforce := (*payload.Categories)[0].Questions
		require.Len(t, agentforce, 3)
		assert.Equal(t, "V2Q3", agentforce[1].ID)
		assert.Equal(t, "V2Q4", agentforce[2].ID)
	})

	t.Run("items with an id keep it", func(t *testing.T) {
		out, _, err := AppendToCategory(nil, "Agentforce", 0, []domain.RawQuestion{{ID: "X9", Question: "Kept?", Answer: "A"}})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"id": "X9"`)
	})

	t.Run("missing category", func(t *testing.T) {
		out, version, err := AppendToCategory([]byte(`{"categories":[{"name":"Flows","questions":[]}]}`), "Agentforce", 0, items)
		require.NoError(t, err)
		assert.Equal(t, 1, version)

		var payload domain.Payload
		require.NoError(t, json.Unmarshal(out, &payload))
		cats := *payload.Categories
		require.Len(t, cats, 2)
		assert.Equal(t, "Agentforce", cats[1].Name)
		require.Len(t, cats[1].Questions, 1)
		assert.Equal(t, "V1Q1", cats[1].Questions[0].ID)
	})

	t.Run("empty document", func(t *testing.T) {
		out, _, err := AppendToCategory(nil, "Agentforce", 0, items)
		require.NoError(t, err)
		assert.JSONEq(t, `{"categories":[{"name":"Agentforce","questions":[{"id":"V1Q1","question":"New?","answer":"A"}]}]}`, string(out))
	})

	t.Run("invalid document", func(t *testing.T) {
		_, _, err := AppendToCategory([]byte("{"), "Agentforce", 0, items)
		assert.Error(t, err)
	})
}

func TestNextVersion(t *testing.T) {
	assert.Equal(t, 1, NextVersion(nil))
	assert.Equal(t, 1, NextVersion([]domain.RawQuestion{{ID: "F1"}, {}}))
	assert.Equal(t, 8, NextVersion([]domain.RawQuestion{{ID: "V3Q1"}, {ID: "V7Q2~2"}, {ID: "X"}}))
}

func TestImportedQuestionsAreReachableAsTest(t *testing.T) {
	ctx := context.Background()
	doc := []byte(`{"categories":[{"name":"Agentforce","questions":[{"id":"V1Q1","question":"Old?","options":{"A":"x","B":"y"},"answer":"A"}]}]}`)

	out, version, err := AppendToCategory(doc, "Agentforce", 0, ParseDump(sampleDump))
	require.NoError(t, err)
	require.Equal(t, 2, version)

	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	store := service.NewQuestionStore(adapter.NewMemoryOverrideStore(), adapter.NewFileQuestionSource(path), "questionsData")
	nav := service.NewNavigationController(store, config.DeckConfig{PageSize: 5, TestCategory: "Agentforce", TestBlockSize: 60})
	require.NoError(t, nav.Start(ctx))

	require.NoError(t, nav.SelectCategory("Agentforce"))
	state := nav.State()
	assert.Equal(t, service.ViewTestSelection, state.View)
	require.Len(t, state.Tests, 2)
	assert.Equal(t, "Test 2", state.Tests[1].Name)
	assert.Equal(t, 2, state.Tests[1].QuestionCount)

	require.NoError(t, nav.SelectTest("Test 2"))
	state = nav.State()
	assert.Equal(t, service.ViewQuestions, state.View)
	require.Len(t, state.Page.PagedQuestions, 2)
	assert.Equal(t, "V2Q1", state.Page.PagedQuestions[0].ID)
	assert.Equal(t, "What limits topic scope?", state.Page.PagedQuestions[1].Text)
}
