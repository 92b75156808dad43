package service

import (
	"testing"

	"ai-scoping-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionnaireNestedJSON(t *testing.T) {
	raw := "```json\n" + `{
		"questions": [
			{"category": "Scope", "items": [{"question": "Which regions are in scope?"}]},
			{"category": "Data", "items": [{"question": "What volume is expected?"}, {"question": "Any PII?"}]}
		]
	}` + "\n```"

	q := parseQuestionnaire(raw)

	require.Len(t, q.Questions, 2)
	assert.Equal(t, "Scope", q.Questions[0].Category)
	assert.Len(t, q.Questions[1].Items, 2)
}

func TestParseQuestionnaireFlatList(t *testing.T) {
	raw := `[
		{"category": "Scope", "question": "Which regions?"},
		{"category": "Data", "question": "What volume?"},
		{"category": "Scope", "question": "Which languages?"}
	]`

	q := parseQuestionnaire(raw)

	require.Len(t, q.Questions, 2)
	assert.Equal(t, "Scope", q.Questions[0].Category)
	assert.Len(t, q.Questions[0].Items, 2)
	assert.Equal(t, "Which languages?", q.Questions[0].Items[1].Question)
}

func TestParseQuestionnairePlainStrings(t *testing.T) {
	q := parseQuestionnaire(`["Which regions?", "What volume?"]`)

	require.Len(t, q.Questions, 1)
	assert.Equal(t, "General", q.Questions[0].Category)
	assert.Len(t, q.Questions[0].Items, 2)
}

func TestParseQuestionnaireRawText(t *testing.T) {
	raw := `Here are my questions.

## Scope
1. Which regions are in scope?
2. Which languages must be supported?

Data:
- What data volume is expected?

Some closing remark without a question mark.`

	q := parseQuestionnaire(raw)

	require.Len(t, q.Questions, 2)
	assert.Equal(t, "Scope", q.Questions[0].Category)
	require.Len(t, q.Questions[0].Items, 2)
	assert.Equal(t, "Which regions are in scope?", q.Questions[0].Items[0].Question)
	assert.Equal(t, "Data", q.Questions[1].Category)
}

func TestParseQuestionnaireGarbage(t *testing.T) {
	q := parseQuestionnaire("nothing useful here")

	assert.Empty(t, q.Questions)
}

func TestAnsweredSummary(t *testing.T) {
	q := &dto.Questionnaire{
		Questions: []dto.QuestionCategory{
			{Category: "Scope", Items: []dto.QuestionItem{
				{Question: "Which regions?", UserUnderstanding: "EMEA only"},
				{Question: "Which languages?"},
			}},
		},
	}

	summary := answeredSummary(q)

	assert.Equal(t, "Q: Which regions?\nA: EMEA only", summary)
}
