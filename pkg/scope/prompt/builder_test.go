package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var promptToday = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestBuildScopePromptTruncatesRFP(t *testing.T) {
	b := NewBuilder(1000, 100, 14)

	out := b.BuildScopePrompt(words(100), nil, ProjectContext{}, "", promptToday)

	// 14 tokens allow about ten words of RFP text.
	assert.Contains(t, out, words(10))
	assert.NotContains(t, out, words(11))
	assert.Contains(t, out, "(no KB context found)")
	assert.Contains(t, out, "2025-06-01")
}

func TestBuildScopePromptPacksChunksUntilBudget(t *testing.T) {
	// Budget 40 tokens, RFP uses ~13, each chunk ~13: two chunks fit,
	// the third overflows and packing stops.
	b := NewBuilder(44, 4, 100)

	chunks := []string{
		"alpha " + words(9),
		"bravo " + words(9),
		"charlie " + words(9),
		"delta " + words(9),
	}
	out := b.BuildScopePrompt(words(10), chunks, ProjectContext{}, "", promptToday)

	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "bravo")
	assert.NotContains(t, out, "charlie")
	assert.NotContains(t, out, "delta")
}

func TestBuildScopePromptQAContextVerbatim(t *testing.T) {
	b := NewBuilder(10000, 100, 1000)
	qa := "### Scope\nQ: Which regions?\nA: EMEA only"

	out := b.BuildScopePrompt("rfp body", nil, ProjectContext{}, qa, promptToday)

	assert.Contains(t, out, qa)
}

func TestBuildScopePromptProjectFields(t *testing.T) {
	b := NewBuilder(10000, 100, 1000)

	out := b.BuildScopePrompt("rfp", nil, ProjectContext{Name: "CRM Revamp", Domain: "Retail"}, "", promptToday)

	assert.Contains(t, out, "CRM Revamp")
	assert.Contains(t, out, "Retail")
	// unset fields are left for the model to infer
	assert.Contains(t, out, "(infer if missing)")
}

func TestBuildRegenerationPrompt(t *testing.T) {
	b := NewBuilder(10000, 100, 1000)

	out := b.BuildRegenerationPrompt("remove the QA phase", `{"activities": []}`, promptToday)

	assert.Contains(t, out, "remove the QA phase")
	assert.Contains(t, out, `{"activities": []}`)
	assert.Contains(t, out, "2025-06-01")
}

func TestBuildQuestionnairePromptDefaults(t *testing.T) {
	b := NewBuilder(10000, 100, 1000)

	out := b.BuildQuestionnairePrompt("rfp", nil, ProjectContext{})

	assert.Contains(t, out, "Unnamed Project")
	assert.Contains(t, out, "Modern Web Stack")
}

func TestBuildArchitecturePromptDefaults(t *testing.T) {
	b := NewBuilder(10000, 100, 1000)

	out := b.BuildArchitecturePrompt("rfp", []string{"kb chunk"}, ProjectContext{Name: "Data Platform"})

	assert.Contains(t, out, "Data Platform")
	assert.Contains(t, out, "kb chunk")
	assert.Contains(t, out, "Modern Web + Cloud Stack")
}
