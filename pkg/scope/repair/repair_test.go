package repair

import (
	"testing"

	"ai-scoping-be/pkg/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFromFencedBlock(t *testing.T) {
	raw := "Here is the scope:\n```json\n{\"overview\": {\"Project Name\": \"CRM\"}, \"activities\": []}\n```\nDone."

	doc := ExtractJSON(raw)

	require.NotNil(t, doc)
	assert.Equal(t, "CRM", doc.OverviewString("Project Name"))
}

func TestExtractJSONFromSurroundingText(t *testing.T) {
	raw := `Sure! {"overview": {"Domain": "Retail"}, "activities": []} hope that helps`

	doc := ExtractJSON(raw)

	assert.Equal(t, "Retail", doc.OverviewString("Domain"))
}

func TestExtractJSONGarbageYieldsEmptyDocument(t *testing.T) {
	doc := ExtractJSON("I could not produce a scope this time, sorry.")

	require.NotNil(t, doc)
	assert.True(t, doc.IsEmpty())
}

func TestContentGuard(t *testing.T) {
	doc := &scope.Document{
		Activities: []scope.Activity{
			{Name: "Real Work", Description: "does things", Owner: "Backend Developer"},
			{Name: "", Description: "x", Owner: "A"},
			{Name: "y", Description: "", Owner: "B"},
			{Name: "z", Description: "w", Owner: "unassigned"},
		},
	}

	bad, emptyCount := ContentGuard(doc, 0.7)

	assert.True(t, bad)
	assert.Equal(t, 3, emptyCount)
}

func TestContentGuardAtThresholdPasses(t *testing.T) {
	var doc scope.Document
	for i := 0; i < 7; i++ {
		doc.Activities = append(doc.Activities, scope.Activity{Name: "", Description: "x", Owner: "A"})
	}
	for i := 0; i < 3; i++ {
		doc.Activities = append(doc.Activities, scope.Activity{Name: "ok", Description: "x", Owner: "A"})
	}

	// 7 of 10 empty is not strictly above the 0.7 ratio.
	bad, emptyCount := ContentGuard(&doc, 0.7)

	assert.False(t, bad)
	assert.Equal(t, 7, emptyCount)
}

func manyActivities(n int) []scope.Activity {
	out := make([]scope.Activity, n)
	for i := range out {
		out[i] = scope.Activity{
			Name:        "Task",
			Description: "desc",
			Owner:       "Backend Developer",
			StartDate:   "2025-01-01",
			EndDate:     "2025-02-01",
		}
	}
	return out
}

func TestCheckRegressionShrinkWithoutRemoval(t *testing.T) {
	draft := &scope.Document{Activities: manyActivities(10)}
	updated := &scope.Document{Activities: manyActivities(3)}
	// vary dates so the identical-dates check stays quiet
	updated.Activities[1].StartDate = "2025-01-05"

	check := CheckRegression(updated, draft, "make it shorter", 0.7)

	assert.True(t, check.Restore)
	require.NotEmpty(t, check.Failures)
}

func TestCheckRegressionShrinkWithRemovalInstruction(t *testing.T) {
	draft := &scope.Document{Activities: manyActivities(10)}
	updated := &scope.Document{Activities: manyActivities(3)}
	updated.Activities[1].StartDate = "2025-01-05"

	check := CheckRegression(updated, draft, "remove the QA activities", 0.7)

	assert.False(t, check.Restore)
}

func TestCheckRegressionDegenerateOutput(t *testing.T) {
	draft := &scope.Document{Activities: manyActivities(4)}

	unassigned := &scope.Document{Activities: manyActivities(4)}
	for i := range unassigned.Activities {
		unassigned.Activities[i].Owner = "Unassigned"
		unassigned.Activities[i].StartDate = "2025-01-0" + string(rune('1'+i))
	}
	check := CheckRegression(unassigned, draft, "reword the descriptions", 0.7)
	assert.True(t, check.Restore)

	identical := &scope.Document{Activities: manyActivities(4)}
	check = CheckRegression(identical, draft, "reword the descriptions", 0.7)
	assert.True(t, check.Restore)
	assert.Contains(t, check.Failures[0], "identical dates")

	roleNamed := &scope.Document{Activities: manyActivities(4)}
	for i := range roleNamed.Activities {
		roleNamed.Activities[i].Name = "Project Manager"
		roleNamed.Activities[i].StartDate = "2025-01-0" + string(rune('1'+i))
	}
	check = CheckRegression(roleNamed, draft, "reword the descriptions", 0.7)
	assert.True(t, check.Restore)
}

func TestRestoreDraftActivities(t *testing.T) {
	draft := &scope.Document{
		Activities:     manyActivities(5),
		ResourcingPlan: []scope.PlanEntry{{ID: 1, Role: "Backend Developer"}},
	}
	updated := &scope.Document{
		Overview: map[string]interface{}{"Project Name": "Renamed"},
	}

	RestoreDraftActivities(updated, draft)

	assert.Len(t, updated.Activities, 5)
	assert.Len(t, updated.ResourcingPlan, 1)
	assert.Equal(t, "Renamed", updated.OverviewString("Project Name"))
}
