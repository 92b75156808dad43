package schedule

import (
	"testing"
	"time"

	"ai-scoping-be/pkg/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func TestNormalizeTwoActivityAllocation(t *testing.T) {
	doc := &scope.Document{
		Activities: []scope.Activity{
			{ID: 1, Name: "Discovery", Owner: "Business Analyst", StartDate: "2025-01-01", EndDate: "2025-01-31"},
			{ID: 2, Name: "Data Pipeline", Owner: "Data Engineer", StartDate: "2025-01-20", EndDate: "2025-02-20"},
		},
	}

	alloc := Normalize(doc, testToday)

	require.Equal(t, []string{"Month 1", "Month 2"}, alloc.MonthLabels)
	assert.InDelta(t, 1.67, alloc.DurationMonths, 0.001)

	// 30 active days fill the first window completely.
	assert.Equal(t, 1.0, alloc.Usage["Business Analyst"]["Month 1"])
	assert.Equal(t, 0.0, alloc.Usage["Business Analyst"]["Month 2"])

	// 11 days in window one, 20 days in window two.
	assert.Equal(t, 0.5, alloc.Usage["Data Engineer"]["Month 1"])
	assert.Equal(t, 0.75, alloc.Usage["Data Engineer"]["Month 2"])
}

func TestNormalizeRepairsDatesAndOwner(t *testing.T) {
	doc := &scope.Document{
		Activities: []scope.Activity{
			{Name: "Setup", Owner: "  ", Resources: "QA Engineer", StartDate: "", EndDate: ""},
			{Name: "Backwards", Owner: "Data Engineer", StartDate: "2025-04-01", EndDate: "2025-03-01"},
		},
	}

	Normalize(doc, testToday)

	first := doc.Activities[0]
	assert.Equal(t, "Unassigned", first.Owner)
	assert.Equal(t, "2025-03-10", first.StartDate)
	assert.Equal(t, "2025-04-09", first.EndDate)
	assert.Equal(t, 1.0, first.EffortMonths)

	second := doc.Activities[1]
	assert.Equal(t, "2025-04-01", second.StartDate)
	assert.Equal(t, "2025-05-01", second.EndDate)
}

func TestNormalizeStripsOwnerFromResources(t *testing.T) {
	doc := &scope.Document{
		Activities: []scope.Activity{
			{Name: "Build", Owner: "Backend Developer", Resources: "backend developer, QA Engineer", StartDate: "2025-01-01", EndDate: "2025-01-31"},
		},
	}

	Normalize(doc, testToday)

	assert.Equal(t, "QA Engineer", doc.Activities[0].Resources)
}

func TestNormalizeSortsAndRenumbers(t *testing.T) {
	doc := &scope.Document{
		Activities: []scope.Activity{
			{ID: 7, Name: "Later", Owner: "A", StartDate: "2025-02-01", EndDate: "2025-02-15"},
			{ID: 3, Name: "Earlier", Owner: "B", StartDate: "2025-01-01", EndDate: "2025-01-15"},
			{ID: 9, Name: "Same Day", Owner: "C", StartDate: "2025-01-01", EndDate: "2025-01-10"},
		},
	}

	Normalize(doc, testToday)

	require.Len(t, doc.Activities, 3)
	assert.Equal(t, "Earlier", doc.Activities[0].Name)
	assert.Equal(t, "Same Day", doc.Activities[1].Name) // stable for equal starts
	assert.Equal(t, "Later", doc.Activities[2].Name)
	for i, act := range doc.Activities {
		assert.Equal(t, i+1, act.ID)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	doc := &scope.Document{
		Activities: []scope.Activity{
			{Name: "Design", Owner: "UX Designer", Resources: "Frontend Developer", StartDate: "2025-01-05", EndDate: "2025-02-10"},
			{Name: "Build", Owner: "Backend Developer", StartDate: "2025-02-01", EndDate: "2025-03-15"},
		},
	}

	first := Normalize(doc, testToday)
	snapshot := make([]scope.Activity, len(doc.Activities))
	copy(snapshot, doc.Activities)

	second := Normalize(doc, testToday)

	assert.Equal(t, snapshot, doc.Activities)
	assert.Equal(t, first, second)
}

func TestNormalizeEmptyDocument(t *testing.T) {
	doc := &scope.Document{}

	alloc := Normalize(doc, testToday)

	assert.Equal(t, 1.0, alloc.DurationMonths)
	assert.Equal(t, []string{"Month 1"}, alloc.MonthLabels)
	assert.Empty(t, alloc.RoleOrder)
}

func TestQuantizeDays(t *testing.T) {
	tests := []struct {
		days float64
		want float64
	}{
		{0, 0.0},
		{0.5, 0.0},
		{1, 0.25},
		{7, 0.25},
		{8, 0.5},
		{14, 0.5},
		{15, 0.75},
		{21, 0.75},
		{22, 1.0},
		{30, 1.0},
	}

	for _, tt := range tests {
		if got := quantizeDays(tt.days); got != tt.want {
			t.Errorf("quantizeDays(%v) = %v, want %v", tt.days, got, tt.want)
		}
	}
}
