package scope

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityUnmarshalToleratesSlop(t *testing.T) {
	raw := `{
		"ID": "3",
		"Activities": "Data Migration",
		"Description": null,
		"Owner": "Data Engineer",
		"Resources": null,
		"Start Date": "2025-01-01",
		"End Date": "2025-02-01",
		"Effort Months": "1.5"
	}`

	var act Activity
	require.NoError(t, json.Unmarshal([]byte(raw), &act))

	assert.Equal(t, 3, act.ID)
	assert.Equal(t, "Data Migration", act.Name)
	assert.Equal(t, "", act.Description)
	assert.Equal(t, "Data Engineer", act.Owner)
	assert.Equal(t, 1.5, act.EffortMonths)
}

func TestPlanEntryMarshalKeyOrder(t *testing.T) {
	entry := PlanEntry{
		ID:           1,
		Role:         "Backend Developer",
		RatePerMonth: 3000,
		Monthly:      map[string]float64{"Month 2": 0.5, "Month 1": 1.0, "Month 10": 0.25},
		Efforts:      1.75,
		Cost:         5250,
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	s := string(data)
	order := []string{`"ID"`, `"Resources"`, `"Rate/month"`, `"Month 1"`, `"Month 2"`, `"Month 10"`, `"Efforts"`, `"Cost"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key)
		require.GreaterOrEqual(t, idx, 0, key)
		assert.Greater(t, idx, last, "%s out of order in %s", key, s)
		last = idx
	}
}

func TestPlanEntryRoundTrip(t *testing.T) {
	entry := PlanEntry{
		ID:           2,
		Role:         "QA Engineer",
		RatePerMonth: 2000,
		Monthly:      map[string]float64{"Month 1": 0.25, "Month 2": 0.75},
		Efforts:      1.0,
		Cost:         2000,
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var back PlanEntry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, entry, back)
}

func TestDocumentIsEmpty(t *testing.T) {
	assert.True(t, (&Document{}).IsEmpty())
	assert.True(t, (*Document)(nil).IsEmpty())
	assert.False(t, (&Document{Overview: map[string]interface{}{"Project Name": "X"}}).IsEmpty())
	assert.False(t, (&Document{Activities: []Activity{{Name: "A"}}}).IsEmpty())
}

func TestOverviewString(t *testing.T) {
	doc := &Document{Overview: map[string]interface{}{
		"Project Name": "CRM",
		"Duration":     2.5,
	}}

	assert.Equal(t, "CRM", doc.OverviewString("Project Name"))
	assert.Equal(t, "", doc.OverviewString("Duration")) // not a string
	assert.Equal(t, "", doc.OverviewString("Missing"))
}
