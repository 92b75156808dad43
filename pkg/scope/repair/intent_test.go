package repair

import (
	"testing"

	"ai-scoping-be/pkg/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntents(t *testing.T) {
	tests := []struct {
		name         string
		instructions string
		wantKind     IntentKind
		wantRole     string
		wantPercent  int
	}{
		{"remove role", "Remove QA Engineer from the project", IntentRemoveRole, "qa engineer", 0},
		{"remove role with period", "please remove the data architect.", IntentRemoveRole, "the data architect", 0},
		{"percent discount", "Apply a 10% discount to the total", IntentDiscount, "", 10},
		{"discount of", "give us a discount of 15 %", IntentDiscount, "", 15},
		{"apply percent", "apply 20% across the board", IntentDiscount, "", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intents := ParseIntents(tt.instructions)

			require.Len(t, intents, 1)
			assert.Equal(t, tt.wantKind, intents[0].Kind)
			assert.Equal(t, tt.wantRole, intents[0].Role)
			assert.Equal(t, tt.wantPercent, intents[0].DiscountPercent)
		})
	}
}

func TestParseIntentsUnparsedDiscountKeyword(t *testing.T) {
	intents := ParseIntents("we would like some discount on this")

	require.Len(t, intents, 1)
	assert.Equal(t, IntentUnknown, intents[0].Kind)
	assert.Equal(t, "discount", intents[0].Keyword)
}

func TestParseIntentsNoEdits(t *testing.T) {
	assert.Empty(t, ParseIntents("shift everything two weeks later"))
}

func TestRemoveRoleReassignsOwner(t *testing.T) {
	doc := &scope.Document{
		Activities: []scope.Activity{
			{Name: "Testing", Owner: "QA Engineer", Resources: "Backend Developer, Data Analyst"},
			{Name: "Build", Owner: "Backend Developer", Resources: "QA Engineer"},
			{Name: "Solo QA", Owner: "Senior QA Engineer", Resources: ""},
		},
	}

	changed := RemoveRole(doc, "qa engineer", "Project Manager")

	require.True(t, changed)
	assert.Equal(t, "Backend Developer", doc.Activities[0].Owner)
	assert.Equal(t, "Data Analyst", doc.Activities[0].Resources)
	assert.Equal(t, "", doc.Activities[1].Resources)
	// contains-match catches seniority prefixes; no resources left means fallback
	assert.Equal(t, "Project Manager", doc.Activities[2].Owner)
}

func TestApplyDiscountDoesNotOverwrite(t *testing.T) {
	doc := &scope.Document{DiscountPercentage: 5}

	ApplyDiscount(doc, 20)
	assert.Equal(t, 5.0, doc.DiscountPercentage)

	fresh := &scope.Document{}
	ApplyDiscount(fresh, 20)
	assert.Equal(t, 20.0, fresh.DiscountPercentage)
}
