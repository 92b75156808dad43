package repair

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"ai-scoping-be/pkg/scope"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?(.*?)```")
)

// ExtractJSON pulls a scope document out of raw model output. Markdown fences
// are stripped first; if the remainder is not valid JSON the outermost {...}
// span is reparsed. Anything unrecoverable yields an empty document.
func ExtractJSON(raw string) *scope.Document {
	cleaned := stripCodeFences(raw)

	var doc scope.Document
	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), &doc); err == nil {
		return &doc
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		doc = scope.Document{}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &doc); err == nil {
			return &doc
		}
	}
	return &scope.Document{}
}

func stripCodeFences(s string) string {
	if m := fencedBlockRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// ContentGuard reports whether a freshly generated document is structurally
// present but effectively content-free: more than maxEmptyRatio of its
// activities have an empty name, empty description, or no real owner.
// Such output is rejected wholesale.
func ContentGuard(doc *scope.Document, maxEmptyRatio float64) (bad bool, emptyCount int) {
	if doc == nil || len(doc.Activities) == 0 {
		return false, 0
	}
	for _, act := range doc.Activities {
		owner := strings.ToLower(strings.TrimSpace(act.Owner))
		if strings.TrimSpace(act.Name) == "" ||
			strings.TrimSpace(act.Description) == "" ||
			owner == "" || owner == "unassigned" {
			emptyCount++
		}
	}
	return float64(emptyCount) > float64(len(doc.Activities))*maxEmptyRatio, emptyCount
}

// commonRoles are the role names an LLM sometimes emits as activity names
// when it degenerates into listing the team instead of the work.
var commonRoles = []string{
	"project manager", "business analyst", "data architect", "data engineer",
	"backend developer", "frontend developer", "qa engineer", "devops engineer",
	"cloud architect", "data analyst", "ux designer",
}

// RegressionCheck is the outcome of validating a regenerated document against
// the prior draft.
type RegressionCheck struct {
	Restore  bool
	Failures []string
}

// CheckRegression decides whether a regenerated scope must be discarded in
// favor of the draft's activities. Triggers on a large unexplained shrink of
// the activity list or on structurally degenerate output (role names as
// activities, identical dates everywhere, mostly unassigned owners or empty
// descriptions).
func CheckRegression(updated, draft *scope.Document, instructions string, shrinkRate float64) RegressionCheck {
	var check RegressionCheck

	newCount := len(updated.Activities)
	origCount := len(draft.Activities)
	lower := strings.ToLower(instructions)
	isRemoval := strings.Contains(lower, "remove") || strings.Contains(lower, "delete")

	if newCount > 0 {
		var unassigned, emptyDesc, roleNamed int
		datePairs := map[string]struct{}{}
		for _, act := range updated.Activities {
			owner := strings.ToLower(strings.TrimSpace(act.Owner))
			if owner == "" || owner == "unassigned" {
				unassigned++
			}
			if strings.TrimSpace(act.Description) == "" {
				emptyDesc++
			}
			name := strings.ToLower(strings.TrimSpace(act.Name))
			for _, role := range commonRoles {
				if name == role {
					roleNamed++
					break
				}
			}
			datePairs[act.StartDate+"|"+act.EndDate] = struct{}{}
		}

		if float64(unassigned) > float64(newCount)*0.5 {
			check.Failures = append(check.Failures,
				fmt.Sprintf("%d/%d activities have Unassigned owner", unassigned, newCount))
		}
		if float64(emptyDesc) > float64(newCount)*0.5 {
			check.Failures = append(check.Failures,
				fmt.Sprintf("%d/%d activities have empty descriptions", emptyDesc, newCount))
		}
		if float64(roleNamed) > float64(newCount)*0.3 {
			check.Failures = append(check.Failures,
				fmt.Sprintf("%d/%d activities are named after roles", roleNamed, newCount))
		}
		if len(datePairs) == 1 && newCount > 1 {
			check.Failures = append(check.Failures,
				fmt.Sprintf("all %d activities have identical dates", newCount))
		}
	}

	degenerate := len(check.Failures) > 0

	shrunk := float64(newCount) < float64(origCount)*shrinkRate && !isRemoval
	if shrunk {
		check.Failures = append(check.Failures,
			fmt.Sprintf("activity count dropped from %d to %d without a removal instruction", origCount, newCount))
	}

	check.Restore = shrunk || degenerate
	return check
}

// RestoreDraftActivities copies the draft's activities (and resourcing plan,
// when the updated one is missing) into the updated document. The overview is
// left alone so metadata edits still take effect.
func RestoreDraftActivities(updated, draft *scope.Document) {
	updated.Activities = draft.Activities
	if len(updated.ResourcingPlan) == 0 {
		updated.ResourcingPlan = draft.ResourcingPlan
	}
}
