package repair

import (
	"regexp"
	"strconv"
	"strings"

	"ai-scoping-be/pkg/scope"
)

// IntentKind classifies a deterministic edit parsed from user instructions.
type IntentKind int

const (
	IntentRemoveRole IntentKind = iota
	IntentDiscount
	// IntentUnknown flags a recognized keyword whose parameters could not be
	// parsed; callers should log it rather than silently ignore.
	IntentUnknown
)

// Intent is one deterministic edit extracted from free-form instructions.
type Intent struct {
	Kind            IntentKind
	Role            string // IntentRemoveRole
	DiscountPercent int    // IntentDiscount
	Keyword         string // IntentUnknown
}

var (
	removeRoleRe = regexp.MustCompile(`remove\s+([a-zA-Z\s]+?)(?:\s*(?:from|,|\.|\band\b|$))`)

	discountRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*%\s*discount`),
		regexp.MustCompile(`discount\s+(?:of\s+)?(\d+)\s*%`),
		regexp.MustCompile(`apply\s+(\d+)\s*%`),
		regexp.MustCompile(`give\s+(\d+)\s*%`),
	}

	discountKeywords = []string{"discount", "reduction", "reduce cost"}
)

// ParseIntents extracts the edits that are enforced deterministically after
// the model pass: role removal and discounts. Matching is case-insensitive.
func ParseIntents(instructions string) []Intent {
	var intents []Intent
	lower := strings.ToLower(instructions)

	if strings.Contains(lower, "remove") {
		if m := removeRoleRe.FindStringSubmatch(lower); m != nil {
			role := strings.TrimSpace(m[1])
			if role != "" {
				intents = append(intents, Intent{Kind: IntentRemoveRole, Role: role})
			}
		}
	}

	discountFound := false
	for _, re := range discountRes {
		if m := re.FindStringSubmatch(lower); m != nil {
			pct, err := strconv.Atoi(m[1])
			if err == nil {
				intents = append(intents, Intent{Kind: IntentDiscount, DiscountPercent: pct})
				discountFound = true
				break
			}
		}
	}
	if !discountFound {
		for _, kw := range discountKeywords {
			if strings.Contains(lower, kw) {
				intents = append(intents, Intent{Kind: IntentUnknown, Keyword: kw})
				break
			}
		}
	}

	return intents
}

// RemoveRole strips a role from every activity of the document. Activities
// owned by the role are reassigned to their first remaining resource, or to
// fallbackOwner when none is left. Returns whether anything changed.
func RemoveRole(doc *scope.Document, role, fallbackOwner string) bool {
	roleLower := strings.ToLower(strings.TrimSpace(role))
	if roleLower == "" || doc == nil {
		return false
	}

	changed := false
	for i := range doc.Activities {
		act := &doc.Activities[i]

		ownerLower := strings.ToLower(act.Owner)
		if ownerLower == roleLower || strings.Contains(ownerLower, roleLower) {
			resources := splitRoles(act.Resources)
			if len(resources) > 0 {
				act.Owner = resources[0]
				act.Resources = strings.Join(resources[1:], ", ")
			} else {
				act.Owner = fallbackOwner
			}
			changed = true
		}

		if act.Resources != "" {
			resources := splitRoles(act.Resources)
			kept := resources[:0]
			for _, r := range resources {
				rl := strings.ToLower(r)
				if rl == roleLower || strings.Contains(rl, roleLower) {
					continue
				}
				kept = append(kept, r)
			}
			if len(kept) != len(resources) {
				act.Resources = strings.Join(kept, ", ")
				changed = true
			}
		}
	}
	return changed
}

// ApplyDiscount records a parsed discount on the document unless the model
// already set one.
func ApplyDiscount(doc *scope.Document, percent int) {
	if doc.DiscountPercentage == 0 && percent > 0 {
		doc.DiscountPercentage = float64(percent)
	}
}

func splitRoles(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
