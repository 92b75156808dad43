package schedule

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"ai-scoping-be/pkg/scope"
)

const (
	dateLayout = "2006-01-02"
	monthDays  = 30
)

// Allocation is the role/month effort grid derived from a normalized
// activity list. Months are relative 30-day windows counted from the earliest
// activity start; values are quantized month fractions.
type Allocation struct {
	RoleOrder      []string
	MonthLabels    []string
	Usage          map[string]map[string]float64
	DurationMonths float64
}

// Normalize cleans a scope document's activities in place and computes the
// per-role monthly allocation. It is deterministic for a fixed "today" and
// idempotent: feeding its own output back yields the same result.
//
// Steps: parse/repair dates, strip the owner out of the resource list, derive
// effort from the date span, stable-sort by start date, renumber IDs from 1,
// then accumulate each role's active days per relative month window before
// quantizing to 0/0.25/0.5/0.75/1.0.
func Normalize(doc *scope.Document, today time.Time) *Allocation {
	today = truncateDay(today)

	type actDates struct {
		start, end time.Time
	}
	dates := make([]actDates, len(doc.Activities))

	for i := range doc.Activities {
		act := &doc.Activities[i]

		owner := strings.TrimSpace(act.Owner)
		if owner == "" {
			owner = "Unassigned"
		}
		act.Owner = owner

		resources := splitRoles(act.Resources)
		kept := resources[:0]
		for _, r := range resources {
			if !strings.EqualFold(r, owner) {
				kept = append(kept, r)
			}
		}
		act.Resources = strings.Join(kept, ", ")

		s := parseDateSafe(act.StartDate, today)
		e := parseDateSafe(act.EndDate, s.AddDate(0, 0, monthDays))
		if e.Before(s) {
			e = s.AddDate(0, 0, monthDays)
		}
		dates[i] = actDates{start: s, end: e}

		durDays := daysBetween(s, e)
		if durDays < 1 {
			durDays = 1
		}
		act.EffortMonths = round2(float64(durDays) / monthDays)
		act.StartDate = s.Format(dateLayout)
		act.EndDate = e.Format(dateLayout)
	}

	// Stable sort keeps the generation order for same-day starts.
	type indexed struct {
		act   scope.Activity
		dates actDates
	}
	rows := make([]indexed, len(doc.Activities))
	for i, act := range doc.Activities {
		rows[i] = indexed{act: act, dates: dates[i]}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].dates.start.Before(rows[j].dates.start)
	})
	for i := range rows {
		rows[i].act.ID = i + 1
		doc.Activities[i] = rows[i].act
		dates[i] = rows[i].dates
	}

	alloc := &Allocation{Usage: map[string]map[string]float64{}}

	if len(doc.Activities) == 0 {
		alloc.DurationMonths = 1.0
		alloc.MonthLabels = []string{"Month 1"}
		return alloc
	}

	minStart, maxEnd := dates[0].start, dates[0].end
	for _, d := range dates {
		if d.start.Before(minStart) {
			minStart = d.start
		}
		if d.end.After(maxEnd) {
			maxEnd = d.end
		}
	}

	spanDays := daysBetween(minStart, maxEnd)
	if spanDays < 1 {
		spanDays = 1
	}
	alloc.DurationMonths = math.Max(1.0, round2(float64(spanDays)/monthDays))

	totalMonths := int(math.Ceil(float64(daysBetween(minStart, maxEnd)) / monthDays))
	if totalMonths < 1 {
		totalMonths = 1
	}
	alloc.MonthLabels = make([]string, totalMonths)
	for i := range alloc.MonthLabels {
		alloc.MonthLabels[i] = fmt.Sprintf("Month %d", i+1)
	}

	// Accumulate active days per role and month window. Windows and activity
	// ranges are half-open so a single 30-day activity fills exactly one month.
	for i, act := range doc.Activities {
		roles := append([]string{act.Owner}, splitRoles(act.Resources)...)
		s, e := dates[i].start, dates[i].end

		for m := 0; m < totalMonths; m++ {
			winStart := minStart.AddDate(0, 0, m*monthDays)
			winEnd := minStart.AddDate(0, 0, (m+1)*monthDays)

			overlapStart := maxTime(s, winStart)
			overlapEnd := minTime(e, winEnd)
			overlapDays := daysBetween(overlapStart, overlapEnd)
			if overlapDays <= 0 {
				continue
			}

			label := alloc.MonthLabels[m]
			for _, role := range roles {
				if _, ok := alloc.Usage[role]; !ok {
					alloc.Usage[role] = zeroMonths(alloc.MonthLabels)
					alloc.RoleOrder = append(alloc.RoleOrder, role)
				}
				alloc.Usage[role][label] += float64(overlapDays)
			}
		}
	}

	// Roles that never overlap a window still get a zeroed row.
	for _, act := range doc.Activities {
		for _, role := range append([]string{act.Owner}, splitRoles(act.Resources)...) {
			if _, ok := alloc.Usage[role]; !ok {
				alloc.Usage[role] = zeroMonths(alloc.MonthLabels)
				alloc.RoleOrder = append(alloc.RoleOrder, role)
			}
		}
	}

	for _, months := range alloc.Usage {
		for label, days := range months {
			months[label] = quantizeDays(days)
		}
	}

	return alloc
}

// quantizeDays converts active days in a month window to an effort fraction.
func zeroMonths(labels []string) map[string]float64 {
	months := make(map[string]float64, len(labels))
	for _, label := range labels {
		months[label] = 0
	}
	return months
}

func quantizeDays(days float64) float64 {
	switch {
	case days > 21:
		return 1.0
	case days >= 15:
		return 0.75
	case days >= 8:
		return 0.5
	case days >= 1:
		return 0.25
	default:
		return 0.0
	}
}

func parseDateSafe(val string, fallback time.Time) time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return fallback
	}
	t, err := time.Parse(dateLayout, val)
	if err != nil {
		return fallback
	}
	return t
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

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
