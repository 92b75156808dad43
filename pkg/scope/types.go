package scope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Activity is one schedule row of a scope document. Field names on the wire
// keep the human-readable spreadsheet headers the generation schema uses.
type Activity struct {
	ID           int
	Name         string
	Description  string
	Owner        string
	Resources    string // comma-separated supporting roles
	StartDate    string // yyyy-mm-dd
	EndDate      string // yyyy-mm-dd
	EffortMonths float64
}

type activityWire struct {
	ID           json.RawMessage `json:"ID"`
	Name         string          `json:"Activities"`
	Description  *string         `json:"Description"`
	Owner        *string         `json:"Owner"`
	Resources    *string         `json:"Resources"`
	StartDate    string          `json:"Start Date"`
	EndDate      string          `json:"End Date"`
	EffortMonths json.RawMessage `json:"Effort Months"`
}

func (a Activity) MarshalJSON() ([]byte, error) {
	desc, owner, res := a.Description, a.Owner, a.Resources
	return json.Marshal(activityWire{
		ID:           json.RawMessage(strconv.Itoa(a.ID)),
		Name:         a.Name,
		Description:  &desc,
		Owner:        &owner,
		Resources:    &res,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		EffortMonths: json.RawMessage(strconv.FormatFloat(a.EffortMonths, 'f', -1, 64)),
	})
}

// UnmarshalJSON tolerates the slop LLM output tends to contain: null string
// fields, numeric IDs emitted as floats or strings, effort as int or string.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var w activityWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	a.Name = w.Name
	a.Description = strOrEmpty(w.Description)
	a.Owner = strOrEmpty(w.Owner)
	a.Resources = strOrEmpty(w.Resources)
	a.StartDate = w.StartDate
	a.EndDate = w.EndDate
	a.ID = int(looseNumber(w.ID))
	a.EffortMonths = looseNumber(w.EffortMonths)
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func looseNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// PlanEntry is one role row of the resourcing plan. Monthly allocations are
// flattened into "Month N" columns on the wire, between the rate and the
// effort totals.
type PlanEntry struct {
	ID           int
	Role         string
	RatePerMonth float64
	Monthly      map[string]float64
	Efforts      float64
	Cost         float64
}

func (p PlanEntry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField := func(key string, value interface{}, first bool) error {
		if !first {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if err := writeField("ID", p.ID, true); err != nil {
		return nil, err
	}
	if err := writeField("Resources", p.Role, false); err != nil {
		return nil, err
	}
	if err := writeField("Rate/month", p.RatePerMonth, false); err != nil {
		return nil, err
	}
	for _, label := range sortedMonthLabels(p.Monthly) {
		if err := writeField(label, p.Monthly[label], false); err != nil {
			return nil, err
		}
	}
	if err := writeField("Efforts", p.Efforts, false); err != nil {
		return nil, err
	}
	if err := writeField("Cost", p.Cost, false); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *PlanEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Monthly = map[string]float64{}
	for key, val := range raw {
		switch key {
		case "ID":
			p.ID = int(looseNumber(val))
		case "Resources":
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return fmt.Errorf("resourcing plan Resources: %w", err)
			}
			p.Role = s
		case "Rate/month":
			p.RatePerMonth = looseNumber(val)
		case "Efforts":
			p.Efforts = looseNumber(val)
		case "Cost":
			p.Cost = looseNumber(val)
		default:
			if strings.HasPrefix(key, "Month ") {
				p.Monthly[key] = looseNumber(val)
			}
		}
	}
	return nil
}

func sortedMonthLabels(monthly map[string]float64) []string {
	labels := make([]string, 0, len(monthly))
	for label := range monthly {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return monthNumber(labels[i]) < monthNumber(labels[j])
	})
	return labels
}

func monthNumber(label string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(label, "Month "))
	return n
}

// DiagramRef points at the rendered architecture diagram blobs.
type DiagramRef struct {
	PngPath string `json:"png_path,omitempty"`
	SvgPath string `json:"svg_path,omitempty"`
	PngURL  string `json:"png_url,omitempty"`
	SvgURL  string `json:"svg_url,omitempty"`
}

// Document is a whole scope document as stored in the blob and returned to
// clients. Overview stays a free-form map because annotation keys (Discount,
// Generated At, Currency) come and go.
type Document struct {
	Overview            map[string]interface{} `json:"overview"`
	Activities          []Activity             `json:"activities"`
	ResourcingPlan      []PlanEntry            `json:"resourcing_plan"`
	ProjectSummary      map[string]interface{} `json:"project_summary,omitempty"`
	ArchitectureDiagram *DiagramRef            `json:"architecture_diagram,omitempty"`
	DiscountPercentage  float64                `json:"discount_percentage,omitempty"`
	Finalized           bool                   `json:"finalized,omitempty"`
}

// IsEmpty reports whether the document carries no usable content.
func (d *Document) IsEmpty() bool {
	return d == nil || (len(d.Overview) == 0 && len(d.Activities) == 0)
}

// OverviewString reads a string field from the overview, tolerating absent or
// non-string values.
func (d *Document) OverviewString(key string) string {
	if d == nil || d.Overview == nil {
		return ""
	}
	if v, ok := d.Overview[key].(string); ok {
		return v
	}
	return ""
}
