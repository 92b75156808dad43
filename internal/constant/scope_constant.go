package constant

const (
	ProjectStatusDraft     = "draft"
	ProjectStatusGenerated = "generated"
	ProjectStatusFinalized = "finalized"

	ProjectsBasePath = "projects"

	ScopeBlobName       = "finalized_scope.json"
	QuestionsBlobName   = "questions.json"
	ArchitecturePngName = "architecture.png"
	ArchitectureSvgName = "architecture.svg"

	DefaultCurrency = "USD"
)

// DefaultRoleRates is the static monthly rate fallback used when neither the
// project's company nor the default company carries a rate card entry for a
// role.
var DefaultRoleRates = map[string]float64{
	"Backend Developer":      3000,
	"Frontend Developer":     2800,
	"QA Analyst":             1800,
	"QA Engineer":            2000,
	"Data Engineer":          2800,
	"Data Analyst":           2200,
	"Data Architect":         3500,
	"UX Designer":            2500,
	"UI/UX Designer":         2600,
	"Project Manager":        3500,
	"Cloud Engineer":         3000,
	"BI Developer":           2700,
	"DevOps Engineer":        3200,
	"Security Administrator": 3000,
	"System Administrator":   2800,
	"Solution Architect":     4000,
}
