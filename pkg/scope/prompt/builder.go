package prompt

import (
	"fmt"
	"time"

	"ai-scoping-be/internal/constant"
	"ai-scoping-be/pkg/tokens"
)

// ProjectContext carries the user-provided overview fields that seed a
// prompt. Blank fields are rendered as "(infer if missing)".
type ProjectContext struct {
	Name       string
	Domain     string
	Complexity string
	TechStack  string
	UseCases   string
	Compliance string
	Duration   string
}

// Builder assembles token-budgeted prompts for scope generation. The budget
// is the model context window minus a completion reserve; the RFP is capped
// separately so knowledge chunks always get a share of the window.
type Builder struct {
	ContextWindowTokens int
	CompletionReserve   int
	RFPTokenCap         int
}

func NewBuilder(contextWindow, completionReserve, rfpCap int) *Builder {
	return &Builder{
		ContextWindowTokens: contextWindow,
		CompletionReserve:   completionReserve,
		RFPTokenCap:         rfpCap,
	}
}

// BuildScopePrompt packs the RFP, knowledge chunks and clarification Q&A into
// the scope generation prompt. Chunks are added in retrieval order; the first
// chunk that would overflow the budget is dropped and packing stops. The Q&A
// context is appended last, verbatim.
func (b *Builder) BuildScopePrompt(rfpText string, kbChunks []string, project ProjectContext, qaContext string, today time.Time) string {
	budget := b.ContextWindowTokens - b.CompletionReserve

	rfpText = tokens.Truncate(rfpText, b.RFPTokenCap)
	used := tokens.Estimate(rfpText)

	var safeChunks []string
	for _, chunk := range kbChunks {
		chunkTokens := tokens.Estimate(chunk)
		if used+chunkTokens > budget {
			break
		}
		safeChunks = append(safeChunks, chunk)
		used += chunkTokens
	}

	kbContext := "(no KB context found)"
	if len(safeChunks) > 0 {
		kbContext = joinChunks(safeChunks)
	}

	userContext := fmt.Sprintf(constant.ScopeUserContextTemplate,
		orInfer(project.Name),
		orInfer(project.Domain),
		orInfer(project.Complexity),
		orInfer(project.TechStack),
		orInfer(project.UseCases),
		orInfer(project.Compliance),
		orInfer(project.Duration),
	)

	return fmt.Sprintf(constant.ScopePromptTemplate,
		today.Format("2006-01-02"),
		userContext,
		rfpText,
		kbContext,
		qaContext,
	)
}

// BuildRegenerationPrompt wraps the current draft and the user's change
// instructions in the regeneration template.
func (b *Builder) BuildRegenerationPrompt(instructions, draftJSON string, today time.Time) string {
	return fmt.Sprintf(constant.RegenerationPromptTemplate,
		today.Format("2006-01-02"),
		instructions,
		draftJSON,
	)
}

// BuildQuestionnairePrompt builds the theme-inference questionnaire prompt.
// The same RFP cap applies so long documents leave room for the KB context.
func (b *Builder) BuildQuestionnairePrompt(rfpText string, kbChunks []string, project ProjectContext) string {
	rfpText = tokens.Truncate(rfpText, b.RFPTokenCap)
	return fmt.Sprintf(constant.QuestionnairePromptTemplate,
		orDefault(project.Name, "Unnamed Project"),
		orDefault(project.Domain, "General"),
		orDefault(project.TechStack, "Modern Web Stack"),
		orDefault(project.Compliance, "General"),
		orDefault(project.Duration, "TBD"),
		rfpText,
		joinChunks(kbChunks),
	)
}

// BuildArchitecturePrompt builds the diagram generation prompt.
func (b *Builder) BuildArchitecturePrompt(rfpText string, kbChunks []string, project ProjectContext) string {
	rfpText = tokens.Truncate(rfpText, b.RFPTokenCap)
	return fmt.Sprintf(constant.ArchitecturePromptTemplate,
		orDefault(project.Name, "Untitled Project"),
		orDefault(project.Domain, "General"),
		orDefault(project.TechStack, "Modern Web + Cloud Stack"),
		rfpText,
		joinChunks(kbChunks),
	)
}

func joinChunks(chunks []string) string {
	out := ""
	for i, c := range chunks {
		if i > 0 {
			out += "\n\n"
		}
		out += c
	}
	return out
}

func orInfer(s string) string {
	if s == "" {
		return "(infer if missing)"
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
