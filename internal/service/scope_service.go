package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-scoping-be/internal/config"
	"ai-scoping-be/internal/constant"
	"ai-scoping-be/internal/dto"
	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/specification"
	"ai-scoping-be/internal/repository/unitofwork"
	"ai-scoping-be/pkg/blob"
	"ai-scoping-be/pkg/llm"
	"ai-scoping-be/pkg/scope"
	"ai-scoping-be/pkg/scope/costing"
	scopediagram "ai-scoping-be/pkg/scope/diagram"
	"ai-scoping-be/pkg/scope/prompt"
	"ai-scoping-be/pkg/scope/repair"
	"ai-scoping-be/pkg/scope/retrieval"
	"ai-scoping-be/pkg/scope/schedule"

	"github.com/google/uuid"
)

type IScopeService interface {
	Generate(ctx context.Context, projectId uuid.UUID) (*dto.ScopeResponse, error)
	Regenerate(ctx context.Context, projectId uuid.UUID, req *dto.RegenerateScopeRequest) (*dto.ScopeResponse, error)
	Finalize(ctx context.Context, projectId uuid.UUID, req *dto.FinalizeScopeRequest) (*dto.ScopeResponse, error)
	Show(ctx context.Context, projectId uuid.UUID) (*dto.ScopeResponse, error)
}

type scopeService struct {
	uowFactory    unitofwork.RepositoryFactory
	blobStore     blob.Store
	llmProvider   llm.LLMProvider
	retriever     *retrieval.Retriever
	promptBuilder *prompt.Builder
	diagramGen    *scopediagram.Generator
	rateResolver  *costing.Resolver
	cfg           config.ScopeConfig
	log           logger.ILogger
	now           func() time.Time
}

func NewScopeService(
	uowFactory unitofwork.RepositoryFactory,
	blobStore blob.Store,
	llmProvider llm.LLMProvider,
	retriever *retrieval.Retriever,
	promptBuilder *prompt.Builder,
	diagramGen *scopediagram.Generator,
	rateResolver *costing.Resolver,
	cfg config.ScopeConfig,
	log logger.ILogger,
) IScopeService {
	return &scopeService{
		uowFactory:    uowFactory,
		blobStore:     blobStore,
		llmProvider:   llmProvider,
		retriever:     retriever,
		promptBuilder: promptBuilder,
		diagramGen:    diagramGen,
		rateResolver:  rateResolver,
		cfg:           cfg,
		log:           log,
		now:           time.Now,
	}
}

// Generate runs the full scope pipeline for a project: extract the uploaded
// RFP documents, retrieve knowledge context, build the prompt, call the model,
// validate and normalize the result, attach the architecture diagram and
// persist the document. A model response that fails validation yields an
// empty scope and leaves any previously stored document untouched.
func (s *scopeService) Generate(ctx context.Context, projectId uuid.UUID) (*dto.ScopeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	if err := s.ensureCompany(ctx, uow, project); err != nil {
		s.log.Warn("scope", "default company assignment failed", map[string]interface{}{
			"project_id": projectId.String(),
			"error":      err.Error(),
		})
	}

	rfpText := extractProjectRFP(ctx, uow, s.blobStore, s.log, projectId)

	groups, err := s.retriever.Retrieve(ctx, rfpText)
	if err != nil {
		return nil, err
	}
	chunks := retrieval.Texts(groups)

	qaContext := s.questionnaireContext(ctx, projectId)
	pctx := projectContext(project)

	scopePrompt := s.promptBuilder.BuildScopePrompt(rfpText, chunks, pctx, qaContext, s.now())
	raw, err := s.llmProvider.Generate(ctx, scopePrompt)
	if err != nil {
		return nil, fmt.Errorf("scope generation: %w", err)
	}

	if len(strings.TrimSpace(raw)) < s.cfg.MinResponseChars {
		s.log.Warn("scope", "model returned an empty or truncated response", map[string]interface{}{
			"project_id": projectId.String(),
			"length":     len(raw),
		})
		return &dto.ScopeResponse{Scope: &scope.Document{}}, nil
	}

	doc := repair.ExtractJSON(raw)
	if bad, emptyCount := repair.ContentGuard(doc, s.cfg.ContentGuardRatio); bad {
		s.log.Warn("scope", "generated document rejected as content-free", map[string]interface{}{
			"project_id":  projectId.String(),
			"empty_count": emptyCount,
			"activities":  len(doc.Activities),
		})
		return &dto.ScopeResponse{Scope: &scope.Document{}}, nil
	}
	if doc.IsEmpty() {
		s.log.Warn("scope", "no parseable scope document in model output", map[string]interface{}{
			"project_id": projectId.String(),
		})
		return &dto.ScopeResponse{Scope: &scope.Document{}}, nil
	}

	currency := s.companyCurrency(ctx, uow, project.CompanyId)
	s.cleanScope(ctx, doc, project, currency)

	diagramPrompt := s.promptBuilder.BuildArchitecturePrompt(rfpText, chunks, pctx)
	s.attachDiagram(ctx, uow, projectId, doc, diagramPrompt)

	if err := s.persistScope(ctx, uow, projectId, doc); err != nil {
		return nil, err
	}
	if err := s.syncProjectMetadata(ctx, uow, project, doc, constant.ProjectStatusGenerated); err != nil {
		return nil, err
	}

	s.log.Info("scope", "scope generated", map[string]interface{}{
		"project_id": projectId.String(),
		"activities": len(doc.Activities),
		"roles":      len(doc.ResourcingPlan),
	})
	return &dto.ScopeResponse{Scope: doc}, nil
}

// Regenerate applies free-form edit instructions to the stored draft. The
// model gets one low-temperature pass; regression guards restore the draft's
// activities when the output degenerates, and parsed role-removal and
// discount intents are enforced deterministically afterwards.
func (s *scopeService) Regenerate(ctx context.Context, projectId uuid.UUID, req *dto.RegenerateScopeRequest) (*dto.ScopeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	draft, err := s.loadStoredScope(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, nil
	}

	draftJSON, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return nil, err
	}

	regenPrompt := s.promptBuilder.BuildRegenerationPrompt(req.Instructions, string(draftJSON), s.now())
	raw, err := s.llmProvider.Generate(ctx, regenPrompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("scope regeneration: %w", err)
	}

	updated := repair.ExtractJSON(raw)
	if len(updated.Activities) == 0 {
		s.log.Warn("scope", "regeneration dropped all activities, restoring draft", map[string]interface{}{
			"project_id": projectId.String(),
		})
		repair.RestoreDraftActivities(updated, draft)
	}

	if check := repair.CheckRegression(updated, draft, req.Instructions, s.cfg.RegressionShrinkRate); check.Restore {
		s.log.Warn("scope", "regeneration failed quality checks, restoring draft activities", map[string]interface{}{
			"project_id": projectId.String(),
			"failures":   check.Failures,
		})
		repair.RestoreDraftActivities(updated, draft)
	}

	if updated.DiscountPercentage == 0 {
		updated.DiscountPercentage = draft.DiscountPercentage
	}
	if updated.ArchitectureDiagram == nil {
		updated.ArchitectureDiagram = draft.ArchitectureDiagram
	}

	for _, intent := range repair.ParseIntents(req.Instructions) {
		switch intent.Kind {
		case repair.IntentRemoveRole:
			if repair.RemoveRole(updated, intent.Role, s.cfg.FallbackOwnerRole) {
				s.log.Info("scope", "role removed by instruction", map[string]interface{}{
					"project_id": projectId.String(),
					"role":       intent.Role,
				})
			}
		case repair.IntentDiscount:
			if updated.DiscountPercentage == 0 {
				repair.ApplyDiscount(updated, intent.DiscountPercent)
			}
		case repair.IntentUnknown:
			s.log.Warn("scope", "discount-like instruction could not be parsed", map[string]interface{}{
				"project_id": projectId.String(),
				"keyword":    intent.Keyword,
			})
		}
	}

	currency := s.companyCurrency(ctx, uow, project.CompanyId)
	s.cleanScope(ctx, updated, project, currency)

	if err := s.persistScope(ctx, uow, projectId, updated); err != nil {
		return nil, err
	}
	if err := s.syncProjectMetadata(ctx, uow, project, updated, constant.ProjectStatusGenerated); err != nil {
		return nil, err
	}

	return &dto.ScopeResponse{Scope: updated}, nil
}

// Finalize stores a client-reviewed document as the final scope. The same
// normalization and costing pass runs so hand-edited dates and plans come out
// consistent; no model call is involved.
func (s *scopeService) Finalize(ctx context.Context, projectId uuid.UUID, req *dto.FinalizeScopeRequest) (*dto.ScopeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	doc := &req.Scope
	currency := s.companyCurrency(ctx, uow, project.CompanyId)
	s.cleanScope(ctx, doc, project, currency)
	doc.Finalized = true

	if err := s.persistScope(ctx, uow, projectId, doc); err != nil {
		return nil, err
	}
	if err := s.syncProjectMetadata(ctx, uow, project, doc, constant.ProjectStatusFinalized); err != nil {
		return nil, err
	}

	s.log.Info("scope", "scope finalized", map[string]interface{}{"project_id": projectId.String()})
	return &dto.ScopeResponse{Scope: doc, Finalized: true}, nil
}

func (s *scopeService) Show(ctx context.Context, projectId uuid.UUID) (*dto.ScopeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	doc, err := s.loadStoredScope(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return &dto.ScopeResponse{Scope: doc, Finalized: doc.Finalized}, nil
}

// ensureCompany backfills the default company on projects created without
// one, so rate resolution and currency lookups have an anchor.
func (s *scopeService) ensureCompany(ctx context.Context, uow unitofwork.UnitOfWork, project *entity.Project) error {
	if project.CompanyId != nil {
		return nil
	}
	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByCompanyName{Name: s.cfg.DefaultCompanyName})
	if err != nil || company == nil {
		return err
	}
	project.CompanyId = &company.Id
	return uow.ProjectRepository().Update(ctx, project)
}

// questionnaireContext formats the stored clarification questionnaire as the
// Q&A block of the scope prompt. No questionnaire means an empty block.
func (s *scopeService) questionnaireContext(ctx context.Context, projectId uuid.UUID) string {
	path := artifactPath(projectId, constant.QuestionsBlobName)
	exists, err := s.blobStore.Exists(ctx, path)
	if err != nil || !exists {
		return ""
	}
	data, err := s.blobStore.Download(ctx, path)
	if err != nil {
		return ""
	}

	var questionnaire dto.Questionnaire
	if err := json.Unmarshal(data, &questionnaire); err != nil {
		return ""
	}

	var blocks []string
	for _, cat := range questionnaire.Questions {
		lines := []string{"### " + cat.Category}
		for _, item := range cat.Items {
			answer := strings.TrimSpace(item.UserUnderstanding)
			if answer == "" {
				answer = "(unanswered)"
			}
			line := fmt.Sprintf("Q: %s\nA: %s", item.Question, answer)
			if strings.TrimSpace(item.Comment) != "" {
				line += "\nComment: " + item.Comment
			}
			lines = append(lines, line)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// cleanScope is the deterministic post-processing shared by every path that
// persists a document: schedule normalization, plan rebuild from the
// allocation grid and the rate cascade, then overview merge.
func (s *scopeService) cleanScope(ctx context.Context, doc *scope.Document, project *entity.Project, currency string) {
	alloc := schedule.Normalize(doc, s.now())

	rates := s.rateResolver.RateMap(ctx, project.CompanyId)
	doc.ResourcingPlan = costing.BuildPlan(alloc, func(role string) float64 {
		return s.rateResolver.RateFor(rates, role)
	}, doc.DiscountPercentage)

	s.mergeOverview(doc, project, currency, alloc)
}

// mergeOverview fills overview gaps from project metadata and stamps the
// derived fields. Duration always comes from the normalized schedule.
func (s *scopeService) mergeOverview(doc *scope.Document, project *entity.Project, currency string, alloc *schedule.Allocation) {
	if doc.Overview == nil {
		doc.Overview = map[string]interface{}{}
	}

	fallbacks := map[string]string{
		"Project Name": project.Name,
		"Domain":       project.Domain,
		"Complexity":   project.Complexity,
		"Tech Stack":   project.TechStack,
		"Use Cases":    project.UseCases,
		"Compliance":   project.Compliance,
	}
	for key, fallback := range fallbacks {
		if doc.OverviewString(key) == "" && fallback != "" {
			doc.Overview[key] = fallback
		}
	}

	doc.Overview["Duration"] = alloc.DurationMonths
	doc.Overview["Generated At"] = s.now().Format("2006-01-02")
	if doc.OverviewString("Currency") == "" {
		if currency == "" {
			currency = constant.DefaultCurrency
		}
		doc.Overview["Currency"] = currency
	}

	if doc.DiscountPercentage > 0 {
		doc.Overview["Discount"] = fmt.Sprintf("%.0f%%", doc.DiscountPercentage)
		doc.Overview["Total Cost (After Discount)"] = "$" + formatMoney(costing.TotalCost(doc.ResourcingPlan))
	} else {
		delete(doc.Overview, "Discount")
		delete(doc.Overview, "Total Cost (After Discount)")
	}
}

// attachDiagram generates and stores the architecture diagram. Any failure
// degrades to a document without a diagram; existing blobs are only replaced
// once the new render succeeded.
func (s *scopeService) attachDiagram(ctx context.Context, uow unitofwork.UnitOfWork, projectId uuid.UUID, doc *scope.Document, diagramPrompt string) {
	result, err := s.diagramGen.Generate(ctx, diagramPrompt)
	if err != nil {
		s.log.Warn("scope", "architecture diagram unavailable", map[string]interface{}{
			"project_id": projectId.String(),
			"error":      err.Error(),
		})
		return
	}

	// Both renders are staged first and only then swapped over the previous
	// diagram, so a failure part-way leaves the old PNG/SVG pair untouched.
	pngPath := artifactPath(projectId, constant.ArchitecturePngName)
	svgPath := artifactPath(projectId, constant.ArchitectureSvgName)
	pngStaging := pngPath + ".staging"
	svgStaging := svgPath + ".staging"
	if _, err := s.blobStore.Upload(ctx, result.Png, pngStaging, true); err != nil {
		s.log.Warn("scope", "staging diagram png failed", map[string]interface{}{
			"project_id": projectId.String(),
			"error":      err.Error(),
		})
		return
	}
	if _, err := s.blobStore.Upload(ctx, result.Svg, svgStaging, true); err != nil {
		s.log.Warn("scope", "staging diagram svg failed", map[string]interface{}{
			"project_id": projectId.String(),
			"error":      err.Error(),
		})
		if err := s.blobStore.Delete(ctx, pngStaging); err != nil {
			s.log.Warn("scope", "cleaning up staged png failed", map[string]interface{}{
				"project_id": projectId.String(),
				"error":      err.Error(),
			})
		}
		return
	}
	if err := s.blobStore.Rename(ctx, pngStaging, pngPath); err != nil {
		s.log.Warn("scope", "swapping diagram png failed", map[string]interface{}{
			"project_id": projectId.String(),
			"error":      err.Error(),
		})
		return
	}
	if err := s.blobStore.Rename(ctx, svgStaging, svgPath); err != nil {
		s.log.Warn("scope", "swapping diagram svg failed", map[string]interface{}{
			"project_id": projectId.String(),
			"error":      err.Error(),
		})
		return
	}

	upsertArtifactRow(ctx, uow, s.log, projectId, constant.ArchitecturePngName, pngPath, "image/png", int64(len(result.Png)), s.now())
	upsertArtifactRow(ctx, uow, s.log, projectId, constant.ArchitectureSvgName, svgPath, "image/svg+xml", int64(len(result.Svg)), s.now())

	doc.ArchitectureDiagram = &scope.DiagramRef{
		PngPath: pngPath,
		SvgPath: svgPath,
		PngURL:  s.blobStore.URL(pngPath),
		SvgURL:  s.blobStore.URL(svgPath),
	}
	if result.Fallback {
		s.log.Info("scope", "fallback architecture layout stored", map[string]interface{}{
			"project_id": projectId.String(),
		})
	}
}

func (s *scopeService) persistScope(ctx context.Context, uow unitofwork.UnitOfWork, projectId uuid.UUID, doc *scope.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	path := artifactPath(projectId, constant.ScopeBlobName)
	if _, err := s.blobStore.Upload(ctx, data, path, true); err != nil {
		return fmt.Errorf("persist scope: %w", err)
	}
	upsertArtifactRow(ctx, uow, s.log, projectId, constant.ScopeBlobName, path, "application/json", int64(len(data)), s.now())
	return nil
}

// syncProjectMetadata mirrors overview fields the model may have inferred back
// onto the project row, then moves the status forward.
func (s *scopeService) syncProjectMetadata(ctx context.Context, uow unitofwork.UnitOfWork, project *entity.Project, doc *scope.Document, status string) error {
	assign := func(dst *string, key string) {
		if v := doc.OverviewString(key); v != "" {
			*dst = v
		}
	}
	assign(&project.Name, "Project Name")
	assign(&project.Domain, "Domain")
	assign(&project.Complexity, "Complexity")
	assign(&project.TechStack, "Tech Stack")
	assign(&project.UseCases, "Use Cases")
	assign(&project.Compliance, "Compliance")
	if d, ok := doc.Overview["Duration"].(float64); ok && d > 0 {
		project.Duration = fmt.Sprintf("%g months", d)
	}
	project.Status = status
	now := s.now()
	project.UpdatedAt = &now
	return uow.ProjectRepository().Update(ctx, project)
}

func (s *scopeService) loadStoredScope(ctx context.Context, projectId uuid.UUID) (*scope.Document, error) {
	path := artifactPath(projectId, constant.ScopeBlobName)
	exists, err := s.blobStore.Exists(ctx, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	data, err := s.blobStore.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	var doc scope.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("stored scope is corrupt: %w", err)
	}
	return &doc, nil
}

func (s *scopeService) companyCurrency(ctx context.Context, uow unitofwork.UnitOfWork, companyId *uuid.UUID) string {
	if companyId == nil {
		return ""
	}
	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: *companyId})
	if err != nil || company == nil {
		return ""
	}
	return company.Currency
}

// formatMoney renders a dollar amount with thousands separators and cents.
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	var out strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	return sign + out.String() + frac
}
