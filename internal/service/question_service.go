package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ai-scoping-be/internal/constant"
	"ai-scoping-be/internal/dto"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/specification"
	"ai-scoping-be/internal/repository/unitofwork"
	"ai-scoping-be/pkg/blob"
	"ai-scoping-be/pkg/llm"
	"ai-scoping-be/pkg/scope/prompt"
	"ai-scoping-be/pkg/scope/retrieval"

	"github.com/google/uuid"
)

type IQuestionService interface {
	Generate(ctx context.Context, projectId uuid.UUID) (*dto.Questionnaire, error)
	Show(ctx context.Context, projectId uuid.UUID) (*dto.Questionnaire, error)
	UpdateAnswers(ctx context.Context, projectId uuid.UUID, req *dto.UpdateAnswersRequest) (*dto.Questionnaire, error)
}

type questionService struct {
	uowFactory    unitofwork.RepositoryFactory
	blobStore     blob.Store
	llmProvider   llm.LLMProvider
	retriever     *retrieval.Retriever
	promptBuilder *prompt.Builder
	log           logger.ILogger
	now           func() time.Time
}

func NewQuestionService(
	uowFactory unitofwork.RepositoryFactory,
	blobStore blob.Store,
	llmProvider llm.LLMProvider,
	retriever *retrieval.Retriever,
	promptBuilder *prompt.Builder,
	log logger.ILogger,
) IQuestionService {
	return &questionService{
		uowFactory:    uowFactory,
		blobStore:     blobStore,
		llmProvider:   llmProvider,
		retriever:     retriever,
		promptBuilder: promptBuilder,
		log:           log,
		now:           time.Now,
	}
}

// Generate builds the clarification questionnaire for a project from its RFP
// documents and the knowledge base, then stores it alongside the other
// project artifacts. Model output that is not valid JSON is salvaged by a
// line-based parser rather than failing the request.
func (s *questionService) Generate(ctx context.Context, projectId uuid.UUID) (*dto.Questionnaire, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	rfpText := extractProjectRFP(ctx, uow, s.blobStore, s.log, projectId)

	query := rfpText
	if strings.TrimSpace(query) == "" {
		query = project.Name
	}
	if strings.TrimSpace(query) == "" {
		query = project.Domain
	}

	groups, err := s.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	chunks := retrieval.Texts(groups)

	questionPrompt := s.promptBuilder.BuildQuestionnairePrompt(rfpText, chunks, projectContext(project))
	raw, err := s.llmProvider.Generate(ctx, questionPrompt, llm.WithTemperature(0.8))
	if err != nil {
		return nil, fmt.Errorf("questionnaire generation: %w", err)
	}

	questionnaire := parseQuestionnaire(raw)
	if len(questionnaire.Questions) == 0 {
		s.log.Warn("questions", "no questions could be parsed from model output", map[string]interface{}{
			"project_id": projectId.String(),
		})
	}

	if err := s.persist(ctx, uow, projectId, questionnaire); err != nil {
		return nil, err
	}

	s.log.Info("questions", "questionnaire generated", map[string]interface{}{
		"project_id": projectId.String(),
		"categories": len(questionnaire.Questions),
	})
	return questionnaire, nil
}

func (s *questionService) Show(ctx context.Context, projectId uuid.UUID) (*dto.Questionnaire, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	return s.load(ctx, projectId)
}

// UpdateAnswers merges client answers into the stored questionnaire and
// mirrors the answered pairs onto the project's understanding field, which
// later feeds the scope prompt.
func (s *questionService) UpdateAnswers(ctx context.Context, projectId uuid.UUID, req *dto.UpdateAnswersRequest) (*dto.Questionnaire, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	stored, err := s.load(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}

	for _, incoming := range req.Questions {
		for ci := range stored.Questions {
			if !strings.EqualFold(stored.Questions[ci].Category, incoming.Category) {
				continue
			}
			for _, ans := range incoming.Items {
				for qi := range stored.Questions[ci].Items {
					if stored.Questions[ci].Items[qi].Question == ans.Question {
						stored.Questions[ci].Items[qi].UserUnderstanding = ans.UserUnderstanding
						stored.Questions[ci].Items[qi].Comment = ans.Comment
					}
				}
			}
		}
	}

	if err := s.persist(ctx, uow, projectId, stored); err != nil {
		return nil, err
	}

	project.UserUnderstanding = answeredSummary(stored)
	now := s.now()
	project.UpdatedAt = &now
	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return nil, err
	}

	return stored, nil
}

func (s *questionService) load(ctx context.Context, projectId uuid.UUID) (*dto.Questionnaire, error) {
	path := artifactPath(projectId, constant.QuestionsBlobName)
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
	var questionnaire dto.Questionnaire
	if err := json.Unmarshal(data, &questionnaire); err != nil {
		return nil, fmt.Errorf("stored questionnaire is corrupt: %w", err)
	}
	return &questionnaire, nil
}

func (s *questionService) persist(ctx context.Context, uow unitofwork.UnitOfWork, projectId uuid.UUID, questionnaire *dto.Questionnaire) error {
	data, err := json.MarshalIndent(questionnaire, "", "  ")
	if err != nil {
		return err
	}
	path := artifactPath(projectId, constant.QuestionsBlobName)
	if _, err := s.blobStore.Upload(ctx, data, path, true); err != nil {
		return fmt.Errorf("persist questionnaire: %w", err)
	}
	upsertArtifactRow(ctx, uow, s.log, projectId, constant.QuestionsBlobName, path, "application/json", int64(len(data)), s.now())
	return nil
}

// answeredSummary flattens the answered Q&A pairs into one text block.
func answeredSummary(questionnaire *dto.Questionnaire) string {
	var parts []string
	for _, cat := range questionnaire.Questions {
		for _, item := range cat.Items {
			if strings.TrimSpace(item.UserUnderstanding) == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("Q: %s\nA: %s", item.Question, item.UserUnderstanding))
		}
	}
	return strings.Join(parts, "\n\n")
}

var (
	questionFenceRe = regexp.MustCompile("(?s)```(?:json)?(.*?)```")
	leadingMarkRe   = regexp.MustCompile(`^[\s\-\*\d\.\)]+`)
)

// parseQuestionnaire turns model output into a grouped questionnaire. It
// tries, in order: the canonical nested JSON shape, a flat list of
// category/question objects, a plain list of question strings, and finally a
// line-based scan of the raw text for category headers and question marks.
func parseQuestionnaire(raw string) *dto.Questionnaire {
	cleaned := raw
	if m := questionFenceRe.FindStringSubmatch(raw); m != nil {
		cleaned = m[1]
	}
	cleaned = strings.TrimSpace(cleaned)

	var nested dto.Questionnaire
	if err := json.Unmarshal([]byte(cleaned), &nested); err == nil && questionCount(&nested) > 0 {
		return pruneEmpty(&nested)
	}

	var flat []struct {
		Category string `json:"category"`
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(cleaned), &flat); err == nil && len(flat) > 0 {
		q := &dto.Questionnaire{}
		index := map[string]int{}
		for _, item := range flat {
			if strings.TrimSpace(item.Question) == "" {
				continue
			}
			category := item.Category
			if category == "" {
				category = "General"
			}
			pos, ok := index[category]
			if !ok {
				pos = len(q.Questions)
				index[category] = pos
				q.Questions = append(q.Questions, dto.QuestionCategory{Category: category})
			}
			q.Questions[pos].Items = append(q.Questions[pos].Items, dto.QuestionItem{Question: item.Question})
		}
		if questionCount(q) > 0 {
			return q
		}
	}

	var plain []string
	if err := json.Unmarshal([]byte(cleaned), &plain); err == nil && len(plain) > 0 {
		items := make([]dto.QuestionItem, 0, len(plain))
		for _, question := range plain {
			if strings.TrimSpace(question) != "" {
				items = append(items, dto.QuestionItem{Question: question})
			}
		}
		if len(items) > 0 {
			return &dto.Questionnaire{Questions: []dto.QuestionCategory{{Category: "General", Items: items}}}
		}
	}

	return parseQuestionLines(raw)
}

// parseQuestionLines is the last-resort scan over raw text: short lines
// ending with a colon or formatted as headers open a category, lines carrying
// a question mark become questions under the current one.
func parseQuestionLines(raw string) *dto.Questionnaire {
	q := &dto.Questionnaire{}
	current := -1

	ensureCategory := func(name string) {
		q.Questions = append(q.Questions, dto.QuestionCategory{Category: name})
		current = len(q.Questions) - 1
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}

		if !strings.Contains(line, "?") {
			header := strings.Trim(line, "#* ")
			header = strings.TrimSuffix(header, ":")
			header = strings.TrimSpace(header)
			isHeader := header != "" && len(header) < 60 &&
				(strings.HasPrefix(line, "#") || strings.HasSuffix(line, ":") ||
					(strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**")))
			if isHeader {
				ensureCategory(header)
			}
			continue
		}

		question := strings.TrimSpace(leadingMarkRe.ReplaceAllString(line, ""))
		question = strings.Trim(question, "\"*")
		if question == "" {
			continue
		}
		if current < 0 {
			ensureCategory("General")
		}
		q.Questions[current].Items = append(q.Questions[current].Items, dto.QuestionItem{Question: question})
	}

	return pruneEmpty(q)
}

func questionCount(q *dto.Questionnaire) int {
	count := 0
	for _, cat := range q.Questions {
		count += len(cat.Items)
	}
	return count
}

func pruneEmpty(q *dto.Questionnaire) *dto.Questionnaire {
	kept := q.Questions[:0]
	for _, cat := range q.Questions {
		if len(cat.Items) > 0 {
			kept = append(kept, cat)
		}
	}
	q.Questions = kept
	return q
}
