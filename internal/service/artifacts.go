package service

import (
	"context"
	"fmt"
	"time"

	"ai-scoping-be/internal/constant"
	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/specification"
	"ai-scoping-be/internal/repository/unitofwork"
	"ai-scoping-be/pkg/blob"
	"ai-scoping-be/pkg/extract"
	"ai-scoping-be/pkg/scope/prompt"

	"github.com/google/uuid"
)

// generatedArtifacts are blob names the pipeline itself writes; they are never
// part of the RFP input.
var generatedArtifacts = map[string]struct{}{
	constant.ScopeBlobName:       {},
	constant.QuestionsBlobName:   {},
	constant.ArchitecturePngName: {},
	constant.ArchitectureSvgName: {},
}

func artifactPath(projectId uuid.UUID, name string) string {
	return fmt.Sprintf("%s/%s/%s", constant.ProjectsBasePath, projectId.String(), name)
}

func projectContext(project *entity.Project) prompt.ProjectContext {
	return prompt.ProjectContext{
		Name:       project.Name,
		Domain:     project.Domain,
		Complexity: project.Complexity,
		TechStack:  project.TechStack,
		UseCases:   project.UseCases,
		Compliance: project.Compliance,
		Duration:   project.Duration,
	}
}

// extractProjectRFP downloads every uploaded RFP document and extracts its
// text. Per-file failures are logged and skipped; an empty combined text is a
// legal (if unhelpful) input to the prompts.
func extractProjectRFP(ctx context.Context, uow unitofwork.UnitOfWork, store blob.Store, log logger.ILogger, projectId uuid.UUID) string {
	files, err := uow.ProjectFileRepository().FindAll(ctx,
		specification.ByProjectId{ProjectId: projectId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		log.Warn("scope", "listing project files failed", map[string]interface{}{
			"project_id": projectId.String(),
			"error":      err.Error(),
		})
		return ""
	}

	var docs []extract.Document
	for _, f := range files {
		if _, generated := generatedArtifacts[f.FileName]; generated {
			continue
		}
		data, err := store.Download(ctx, f.StoragePath)
		if err != nil {
			log.Warn("scope", "downloading project file failed, skipping", map[string]interface{}{
				"project_id": projectId.String(),
				"file":       f.FileName,
				"error":      err.Error(),
			})
			continue
		}
		docs = append(docs, extract.Document{Name: f.FileName, Data: data})
	}

	text, results := extract.ExtractAll(ctx, docs)
	for _, res := range results {
		if res.Err != nil {
			log.Warn("scope", "text extraction failed for file", map[string]interface{}{
				"project_id": projectId.String(),
				"file":       res.Name,
				"error":      res.Err.Error(),
			})
		}
	}
	return text
}

// upsertArtifactRow keeps exactly one project_files row per generated
// artifact, so repeated generations update in place instead of piling up.
func upsertArtifactRow(ctx context.Context, uow unitofwork.UnitOfWork, log logger.ILogger, projectId uuid.UUID, fileName, storagePath, contentType string, size int64, now time.Time) {
	repo := uow.ProjectFileRepository()
	existing, err := repo.FindOne(ctx,
		specification.ByProjectId{ProjectId: projectId},
		specification.Filter("file_name", fileName),
	)
	if err != nil {
		log.Warn("scope", "artifact row lookup failed", map[string]interface{}{
			"project_id": projectId.String(),
			"file":       fileName,
			"error":      err.Error(),
		})
		return
	}

	if existing != nil {
		existing.StoragePath = storagePath
		existing.ContentType = contentType
		existing.SizeBytes = size
		existing.UpdatedAt = &now
		err = repo.Update(ctx, existing)
	} else {
		err = repo.Create(ctx, &entity.ProjectFile{
			Id:          uuid.New(),
			ProjectId:   projectId,
			FileName:    fileName,
			StoragePath: storagePath,
			ContentType: contentType,
			SizeBytes:   size,
			CreatedAt:   now,
		})
	}
	if err != nil {
		log.Warn("scope", "artifact row write failed", map[string]interface{}{
			"project_id": projectId.String(),
			"file":       fileName,
			"error":      err.Error(),
		})
	}
}
