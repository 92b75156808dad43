package service

import (
	"context"
	"fmt"
	"time"

	"ai-scoping-be/internal/constant"
	"ai-scoping-be/internal/dto"
	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/specification"
	"ai-scoping-be/internal/repository/unitofwork"
	"ai-scoping-be/pkg/blob"

	"github.com/google/uuid"
)

type IProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowProjectResponse, error)
	List(ctx context.Context) ([]dto.ListProjectItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadFile(ctx context.Context, projectId uuid.UUID, fileName, contentType string, data []byte) (*dto.UploadProjectFileResponse, error)
}

type projectService struct {
	uowFactory unitofwork.RepositoryFactory
	blobStore  blob.Store
	log        logger.ILogger
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory, blobStore blob.Store, log logger.ILogger) IProjectService {
	return &projectService{
		uowFactory: uowFactory,
		blobStore:  blobStore,
		log:        log,
	}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error) {
	project := &entity.Project{
		Id:        uuid.New(),
		Name:      req.Name,
		Status:    constant.ProjectStatusDraft,
		CompanyId: req.CompanyId,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProjectRepository().Create(ctx, project); err != nil {
		return nil, err
	}
	return &dto.CreateProjectResponse{Id: project.Id}, nil
}

func (s *projectService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	files, err := uow.ProjectFileRepository().FindAll(ctx,
		specification.ByProjectId{ProjectId: id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	fileItems := make([]dto.ProjectFileItem, len(files))
	for i, f := range files {
		fileItems[i] = dto.ProjectFileItem{
			Id:          f.Id,
			FileName:    f.FileName,
			StoragePath: f.StoragePath,
			SizeBytes:   f.SizeBytes,
		}
	}

	return &dto.ShowProjectResponse{
		Id:                project.Id,
		Name:              project.Name,
		Status:            project.Status,
		Domain:            project.Domain,
		Complexity:        project.Complexity,
		TechStack:         project.TechStack,
		UseCases:          project.UseCases,
		Compliance:        project.Compliance,
		Duration:          project.Duration,
		UserUnderstanding: project.UserUnderstanding,
		CompanyId:         project.CompanyId,
		Files:             fileItems,
		CreatedAt:         project.CreatedAt,
		UpdatedAt:         project.UpdatedAt,
	}, nil
}

func (s *projectService) List(ctx context.Context) ([]dto.ListProjectItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	projects, err := uow.ProjectRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ListProjectItem, len(projects))
	for i, p := range projects {
		items[i] = dto.ListProjectItem{
			Id:        p.Id,
			Name:      p.Name,
			Status:    p.Status,
			Domain:    p.Domain,
			CreatedAt: p.CreatedAt,
		}
	}
	return items, nil
}

// Delete removes a project in a fixed order: blob folder first, then file
// rows, then the project row. Storage is reclaimed before the rows referring
// to it disappear, so a failure part-way leaves rows that still point at
// nothing rather than orphaned blobs nothing points at.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if project == nil {
		return nil
	}

	prefix := fmt.Sprintf("%s/%s", constant.ProjectsBasePath, id.String())
	if err := s.blobStore.DeletePrefix(ctx, prefix); err != nil {
		s.log.Warn("project", "failed to delete project blobs, continuing with row delete", map[string]interface{}{
			"project_id": id.String(),
			"error":      err.Error(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ProjectFileRepository().DeleteAllByProjectIdUnscoped(ctx, id); err != nil {
		return err
	}
	if err := uow.ProjectRepository().DeleteUnscoped(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.log.Info("project", "project deleted", map[string]interface{}{"project_id": id.String()})
	return nil
}

func (s *projectService) UploadFile(ctx context.Context, projectId uuid.UUID, fileName, contentType string, data []byte) (*dto.UploadProjectFileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	storagePath := fmt.Sprintf("%s/%s/%s", constant.ProjectsBasePath, projectId.String(), fileName)
	if _, err := s.blobStore.Upload(ctx, data, storagePath, true); err != nil {
		return nil, fmt.Errorf("upload project file: %w", err)
	}

	file := &entity.ProjectFile{
		Id:          uuid.New(),
		ProjectId:   projectId,
		FileName:    fileName,
		StoragePath: storagePath,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		CreatedAt:   time.Now(),
	}
	if err := uow.ProjectFileRepository().Create(ctx, file); err != nil {
		return nil, err
	}

	return &dto.UploadProjectFileResponse{
		Id:          file.Id,
		FileName:    file.FileName,
		StoragePath: file.StoragePath,
	}, nil
}
