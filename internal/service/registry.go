package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"sitewright/internal/config"
	"sitewright/internal/domain"
	"sitewright/internal/domain/models"
	"sitewright/internal/domain/repositories"
	"sitewright/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// slugPattern: lowercase letters, digits, and hyphens only
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// projectRegistry implements the ProjectRegistry interface
type projectRegistry struct {
	projectRepo repositories.ProjectRepository
	versionRepo repositories.VersionRepository
	fileRepo    repositories.FileRepository
	logger      *slog.Logger
}

// NewProjectRegistry creates a new project registry
func NewProjectRegistry(
	projectRepo repositories.ProjectRepository,
	versionRepo repositories.VersionRepository,
	fileRepo repositories.FileRepository,
	logger *slog.Logger,
) services.ProjectRegistry {
	return &projectRegistry{
		projectRepo: projectRepo,
		versionRepo: versionRepo,
		fileRepo:    fileRepo,
		logger:      logger,
	}
}

// CreateProject creates the project row, then its version-1 draft, then
// links the draft pointer.
//
// The three steps are deliberately not one transaction: if draft
// allocation fails the project row survives with a nil draft pointer and
// the error tells the caller initialization was incomplete rather than
// silently discarding the project.
func (s *projectRegistry) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*services.CreateProjectResult, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	now := time.Now()
	project := &models.Project{
		Owner:       req.Owner,
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: req.Description,
		Status:      models.ProjectStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	draft := &models.Version{
		ProjectID:     project.ID,
		VersionNumber: 1,
		Message:       models.InitialVersionMessage,
		IsDraft:       true,
		CreatedAt:     now,
	}

	if err := s.versionRepo.Create(ctx, draft); err != nil {
		s.logger.Error("draft initialization failed after project create",
			"project_id", project.ID,
			"error", err,
		)
		return nil, &domain.StoreError{
			Message: fmt.Sprintf("project %s created but draft initialization failed: %v", project.ID, err),
		}
	}

	project.DraftVersionID = &draft.ID
	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(ctx, project); err != nil {
		s.logger.Error("draft link failed after project create",
			"project_id", project.ID,
			"draft_version_id", draft.ID,
			"error", err,
		)
		return nil, &domain.StoreError{
			Message: fmt.Sprintf("project %s created but draft link failed: %v", project.ID, err),
		}
	}

	s.logger.Info("project created",
		"id", project.ID,
		"slug", project.Slug,
		"owner", project.Owner,
		"draft_version_id", draft.ID,
	)

	return &services.CreateProjectResult{Project: project, DraftVersion: draft}, nil
}

// ListProjects retrieves all projects for an owner, newest first
func (s *projectRegistry) ListProjects(ctx context.Context, owner string) ([]models.Project, error) {
	return s.projectRepo.List(ctx, owner)
}

// GetProject retrieves a project with the file listing of its effective
// version (draft if present, else active)
func (s *projectRegistry) GetProject(ctx context.Context, projectID string) (*services.ProjectDetail, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	detail := &services.ProjectDetail{
		Project: project,
		Files:   []services.FileInfo{},
	}

	effective := project.EffectiveVersionID()
	if effective == nil {
		return detail, nil
	}

	files, err := s.fileRepo.ListByVersion(ctx, *effective)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		detail.Files = append(detail.Files, services.FileInfo{
			Path:        f.FilePath,
			ContentType: f.ContentType,
			Size:        len(f.Content),
		})
	}

	return detail, nil
}

// UpdateSettings applies the supplied fields only. Supplying none is a
// distinct no-op, not an error.
func (s *projectRegistry) UpdateSettings(ctx context.Context, projectID string, req *services.UpdateSettingsRequest) (*services.UpdateSettingsResult, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !req.HasFields() {
		return &services.UpdateSettingsResult{Project: project, Changed: false}, nil
	}

	if req.Name.Present {
		if req.Name.Value == nil {
			return nil, &domain.ValidationError{Message: "name cannot be cleared"}
		}
		name := strings.TrimSpace(*req.Name.Value)
		if err := validation.Validate(name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
		); err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("name: %v", err)}
		}
		project.Name = name
	}

	if req.Slug.Present {
		if req.Slug.Value == nil {
			return nil, &domain.ValidationError{Message: "slug cannot be cleared"}
		}
		slug := *req.Slug.Value
		if err := validation.Validate(slug,
			validation.Required,
			validation.Length(1, config.MaxSlugLength),
			validation.Match(slugPattern).Error("must contain only lowercase letters, digits, and hyphens"),
		); err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("slug: %v", err)}
		}
		project.Slug = slug
	}

	if req.Description.Present {
		// Null clears the description
		project.Description = req.Description.Value
	}

	if req.IsPublic.Present {
		project.IsPublic = req.IsPublic.Value
	}

	if req.ShowSource.Present {
		project.ShowSource = req.ShowSource.Value
	}

	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project settings updated",
		"id", project.ID,
		"slug", project.Slug,
	)

	return &services.UpdateSettingsResult{Project: project, Changed: true}, nil
}

// validateCreateRequest validates a create project request
func (s *projectRegistry) validateCreateRequest(req *services.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Owner, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
			validation.By(validateProjectName),
		),
		validation.Field(&req.Slug,
			validation.Required,
			validation.Length(1, config.MaxSlugLength),
			validation.Match(slugPattern).Error("must contain only lowercase letters, digits, and hyphens"),
		),
	)
}

// validateProjectName validates a project name
func validateProjectName(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("name must be a string")
	}

	// Trim for validation
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	return nil
}
