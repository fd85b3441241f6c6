package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sitewright/internal/domain"
	"sitewright/internal/domain/models"
	"sitewright/internal/domain/repositories"
	"sitewright/internal/domain/services"
)

// versionManager implements the VersionManager interface. It owns the
// pointer updates among project, versions, and files; every multi-row
// step runs inside a transaction so the pointer graph never references a
// half-written row.
type versionManager struct {
	projectRepo repositories.ProjectRepository
	versionRepo repositories.VersionRepository
	fileRepo    repositories.FileRepository
	txManager   repositories.TransactionManager
	urls        SiteURLs
	logger      *slog.Logger
}

// NewVersionManager creates a new version manager
func NewVersionManager(
	projectRepo repositories.ProjectRepository,
	versionRepo repositories.VersionRepository,
	fileRepo repositories.FileRepository,
	txManager repositories.TransactionManager,
	urls SiteURLs,
	logger *slog.Logger,
) services.VersionManager {
	return &versionManager{
		projectRepo: projectRepo,
		versionRepo: versionRepo,
		fileRepo:    fileRepo,
		txManager:   txManager,
		urls:        urls,
		logger:      logger,
	}
}

// Publish promotes the draft to active and spawns a fresh draft copied
// from it.
//
// Two transactions, on purpose. The first finalizes the publish: flip
// the draft to published, advance the project pointers. The second
// allocates the replacement draft and copies the files. If the second
// fails the publish stands and the project is simply draft-less until
// the caller intervenes; losing a draft is recoverable (re-derive from
// active), losing a publish is not.
func (m *versionManager) Publish(ctx context.Context, projectID, message string) (*services.PublishResult, error) {
	project, err := m.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.HasDraft() {
		return nil, &domain.StateError{Message: "no draft to publish"}
	}

	draftID := *project.DraftVersionID
	draft, err := m.versionRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if message == "" {
		message = models.PublishedMessage
	}

	// Finalize the publish: version flip + pointer advance together.
	err = m.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := m.versionRepo.MarkPublished(txCtx, draftID, message); err != nil {
			return err
		}

		project.ActiveVersionID = &draftID
		project.DraftVersionID = nil
		project.Status = models.ProjectStatusPublished
		project.UpdatedAt = time.Now()
		return m.projectRepo.Update(txCtx, project)
	})
	if err != nil {
		return nil, err
	}

	result := &services.PublishResult{
		LiveURL:       m.urls.Live(project.Slug),
		VersionNumber: draft.VersionNumber,
	}

	// Allocate the replacement draft with a full file copy.
	newDraft := &models.Version{
		ProjectID:     projectID,
		VersionNumber: draft.VersionNumber + 1,
		Message:       models.DraftMessage,
		IsDraft:       true,
		CreatedAt:     time.Now(),
	}

	err = m.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := m.versionRepo.Create(txCtx, newDraft); err != nil {
			return err
		}

		published, err := m.fileRepo.ListByVersion(txCtx, draftID)
		if err != nil {
			return err
		}

		// Real duplicate rows, not references: later draft edits must
		// never reach the published snapshot.
		for _, f := range published {
			dup := &models.File{
				VersionID:   newDraft.ID,
				FilePath:    f.FilePath,
				Content:     f.Content,
				ContentType: f.ContentType,
				CreatedAt:   time.Now(),
			}
			if err := m.fileRepo.Upsert(txCtx, dup); err != nil {
				return err
			}
		}

		project.DraftVersionID = &newDraft.ID
		project.UpdatedAt = time.Now()
		return m.projectRepo.Update(txCtx, project)
	})
	if err != nil {
		m.logger.Error("publish landed but draft allocation failed",
			"project_id", projectID,
			"published_version", draft.VersionNumber,
			"error", err,
		)
		result.DraftError = fmt.Sprintf("publish succeeded but draft creation failed: %v", err)
		return result, nil
	}

	result.NewDraftVersionID = &newDraft.ID

	m.logger.Info("project published",
		"project_id", projectID,
		"version", draft.VersionNumber,
		"new_draft_version_id", newDraft.ID,
	)

	return result, nil
}

// Rollback replaces the draft's file set with a copy of the target
// version's files. Full replace, not merge; never creates, renumbers, or
// publishes a version. Re-running from any intermediate state reaches
// the same end state.
func (m *versionManager) Rollback(ctx context.Context, projectID, targetVersionID string) (*services.RollbackResult, error) {
	project, err := m.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.HasDraft() {
		return nil, &domain.StateError{Message: "no draft to roll back into"}
	}

	target, err := m.versionRepo.GetByID(ctx, targetVersionID)
	if err != nil {
		return nil, err
	}

	// Defends against cross-project id confusion
	if target.ProjectID != projectID {
		return nil, &domain.NotFoundError{
			Message: fmt.Sprintf("version %s not found in project %s", targetVersionID, projectID),
		}
	}

	draftID := *project.DraftVersionID
	copied := 0

	err = m.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		targetFiles, err := m.fileRepo.ListByVersion(txCtx, targetVersionID)
		if err != nil {
			return err
		}

		if _, err := m.fileRepo.DeleteByVersion(txCtx, draftID); err != nil {
			return err
		}

		for _, f := range targetFiles {
			dup := &models.File{
				VersionID:   draftID,
				FilePath:    f.FilePath,
				Content:     f.Content,
				ContentType: f.ContentType,
				CreatedAt:   time.Now(),
			}
			if err := m.fileRepo.Upsert(txCtx, dup); err != nil {
				return err
			}
		}

		copied = len(targetFiles)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("draft rolled back",
		"project_id", projectID,
		"target_version", target.VersionNumber,
		"files_copied", copied,
	)

	return &services.RollbackResult{
		VersionNumber: target.VersionNumber,
		FilesCopied:   copied,
	}, nil
}

// DeleteProject destroys the project and everything it owns. Refuses
// without confirm. One transaction: pointers cleared first (breaks
// references before removing referents), then files, versions, project.
func (m *versionManager) DeleteProject(ctx context.Context, projectID string, confirm bool) (*services.DeleteProjectResult, error) {
	if !confirm {
		return &services.DeleteProjectResult{
			Deleted: false,
			Message: "deletion not confirmed; pass confirm=true to delete the project and all its versions",
		}, nil
	}

	project, err := m.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	err = m.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		project.ActiveVersionID = nil
		project.DraftVersionID = nil
		project.UpdatedAt = time.Now()
		if err := m.projectRepo.Update(txCtx, project); err != nil {
			return err
		}

		if _, err := m.fileRepo.DeleteByProject(txCtx, projectID); err != nil {
			return err
		}

		if _, err := m.versionRepo.DeleteByProject(txCtx, projectID); err != nil {
			return err
		}

		return m.projectRepo.Delete(txCtx, projectID)
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("project deleted",
		"project_id", projectID,
		"slug", project.Slug,
	)

	return &services.DeleteProjectResult{
		Deleted: true,
		Message: fmt.Sprintf("project '%s' and all its versions deleted", project.Slug),
	}, nil
}

// ListVersions retrieves all versions newest number first, annotated
// with their role in the project's current pointer graph
func (m *versionManager) ListVersions(ctx context.Context, projectID string) ([]services.VersionSummary, error) {
	project, err := m.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	versions, err := m.versionRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summaries := make([]services.VersionSummary, 0, len(versions))
	for _, v := range versions {
		summaries = append(summaries, services.VersionSummary{
			ID:             v.ID,
			VersionNumber:  v.VersionNumber,
			Message:        v.Message,
			IsDraft:        v.IsDraft,
			IsActive:       project.ActiveVersionID != nil && *project.ActiveVersionID == v.ID,
			IsCurrentDraft: project.DraftVersionID != nil && *project.DraftVersionID == v.ID,
			CreatedAt:      v.CreatedAt,
		})
	}

	return summaries, nil
}

// PreviewURL derives the draft preview location. No store mutation.
func (m *versionManager) PreviewURL(ctx context.Context, projectID string) (*services.PreviewInfo, error) {
	project, err := m.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.HasDraft() {
		return nil, &domain.StateError{Message: "project has no draft to preview"}
	}

	return &services.PreviewInfo{
		PreviewURL: m.urls.Preview(project.Slug),
		Slug:       project.Slug,
	}, nil
}
