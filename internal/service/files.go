package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"sitewright/internal/config"
	"sitewright/internal/contenttype"
	"sitewright/internal/domain"
	"sitewright/internal/domain/models"
	"sitewright/internal/domain/repositories"
	"sitewright/internal/domain/services"
)

// fileEditor implements the FileEditor interface
type fileEditor struct {
	projectRepo repositories.ProjectRepository
	fileRepo    repositories.FileRepository
	types       *contenttype.Registry
	logger      *slog.Logger
}

// NewFileEditor creates a new file editor
func NewFileEditor(
	projectRepo repositories.ProjectRepository,
	fileRepo repositories.FileRepository,
	types *contenttype.Registry,
	logger *slog.Logger,
) services.FileEditor {
	return &fileEditor{
		projectRepo: projectRepo,
		fileRepo:    fileRepo,
		types:       types,
		logger:      logger,
	}
}

// ReadFiles returns the effective version's files, optionally filtered
// to the given paths. An empty result is not an error.
func (s *fileEditor) ReadFiles(ctx context.Context, projectID string, paths []string) ([]models.File, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	effective := project.EffectiveVersionID()
	if effective == nil {
		return []models.File{}, nil
	}

	files, err := s.fileRepo.ListByVersion(ctx, *effective)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return files, nil
	}

	wanted := make(map[string]bool, len(paths))
	for _, p := range paths {
		normalized, err := NormalizeFilePath(p)
		if err != nil {
			continue // unreadable filter entries just match nothing
		}
		wanted[normalized] = true
	}

	filtered := []models.File{}
	for _, f := range files {
		if wanted[f.FilePath] {
			filtered = append(filtered, f)
		}
	}

	return filtered, nil
}

// WriteFiles upserts each file into the draft. Per-file outcomes; one
// bad file never sinks the batch.
func (s *fileEditor) WriteFiles(ctx context.Context, projectID string, files []services.WriteFileRequest) ([]services.WriteFileResult, error) {
	if len(files) == 0 {
		return nil, &domain.ValidationError{Message: "no files to write"}
	}
	if len(files) > config.MaxWriteBatchSize {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("write batch too large: %d files (max %d)", len(files), config.MaxWriteBatchSize),
		}
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.HasDraft() {
		return nil, &domain.StateError{Message: "project has no draft; files can only be written to a draft"}
	}

	draftID := *project.DraftVersionID
	results := make([]services.WriteFileResult, 0, len(files))
	written := 0

	for _, req := range files {
		filePath, err := NormalizeFilePath(req.Path)
		if err != nil {
			results = append(results, services.WriteFileResult{Path: req.Path, OK: false, Error: err.Error()})
			continue
		}

		if len(req.Content) > config.MaxFileContentBytes {
			results = append(results, services.WriteFileResult{
				Path:  filePath,
				OK:    false,
				Error: fmt.Sprintf("content too large: %d bytes (max %d)", len(req.Content), config.MaxFileContentBytes),
			})
			continue
		}

		contentType := req.ContentType
		if contentType == "" {
			contentType = s.types.Lookup(filePath)
		}

		file := &models.File{
			VersionID:   draftID,
			FilePath:    filePath,
			Content:     req.Content,
			ContentType: contentType,
			CreatedAt:   time.Now(),
		}

		if err := s.fileRepo.Upsert(ctx, file); err != nil {
			results = append(results, services.WriteFileResult{Path: filePath, OK: false, Error: err.Error()})
			continue
		}

		results = append(results, services.WriteFileResult{Path: filePath, OK: true})
		written++
	}

	s.logger.Info("files written",
		"project_id", projectID,
		"draft_version_id", draftID,
		"written", written,
		"failed", len(results)-written,
	)

	return results, nil
}

// DeleteFiles removes the given paths from the draft. The count may be
// less than len(paths) when some paths did not exist; that is not an
// error.
func (s *fileEditor) DeleteFiles(ctx context.Context, projectID string, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, &domain.ValidationError{Message: "no file paths to delete"}
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return 0, err
	}

	if !project.HasDraft() {
		return 0, &domain.StateError{Message: "project has no draft; files can only be deleted from a draft"}
	}

	normalized := make([]string, 0, len(paths))
	for _, p := range paths {
		np, err := NormalizeFilePath(p)
		if err != nil {
			continue // a malformed path matches nothing
		}
		normalized = append(normalized, np)
	}

	deleted, err := s.fileRepo.DeleteByPaths(ctx, *project.DraftVersionID, normalized)
	if err != nil {
		return 0, err
	}

	s.logger.Info("files deleted",
		"project_id", projectID,
		"requested", len(paths),
		"deleted", deleted,
	)

	return deleted, nil
}

// NormalizeFilePath canonicalizes a caller-supplied file path: trims
// whitespace, strips the leading slash, collapses dot segments. Paths
// that are empty, escape the root, or use backslashes are rejected.
func NormalizeFilePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "/")

	if p == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	if strings.Contains(p, "\\") {
		return "", fmt.Errorf("file path cannot contain backslashes")
	}

	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid file path: %s", p)
	}
	if len(cleaned) > config.MaxFilePathLength {
		return "", fmt.Errorf("file path too long: %d characters (max %d)", len(cleaned), config.MaxFilePathLength)
	}

	return cleaned, nil
}
