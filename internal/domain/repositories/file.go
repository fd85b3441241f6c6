package repositories

import (
	"context"

	"sitewright/internal/domain/models"
)

// FileRepository defines storage operations for files
type FileRepository interface {
	// Upsert inserts the file, replacing any existing row at the same
	// (version_id, file_path) in a single statement. There is never a
	// window where the path resolves to nothing.
	Upsert(ctx context.Context, file *models.File) error

	// GetByPath retrieves a single file within a version
	GetByPath(ctx context.Context, versionID, filePath string) (*models.File, error)

	// ListByVersion retrieves all files of a version ordered by path
	ListByVersion(ctx context.Context, versionID string) ([]models.File, error)

	// DeleteByPaths removes the files at the given paths within a
	// version, returning the number of rows actually removed (missing
	// paths are not an error)
	DeleteByPaths(ctx context.Context, versionID string, paths []string) (int64, error)

	// DeleteByVersion removes all files of a version
	DeleteByVersion(ctx context.Context, versionID string) (int64, error)

	// DeleteByProject removes the files of every version of a project
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}
