package repositories

import (
	"context"

	"sitewright/internal/domain/models"
)

// VersionRepository defines storage operations for versions
type VersionRepository interface {
	// Create inserts a new version row. Returns ConflictError if the
	// version number is already taken within the project.
	Create(ctx context.Context, version *models.Version) error

	// GetByID retrieves a version by ID
	GetByID(ctx context.Context, id string) (*models.Version, error)

	// ListByProject retrieves all versions of a project, newest
	// version_number first
	ListByProject(ctx context.Context, projectID string) ([]models.Version, error)

	// MarkPublished flips is_draft to false and sets the message.
	// The flip is one-way; a published version never becomes a draft
	// again.
	MarkPublished(ctx context.Context, id, message string) error

	// DeleteByProject removes all versions of a project, returning the
	// number of rows removed
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}
