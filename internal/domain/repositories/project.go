package repositories

import (
	"context"

	"sitewright/internal/domain/models"
)

// ProjectRepository defines storage operations for projects
type ProjectRepository interface {
	// Create inserts a new project row. Returns ConflictError if the
	// slug is already taken.
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// GetBySlug retrieves a project by its slug
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)

	// List retrieves all projects for an owner, newest created_at first
	List(ctx context.Context, owner string) ([]models.Project, error)

	// Update writes the project's mutable fields (name, slug,
	// description, visibility flags, status, version pointers,
	// updated_at). Returns ConflictError on a slug collision.
	Update(ctx context.Context, project *models.Project) error

	// Delete removes the project row
	Delete(ctx context.Context, id string) error
}
