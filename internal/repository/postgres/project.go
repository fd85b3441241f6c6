package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"sitewright/internal/domain"
	"sitewright/internal/domain/models"
	"sitewright/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const projectColumns = `id, owner, name, slug, description, is_public, show_source, status,
	active_version_id, draft_version_id, created_at, updated_at`

// Create inserts a new project row
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.tables.Projects, projectColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		project.ID,
		project.Owner,
		project.Name,
		project.Slug,
		project.Description,
		project.IsPublic,
		project.ShowSource,
		project.Status,
		project.ActiveVersionID,
		project.DraftVersionID,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingProjectID(ctx, project.Slug)
			if queryErr != nil {
				// Fallback to generic conflict error if we can't find the existing project
				return fmt.Errorf("slug '%s' already taken: %w", project.Slug, domain.ErrConflict)
			}

			return &domain.ConflictError{
				Message:      fmt.Sprintf("slug '%s' already taken", project.Slug),
				ResourceType: "project",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, projectColumns, r.tables.Projects)

	return r.getOne(ctx, query, id)
}

// GetBySlug retrieves a project by its slug
func (r *PostgresProjectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE slug = $1
	`, projectColumns, r.tables.Projects)

	return r.getOne(ctx, query, slug)
}

func (r *PostgresProjectRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Project, error) {
	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&project.ID,
		&project.Owner,
		&project.Name,
		&project.Slug,
		&project.Description,
		&project.IsPublic,
		&project.ShowSource,
		&project.Status,
		&project.ActiveVersionID,
		&project.DraftVersionID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %v: %w", arg, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// List retrieves all projects for an owner, newest created_at first
func (r *PostgresProjectRepository) List(ctx context.Context, owner string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner = $1
		ORDER BY created_at DESC
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.Owner,
			&project.Name,
			&project.Slug,
			&project.Description,
			&project.IsPublic,
			&project.ShowSource,
			&project.Status,
			&project.ActiveVersionID,
			&project.DraftVersionID,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	// Return empty slice instead of nil if no projects
	if projects == nil {
		projects = []models.Project{}
	}

	return projects, nil
}

// Update writes the project's mutable fields
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, slug = $2, description = $3, is_public = $4, show_source = $5,
			status = $6, active_version_id = $7, draft_version_id = $8, updated_at = $9
		WHERE id = $10
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		project.Name,
		project.Slug,
		project.Description,
		project.IsPublic,
		project.ShowSource,
		project.Status,
		project.ActiveVersionID,
		project.DraftVersionID,
		project.UpdatedAt,
		project.ID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingProjectID(ctx, project.Slug)
			if queryErr != nil {
				return fmt.Errorf("slug '%s' already taken: %w", project.Slug, domain.ErrConflict)
			}

			return &domain.ConflictError{
				Message:      fmt.Sprintf("slug '%s' already taken", project.Slug),
				ResourceType: "project",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a project.
// Versions must already be gone (FK constraint on the versions table).
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("cannot delete project with versions: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// getExistingProjectID queries for an existing project by slug
func (r *PostgresProjectRepository) getExistingProjectID(ctx context.Context, slug string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE slug = $1
	`, r.tables.Projects)

	var id string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, slug).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("get existing project ID: %w", err)
	}

	return id, nil
}
