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

// PostgresVersionRepository implements the VersionRepository interface
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(config *RepositoryConfig) repositories.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new version row
func (r *PostgresVersionRepository) Create(ctx context.Context, version *models.Version) error {
	if version.ID == "" {
		version.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, version_number, message, is_draft, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Versions)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		version.ID,
		version.ProjectID,
		version.VersionNumber,
		version.Message,
		version.IsDraft,
		version.CreatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("version %d already exists for project %s", version.VersionNumber, version.ProjectID),
				ResourceType: "version",
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", version.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create version: %w", err)
	}

	return nil
}

// GetByID retrieves a version by ID
func (r *PostgresVersionRepository) GetByID(ctx context.Context, id string) (*models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, version_number, message, is_draft, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Versions)

	var version models.Version
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&version.ID,
		&version.ProjectID,
		&version.VersionNumber,
		&version.Message,
		&version.IsDraft,
		&version.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get version: %w", err)
	}

	return &version, nil
}

// ListByProject retrieves all versions of a project, newest number first
func (r *PostgresVersionRepository) ListByProject(ctx context.Context, projectID string) ([]models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, version_number, message, is_draft, created_at
		FROM %s
		WHERE project_id = $1
		ORDER BY version_number DESC
	`, r.tables.Versions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []models.Version
	for rows.Next() {
		var version models.Version
		err := rows.Scan(
			&version.ID,
			&version.ProjectID,
			&version.VersionNumber,
			&version.Message,
			&version.IsDraft,
			&version.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, version)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}

	if versions == nil {
		versions = []models.Version{}
	}

	return versions, nil
}

// MarkPublished flips is_draft to false and sets the message
func (r *PostgresVersionRepository) MarkPublished(ctx context.Context, id, message string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_draft = FALSE, message = $1
		WHERE id = $2
	`, r.tables.Versions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, message, id)
	if err != nil {
		return fmt.Errorf("mark version published: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByProject removes all versions of a project
func (r *PostgresVersionRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1
	`, r.tables.Versions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID)
	if err != nil {
		return 0, fmt.Errorf("delete versions: %w", err)
	}

	return result.RowsAffected(), nil
}
