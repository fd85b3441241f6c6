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

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Upsert inserts the file, replacing any existing row at the same
// (version_id, file_path). Single statement, so the path never briefly
// resolves to nothing mid-write.
func (r *PostgresFileRepository) Upsert(ctx context.Context, file *models.File) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, version_id, file_path, content, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (version_id, file_path)
		DO UPDATE SET content = EXCLUDED.content, content_type = EXCLUDED.content_type
		RETURNING id
	`, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.ID,
		file.VersionID,
		file.FilePath,
		file.Content,
		file.ContentType,
		file.CreatedAt,
	).Scan(&file.ID)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("version %s: %w", file.VersionID, domain.ErrNotFound)
		}
		return fmt.Errorf("upsert file: %w", err)
	}

	return nil
}

// GetByPath retrieves a single file within a version
func (r *PostgresFileRepository) GetByPath(ctx context.Context, versionID, filePath string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, version_id, file_path, content, content_type, created_at
		FROM %s
		WHERE version_id = $1 AND file_path = $2
	`, r.tables.Files)

	var file models.File
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, versionID, filePath).Scan(
		&file.ID,
		&file.VersionID,
		&file.FilePath,
		&file.Content,
		&file.ContentType,
		&file.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", filePath, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// ListByVersion retrieves all files of a version ordered by path
func (r *PostgresFileRepository) ListByVersion(ctx context.Context, versionID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, version_id, file_path, content, content_type, created_at
		FROM %s
		WHERE version_id = $1
		ORDER BY file_path
	`, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, versionID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.VersionID,
			&file.FilePath,
			&file.Content,
			&file.ContentType,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	if files == nil {
		files = []models.File{}
	}

	return files, nil
}

// DeleteByPaths removes the files at the given paths within a version
func (r *PostgresFileRepository) DeleteByPaths(ctx context.Context, versionID string, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE version_id = $1 AND file_path = ANY($2)
	`, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, versionID, paths)
	if err != nil {
		return 0, fmt.Errorf("delete files: %w", err)
	}

	return result.RowsAffected(), nil
}

// DeleteByVersion removes all files of a version
func (r *PostgresFileRepository) DeleteByVersion(ctx context.Context, versionID string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE version_id = $1
	`, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, versionID)
	if err != nil {
		return 0, fmt.Errorf("delete version files: %w", err)
	}

	return result.RowsAffected(), nil
}

// DeleteByProject removes the files of every version of a project
func (r *PostgresFileRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE version_id IN (SELECT id FROM %s WHERE project_id = $1)
	`, r.tables.Files, r.tables.Versions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID)
	if err != nil {
		return 0, fmt.Errorf("delete project files: %w", err)
	}

	return result.RowsAffected(), nil
}
