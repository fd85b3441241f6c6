package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the project/version/file tables if they do not
// exist yet.
//
// The project's active_version_id and draft_version_id pointers carry no
// FK constraint: they point into the versions table, whose rows carry an
// FK back to the project, and the deletion protocol clears the pointers
// before removing the referents.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				owner TEXT NOT NULL,
				name TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				description TEXT,
				is_public BOOLEAN NOT NULL DEFAULT FALSE,
				show_source BOOLEAN NOT NULL DEFAULT FALSE,
				status TEXT NOT NULL DEFAULT 'draft',
				active_version_id UUID,
				draft_version_id UUID,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)
		`, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				project_id UUID NOT NULL REFERENCES %s(id),
				version_number INTEGER NOT NULL CHECK (version_number > 0),
				message TEXT NOT NULL DEFAULT '',
				is_draft BOOLEAN NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				UNIQUE (project_id, version_number)
			)
		`, tables.Versions, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				version_id UUID NOT NULL REFERENCES %s(id),
				file_path TEXT NOT NULL CHECK (file_path <> ''),
				content TEXT NOT NULL,
				content_type TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				UNIQUE (version_id, file_path)
			)
		`, tables.Files, tables.Versions),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_project_idx ON %s(project_id)
		`, tables.Versions, tables.Versions),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_version_idx ON %s(version_id)
		`, tables.Files, tables.Files),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
