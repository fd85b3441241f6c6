package services

import (
	"context"

	"sitewright/internal/domain/models"
)

// WriteFileRequest is one file in a write batch. ContentType is optional;
// when empty it is inferred from the path's extension.
type WriteFileRequest struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	ContentType string `json:"content_type,omitempty"`
}

// WriteFileResult is the per-file outcome of a write batch. A batch
// partially succeeds; callers see exactly which files landed.
type WriteFileResult struct {
	Path  string `json:"path"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// FileEditor defines read/write/delete of files within a project's
// current draft. Reads resolve against the effective version (draft if
// present, else active); writes and deletes require a draft.
type FileEditor interface {
	// ReadFiles returns the effective version's files, optionally
	// filtered to the given paths. An empty result is not an error.
	ReadFiles(ctx context.Context, projectID string, paths []string) ([]models.File, error)

	// WriteFiles upserts each file into the draft, reporting per-file
	// outcomes
	WriteFiles(ctx context.Context, projectID string, files []WriteFileRequest) ([]WriteFileResult, error)

	// DeleteFiles removes the given paths from the draft, returning the
	// count actually removed
	DeleteFiles(ctx context.Context, projectID string, paths []string) (int64, error)
}
