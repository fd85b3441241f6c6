package services

import (
	"context"
	"time"
)

// PublishResult reports a completed publish. DraftError is non-empty
// when the publish itself landed but the follow-up draft could not be
// allocated; the project is then draft-less until the caller intervenes.
type PublishResult struct {
	LiveURL           string  `json:"live_url"`
	VersionNumber     int     `json:"version_number"`
	NewDraftVersionID *string `json:"new_draft_version_id,omitempty"`
	DraftError        string  `json:"draft_error,omitempty"`
}

// RollbackResult reports which version the draft was reset to and how
// many files were copied into it.
type RollbackResult struct {
	VersionNumber int `json:"version_number"`
	FilesCopied   int `json:"files_copied"`
}

// DeleteProjectResult distinguishes an actual deletion from a refused
// unconfirmed one.
type DeleteProjectResult struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

// VersionSummary annotates a version with its role in the project's
// current pointer graph.
type VersionSummary struct {
	ID             string    `json:"id"`
	VersionNumber  int       `json:"version_number"`
	Message        string    `json:"message"`
	IsDraft        bool      `json:"is_draft"`
	IsActive       bool      `json:"is_active"`
	IsCurrentDraft bool      `json:"is_current_draft"`
	CreatedAt      time.Time `json:"created_at"`
}

// PreviewInfo is the derived preview location for a project's draft.
type PreviewInfo struct {
	PreviewURL string `json:"preview_url"`
	Slug       string `json:"slug"`
}

// VersionManager owns the draft-publish-rollback-delete protocol: the
// pointer updates among project, versions, and files that must never
// leave the graph referencing a deleted or half-written row.
type VersionManager interface {
	// Publish promotes the draft to active and spawns a fresh draft
	// copied from it. Losing the new draft is recoverable; losing a
	// publish is not, so the publish is finalized before the draft is
	// attempted.
	Publish(ctx context.Context, projectID, message string) (*PublishResult, error)

	// Rollback replaces the draft's file set with a copy of the target
	// version's files. It never creates, renumbers, or publishes a
	// version. Safe to retry.
	Rollback(ctx context.Context, projectID, targetVersionID string) (*RollbackResult, error)

	// DeleteProject destroys the project and all its versions and
	// files. Refuses without confirm.
	DeleteProject(ctx context.Context, projectID string, confirm bool) (*DeleteProjectResult, error)

	// ListVersions retrieves all versions, newest number first
	ListVersions(ctx context.Context, projectID string) ([]VersionSummary, error)

	// PreviewURL derives the draft preview location. Pure; no store
	// mutation. Fails when no draft exists.
	PreviewURL(ctx context.Context, projectID string) (*PreviewInfo, error)
}
