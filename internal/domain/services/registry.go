package services

import (
	"context"

	"sitewright/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Owner       string  `json:"owner"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

// CreateProjectResult is the outcome of a successful create: the project
// row plus its freshly allocated version-1 draft.
type CreateProjectResult struct {
	Project      *models.Project `json:"project"`
	DraftVersion *models.Version `json:"draft_version"`
}

// UpdateSettingsRequest carries partial project settings. Only fields
// with Present=true are applied; supplying none is a distinct no-op.
type UpdateSettingsRequest struct {
	Name        OptionalString `json:"name"`
	Slug        OptionalString `json:"slug"`
	Description OptionalString `json:"description"`
	IsPublic    OptionalBool   `json:"is_public"`
	ShowSource  OptionalBool   `json:"show_source"`
}

// HasFields reports whether at least one field was supplied.
func (r *UpdateSettingsRequest) HasFields() bool {
	return r.Name.Present || r.Slug.Present || r.Description.Present ||
		r.IsPublic.Present || r.ShowSource.Present
}

// UpdateSettingsResult reports the updated project. Changed=false means
// no fields were supplied and nothing was written.
type UpdateSettingsResult struct {
	Project *models.Project `json:"project"`
	Changed bool            `json:"changed"`
}

// FileInfo is a file listing entry (metadata only, no content)
type FileInfo struct {
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// ProjectDetail is a project plus the file listing of its effective
// version (draft if present, else active).
type ProjectDetail struct {
	Project *models.Project `json:"project"`
	Files   []FileInfo      `json:"files"`
}

// ProjectRegistry defines business logic for project creation, listing,
// and settings mutation. Slug uniqueness and validation live here.
type ProjectRegistry interface {
	// CreateProject creates the project row, then its version-1 draft,
	// then links the draft pointer. If draft allocation fails the
	// project survives with a nil draft pointer and the error says so.
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*CreateProjectResult, error)

	// ListProjects retrieves all projects for an owner, newest first
	ListProjects(ctx context.Context, owner string) ([]models.Project, error)

	// GetProject retrieves a project with the file listing of its
	// effective version
	GetProject(ctx context.Context, projectID string) (*ProjectDetail, error)

	// UpdateSettings applies the supplied fields only
	UpdateSettings(ctx context.Context, projectID string, req *UpdateSettingsRequest) (*UpdateSettingsResult, error)
}
