package models

import "time"

// ProjectStatus tracks whether a project has ever been published.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPublished ProjectStatus = "published"
)

// Project is a named, slugged container for one web app's versions.
//
// At most one version is reachable via DraftVersionID (the mutable draft)
// and at most one via ActiveVersionID (the published snapshot being
// served). ActiveVersionID is nil until the first publish. DraftVersionID
// is nil only transiently, when draft allocation failed partway through
// create or publish, or after deletion.
type Project struct {
	ID              string        `json:"id" db:"id"`
	Owner           string        `json:"owner" db:"owner"`
	Name            string        `json:"name" db:"name"`
	Slug            string        `json:"slug" db:"slug"`
	Description     *string       `json:"description,omitempty" db:"description"`
	IsPublic        bool          `json:"is_public" db:"is_public"`
	ShowSource      bool          `json:"show_source" db:"show_source"`
	Status          ProjectStatus `json:"status" db:"status"`
	ActiveVersionID *string       `json:"active_version_id,omitempty" db:"active_version_id"`
	DraftVersionID  *string       `json:"draft_version_id,omitempty" db:"draft_version_id"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// HasDraft reports whether the project currently has an editable draft.
func (p *Project) HasDraft() bool {
	return p.DraftVersionID != nil
}

// EffectiveVersionID returns the version reads should resolve against:
// the draft if present, otherwise the active version. Nil if neither
// exists.
func (p *Project) EffectiveVersionID() *string {
	if p.DraftVersionID != nil {
		return p.DraftVersionID
	}
	return p.ActiveVersionID
}
