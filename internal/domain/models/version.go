package models

import "time"

// Version is a snapshot of a project's files. Exactly one version per
// project may have IsDraft=true; once IsDraft flips to false on publish
// it never flips back. VersionNumber starts at 1 and is strictly
// increasing within a project.
type Version struct {
	ID            string    `json:"id" db:"id"`
	ProjectID     string    `json:"project_id" db:"project_id"`
	VersionNumber int       `json:"version_number" db:"version_number"`
	Message       string    `json:"message" db:"message"`
	IsDraft       bool      `json:"is_draft" db:"is_draft"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Default messages for lifecycle-created versions.
const (
	InitialVersionMessage = "Initial version"
	PublishedMessage      = "Published"
	DraftMessage          = "Draft"
)
