package models

import "time"

// File is one text payload within a version. FilePath is unique within
// the owning version; a write replaces the prior row at that path.
// Files belonging to different versions are independent copies, never
// shared, so a published snapshot can never be altered through its
// successor draft.
type File struct {
	ID          string    `json:"id" db:"id"`
	VersionID   string    `json:"version_id" db:"version_id"`
	FilePath    string    `json:"file_path" db:"file_path"`
	Content     string    `json:"content" db:"content"`
	ContentType string    `json:"content_type" db:"content_type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
