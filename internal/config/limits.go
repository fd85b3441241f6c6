package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxProjectNameLength = 255

	// MaxSlugLength is the maximum length for project slugs. Slugs end
	// up in URLs, so they stay short.
	MaxSlugLength = 100

	// MaxFilePathLength is the maximum length for file paths within a
	// version. Set to 500 to allow paths like "assets/img/hero.png"
	// with room for deep-ish trees. Longer paths indicate overly deep
	// hierarchies (anti-pattern).
	MaxFilePathLength = 500

	// MaxFileContentBytes is the maximum stored size of a single file.
	// These are hand-written or LLM-written web assets, not uploads.
	MaxFileContentBytes = 2 << 20 // 2MB

	// MaxWriteBatchSize is the maximum number of files in one
	// write_files call.
	MaxWriteBatchSize = 50
)
