package contenttype

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// mimeTable is the on-disk shape of the extension table
type mimeTable struct {
	Default string `yaml:"default"`
	Types   []struct {
		Extensions []string `yaml:"extensions"`
		MIME       string   `yaml:"mime"`
	} `yaml:"types"`
}

// Registry maps file extensions to MIME types. The table is loaded once
// from an embedded YAML file; lookups never fail, unknown extensions get
// the default type.
type Registry struct {
	mu       sync.RWMutex
	byExt    map[string]string
	fallback string
}

// NewRegistry creates a content-type registry from the embedded table
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/types.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read content-type table: %w", err)
	}

	var table mimeTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content-type table: %w", err)
	}

	if table.Default == "" {
		return nil, fmt.Errorf("content-type table has no default")
	}

	r := &Registry{
		byExt:    make(map[string]string),
		fallback: table.Default,
	}
	for _, t := range table.Types {
		for _, ext := range t.Extensions {
			r.byExt[strings.ToLower(ext)] = t.MIME
		}
	}

	return r, nil
}

// Lookup returns the MIME type for a file path based on its extension.
// Paths without a known extension resolve to the default type.
func (r *Registry) Lookup(filePath string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filePath)), ".")
	if ext == "" {
		return r.fallback
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if mime, ok := r.byExt[ext]; ok {
		return mime
	}
	return r.fallback
}

// Default returns the fallback MIME type
func (r *Registry) Default() string {
	return r.fallback
}
