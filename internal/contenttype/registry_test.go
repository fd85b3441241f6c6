package contenttype

import "testing"

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if registry == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if registry.Default() != "text/plain" {
		t.Errorf("expected default text/plain, got %s", registry.Default())
	}
}

func TestRegistry_Lookup(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"index.html", "text/html"},
		{"pages/about.htm", "text/html"},
		{"css/style.css", "text/css"},
		{"app.js", "application/javascript"},
		{"lib/util.mjs", "application/javascript"},
		{"main.ts", "application/typescript"},
		{"data.json", "application/json"},
		{"logo.svg", "image/svg+xml"},
		{"img/hero.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"README.md", "text/markdown"},
		{"notes.txt", "text/plain"},
		{"INDEX.HTML", "text/html"}, // case-insensitive
		{"Makefile", "text/plain"},  // no extension
		{"archive.tar.gz", "text/plain"},
		{"weird.xyz", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := registry.Lookup(tt.path)
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
