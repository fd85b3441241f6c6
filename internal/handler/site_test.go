package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"sitewright/internal/domain"
	"sitewright/internal/domain/models"
	"sitewright/internal/httputil"
)

// Minimal repo stubs: only the lookups the site handler performs.

type stubProjectStore struct {
	bySlug map[string]*models.Project
}

func (s *stubProjectStore) Create(ctx context.Context, p *models.Project) error { return nil }
func (s *stubProjectStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return nil, &domain.NotFoundError{Message: "not wired"}
}
func (s *stubProjectStore) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	if p, ok := s.bySlug[slug]; ok {
		return p, nil
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("project with slug '%s' not found", slug)}
}
func (s *stubProjectStore) List(ctx context.Context, owner string) ([]models.Project, error) {
	return nil, nil
}
func (s *stubProjectStore) Update(ctx context.Context, p *models.Project) error { return nil }
func (s *stubProjectStore) Delete(ctx context.Context, id string) error         { return nil }

type stubFileStore struct {
	// keyed by versionID then path
	files map[string]map[string]*models.File
}

func (s *stubFileStore) Upsert(ctx context.Context, f *models.File) error { return nil }
func (s *stubFileStore) GetByPath(ctx context.Context, versionID, filePath string) (*models.File, error) {
	if f, ok := s.files[versionID][filePath]; ok {
		return f, nil
	}
	return nil, &domain.NotFoundError{Message: "file not found"}
}
func (s *stubFileStore) ListByVersion(ctx context.Context, versionID string) ([]models.File, error) {
	return nil, nil
}
func (s *stubFileStore) DeleteByPaths(ctx context.Context, versionID string, paths []string) (int64, error) {
	return 0, nil
}
func (s *stubFileStore) DeleteByVersion(ctx context.Context, versionID string) (int64, error) {
	return 0, nil
}
func (s *stubFileStore) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	return 0, nil
}

func newSiteFixture() (*SiteHandler, *stubProjectStore, *stubFileStore) {
	projects := &stubProjectStore{bySlug: map[string]*models.Project{}}
	files := &stubFileStore{files: map[string]map[string]*models.File{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSiteHandler(projects, files, logger), projects, files
}

func siteMux(h *SiteHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /preview/{slug}", h.ServePreview)
	mux.HandleFunc("GET /preview/{slug}/{path...}", h.ServePreview)
	mux.HandleFunc("GET /app/{slug}", h.ServeApp)
	mux.HandleFunc("GET /app/{slug}/{path...}", h.ServeApp)
	return mux
}

func seedSite(projects *stubProjectStore, files *stubFileStore) {
	draftID, activeID := "draft-v2", "active-v1"
	projects.bySlug["my-bakery"] = &models.Project{
		ID:              "p1",
		Owner:           "user-1",
		Slug:            "my-bakery",
		IsPublic:        true,
		Status:          models.ProjectStatusPublished,
		ActiveVersionID: &activeID,
		DraftVersionID:  &draftID,
	}
	files.files[draftID] = map[string]*models.File{
		"index.html": {VersionID: draftID, FilePath: "index.html", Content: "draft page", ContentType: "text/html"},
	}
	files.files[activeID] = map[string]*models.File{
		"index.html": {VersionID: activeID, FilePath: "index.html", Content: "live page", ContentType: "text/html"},
		"style.css":  {VersionID: activeID, FilePath: "style.css", Content: "h1{}", ContentType: "text/css"},
	}
}

func TestServePreview(t *testing.T) {
	t.Run("serves the draft with its stored content type", func(t *testing.T) {
		h, projects, files := newSiteFixture()
		seedSite(projects, files)

		rec := httptest.NewRecorder()
		siteMux(h).ServeHTTP(rec, httptest.NewRequest("GET", "/preview/my-bakery/index.html", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if rec.Body.String() != "draft page" {
			t.Errorf("body = %q, want the draft content", rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/html" {
			t.Errorf("content type = %q, want text/html", ct)
		}
	})

	t.Run("empty path defaults to index.html", func(t *testing.T) {
		h, projects, files := newSiteFixture()
		seedSite(projects, files)

		rec := httptest.NewRecorder()
		siteMux(h).ServeHTTP(rec, httptest.NewRequest("GET", "/preview/my-bakery", nil))

		if rec.Code != http.StatusOK || rec.Body.String() != "draft page" {
			t.Errorf("got %d %q, want the draft index", rec.Code, rec.Body.String())
		}
	})

	t.Run("404 when the project has no draft", func(t *testing.T) {
		h, projects, files := newSiteFixture()
		seedSite(projects, files)
		projects.bySlug["my-bakery"].DraftVersionID = nil

		rec := httptest.NewRecorder()
		siteMux(h).ServeHTTP(rec, httptest.NewRequest("GET", "/preview/my-bakery", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestServeApp(t *testing.T) {
	t.Run("serves the active version, not the draft", func(t *testing.T) {
		h, projects, files := newSiteFixture()
		seedSite(projects, files)

		rec := httptest.NewRecorder()
		siteMux(h).ServeHTTP(rec, httptest.NewRequest("GET", "/app/my-bakery/index.html", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if rec.Body.String() != "live page" {
			t.Errorf("body = %q, want the published content", rec.Body.String())
		}
	})

	t.Run("404 before first publish", func(t *testing.T) {
		h, projects, files := newSiteFixture()
		seedSite(projects, files)
		projects.bySlug["my-bakery"].Status = models.ProjectStatusDraft
		projects.bySlug["my-bakery"].ActiveVersionID = nil

		rec := httptest.NewRecorder()
		siteMux(h).ServeHTTP(rec, httptest.NewRequest("GET", "/app/my-bakery", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("404 for missing files and unknown slugs", func(t *testing.T) {
		h, projects, files := newSiteFixture()
		seedSite(projects, files)

		for _, path := range []string{"/app/my-bakery/missing.js", "/app/no-such-site"} {
			rec := httptest.NewRecorder()
			siteMux(h).ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
			if rec.Code != http.StatusNotFound {
				t.Errorf("GET %s = %d, want 404", path, rec.Code)
			}
		}
	})

	t.Run("private project is invisible to strangers but not its owner", func(t *testing.T) {
		h, projects, files := newSiteFixture()
		seedSite(projects, files)
		projects.bySlug["my-bakery"].IsPublic = false

		rec := httptest.NewRecorder()
		siteMux(h).ServeHTTP(rec, httptest.NewRequest("GET", "/app/my-bakery", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("stranger got %d, want 404", rec.Code)
		}

		req := httptest.NewRequest("GET", "/app/my-bakery", nil)
		req = httputil.WithCaller(req, "user-1")
		rec = httptest.NewRecorder()
		siteMux(h).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("owner got %d, want 200", rec.Code)
		}
	})
}
