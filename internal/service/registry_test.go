package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sitewright/internal/domain"
	"sitewright/internal/domain/models"
	"sitewright/internal/domain/services"

	"github.com/google/uuid"
)

func newRegistryFixture() (services.ProjectRegistry, *fakeProjectRepo, *fakeVersionRepo, *fakeFileRepo) {
	projects := newFakeProjectRepo()
	versions := newFakeVersionRepo()
	files := newFakeFileRepo(versions)
	registry := NewProjectRegistry(projects, versions, files, testLogger())
	return registry, projects, versions, files
}

func TestCreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("creates project with version-1 draft", func(t *testing.T) {
		registry, _, versions, _ := newRegistryFixture()

		result, err := registry.CreateProject(ctx, &services.CreateProjectRequest{
			Owner: "user-1",
			Name:  "My Bakery",
			Slug:  "my-bakery",
		})
		if err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}

		if result.Project.ID == "" {
			t.Error("project ID not assigned")
		}
		if result.Project.Status != models.ProjectStatusDraft {
			t.Errorf("status = %q, want %q", result.Project.Status, models.ProjectStatusDraft)
		}
		if result.Project.DraftVersionID == nil {
			t.Fatal("draft pointer not set")
		}
		if *result.Project.DraftVersionID != result.DraftVersion.ID {
			t.Error("draft pointer does not reference the created draft")
		}
		if result.Project.ActiveVersionID != nil {
			t.Error("active pointer should be nil before first publish")
		}
		if result.DraftVersion.VersionNumber != 1 {
			t.Errorf("draft version number = %d, want 1", result.DraftVersion.VersionNumber)
		}
		if !result.DraftVersion.IsDraft {
			t.Error("initial version should be a draft")
		}
		if result.DraftVersion.Message != models.InitialVersionMessage {
			t.Errorf("draft message = %q, want %q", result.DraftVersion.Message, models.InitialVersionMessage)
		}

		stored, err := versions.GetByID(ctx, result.DraftVersion.ID)
		if err != nil {
			t.Fatalf("draft version not persisted: %v", err)
		}
		if stored.ProjectID != result.Project.ID {
			t.Error("draft version not linked to project")
		}
	})

	t.Run("round-trips through GetProject with empty file list", func(t *testing.T) {
		registry, _, _, _ := newRegistryFixture()

		created, err := registry.CreateProject(ctx, &services.CreateProjectRequest{
			Owner: "user-1",
			Name:  "Site",
			Slug:  "site",
		})
		if err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}

		detail, err := registry.GetProject(ctx, created.Project.ID)
		if err != nil {
			t.Fatalf("GetProject failed: %v", err)
		}
		if detail.Project.Slug != "site" {
			t.Errorf("slug = %q, want %q", detail.Project.Slug, "site")
		}
		if detail.Files == nil {
			t.Fatal("file listing should be an empty slice, not nil")
		}
		if len(detail.Files) != 0 {
			t.Errorf("new project has %d files, want 0", len(detail.Files))
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		registry, _, _, _ := newRegistryFixture()

		tests := []struct {
			name string
			req  services.CreateProjectRequest
		}{
			{"missing owner", services.CreateProjectRequest{Name: "X", Slug: "x"}},
			{"missing name", services.CreateProjectRequest{Owner: "u", Slug: "x"}},
			{"whitespace name", services.CreateProjectRequest{Owner: "u", Name: "   ", Slug: "x"}},
			{"missing slug", services.CreateProjectRequest{Owner: "u", Name: "X"}},
			{"uppercase slug", services.CreateProjectRequest{Owner: "u", Name: "X", Slug: "My-Site"}},
			{"slug with spaces", services.CreateProjectRequest{Owner: "u", Name: "X", Slug: "my site"}},
			{"slug with underscore", services.CreateProjectRequest{Owner: "u", Name: "X", Slug: "my_site"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := registry.CreateProject(ctx, &tt.req)
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("got %v, want validation error", err)
				}
			})
		}
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		registry, _, _, _ := newRegistryFixture()

		first, err := registry.CreateProject(ctx, &services.CreateProjectRequest{
			Owner: "user-1", Name: "First", Slug: "taken",
		})
		if err != nil {
			t.Fatalf("first create failed: %v", err)
		}

		_, err = registry.CreateProject(ctx, &services.CreateProjectRequest{
			Owner: "user-2", Name: "Second", Slug: "taken",
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("got %v, want conflict error", err)
		}

		var conflict *domain.ConflictError
		if !errors.As(err, &conflict) {
			t.Fatal("expected ConflictError with existing resource details")
		}
		if conflict.ResourceID != first.Project.ID {
			t.Errorf("conflict resource ID = %q, want %q", conflict.ResourceID, first.Project.ID)
		}
	})

	t.Run("project survives draft allocation failure", func(t *testing.T) {
		registry, projects, versions, _ := newRegistryFixture()
		versions.createErr = errors.New("version store down")

		_, err := registry.CreateProject(ctx, &services.CreateProjectRequest{
			Owner: "user-1", Name: "Orphan", Slug: "orphan",
		})
		if !errors.Is(err, domain.ErrStore) {
			t.Fatalf("got %v, want store error", err)
		}

		orphan, err := projects.GetBySlug(ctx, "orphan")
		if err != nil {
			t.Fatalf("project row should survive: %v", err)
		}
		if orphan.DraftVersionID != nil {
			t.Error("draft pointer should be nil after failed allocation")
		}
	})
}

func TestListProjects(t *testing.T) {
	ctx := context.Background()
	registry, projects, versions, _ := newRegistryFixture()

	older := seedProject(projects, versions, "user-1", "Older", "older")
	older.CreatedAt = time.Now().Add(-time.Hour)
	seedProject(projects, versions, "user-1", "Newer", "newer")
	seedProject(projects, versions, "user-2", "Other", "other")

	listed, err := registry.ListProjects(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("got %d projects, want 2", len(listed))
	}
	if listed[0].Slug != "newer" || listed[1].Slug != "older" {
		t.Errorf("order = [%s, %s], want newest first", listed[0].Slug, listed[1].Slug)
	}

	empty, err := registry.ListProjects(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d projects for unknown owner, want 0", len(empty))
	}
}

func TestGetProject(t *testing.T) {
	ctx := context.Background()

	t.Run("lists files of the draft when one exists", func(t *testing.T) {
		registry, projects, versions, files := newRegistryFixture()
		project := seedProject(projects, versions, "user-1", "Site", "site")

		files.Upsert(ctx, &models.File{
			VersionID:   *project.DraftVersionID,
			FilePath:    "index.html",
			Content:     "<h1>hi</h1>",
			ContentType: "text/html",
		})

		detail, err := registry.GetProject(ctx, project.ID)
		if err != nil {
			t.Fatalf("GetProject failed: %v", err)
		}
		if len(detail.Files) != 1 {
			t.Fatalf("got %d files, want 1", len(detail.Files))
		}
		if detail.Files[0].Path != "index.html" {
			t.Errorf("path = %q, want index.html", detail.Files[0].Path)
		}
		if detail.Files[0].Size != len("<h1>hi</h1>") {
			t.Errorf("size = %d, want %d", detail.Files[0].Size, len("<h1>hi</h1>"))
		}
	})

	t.Run("falls back to the active version without a draft", func(t *testing.T) {
		registry, projects, versions, files := newRegistryFixture()
		project := seedProject(projects, versions, "user-1", "Site", "site")

		activeID := *project.DraftVersionID
		project.ActiveVersionID = &activeID
		project.DraftVersionID = nil

		files.Upsert(ctx, &models.File{
			VersionID:   activeID,
			FilePath:    "style.css",
			Content:     "body{}",
			ContentType: "text/css",
		})

		detail, err := registry.GetProject(ctx, project.ID)
		if err != nil {
			t.Fatalf("GetProject failed: %v", err)
		}
		if len(detail.Files) != 1 || detail.Files[0].Path != "style.css" {
			t.Errorf("expected active version's files, got %+v", detail.Files)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		registry, _, _, _ := newRegistryFixture()
		_, err := registry.GetProject(ctx, uuid.NewString())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("got %v, want not found", err)
		}
	})
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("no fields is a distinct no-op", func(t *testing.T) {
		registry, projects, versions, _ := newRegistryFixture()
		project := seedProject(projects, versions, "user-1", "Site", "site")
		before := project.UpdatedAt

		result, err := registry.UpdateSettings(ctx, project.ID, &services.UpdateSettingsRequest{})
		if err != nil {
			t.Fatalf("UpdateSettings failed: %v", err)
		}
		if result.Changed {
			t.Error("Changed should be false when no fields were supplied")
		}

		stored, _ := projects.GetByID(ctx, project.ID)
		if !stored.UpdatedAt.Equal(before) {
			t.Error("no-op must not touch the stored row")
		}
	})

	t.Run("applies supplied fields only", func(t *testing.T) {
		registry, projects, versions, _ := newRegistryFixture()
		project := seedProject(projects, versions, "user-1", "Site", "site")

		result, err := registry.UpdateSettings(ctx, project.ID, &services.UpdateSettingsRequest{
			Name:     services.SetString("Renamed"),
			IsPublic: services.SetBool(true),
		})
		if err != nil {
			t.Fatalf("UpdateSettings failed: %v", err)
		}
		if !result.Changed {
			t.Error("Changed should be true")
		}

		stored, _ := projects.GetByID(ctx, project.ID)
		if stored.Name != "Renamed" {
			t.Errorf("name = %q, want Renamed", stored.Name)
		}
		if !stored.IsPublic {
			t.Error("is_public not applied")
		}
		if stored.Slug != "site" {
			t.Errorf("slug changed to %q although it was not supplied", stored.Slug)
		}
	})

	t.Run("null clears the description but not name or slug", func(t *testing.T) {
		registry, projects, versions, _ := newRegistryFixture()
		project := seedProject(projects, versions, "user-1", "Site", "site")
		desc := "about"
		project.Description = &desc

		result, err := registry.UpdateSettings(ctx, project.ID, &services.UpdateSettingsRequest{
			Description: services.OptionalString{Present: true, Value: nil},
		})
		if err != nil {
			t.Fatalf("UpdateSettings failed: %v", err)
		}
		if result.Project.Description != nil {
			t.Error("description not cleared")
		}

		for _, req := range []*services.UpdateSettingsRequest{
			{Name: services.OptionalString{Present: true, Value: nil}},
			{Slug: services.OptionalString{Present: true, Value: nil}},
		} {
			if _, err := registry.UpdateSettings(ctx, project.ID, req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("clearing a required field: got %v, want validation error", err)
			}
		}
	})

	t.Run("slug is re-validated", func(t *testing.T) {
		registry, projects, versions, _ := newRegistryFixture()
		project := seedProject(projects, versions, "user-1", "Site", "site")

		_, err := registry.UpdateSettings(ctx, project.ID, &services.UpdateSettingsRequest{
			Slug: services.SetString("Not Valid"),
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("got %v, want validation error", err)
		}

		stored, _ := projects.GetByID(ctx, project.ID)
		if stored.Slug != "site" {
			t.Errorf("slug mutated to %q on failed update", stored.Slug)
		}
	})

	t.Run("slug collision with another project", func(t *testing.T) {
		registry, projects, versions, _ := newRegistryFixture()
		seedProject(projects, versions, "user-1", "A", "slug-a")
		b := seedProject(projects, versions, "user-1", "B", "slug-b")

		_, err := registry.UpdateSettings(ctx, b.ID, &services.UpdateSettingsRequest{
			Slug: services.SetString("slug-a"),
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("got %v, want conflict error", err)
		}
	})
}
