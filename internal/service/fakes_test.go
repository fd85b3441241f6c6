package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"sitewright/internal/domain"
	"sitewright/internal/domain/models"
	"sitewright/internal/domain/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the postgres implementations'
// error contracts (ConflictError on duplicates, NotFoundError on misses)
// so service tests exercise the same paths the real store would produce.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the function directly; the fakes mutate shared maps
// so there is nothing to commit or roll back.
type fakeTxManager struct {
	execErr error
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if m.execErr != nil {
		return m.execErr
	}
	return fn(ctx)
}

type fakeProjectRepo struct {
	projects  map[string]*models.Project
	createErr error
	updateErr error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, p := range r.projects {
		if p.Slug == project.Slug {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project with slug '%s' already exists", project.Slug),
				ResourceType: "project",
				ResourceID:   p.ID,
			}
		}
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %s not found", id)}
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProjectRepo) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	for _, p := range r.projects {
		if p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("project with slug '%s' not found", slug)}
}

func (r *fakeProjectRepo) List(ctx context.Context, owner string) ([]models.Project, error) {
	out := []models.Project{}
	for _, p := range r.projects {
		if p.Owner == owner {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.projects[project.ID]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("project %s not found", project.ID)}
	}
	for _, p := range r.projects {
		if p.Slug == project.Slug && p.ID != project.ID {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project with slug '%s' already exists", project.Slug),
				ResourceType: "project",
				ResourceID:   p.ID,
			}
		}
	}
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("project %s not found", id)}
	}
	delete(r.projects, id)
	return nil
}

type fakeVersionRepo struct {
	versions  map[string]*models.Version
	createErr error
}

func newFakeVersionRepo() *fakeVersionRepo {
	return &fakeVersionRepo{versions: make(map[string]*models.Version)}
}

func (r *fakeVersionRepo) Create(ctx context.Context, version *models.Version) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, v := range r.versions {
		if v.ProjectID == version.ProjectID && v.VersionNumber == version.VersionNumber {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("version %d already exists for project %s", version.VersionNumber, version.ProjectID),
				ResourceType: "version",
				ResourceID:   v.ID,
			}
		}
	}
	if version.ID == "" {
		version.ID = uuid.NewString()
	}
	stored := *version
	r.versions[version.ID] = &stored
	return nil
}

func (r *fakeVersionRepo) GetByID(ctx context.Context, id string) (*models.Version, error) {
	v, ok := r.versions[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("version %s not found", id)}
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVersionRepo) ListByProject(ctx context.Context, projectID string) ([]models.Version, error) {
	out := []models.Version{}
	for _, v := range r.versions {
		if v.ProjectID == projectID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber > out[j].VersionNumber })
	return out, nil
}

func (r *fakeVersionRepo) MarkPublished(ctx context.Context, id, message string) error {
	v, ok := r.versions[id]
	if !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("version %s not found", id)}
	}
	v.IsDraft = false
	v.Message = message
	return nil
}

func (r *fakeVersionRepo) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	var n int64
	for id, v := range r.versions {
		if v.ProjectID == projectID {
			delete(r.versions, id)
			n++
		}
	}
	return n, nil
}

type fakeFileRepo struct {
	// keyed by version ID, then file path
	files     map[string]map[string]*models.File
	versions  *fakeVersionRepo
	upsertErr error
}

func newFakeFileRepo(versions *fakeVersionRepo) *fakeFileRepo {
	return &fakeFileRepo{
		files:    make(map[string]map[string]*models.File),
		versions: versions,
	}
}

func (r *fakeFileRepo) Upsert(ctx context.Context, file *models.File) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	byPath, ok := r.files[file.VersionID]
	if !ok {
		byPath = make(map[string]*models.File)
		r.files[file.VersionID] = byPath
	}
	if existing, ok := byPath[file.FilePath]; ok {
		file.ID = existing.ID
	} else if file.ID == "" {
		file.ID = uuid.NewString()
	}
	stored := *file
	byPath[file.FilePath] = &stored
	return nil
}

func (r *fakeFileRepo) GetByPath(ctx context.Context, versionID, filePath string) (*models.File, error) {
	if f, ok := r.files[versionID][filePath]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("file %s not found in version %s", filePath, versionID)}
}

func (r *fakeFileRepo) ListByVersion(ctx context.Context, versionID string) ([]models.File, error) {
	out := []models.File{}
	for _, f := range r.files[versionID] {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilePath < out[j].FilePath })
	return out, nil
}

func (r *fakeFileRepo) DeleteByPaths(ctx context.Context, versionID string, paths []string) (int64, error) {
	var n int64
	for _, p := range paths {
		if _, ok := r.files[versionID][p]; ok {
			delete(r.files[versionID], p)
			n++
		}
	}
	return n, nil
}

func (r *fakeFileRepo) DeleteByVersion(ctx context.Context, versionID string) (int64, error) {
	n := int64(len(r.files[versionID]))
	delete(r.files, versionID)
	return n, nil
}

func (r *fakeFileRepo) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	var n int64
	for versionID, v := range r.versions.versions {
		if v.ProjectID == projectID {
			n += int64(len(r.files[versionID]))
			delete(r.files, versionID)
		}
	}
	return n, nil
}

// seedProject inserts a project with a version-1 draft directly into the
// fakes, bypassing the service layer.
func seedProject(projects *fakeProjectRepo, versions *fakeVersionRepo, owner, name, slug string) *models.Project {
	now := time.Now()
	project := &models.Project{
		ID:        uuid.NewString(),
		Owner:     owner,
		Name:      name,
		Slug:      slug,
		Status:    models.ProjectStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	draft := &models.Version{
		ID:            uuid.NewString(),
		ProjectID:     project.ID,
		VersionNumber: 1,
		Message:       models.InitialVersionMessage,
		IsDraft:       true,
		CreatedAt:     now,
	}
	project.DraftVersionID = &draft.ID
	projects.projects[project.ID] = project
	versions.versions[draft.ID] = draft
	return project
}
