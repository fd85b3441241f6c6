package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"sitewright/internal/domain"
	"sitewright/internal/domain/models"
	"sitewright/internal/domain/repositories"
	"sitewright/internal/httputil"
	"sitewright/internal/service"
)

// SiteHandler renders stored project files back as HTTP responses.
// Preview serves the draft version; the app route serves the active
// published snapshot.
type SiteHandler struct {
	projects repositories.ProjectRepository
	files    repositories.FileRepository
	logger   *slog.Logger
}

// NewSiteHandler creates a site serving handler
func NewSiteHandler(
	projects repositories.ProjectRepository,
	files repositories.FileRepository,
	logger *slog.Logger,
) *SiteHandler {
	return &SiteHandler{
		projects: projects,
		files:    files,
		logger:   logger,
	}
}

// ServePreview handles GET /preview/{slug}/{path...}, serving the
// project's draft version.
func (h *SiteHandler) ServePreview(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	if project.DraftVersionID == nil {
		httputil.RespondError(w, http.StatusNotFound, "project has no draft to preview")
		return
	}

	h.serveFile(w, r, *project.DraftVersionID)
}

// ServeApp handles GET /app/{slug}/{path...}, serving the active
// published version. The published snapshot never changes under the
// reader's feet; draft edits only become visible on the next publish.
func (h *SiteHandler) ServeApp(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	if project.Status != models.ProjectStatusPublished || project.ActiveVersionID == nil {
		httputil.RespondError(w, http.StatusNotFound, "project is not published")
		return
	}

	h.serveFile(w, r, *project.ActiveVersionID)
}

// loadProject resolves the slug and enforces visibility: public
// projects are readable by anyone, private ones only by their owner.
func (h *SiteHandler) loadProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	slug := r.PathValue("slug")

	project, err := h.projects.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "site not found")
		} else {
			handleError(w, h.logger, err)
		}
		return nil, false
	}

	if !project.IsPublic && httputil.GetCaller(r) != project.Owner {
		// Same body as a genuine miss so private slugs are not probeable
		httputil.RespondError(w, http.StatusNotFound, "site not found")
		return nil, false
	}

	return project, true
}

func (h *SiteHandler) serveFile(w http.ResponseWriter, r *http.Request, versionID string) {
	filePath := r.PathValue("path")
	if filePath == "" {
		filePath = "index.html"
	}

	normalized, err := service.NormalizeFilePath(filePath)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.files.GetByPath(r.Context(), versionID, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "file not found")
		} else {
			handleError(w, h.logger, err)
		}
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(file.Content))
}
