package handler

import (
	"log/slog"
	"net/http"

	"sitewright/internal/domain/services"
	"sitewright/internal/httputil"
	"sitewright/internal/service/tools"
)

// ToolsHandler dispatches agent tool calls against the project,
// version, and file services. Each request gets its own registry bound
// to the caller identity from the gateway header, so one handler
// instance can serve many callers concurrently.
type ToolsHandler struct {
	projects services.ProjectRegistry
	versions services.VersionManager
	editor   services.FileEditor
	logger   *slog.Logger
}

// NewToolsHandler creates a tools dispatch handler
func NewToolsHandler(
	projects services.ProjectRegistry,
	versions services.VersionManager,
	editor services.FileEditor,
	logger *slog.Logger,
) *ToolsHandler {
	return &ToolsHandler{
		projects: projects,
		versions: versions,
		editor:   editor,
		logger:   logger,
	}
}

// toolsRequest is the dispatch envelope: one or more tool calls,
// executed in parallel with results returned in call order.
type toolsRequest struct {
	Calls []tools.ToolCall `json:"calls"`
}

type toolResultPayload struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Result  interface{} `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
	IsError bool        `json:"is_error"`
}

type toolsResponse struct {
	Results []toolResultPayload `json:"results"`
}

// Dispatch handles POST /api/tools
func (h *ToolsHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetCaller(r)
	if caller == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	var req toolsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Calls) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "no tool calls provided")
		return
	}

	registry := tools.NewToolRegistry()
	tools.RegisterAll(registry, caller, h.projects, h.versions, h.editor)

	results := registry.ExecuteParallel(r.Context(), req.Calls)

	resp := toolsResponse{Results: make([]toolResultPayload, len(results))}
	for i, res := range results {
		payload := toolResultPayload{
			ID:      res.ID,
			Name:    res.Name,
			Result:  res.Result,
			IsError: res.IsError,
		}
		if res.Error != nil {
			payload.Error = res.Error.Error()
			h.logger.Warn("tool call failed",
				"tool", res.Name,
				"caller", caller,
				"error", res.Error,
			)
		}
		resp.Results[i] = payload
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// ListTools handles GET /api/tools, returning the available tool names
func (h *ToolsHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	registry := tools.NewToolRegistry()
	tools.RegisterAll(registry, "", h.projects, h.versions, h.editor)

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"tools": registry.Names(),
	})
}
