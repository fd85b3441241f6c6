package tools

import (
	"context"

	"sitewright/internal/domain/models"
	"sitewright/internal/domain/services"
)

// CreateProjectTool implements the 'create_project' tool.
type CreateProjectTool struct {
	owner    string
	registry services.ProjectRegistry
}

// NewCreateProjectTool creates a new CreateProjectTool instance.
func NewCreateProjectTool(owner string, registry services.ProjectRegistry) *CreateProjectTool {
	return &CreateProjectTool{owner: owner, registry: registry}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - name (string, required): display name for the project
//   - slug (string, required): URL-safe identifier, lowercase letters/digits/hyphens
//   - description (string, optional)
func (t *CreateProjectTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	name, err := requireString(input, "name")
	if err != nil {
		return nil, err
	}
	slug, err := requireString(input, "slug")
	if err != nil {
		return nil, err
	}

	req := &services.CreateProjectRequest{
		Owner: t.owner,
		Name:  name,
		Slug:  slug,
	}
	if description := optionalString(input, "description"); description != "" {
		req.Description = &description
	}

	result, err := t.registry.CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"project_id":       result.Project.ID,
		"slug":             result.Project.Slug,
		"draft_version_id": result.DraftVersion.ID,
	}, nil
}

// ListProjectsTool implements the 'list_projects' tool.
type ListProjectsTool struct {
	owner    string
	registry services.ProjectRegistry
}

// NewListProjectsTool creates a new ListProjectsTool instance.
func NewListProjectsTool(owner string, registry services.ProjectRegistry) *ListProjectsTool {
	return &ListProjectsTool{owner: owner, registry: registry}
}

// Execute implements ToolExecutor interface. No input parameters.
func (t *ListProjectsTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projects, err := t.registry.ListProjects(ctx, t.owner)
	if err != nil {
		return nil, err
	}

	summaries := make([]map[string]interface{}, len(projects))
	for i, p := range projects {
		summaries[i] = projectSummary(&p)
	}

	return map[string]interface{}{"projects": summaries}, nil
}

// GetProjectTool implements the 'get_project' tool.
type GetProjectTool struct {
	registry services.ProjectRegistry
}

// NewGetProjectTool creates a new GetProjectTool instance.
func NewGetProjectTool(registry services.ProjectRegistry) *GetProjectTool {
	return &GetProjectTool{registry: registry}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
func (t *GetProjectTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}

	detail, err := t.registry.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	fileList := make([]map[string]interface{}, len(detail.Files))
	for i, f := range detail.Files {
		fileList[i] = map[string]interface{}{
			"path":         f.Path,
			"content_type": f.ContentType,
			"size":         f.Size,
		}
	}

	result := projectSummary(detail.Project)
	result["files"] = fileList
	return result, nil
}

// UpdateSettingsTool implements the 'update_settings' tool.
type UpdateSettingsTool struct {
	registry services.ProjectRegistry
}

// NewUpdateSettingsTool creates a new UpdateSettingsTool instance.
func NewUpdateSettingsTool(registry services.ProjectRegistry) *UpdateSettingsTool {
	return &UpdateSettingsTool{registry: registry}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
//   - name, slug, description (string, optional)
//   - is_public, show_source (bool, optional)
//
// Only supplied fields change. Supplying none is reported as a no-op,
// not an error.
func (t *UpdateSettingsTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}

	req := &services.UpdateSettingsRequest{}
	if v, ok := input["name"].(string); ok {
		req.Name = services.SetString(v)
	}
	if v, ok := input["slug"].(string); ok {
		req.Slug = services.SetString(v)
	}
	if raw, ok := input["description"]; ok {
		if v, isString := raw.(string); isString {
			req.Description = services.SetString(v)
		} else if raw == nil {
			// Explicit null clears the description
			req.Description = services.OptionalString{Present: true}
		}
	}
	if v, ok := input["is_public"].(bool); ok {
		req.IsPublic = services.SetBool(v)
	}
	if v, ok := input["show_source"].(bool); ok {
		req.ShowSource = services.SetBool(v)
	}

	result, err := t.registry.UpdateSettings(ctx, projectID, req)
	if err != nil {
		return nil, err
	}

	if !result.Changed {
		return map[string]interface{}{
			"updated": false,
			"message": "no settings supplied; nothing to update",
		}, nil
	}

	summary := projectSummary(result.Project)
	summary["updated"] = true
	return summary, nil
}

// projectSummary shapes a project for tool results.
func projectSummary(p *models.Project) map[string]interface{} {
	summary := map[string]interface{}{
		"project_id":  p.ID,
		"name":        p.Name,
		"slug":        p.Slug,
		"status":      string(p.Status),
		"is_public":   p.IsPublic,
		"show_source": p.ShowSource,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
	if p.Description != nil {
		summary["description"] = *p.Description
	}
	if p.ActiveVersionID != nil {
		summary["active_version_id"] = *p.ActiveVersionID
	}
	if p.DraftVersionID != nil {
		summary["draft_version_id"] = *p.DraftVersionID
	}
	return summary
}
