package tools

import (
	"context"

	"sitewright/internal/domain/services"
)

// PublishTool implements the 'publish' tool.
type PublishTool struct {
	versions services.VersionManager
}

// NewPublishTool creates a new PublishTool instance.
func NewPublishTool(versions services.VersionManager) *PublishTool {
	return &PublishTool{versions: versions}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
//   - message (string, optional): annotation for the published version
func (t *PublishTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}

	result, err := t.versions.Publish(ctx, projectID, optionalString(input, "message"))
	if err != nil {
		return nil, err
	}

	response := map[string]interface{}{
		"live_url":       result.LiveURL,
		"version_number": result.VersionNumber,
	}
	if result.NewDraftVersionID != nil {
		response["new_draft_version_id"] = *result.NewDraftVersionID
	}
	if result.DraftError != "" {
		// The publish itself landed; surface the draft failure without
		// turning the call into an error
		response["warning"] = result.DraftError
	}

	return response, nil
}

// GetPreviewURLTool implements the 'get_preview_url' tool.
type GetPreviewURLTool struct {
	versions services.VersionManager
}

// NewGetPreviewURLTool creates a new GetPreviewURLTool instance.
func NewGetPreviewURLTool(versions services.VersionManager) *GetPreviewURLTool {
	return &GetPreviewURLTool{versions: versions}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
func (t *GetPreviewURLTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}

	info, err := t.versions.PreviewURL(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"preview_url": info.PreviewURL,
		"slug":        info.Slug,
	}, nil
}

// ListVersionsTool implements the 'list_versions' tool.
type ListVersionsTool struct {
	versions services.VersionManager
}

// NewListVersionsTool creates a new ListVersionsTool instance.
func NewListVersionsTool(versions services.VersionManager) *ListVersionsTool {
	return &ListVersionsTool{versions: versions}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
func (t *ListVersionsTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}

	summaries, err := t.versions.ListVersions(ctx, projectID)
	if err != nil {
		return nil, err
	}

	versionList := make([]map[string]interface{}, len(summaries))
	for i, v := range summaries {
		versionList[i] = map[string]interface{}{
			"version_id":       v.ID,
			"version_number":   v.VersionNumber,
			"message":          v.Message,
			"is_draft":         v.IsDraft,
			"is_active":        v.IsActive,
			"is_current_draft": v.IsCurrentDraft,
			"created_at":       v.CreatedAt,
		}
	}

	return map[string]interface{}{"versions": versionList}, nil
}

// RollbackTool implements the 'rollback' tool.
type RollbackTool struct {
	versions services.VersionManager
}

// NewRollbackTool creates a new RollbackTool instance.
func NewRollbackTool(versions services.VersionManager) *RollbackTool {
	return &RollbackTool{versions: versions}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
//   - target_version_id (string, required)
//
// Replaces the draft's files with a copy of the target version's files.
// Never creates or publishes a version.
func (t *RollbackTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}
	targetVersionID, err := requireString(input, "target_version_id")
	if err != nil {
		return nil, err
	}

	result, err := t.versions.Rollback(ctx, projectID, targetVersionID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"version_number": result.VersionNumber,
		"files_copied":   result.FilesCopied,
	}, nil
}

// DeleteProjectTool implements the 'delete_project' tool.
type DeleteProjectTool struct {
	versions services.VersionManager
}

// NewDeleteProjectTool creates a new DeleteProjectTool instance.
func NewDeleteProjectTool(versions services.VersionManager) *DeleteProjectTool {
	return &DeleteProjectTool{versions: versions}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
//   - confirm (bool, required to actually delete)
//
// Never destructive by default: without confirm=true nothing is removed
// and the result says so.
func (t *DeleteProjectTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}
	confirm := optionalBool(input, "confirm", false)

	result, err := t.versions.DeleteProject(ctx, projectID, confirm)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"deleted": result.Deleted,
		"message": result.Message,
	}, nil
}
