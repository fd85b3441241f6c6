package tools

import (
	"sitewright/internal/domain/services"
)

// RegisterAll creates and registers the full tool set with the provided
// registry, bound to one caller identity.
//
// This function should be called per-request so each registry carries
// the correct owner context; the tools themselves are stateless beyond
// that binding.
func RegisterAll(
	registry *ToolRegistry,
	owner string,
	projects services.ProjectRegistry,
	versions services.VersionManager,
	editor services.FileEditor,
) {
	registry.Register("create_project", NewCreateProjectTool(owner, projects))
	registry.Register("list_projects", NewListProjectsTool(owner, projects))
	registry.Register("get_project", NewGetProjectTool(projects))
	registry.Register("update_settings", NewUpdateSettingsTool(projects))

	registry.Register("read_files", NewReadFilesTool(editor))
	registry.Register("write_files", NewWriteFilesTool(editor))
	registry.Register("delete_files", NewDeleteFilesTool(editor))

	registry.Register("publish", NewPublishTool(versions))
	registry.Register("get_preview_url", NewGetPreviewURLTool(versions))
	registry.Register("list_versions", NewListVersionsTool(versions))
	registry.Register("rollback", NewRollbackTool(versions))
	registry.Register("delete_project", NewDeleteProjectTool(versions))
}
