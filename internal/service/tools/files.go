package tools

import (
	"context"
	"errors"
	"fmt"

	"sitewright/internal/domain/services"
)

// ReadFilesTool implements the 'read_files' tool.
type ReadFilesTool struct {
	editor services.FileEditor
}

// NewReadFilesTool creates a new ReadFilesTool instance.
func NewReadFilesTool(editor services.FileEditor) *ReadFilesTool {
	return &ReadFilesTool{editor: editor}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
//   - file_paths (array of strings, optional): filter to these paths
//
// Reads resolve against the draft if one exists, else the active
// version. An empty result set is a valid result, not an error.
func (t *ReadFilesTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}

	paths, err := stringSlice(input, "file_paths")
	if err != nil {
		return nil, err
	}

	files, err := t.editor.ReadFiles(ctx, projectID, paths)
	if err != nil {
		return nil, err
	}

	fileList := make([]map[string]interface{}, len(files))
	for i, f := range files {
		fileList[i] = map[string]interface{}{
			"path":         f.FilePath,
			"content":      f.Content,
			"content_type": f.ContentType,
		}
	}

	return map[string]interface{}{"files": fileList}, nil
}

// WriteFilesTool implements the 'write_files' tool.
type WriteFilesTool struct {
	editor services.FileEditor
}

// NewWriteFilesTool creates a new WriteFilesTool instance.
func NewWriteFilesTool(editor services.FileEditor) *WriteFilesTool {
	return &WriteFilesTool{editor: editor}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
//   - files (array, required): [{path, content, content_type?}, ...]
//
// Each file's outcome is reported independently; the batch partially
// succeeds rather than being all-or-nothing.
func (t *WriteFilesTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}

	rawFiles, ok := input["files"].([]interface{})
	if !ok || len(rawFiles) == 0 {
		return nil, errors.New("missing required parameter: files (non-empty array)")
	}

	requests := make([]services.WriteFileRequest, 0, len(rawFiles))
	for i, raw := range rawFiles {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("files[%d] must be an object with path and content", i)
		}

		path, ok := entry["path"].(string)
		if !ok || path == "" {
			return nil, fmt.Errorf("files[%d] is missing path", i)
		}
		content, ok := entry["content"].(string)
		if !ok {
			return nil, fmt.Errorf("files[%d] is missing content", i)
		}

		req := services.WriteFileRequest{Path: path, Content: content}
		if contentType, ok := entry["content_type"].(string); ok {
			req.ContentType = contentType
		}
		requests = append(requests, req)
	}

	results, err := t.editor.WriteFiles(ctx, projectID, requests)
	if err != nil {
		return nil, err
	}

	resultList := make([]map[string]interface{}, len(results))
	written := 0
	for i, r := range results {
		entry := map[string]interface{}{
			"path": r.Path,
			"ok":   r.OK,
		}
		if r.Error != "" {
			entry["error"] = r.Error
		}
		if r.OK {
			written++
		}
		resultList[i] = entry
	}

	return map[string]interface{}{
		"results": resultList,
		"written": written,
		"failed":  len(results) - written,
	}, nil
}

// DeleteFilesTool implements the 'delete_files' tool.
type DeleteFilesTool struct {
	editor services.FileEditor
}

// NewDeleteFilesTool creates a new DeleteFilesTool instance.
func NewDeleteFilesTool(editor services.FileEditor) *DeleteFilesTool {
	return &DeleteFilesTool{editor: editor}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - project_id (string, required)
//   - file_paths (array of strings, required)
//
// The deleted count may be less than the number of paths supplied when
// some did not exist; that is not an error.
func (t *DeleteFilesTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	projectID, err := requireString(input, "project_id")
	if err != nil {
		return nil, err
	}

	paths, err := stringSlice(input, "file_paths")
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("missing required parameter: file_paths (non-empty array)")
	}

	deleted, err := t.editor.DeleteFiles(ctx, projectID, paths)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{"deleted_count": deleted}, nil
}
