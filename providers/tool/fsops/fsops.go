// Package fsops provides the file-system tools: read_file, write_file,
// delete_file, and list_dir.
package fsops

import (
	"context"
	"fmt"
	"os"

	"github.com/parley-ai/parley/providers/tool"
)

// ReadFileInput names the file to read.
type ReadFileInput struct {
	Path string `json:"path" jsonschema:"description=Path of the file to read,required"`
}

// ReadFileOutput carries the file content.
type ReadFileOutput struct {
	Content string `json:"content"`
}

// NewReadFileTool returns the read_file tool.
func NewReadFileTool() *tool.Tool[ReadFileInput, ReadFileOutput] {
	return tool.NewTool("read_file", "Read a file from the filesystem", ReadFile)
}

// ReadFile reads the whole file at input.Path.
func ReadFile(_ context.Context, input ReadFileInput) (ReadFileOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return ReadFileOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}
	return ReadFileOutput{Content: string(data)}, nil
}

// WriteFileInput names the target file and its new content.
type WriteFileInput struct {
	Path    string `json:"path" jsonschema:"description=Path of the file to write,required"`
	Content string `json:"content" jsonschema:"description=Content to write,required"`
}

// WriteFileOutput reports the number of bytes written.
type WriteFileOutput struct {
	BytesWritten int `json:"bytes_written"`
}

// NewWriteFileTool returns the write_file tool.
func NewWriteFileTool() *tool.Tool[WriteFileInput, WriteFileOutput] {
	return tool.NewTool("write_file", "Write content to a file", WriteFile)
}

// WriteFile writes input.Content to input.Path, creating the file if needed.
func WriteFile(_ context.Context, input WriteFileInput) (WriteFileOutput, error) {
	if err := os.WriteFile(input.Path, []byte(input.Content), 0o644); err != nil {
		return WriteFileOutput{}, fmt.Errorf("writing %s: %w", input.Path, err)
	}
	return WriteFileOutput{BytesWritten: len(input.Content)}, nil
}

// DeleteFileInput names the file to delete.
type DeleteFileInput struct {
	Path string `json:"path" jsonschema:"description=Path of the file to delete,required"`
}

// DeleteFileOutput confirms the deletion.
type DeleteFileOutput struct {
	Deleted bool `json:"deleted"`
}

// NewDeleteFileTool returns the delete_file tool.
func NewDeleteFileTool() *tool.Tool[DeleteFileInput, DeleteFileOutput] {
	return tool.NewTool("delete_file", "Delete a file from the filesystem", DeleteFile)
}

// DeleteFile removes the file at input.Path.
func DeleteFile(_ context.Context, input DeleteFileInput) (DeleteFileOutput, error) {
	if err := os.Remove(input.Path); err != nil {
		return DeleteFileOutput{}, fmt.Errorf("deleting %s: %w", input.Path, err)
	}
	return DeleteFileOutput{Deleted: true}, nil
}

// ListDirInput names the directory to list.
type ListDirInput struct {
	Path string `json:"path" jsonschema:"description=Directory to list,required"`
}

// ListDirOutput carries the entry names in directory order.
type ListDirOutput struct {
	Entries []string `json:"entries"`
}

// NewListDirTool returns the list_dir tool.
func NewListDirTool() *tool.Tool[ListDirInput, ListDirOutput] {
	return tool.NewTool("list_dir", "List files in a directory", ListDir)
}

// ListDir lists the entries of the directory at input.Path.
func ListDir(_ context.Context, input ListDirInput) (ListDirOutput, error) {
	entries, err := os.ReadDir(input.Path)
	if err != nil {
		return ListDirOutput{}, fmt.Errorf("listing %s: %w", input.Path, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return ListDirOutput{Entries: names}, nil
}
