package mock

import (
	"context"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

var _ workbuddy.FileSystem = (*FileSystem)(nil)

// FileSystem is a mock implementation of workbuddy.FileSystem.
type FileSystem struct {
	ListFoldersFn      func(ctx context.Context, dir string) ([]string, error)
	ListFilesFn        func(ctx context.Context, dir string, pattern string) ([]string, error)
	FileExistsFn       func(path string) bool
	FolderExistsFn     func(path string) bool
	ExpandSubfoldersFn func(ctx context.Context, dir string) ([]string, error)
	EnumerateSubtreeFn func(ctx context.Context, parent string, pattern string, depth int) ([]string, error)
}

func (f *FileSystem) ListFolders(ctx context.Context, dir string) ([]string, error) {
	return f.ListFoldersFn(ctx, dir)
}

func (f *FileSystem) ListFiles(ctx context.Context, dir string, pattern string) ([]string, error) {
	return f.ListFilesFn(ctx, dir, pattern)
}

func (f *FileSystem) FileExists(path string) bool {
	return f.FileExistsFn(path)
}

func (f *FileSystem) FolderExists(path string) bool {
	return f.FolderExistsFn(path)
}

func (f *FileSystem) ExpandSubfolders(ctx context.Context, dir string) ([]string, error) {
	return f.ExpandSubfoldersFn(ctx, dir)
}

func (f *FileSystem) EnumerateSubtree(ctx context.Context, parent string, pattern string, depth int) ([]string, error) {
	return f.EnumerateSubtreeFn(ctx, parent, pattern, depth)
}
