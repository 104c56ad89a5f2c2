package checks_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/drift/internal/gitrepo"
	"github.com/temirov/drift/internal/walker"
)

const (
	testRepositoryRootConstant       = "/repository"
	testFilePermissionsConstant      = 0o644
	testDirectoryPermissionsConstant = 0o755
)

func buildFileSet(testInstance *testing.T, files map[string]string, directories ...string) walker.FileSet {
	testInstance.Helper()
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, fileSystem.MkdirAll(testRepositoryRootConstant, testDirectoryPermissionsConstant))
	for _, directory := range directories {
		require.NoError(testInstance, fileSystem.MkdirAll(filepath.Join(testRepositoryRootConstant, filepath.FromSlash(directory)), testDirectoryPermissionsConstant))
	}
	for relativePath, content := range files {
		absolutePath := filepath.Join(testRepositoryRootConstant, filepath.FromSlash(relativePath))
		require.NoError(testInstance, fileSystem.MkdirAll(filepath.Dir(absolutePath), testDirectoryPermissionsConstant))
		require.NoError(testInstance, afero.WriteFile(fileSystem, absolutePath, []byte(content), testFilePermissionsConstant))
	}

	fileSet, collectError := walker.NewWalker(fileSystem, nil).Collect(testRepositoryRootConstant)
	require.NoError(testInstance, collectError)
	return fileSet
}

type stubStatusReader struct {
	status      gitrepo.WorktreeStatus
	statusError error
	calls       int
}

func (reader *stubStatusReader) ReadWorktreeStatus(context.Context, string) (gitrepo.WorktreeStatus, error) {
	reader.calls++
	return reader.status, reader.statusError
}
