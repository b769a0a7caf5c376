package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/retarget/internal/adapters/fs"
	"go.trai.ch/retarget/internal/adapters/repository"
	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/retarget/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func install(t *testing.T, root, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(f), 0o600))
	}
}

func open(t *testing.T, root string) ports.PackageRepository {
	t.Helper()
	repo, err := repository.NewOpener(fs.NewWalker(), 0).Open(root)
	require.NoError(t, err)
	return repo
}

func TestOpener_Open(t *testing.T) {
	root := t.TempDir()

	t.Run("missing directory", func(t *testing.T) {
		_, err := repository.NewOpener(fs.NewWalker(), 0).Open(filepath.Join(root, "missing"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "package repository not found")
	})

	t.Run("file instead of directory", func(t *testing.T) {
		path := filepath.Join(root, "file")
		require.NoError(t, os.WriteFile(path, nil, 0o600))
		_, err := repository.NewOpener(fs.NewWalker(), 0).Open(path)
		assert.ErrorContains(t, err, "package repository not found")
	})

	t.Run("existing directory", func(t *testing.T) {
		repo := open(t, root)
		assert.Equal(t, filepath.Clean(root), repo.(*repository.Repository).Root())
	})
}

func TestRepository_FindPackage(t *testing.T) {
	root := t.TempDir()
	install(t, root, "jQuery.1.8.0",
		"jQuery.1.8.0.nupkg",
		"content/Scripts/jquery.js",
		"content/net40/web.config.transform",
		"lib/net40/jquery.dll",
		"tools/net40/install.ps1",
		"build/jquery.targets",
	)
	install(t, root, "jQuery.UI.1.8.0", "content/ui.js")

	repo := open(t, root)

	pkg, err := repo.FindPackage("jquery", "1.8")
	require.NoError(t, err)
	require.NotNil(t, pkg)

	assert.Equal(t, "jQuery", pkg.ID)
	assert.Equal(t, "1.8.0", pkg.Version)
	assert.ElementsMatch(t, []domain.Asset{
		{Kind: domain.AssetContent, Path: "Scripts/jquery.js"},
		{Kind: domain.AssetContent, Path: "net40/web.config.transform"},
		{Kind: domain.AssetAssemblyReference, Path: "net40/jquery.dll"},
		{Kind: domain.AssetTool, Path: "net40/install.ps1"},
	}, pkg.Assets)

	frameworks := pkg.SupportedFrameworks()
	require.Len(t, frameworks, 1)
	assert.Equal(t, "net40", frameworks[0].ShortName())
}

func TestRepository_FindPackage_Exact(t *testing.T) {
	root := t.TempDir()
	install(t, root, "A.1.0.0", "lib/net20/a.dll")

	pkg, err := open(t, root).FindPackage("A", "1.0.0")
	require.NoError(t, err)
	require.NotNil(t, pkg)
	assert.Equal(t, "A", pkg.ID)
	assert.Equal(t, []domain.Asset{{Kind: domain.AssetAssemblyReference, Path: "net20/a.dll"}}, pkg.Assets)
}

func TestRepository_FindPackage_NotInstalled(t *testing.T) {
	root := t.TempDir()
	install(t, root, "A.1.0.0", "lib/net20/a.dll")
	install(t, root, "A.B.1.0.0", "lib/net20/b.dll")

	repo := open(t, root)

	for _, tc := range []struct{ id, version string }{
		{"A", "2.0.0"},
		{"C", "1.0.0"},
		{"A.B", "1.0.1"},
	} {
		pkg, err := repo.FindPackage(tc.id, tc.version)
		require.NoError(t, err)
		assert.Nil(t, pkg, "%s %s", tc.id, tc.version)
	}

	pkg, err := repo.FindPackage("a.b", "1.0")
	require.NoError(t, err)
	require.NotNil(t, pkg)
	assert.Equal(t, "A.B", pkg.ID)
}

func TestRepository_FindPackage_Cached(t *testing.T) {
	root := t.TempDir()
	install(t, root, "A.1.0", "lib/net40/a.dll")
	repo := open(t, root)

	first, err := repo.FindPackage("A", "1.0")
	require.NoError(t, err)
	require.NotNil(t, first)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "A.1.0")))

	second, err := repo.FindPackage("a", "1.0")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRepository_Preload(t *testing.T) {
	root := t.TempDir()
	refs := []domain.PackageReference{
		{ID: "A", Version: "1.0"},
		{ID: "B", Version: "2.0"},
		{ID: "C", Version: "3.0"},
		{ID: "Missing", Version: "1.0"},
	}
	install(t, root, "A.1.0", "lib/net40/a.dll")
	install(t, root, "B.2.0", "content/net40/b.txt")
	install(t, root, "C.3.0", "tools/init.ps1")

	ctrl := gomock.NewController(t)
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(gomock.Any()).Times(1)

	repo := open(t, root)
	ctx := ports.ContextWithVertex(context.Background(), vertex)
	require.NoError(t, repo.Preload(ctx, refs))

	require.NoError(t, os.RemoveAll(root))

	for _, ref := range refs[:3] {
		pkg, err := repo.FindPackage(ref.ID, ref.Version)
		require.NoError(t, err)
		assert.NotNil(t, pkg, ref.ID)
	}
	pkg, err := repo.FindPackage("Missing", "1.0")
	require.NoError(t, err)
	assert.Nil(t, pkg)
}

func TestRepository_Preload_Canceled(t *testing.T) {
	root := t.TempDir()
	install(t, root, "A.1.0", "lib/net40/a.dll")
	repo := open(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Preload(ctx, []domain.PackageReference{{ID: "A", Version: "1.0"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRepository_FindPackage_UnreadableFolder(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := t.TempDir()
	install(t, root, "A.1.0.0", "lib/net40/a.dll")
	lib := filepath.Join(root, "A.1.0.0", "lib")
	require.NoError(t, os.Chmod(lib, 0o000))
	t.Cleanup(func() { _ = os.Chmod(lib, 0o750) })

	repo := open(t, root)
	pkg, err := repo.FindPackage("A", "1.0.0")
	require.Error(t, err)
	assert.Nil(t, pkg)
	assert.Contains(t, err.Error(), "failed to read package")

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "A", zErr.Metadata()["package"])
	assert.Equal(t, lib, zErr.Metadata()["path"])

	require.NoError(t, os.Chmod(lib, 0o750))
	pkg, err = repo.FindPackage("A", "1.0.0")
	require.NoError(t, err)
	require.NotNil(t, pkg, "failed reads must not be cached")
	assert.Equal(t, []domain.Asset{{Kind: domain.AssetAssemblyReference, Path: "net40/a.dll"}}, pkg.Assets)
}

func TestRepository_FindPackage_CaseFoldedID(t *testing.T) {
	root := t.TempDir()
	install(t, root, "k.1", "lib/net40/k.dll")

	// U+212A KELVIN SIGN folds to "k" but is three bytes long.
	pkg, err := open(t, root).FindPackage("\u212a", "1")
	require.NoError(t, err)
	require.NotNil(t, pkg)
	assert.Equal(t, "k", pkg.ID)
	assert.Equal(t, "1", pkg.Version)
	assert.Len(t, pkg.Assets, 1)
}
