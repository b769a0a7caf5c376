// Package repository reads installed packages from a local packages folder laid
// out as <root>/<id>.<version>/{lib,content,tools}/...
package repository

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/retarget/internal/adapters/fs"
	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultCacheSize is the number of packages kept in memory per repository.
const DefaultCacheSize = 512

var (
	_ ports.PackageRepository = (*Repository)(nil)
	_ ports.RepositoryOpener  = (*Opener)(nil)
)

// Opener opens local repositories.
type Opener struct {
	walker    *fs.Walker
	cacheSize int
}

// NewOpener creates an Opener whose repositories cache up to cacheSize packages.
func NewOpener(walker *fs.Walker, cacheSize int) *Opener {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Opener{walker: walker, cacheSize: cacheSize}
}

// Open returns the repository rooted at root. The directory must exist.
func (o *Opener) Open(root string) (ports.PackageRepository, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(domain.ErrRepositoryNotFound, "path", root)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryReadFailed.Error()), "path", root)
	}
	if !info.IsDir() {
		return nil, zerr.With(domain.ErrRepositoryNotFound, "path", root)
	}

	cache, err := lru.New[string, *domain.Package](o.cacheSize)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create package cache")
	}

	return &Repository{
		root:   filepath.Clean(root),
		walker: o.walker,
		cache:  cache,
	}, nil
}

// Repository implements ports.PackageRepository over a packages folder.
// It is safe for concurrent use.
type Repository struct {
	root   string
	walker *fs.Walker
	cache  *lru.Cache[string, *domain.Package]
}

// Root returns the repository directory.
func (r *Repository) Root() string {
	return r.root
}

// FindPackage returns the package installed as <id>.<version>. The id is matched
// case-insensitively and the version semantically, so "1.0" finds "A.1.0.0".
// Returns nil, nil if the package is not installed.
func (r *Repository) FindPackage(id, version string) (*domain.Package, error) {
	key := cacheKey(id, version)
	if pkg, ok := r.cache.Get(key); ok {
		return pkg, nil
	}

	pkg, err := r.read(id, version)
	if err != nil {
		return nil, err
	}
	r.cache.Add(key, pkg)
	return pkg, nil
}

// Preload reads the packages of refs concurrently into the cache.
func (r *Repository) Preload(ctx context.Context, refs []domain.PackageReference) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, ref := range refs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := r.FindPackage(ref.ID, ref.Version)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if v, ok := ports.VertexFromContext(ctx); ok {
		v.Log(fmt.Sprintf("preloaded %d package(s) from %s", len(refs), r.root))
	}
	return nil
}

func (r *Repository) read(id, version string) (*domain.Package, error) {
	dir, pkg, err := r.locate(id, version)
	if err != nil || dir == "" {
		return nil, err
	}

	for path, err := range r.walker.Files(dir, nil) {
		if err != nil {
			return nil, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrPackageReadFailed.Error()), "package", pkg.ID), "path", path)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPackageReadFailed.Error()), "path", path)
		}

		folder, rest, found := strings.Cut(filepath.ToSlash(rel), "/")
		if !found {
			continue
		}
		kind, ok := domain.AssetKindForFolder(folder)
		if !ok {
			continue
		}
		pkg.Assets = append(pkg.Assets, domain.Asset{Kind: kind, Path: rest})
	}
	return pkg, nil
}

// locate finds the package directory and returns it with the package named by the
// directory. It returns an empty dir when the package is not installed.
func (r *Repository) locate(id, version string) (string, *domain.Package, error) {
	exact := filepath.Join(r.root, id+"."+version)
	if info, err := os.Stat(exact); err == nil && info.IsDir() {
		return exact, &domain.Package{ID: id, Version: version}, nil
	}

	entries, err := os.ReadDir(r.root)
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryReadFailed.Error()), "path", r.root)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if pkgID, pkgVersion, ok := splitPackageDir(e.Name(), id, version); ok {
			return filepath.Join(r.root, e.Name()), &domain.Package{ID: pkgID, Version: pkgVersion}, nil
		}
	}
	return "", nil, nil
}

// splitPackageDir splits a <id>.<version> directory name at the dot that makes the
// id match case-insensitively and the version match semantically.
func splitPackageDir(name, id, version string) (string, string, bool) {
	for i := 0; i < len(name); i++ {
		if name[i] != '.' {
			continue
		}
		if strings.EqualFold(name[:i], id) && domain.SameVersion(name[i+1:], version) {
			return name[:i], name[i+1:], true
		}
	}
	return "", "", false
}

func cacheKey(id, version string) string {
	return strings.ToLower(id) + "@" + strings.ToLower(version)
}
