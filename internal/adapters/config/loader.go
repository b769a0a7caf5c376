// Package config loads project descriptions from YAML or TOML files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the project description looked up when no path is given.
const DefaultFilename = "retarget.yaml"

// DefaultRepository is the package folder used when the file does not name one.
const DefaultRepository = "packages"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for YAML and TOML files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{logger: log}
}

// Load reads the project description at path.
func (l *Loader) Load(path string) (*domain.Project, error) {
	pf, err := l.decode(path)
	if err != nil {
		return nil, err
	}

	project, err := buildProject(pf, filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if project.Tracked && !project.Kind.IsSupported() && l.logger != nil {
		l.logger.Warn("project kind " + string(project.Kind) + " does not support packages, nothing will be checked")
	}
	return project, nil
}

func (l *Loader) decode(path string) (*Projectfile, error) {
	var unmarshal func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	case ".toml":
		unmarshal = toml.Unmarshal
	default:
		return nil, zerr.With(domain.ErrUnsupportedConfigFormat, "path", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var pf Projectfile
	if err := unmarshal(data, &pf); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return &pf, nil
}

func buildProject(pf *Projectfile, dir string) (*domain.Project, error) {
	if strings.TrimSpace(pf.Project.Name) == "" {
		return nil, domain.ErrMissingProjectName
	}

	project := &domain.Project{
		Name: pf.Project.Name,
		Kind: domain.ProjectKind(strings.ToLower(strings.TrimSpace(pf.Project.Kind))),
	}

	if pf.Project.TargetFramework != "" {
		f, err := domain.ParseFrameworkName(pf.Project.TargetFramework)
		if err != nil {
			return nil, zerr.Wrap(err, "invalid project target framework")
		}
		project.Framework = f
	}

	policy, err := domain.ParseUnknownFrameworkPolicy(pf.Policy.UnknownFramework)
	if err != nil {
		return nil, err
	}
	project.Policy = policy

	repo := pf.Repository
	if repo == "" {
		repo = DefaultRepository
	}
	if !filepath.IsAbs(repo) {
		repo = filepath.Join(dir, repo)
	}
	project.RepositoryPath = filepath.Clean(repo)

	if pf.Packages == nil {
		return project, nil
	}
	project.Tracked = true

	refs := make([]domain.PackageReference, 0, len(*pf.Packages))
	for i, dto := range *pf.Packages {
		ref, err := buildReference(dto)
		if err != nil {
			return nil, zerr.With(err, "package_index", i)
		}
		refs = append(refs, ref)
	}
	project.Packages = refs

	return project, nil
}

func buildReference(dto PackageDTO) (domain.PackageReference, error) {
	if strings.TrimSpace(dto.ID) == "" {
		return domain.PackageReference{}, domain.ErrMissingPackageID
	}
	if strings.TrimSpace(dto.Version) == "" {
		return domain.PackageReference{}, zerr.With(domain.ErrMissingPackageVersion, "package", dto.ID)
	}

	ref := domain.PackageReference{
		ID:                      dto.ID,
		Version:                 dto.Version,
		VersionConstraint:       dto.AllowedVersions,
		IsDevelopmentDependency: dto.DevelopmentDependency,
	}

	if dto.TargetFramework != "" {
		f, err := domain.ParseFrameworkName(dto.TargetFramework)
		if err != nil {
			return domain.PackageReference{}, zerr.With(err, "package", dto.ID)
		}
		ref.TargetFramework = &f
	}
	return ref, nil
}
