package domain

import (
	"strings"
)

// AssetKind classifies a file installed by a package.
type AssetKind int

const (
	// AssetAssemblyReference is a compiled library referenced by the project.
	AssetAssemblyReference AssetKind = iota
	// AssetContent is a file copied into the project.
	AssetContent
	// AssetTool is a script run at install time.
	AssetTool
)

// String returns the name of the asset kind.
func (k AssetKind) String() string {
	switch k {
	case AssetAssemblyReference:
		return "assembly"
	case AssetContent:
		return "content"
	case AssetTool:
		return "tool"
	default:
		return "unknown"
	}
}

// RootFolder returns the package folder holding assets of this kind.
func (k AssetKind) RootFolder() string {
	switch k {
	case AssetAssemblyReference:
		return "lib"
	case AssetContent:
		return "content"
	case AssetTool:
		return "tools"
	default:
		return ""
	}
}

// AssetKindForFolder maps a package root folder name to the kind of assets it holds.
func AssetKindForFolder(name string) (AssetKind, bool) {
	for _, k := range []AssetKind{AssetAssemblyReference, AssetContent, AssetTool} {
		if strings.EqualFold(name, k.RootFolder()) {
			return k, true
		}
	}
	return 0, false
}

// Asset is a single file of a package.
type Asset struct {
	Kind AssetKind
	Path string
}

// Framework returns the framework the asset is scoped to.
// The framework is the first path segment after the optional kind root folder,
// e.g. "lib\net40\foo.dll" or "net40\bar.txt". Files directly under the root,
// or under a folder that is not a framework, make no framework claim.
func (a Asset) Framework() (FrameworkName, bool) {
	segments := strings.FieldsFunc(a.Path, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	if len(segments) > 0 && strings.EqualFold(segments[0], a.Kind.RootFolder()) {
		segments = segments[1:]
	}
	if len(segments) < 2 {
		return FrameworkName{}, false
	}

	f, err := ParseFrameworkName(segments[0])
	if err != nil {
		return FrameworkName{}, false
	}
	return f, true
}

// Package is an installed package identified by id and version.
type Package struct {
	ID      string
	Version string
	Assets  []Asset
}

// String returns "id version".
func (p *Package) String() string {
	return p.ID + " " + p.Version
}

// FrameworkAssets returns the assets that are scoped to a framework, in package order.
func (p *Package) FrameworkAssets() []Asset {
	var assets []Asset
	for _, a := range p.Assets {
		if _, ok := a.Framework(); ok {
			assets = append(assets, a)
		}
	}
	return assets
}

// SupportedFrameworks returns the distinct frameworks claimed by the package's assets,
// in first-seen order. It is empty for framework-agnostic packages.
func (p *Package) SupportedFrameworks() []FrameworkName {
	var frameworks []FrameworkName
	seen := make(map[FrameworkName]struct{})

	for _, a := range p.Assets {
		f, ok := a.Framework()
		if !ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		frameworks = append(frameworks, f)
	}
	return frameworks
}

// PackageReference records a package installed into a project.
type PackageReference struct {
	ID                string
	Version           string
	VersionConstraint string

	// TargetFramework is the framework the package was installed against, nil if unrecorded.
	TargetFramework *FrameworkName

	IsDevelopmentDependency bool
}

// Matches reports whether p is the package the reference points to.
func (r PackageReference) Matches(p *Package) bool {
	return p != nil && strings.EqualFold(r.ID, p.ID) && SameVersion(r.Version, p.Version)
}
