package domain

import "strings"

// ProjectKind is the language or project system of a project.
type ProjectKind string

// Supported project kinds.
const (
	ProjectKindCSharp ProjectKind = "csharp"
	ProjectKindVB     ProjectKind = "vb"
	ProjectKindFSharp ProjectKind = "fsharp"
	ProjectKindWeb    ProjectKind = "web"
	ProjectKindJS     ProjectKind = "js"
)

// IsSupported reports whether packages can be managed for projects of this kind.
func (k ProjectKind) IsSupported() bool {
	switch ProjectKind(strings.ToLower(string(k))) {
	case ProjectKindCSharp, ProjectKindVB, ProjectKindFSharp, ProjectKindWeb, ProjectKindJS:
		return true
	default:
		return false
	}
}

// Project is a project described by a project file.
type Project struct {
	Name           string
	Kind           ProjectKind
	Framework      FrameworkName
	RepositoryPath string
	Policy         UnknownFrameworkPolicy
	Packages       []PackageReference

	// Tracked is set when the project file carries a package record, even an empty one.
	Tracked bool
}

// HasPackageRecord reports whether the project is of a supported kind and tracks packages.
func (p *Project) HasPackageRecord() bool {
	return p != nil && p.Kind.IsSupported() && p.Tracked
}

// TargetFramework returns the framework the project currently targets.
func (p *Project) TargetFramework() FrameworkName {
	return p.Framework
}

// PackageReferences returns the recorded package references in file order.
func (p *Project) PackageReferences() []PackageReference {
	return p.Packages
}
