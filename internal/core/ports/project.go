package ports

import "go.trai.ch/retarget/internal/core/domain"

// Project is the project system's view of a project.
//
//go:generate go run go.uber.org/mock/mockgen -source=project.go -destination=mocks/mock_project.go -package=mocks
type Project interface {
	// HasPackageRecord reports whether the project is of a supported kind and carries
	// a package-reference record.
	HasPackageRecord() bool
	// TargetFramework returns the framework the project currently targets.
	TargetFramework() domain.FrameworkName
	// PackageReferences returns the recorded references in record order.
	PackageReferences() []domain.PackageReference
}
