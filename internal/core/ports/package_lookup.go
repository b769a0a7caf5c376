package ports

import (
	"context"

	"go.trai.ch/retarget/internal/core/domain"
)

// PackageLookup finds installed packages.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_lookup.go -destination=mocks/mock_package_lookup.go -package=mocks
type PackageLookup interface {
	// FindPackage returns the package with the given id and version.
	// Returns nil, nil if the package is not installed.
	FindPackage(id, version string) (*domain.Package, error)
}

// PackageRepository is a PackageLookup backed by storage that can be warmed up ahead of a check.
type PackageRepository interface {
	PackageLookup

	// Preload reads the packages of refs into memory.
	// Missing packages are not an error.
	Preload(ctx context.Context, refs []domain.PackageReference) error
}

// RepositoryOpener opens package repositories by root path.
type RepositoryOpener interface {
	Open(root string) (PackageRepository, error)
}
