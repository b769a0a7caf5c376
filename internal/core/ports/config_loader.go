package ports

import "go.trai.ch/retarget/internal/core/domain"

// ConfigLoader defines the interface for loading a project description.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the project description at path.
	// Relative paths inside the file are resolved against the file's directory.
	Load(path string) (*domain.Project, error)
}
