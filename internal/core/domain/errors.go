package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidFrameworkName is returned when a framework name cannot be parsed.
	ErrInvalidFrameworkName = zerr.New("invalid framework name")

	// ErrInvalidFrameworkVersion is returned when a framework version is not a dotted numeric version.
	ErrInvalidFrameworkVersion = zerr.New("invalid framework version")

	// ErrUnknownFrameworkIdentifier is returned when a short framework folder uses an unknown prefix.
	ErrUnknownFrameworkIdentifier = zerr.New("unknown framework identifier")

	// ErrInvalidPolicy is returned when an unknown-framework policy name is not recognized.
	ErrInvalidPolicy = zerr.New("invalid unknown-framework policy, expected 'compare', 'always' or 'never'")

	// ErrNoTargetFramework is returned when neither the project nor the caller provides a target framework.
	ErrNoTargetFramework = zerr.New("no target framework")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigFormat is returned when the config file extension is neither YAML nor TOML.
	ErrUnsupportedConfigFormat = zerr.New("unsupported config format, expected .yaml, .yml or .toml")

	// ErrMissingProjectName is returned when the config does not name the project.
	ErrMissingProjectName = zerr.New("missing project name")

	// ErrMissingPackageID is returned when a package reference has no id.
	ErrMissingPackageID = zerr.New("missing package id")

	// ErrMissingPackageVersion is returned when a package reference has no version.
	ErrMissingPackageVersion = zerr.New("missing package version")

	// ErrRepositoryNotFound is returned when the local package repository directory does not exist.
	ErrRepositoryNotFound = zerr.New("package repository not found")

	// ErrRepositoryReadFailed is returned when the local package repository cannot be listed.
	ErrRepositoryReadFailed = zerr.New("failed to read package repository")

	// ErrPackageReadFailed is returned when a package directory cannot be enumerated.
	ErrPackageReadFailed = zerr.New("failed to read package")

	// ErrStoreCreateFailed is returned when the report store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create report store directory")

	// ErrStoreReadFailed is returned when the report store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read report store")

	// ErrStoreUnmarshalFailed is returned when the report store cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal report store")

	// ErrStoreMarshalFailed is returned when the report store cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal report store")

	// ErrStoreWriteFailed is returned when the report store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write report store")

	// ErrRenderFailed is returned when a report cannot be written to the output.
	ErrRenderFailed = zerr.New("failed to render report")

	// ErrWatchFailed is returned when the project file cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch project file")
)
