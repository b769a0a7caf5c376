package config

// Projectfile represents the structure of the retarget.yaml (or .toml) project description.
type Projectfile struct {
	Version    string        `yaml:"version" toml:"version"`
	Project    ProjectDTO    `yaml:"project" toml:"project"`
	Repository string        `yaml:"repository" toml:"repository"`
	Policy     PolicyDTO     `yaml:"policy" toml:"policy"`
	Packages   *[]PackageDTO `yaml:"packages" toml:"packages"`
}

// ProjectDTO describes the project itself.
type ProjectDTO struct {
	Name            string `yaml:"name" toml:"name"`
	Kind            string `yaml:"kind" toml:"kind"`
	TargetFramework string `yaml:"targetFramework" toml:"targetFramework"`
}

// PolicyDTO holds decision policies.
type PolicyDTO struct {
	UnknownFramework string `yaml:"unknownFramework" toml:"unknownFramework"`
}

// PackageDTO represents one entry of the package record.
type PackageDTO struct {
	ID                    string `yaml:"id" toml:"id"`
	Version               string `yaml:"version" toml:"version"`
	AllowedVersions       string `yaml:"allowedVersions" toml:"allowedVersions"`
	TargetFramework       string `yaml:"targetFramework" toml:"targetFramework"`
	DevelopmentDependency bool   `yaml:"developmentDependency" toml:"developmentDependency"`
}
