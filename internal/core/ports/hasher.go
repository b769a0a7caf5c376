package ports

// Hasher defines the interface for fingerprinting check inputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFingerprint hashes the framework name together with the content of every
	// file under paths. Directories are walked; a missing path contributes only its name.
	ComputeFingerprint(framework string, paths []string) (string, error)
}
