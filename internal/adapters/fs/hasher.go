package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints the inputs of a check with xxhash.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the xxhash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return digest.Sum64(), nil
}

// ComputeFingerprint hashes framework followed by every file below paths.
// Paths are visited in sorted order. A missing path contributes only its name, so
// deleting a package changes the fingerprint.
func (h *Hasher) ComputeFingerprint(framework string, paths []string) (string, error) {
	digest := xxhash.New()
	_, _ = digest.WriteString(framework)
	_, _ = digest.Write([]byte{0})

	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	for _, path := range sorted {
		if err := h.hashPath(path, digest); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

func (h *Hasher) hashPath(path string, digest *xxhash.Digest) error {
	_, _ = digest.WriteString(path)
	_, _ = digest.Write([]byte{0})

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			_, _ = digest.Write([]byte{0xff})
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if !info.IsDir() {
		return h.hashFile(path, path, digest)
	}

	for file, err := range h.walker.Files(path, nil) {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk path"), "path", file)
		}
		rel, err := filepath.Rel(path, file)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", file)
		}
		if err := h.hashFile(file, filepath.ToSlash(rel), digest); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path, name string, digest *xxhash.Digest) error {
	_, _ = digest.WriteString(name)
	_, _ = digest.Write([]byte{0})

	sum, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}
	if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
