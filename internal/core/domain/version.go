package domain

import (
	"strings"

	"golang.org/x/mod/semver"
)

// SameVersion reports whether two package versions are equal.
// Versions are compared semantically ("1.0" equals "1.0.0"); versions that are
// not semantic fall back to a case-insensitive string comparison.
func SameVersion(a, b string) bool {
	ca, cb := canonicalVersion(a), canonicalVersion(b)
	if ca != "" && cb != "" {
		return semver.Compare(ca, cb) == 0
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// canonicalVersion returns the semver canonical form of v, or "" if v is not a version.
// A zero fourth component ("1.0.0.0") is accepted and dropped.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}

	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	if parts := strings.Split(core, "."); len(parts) == 4 && parts[3] == "0" {
		core = strings.Join(parts[:3], ".")
	}

	if !strings.HasPrefix(core, "v") {
		core = "v" + core
	}
	return semver.Canonical(core + suffix)
}
