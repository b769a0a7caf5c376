// Package domain contains the core domain models for framework retargeting:
// target frameworks, packages, their framework-scoped assets and references.
package domain

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// FrameworkVersion is a dotted numeric version with up to four components
// (major.minor.build.revision). Missing components are zero.
type FrameworkVersion [4]int

// ParseFrameworkVersion parses a dotted version such as "4.0", "v4.5.1" or "3.5.0.0".
func ParseFrameworkVersion(s string) (FrameworkVersion, error) {
	var v FrameworkVersion

	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "v"), "V")
	if raw == "" {
		return v, zerr.With(ErrInvalidFrameworkVersion, "version", s)
	}

	parts := strings.Split(raw, ".")
	if len(parts) > len(v) {
		return v, zerr.With(ErrInvalidFrameworkVersion, "version", s)
	}

	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return FrameworkVersion{}, zerr.With(ErrInvalidFrameworkVersion, "version", s)
		}
		v[i] = n
	}
	return v, nil
}

// Compare returns -1, 0 or 1 depending on whether v is lower than, equal to or higher than other.
func (v FrameworkVersion) Compare(other FrameworkVersion) int {
	for i := range v {
		switch {
		case v[i] < other[i]:
			return -1
		case v[i] > other[i]:
			return 1
		}
	}
	return 0
}

// String renders major.minor, plus build and revision when they are set.
func (v FrameworkVersion) String() string {
	n := 2
	switch {
	case v[3] != 0:
		n = 4
	case v[2] != 0:
		n = 3
	}

	parts := make([]string, n)
	for i := range n {
		parts[i] = strconv.Itoa(v[i])
	}
	return strings.Join(parts, ".")
}

// Canonical framework identifiers.
const (
	FrameworkNET          = ".NETFramework"
	FrameworkNETCore      = ".NETCore"
	FrameworkSilverlight  = "Silverlight"
	FrameworkWindowsPhone = "WindowsPhone"
	FrameworkNETMicro     = ".NETMicroFramework"
	FrameworkMonoAndroid  = "MonoAndroid"
	FrameworkMonoTouch    = "MonoTouch"
	FrameworkMonoMac      = "MonoMac"
)

// shortIdentifiers maps folder prefixes to canonical identifiers.
var shortIdentifiers = map[string]string{
	"net":          FrameworkNET,
	"netcore":      FrameworkNETCore,
	"win":          FrameworkNETCore,
	"winrt":        FrameworkNETCore,
	"sl":           FrameworkSilverlight,
	"silverlight":  FrameworkSilverlight,
	"wp":           FrameworkWindowsPhone,
	"windowsphone": FrameworkWindowsPhone,
	"netmf":        FrameworkNETMicro,
	"monoandroid":  FrameworkMonoAndroid,
	"monotouch":    FrameworkMonoTouch,
	"monomac":      FrameworkMonoMac,
}

// preferredShortNames is the reverse of shortIdentifiers used by ShortName.
var preferredShortNames = map[string]string{
	FrameworkNET:          "net",
	FrameworkNETCore:      "netcore",
	FrameworkSilverlight:  "sl",
	FrameworkWindowsPhone: "wp",
	FrameworkNETMicro:     "netmf",
	FrameworkMonoAndroid:  "monoandroid",
	FrameworkMonoTouch:    "monotouch",
	FrameworkMonoMac:      "monomac",
}

// windowsVersions maps the versions of the "win" and "winrt" folder prefixes, which
// name Windows Store releases, to .NETCore versions.
var windowsVersions = map[string]FrameworkVersion{
	"":    {4, 5},
	"8":   {4, 5},
	"45":  {4, 5},
	"81":  {4, 5, 1},
	"451": {4, 5, 1},
}

var shortProfiles = map[string]string{
	"client": "Client",
	"full":   "",
	"cf":     "CompactFramework",
}

var shortNamePattern = regexp.MustCompile(`^([a-z]+)([0-9.]*)(?:-([a-z0-9]+))?$`)

// FrameworkName identifies a target framework: an identifier, a version and an optional profile.
// It is a comparable value type.
type FrameworkName struct {
	Identifier string
	Version    FrameworkVersion
	Profile    string
}

// ParseFrameworkName parses either the long form (".NETFramework, Version=v4.0, Profile=Client",
// ".NETFramework, 4.0") or the short folder form ("net40", "net451", "sl4", "net40-client").
func ParseFrameworkName(s string) (FrameworkName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FrameworkName{}, ErrInvalidFrameworkName
	}
	if strings.Contains(s, ",") {
		return parseLongFrameworkName(s)
	}
	return parseShortFrameworkName(s)
}

// MustParseFrameworkName is like ParseFrameworkName but panics on error.
func MustParseFrameworkName(s string) FrameworkName {
	f, err := ParseFrameworkName(s)
	if err != nil {
		panic(err)
	}
	return f
}

func parseLongFrameworkName(s string) (FrameworkName, error) {
	parts := strings.Split(s, ",")
	f := FrameworkName{Identifier: canonicalIdentifier(strings.TrimSpace(parts[0]))}
	if f.Identifier == "" {
		return FrameworkName{}, zerr.With(ErrInvalidFrameworkName, "framework", s)
	}

	hasVersion := false
	for _, part := range parts[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			key, value = "version", key
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "version":
			v, err := ParseFrameworkVersion(value)
			if err != nil {
				return FrameworkName{}, zerr.With(err, "framework", s)
			}
			f.Version = v
			hasVersion = true
		case "profile":
			f.Profile = value
		default:
			return FrameworkName{}, zerr.With(ErrInvalidFrameworkName, "framework", s)
		}
	}

	if !hasVersion {
		return FrameworkName{}, zerr.With(ErrInvalidFrameworkName, "framework", s)
	}
	return f, nil
}

func parseShortFrameworkName(s string) (FrameworkName, error) {
	m := shortNamePattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return FrameworkName{}, zerr.With(ErrInvalidFrameworkName, "framework", s)
	}

	identifier, ok := shortIdentifiers[m[1]]
	if !ok {
		return FrameworkName{}, zerr.With(ErrUnknownFrameworkIdentifier, "framework", s)
	}

	f := FrameworkName{Identifier: identifier}

	switch digits := m[2]; {
	case m[1] == "win" || m[1] == "winrt":
		v, ok := windowsVersions[digits]
		if !ok {
			return FrameworkName{}, zerr.With(ErrInvalidFrameworkVersion, "framework", s)
		}
		f.Version = v
	case digits == "":
	case strings.Contains(digits, "."):
		v, err := ParseFrameworkVersion(digits)
		if err != nil {
			return FrameworkName{}, zerr.With(err, "framework", s)
		}
		f.Version = v
	default:
		// Undotted versions spell one component per digit: "451" is 4.5.1.
		if len(digits) > len(f.Version) {
			return FrameworkName{}, zerr.With(ErrInvalidFrameworkVersion, "framework", s)
		}
		for i, r := range digits {
			f.Version[i] = int(r - '0')
		}
	}

	if profile := m[3]; profile != "" {
		if known, ok := shortProfiles[profile]; ok {
			f.Profile = known
		} else {
			f.Profile = profile
		}
	}
	return f, nil
}

func canonicalIdentifier(id string) string {
	lower := strings.ToLower(id)
	for _, canonical := range shortIdentifiers {
		if strings.ToLower(canonical) == lower {
			return canonical
		}
	}
	return id
}

// String returns the long form, e.g. ".NETFramework,Version=v4.0,Profile=Client".
func (f FrameworkName) String() string {
	if f.IsZero() {
		return ""
	}
	s := f.Identifier + ",Version=v" + f.Version.String()
	if f.Profile != "" {
		s += ",Profile=" + f.Profile
	}
	return s
}

// ShortName returns the folder form, e.g. "net40" or "net40-client".
// Versions with a component above 9 are dotted ("net4.10") so they parse back unchanged.
// Identifiers without a known short prefix fall back to the long form.
func (f FrameworkName) ShortName() string {
	prefix, ok := preferredShortNames[f.Identifier]
	if !ok {
		return f.String()
	}

	last := 1
	for i := len(f.Version) - 1; i > 1; i-- {
		if f.Version[i] != 0 {
			last = i
			break
		}
	}

	parts := make([]string, last+1)
	separator := ""
	for i := range parts {
		parts[i] = strconv.Itoa(f.Version[i])
		if f.Version[i] > 9 {
			separator = "."
		}
	}

	s := prefix + strings.Join(parts, separator)
	if f.Profile != "" {
		s += "-" + strings.ToLower(f.Profile)
	}
	return s
}

// IsZero reports whether f is the zero value.
func (f FrameworkName) IsZero() bool {
	return f == FrameworkName{}
}

// Equal reports whether f and other name the same framework, ignoring identifier and profile case.
func (f FrameworkName) Equal(other FrameworkName) bool {
	return strings.EqualFold(f.Identifier, other.Identifier) &&
		f.Version == other.Version &&
		strings.EqualFold(f.Profile, other.Profile)
}

// IsCompatibleWith reports whether assets built for f can be used by a project targeting target:
// same identifier, f's version not above target's, and a compatible profile.
func (f FrameworkName) IsCompatibleWith(target FrameworkName) bool {
	if !strings.EqualFold(f.Identifier, target.Identifier) {
		return false
	}
	if f.Version.Compare(target.Version) > 0 {
		return false
	}
	return profileCompatible(f.Profile, target.Profile)
}

// profileCompatible reports whether an asset profile can serve a project profile.
// Profile-less assets serve any profile; Client assets also serve the full profile.
func profileCompatible(asset, project string) bool {
	switch {
	case asset == "":
		return true
	case strings.EqualFold(asset, project):
		return true
	case strings.EqualFold(asset, "Client") && project == "":
		return true
	default:
		return false
	}
}

// moreSpecific reports whether candidate is a closer match for target than current.
// Both must already be compatible with target.
func moreSpecific(candidate, current, target FrameworkName) bool {
	if c := candidate.Version.Compare(current.Version); c != 0 {
		return c > 0
	}
	candidateExact := strings.EqualFold(candidate.Profile, target.Profile)
	currentExact := strings.EqualFold(current.Profile, target.Profile)
	return candidateExact && !currentExact
}

// NearestCompatible selects, among candidates, the most specific framework compatible with target.
// Ties keep the earliest candidate. It returns false if no candidate is compatible.
func NearestCompatible(target FrameworkName, candidates []FrameworkName) (FrameworkName, bool) {
	var best FrameworkName
	found := false

	for _, c := range candidates {
		if !c.IsCompatibleWith(target) {
			continue
		}
		if !found || moreSpecific(c, best, target) {
			best = c
			found = true
		}
	}
	return best, found
}
