package domain

import "time"

// Outcome is the verdict for a single package reference.
type Outcome string

const (
	// OutcomeReinstall means the installed assets no longer match the target framework.
	OutcomeReinstall Outcome = "reinstall"
	// OutcomeUnaffected means the same asset set is selected before and after retargeting.
	OutcomeUnaffected Outcome = "unaffected"
	// OutcomeFrameworkAgnostic means the package has no framework-scoped assets.
	OutcomeFrameworkAgnostic Outcome = "framework-agnostic"
	// OutcomePackageMissing means the referenced package is not in the repository.
	OutcomePackageMissing Outcome = "package-missing"
	// OutcomeLookupFailed means the repository failed to return the package.
	OutcomeLookupFailed Outcome = "lookup-failed"
	// OutcomeDuplicate means an earlier reference with the same id was already evaluated.
	OutcomeDuplicate Outcome = "duplicate"
)

// Decision is the evaluation of one package reference against a new target framework.
type Decision struct {
	Reference PackageReference
	Package   *Package
	Outcome   Outcome

	// InstalledMatch is the package framework selected for the install framework.
	InstalledMatch *FrameworkName
	// TargetMatch is the package framework selected for the new target framework.
	TargetMatch *FrameworkName

	// Err holds the lookup error for OutcomeLookupFailed.
	Err error
}

// RequiresReinstall reports whether the package must be reinstalled.
func (d *Decision) RequiresReinstall() bool {
	return d.Outcome == OutcomeReinstall
}

// Report is the result of checking a project against a target framework.
type Report struct {
	Project   string
	Framework FrameworkName
	Decisions []Decision
	Reinstall []Package

	// Fingerprint identifies the inputs the report was computed from.
	Fingerprint string
	// Changed is set when the result differs from the last recorded report.
	Changed bool
}

// ReinstallIDs returns the ids of the packages to reinstall, in order.
func (r *Report) ReinstallIDs() []string {
	ids := make([]string, len(r.Reinstall))
	for i := range r.Reinstall {
		ids[i] = r.Reinstall[i].ID
	}
	return ids
}

// ReportRecord is the persisted summary of a report.
type ReportRecord struct {
	Project     string    `json:"project,omitzero"`
	Framework   string    `json:"framework,omitzero"`
	Reinstall   []string  `json:"reinstall,omitempty"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
