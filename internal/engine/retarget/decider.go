// Package retarget decides which installed packages must be reinstalled when a
// project moves to a different target framework.
package retarget

import (
	"strings"

	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
)

// Decider compares the asset set a package was installed with against the asset set
// a new target framework would select.
//
// A Decider holds no state between calls and is safe for concurrent use.
type Decider struct {
	policy domain.UnknownFrameworkPolicy
}

// Option configures a Decider.
type Option func(*Decider)

// WithUnknownFrameworkPolicy sets how references without a recorded install framework are treated.
func WithUnknownFrameworkPolicy(p domain.UnknownFrameworkPolicy) Option {
	return func(d *Decider) {
		d.policy = p
	}
}

// NewDecider creates a Decider. The default policy is domain.PolicyCompare.
func NewDecider(opts ...Option) *Decider {
	d := &Decider{policy: domain.PolicyCompare}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Policy returns the unknown-framework policy of the decider.
func (d *Decider) Policy() domain.UnknownFrameworkPolicy {
	return d.policy
}

// WithPolicy returns a copy of the decider using policy p.
func (d *Decider) WithPolicy(p domain.UnknownFrameworkPolicy) *Decider {
	c := *d
	c.policy = p
	return &c
}

// ForProject returns the packages of project that must be reinstalled for the
// framework the project now targets. Projects of an unsupported kind, or without a
// package record, yield nothing and no package is looked up.
func (d *Decider) ForProject(project ports.Project, lookup ports.PackageLookup) []domain.Package {
	if project == nil || !project.HasPackageRecord() {
		return nil
	}
	return d.GetPackagesToBeReinstalled(project.TargetFramework(), project.PackageReferences(), lookup)
}

// GetPackagesToBeReinstalled returns, in reference order, the packages whose selected
// assets change when moving to newFramework. Each package id appears at most once.
func (d *Decider) GetPackagesToBeReinstalled(
	newFramework domain.FrameworkName,
	refs []domain.PackageReference,
	lookup ports.PackageLookup,
) []domain.Package {
	var packages []domain.Package
	for _, dec := range d.Evaluate(newFramework, refs, lookup) {
		if dec.RequiresReinstall() {
			packages = append(packages, *dec.Package)
		}
	}
	return packages
}

// Evaluate returns one decision per reference, in reference order.
// Lookup failures are recorded on the decision and never stop the walk.
func (d *Decider) Evaluate(
	newFramework domain.FrameworkName,
	refs []domain.PackageReference,
	lookup ports.PackageLookup,
) []domain.Decision {
	decisions := make([]domain.Decision, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))

	for _, ref := range refs {
		key := strings.ToLower(ref.ID)
		if _, dup := seen[key]; dup {
			decisions = append(decisions, domain.Decision{Reference: ref, Outcome: domain.OutcomeDuplicate})
			continue
		}
		seen[key] = struct{}{}

		decisions = append(decisions, d.decide(newFramework, ref, lookup))
	}
	return decisions
}

func (d *Decider) decide(
	newFramework domain.FrameworkName,
	ref domain.PackageReference,
	lookup ports.PackageLookup,
) domain.Decision {
	dec := domain.Decision{Reference: ref}

	if lookup == nil {
		dec.Outcome = domain.OutcomePackageMissing
		return dec
	}

	pkg, err := lookup.FindPackage(ref.ID, ref.Version)
	if err != nil {
		dec.Outcome = domain.OutcomeLookupFailed
		dec.Err = err
		return dec
	}
	if pkg == nil {
		dec.Outcome = domain.OutcomePackageMissing
		return dec
	}
	dec.Package = pkg

	frameworks := pkg.SupportedFrameworks()
	if len(frameworks) == 0 {
		dec.Outcome = domain.OutcomeFrameworkAgnostic
		return dec
	}

	target, targetOK := domain.NearestCompatible(newFramework, frameworks)
	if targetOK {
		dec.TargetMatch = &target
	}

	if ref.TargetFramework == nil {
		dec.Outcome = d.unknownFrameworkOutcome(targetOK)
		return dec
	}

	installed, installedOK := domain.NearestCompatible(*ref.TargetFramework, frameworks)
	if installedOK {
		dec.InstalledMatch = &installed
	}

	if installedOK != targetOK || (installedOK && !installed.Equal(target)) {
		dec.Outcome = domain.OutcomeReinstall
	} else {
		dec.Outcome = domain.OutcomeUnaffected
	}
	return dec
}

func (d *Decider) unknownFrameworkOutcome(targetOK bool) domain.Outcome {
	switch d.policy {
	case domain.PolicyAlways:
		return domain.OutcomeReinstall
	case domain.PolicyNever:
		return domain.OutcomeUnaffected
	default:
		if targetOK {
			return domain.OutcomeUnaffected
		}
		return domain.OutcomeReinstall
	}
}
