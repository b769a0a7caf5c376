// Package app implements the application layer for retarget.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/retarget/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/retarget/internal/engine/retarget"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	decider      *retarget.Decider
	opener       ports.RepositoryOpener
	store        ports.ReportStore
	hasher       ports.Hasher
	telemetry    ports.Telemetry
	renderer     ports.ReportRenderer
	watcher      ports.Watcher
	logger       ports.Logger

	stdout   io.Writer
	debounce time.Duration
	now      func() time.Time
}

// New creates a new App instance. A nil telemetry records nothing.
func New(
	loader ports.ConfigLoader,
	decider *retarget.Decider,
	opener ports.RepositoryOpener,
	store ports.ReportStore,
	hasher ports.Hasher,
	recorder ports.Telemetry,
	renderer ports.ReportRenderer,
	fileWatcher ports.Watcher,
	log ports.Logger,
) *App {
	if recorder == nil {
		recorder = telemetry.NewNoOp()
	}
	return &App{
		configLoader: loader,
		decider:      decider,
		opener:       opener,
		store:        store,
		hasher:       hasher,
		telemetry:    recorder,
		renderer:     renderer,
		watcher:      fileWatcher,
		logger:       log,
		stdout:       os.Stdout,
		debounce:     watcher.DefaultDebounceWindow,
		now:          time.Now,
	}
}

// WithOutput sets the writer reports are rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithDebounceWindow sets the quiet period the watch loop waits for before rechecking.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// WithClock sets the clock used to timestamp report records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// CheckOptions configuration for the Check and Watch methods.
type CheckOptions struct {
	// ConfigPath is the project file to check.
	ConfigPath string
	// Framework overrides the target framework of the project file.
	Framework string
	// JSON renders the report as JSON.
	JSON bool
	// NoRecord skips writing the report record.
	NoRecord bool
}

func (o CheckOptions) format() ports.Format {
	if o.JSON {
		return ports.FormatJSON
	}
	return ports.FormatText
}

// Check computes the packages of a project that must be reinstalled for its
// target framework and renders the report.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	report, err := a.check(ctx, opts)
	if err != nil {
		return err
	}
	return a.renderer.Render(a.stdout, report, opts.format())
}

//nolint:cyclop // orchestration function
func (a *App) check(ctx context.Context, opts CheckOptions) (*domain.Report, error) {
	// 1. Load the project
	project, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load project")
	}

	framework := project.TargetFramework()
	if opts.Framework != "" {
		framework, err = domain.ParseFrameworkName(opts.Framework)
		if err != nil {
			return nil, zerr.With(err, "framework", opts.Framework)
		}
	}

	report := &domain.Report{Project: project.Name, Framework: framework}
	if !project.HasPackageRecord() {
		a.logger.Info(fmt.Sprintf("project %s has no package record", project.Name))
		return report, nil
	}
	if framework.IsZero() {
		return nil, zerr.With(domain.ErrNoTargetFramework, "project", project.Name)
	}

	ctx, vertex := a.telemetry.Record(ctx, "check "+project.Name)
	err = a.evaluate(ctx, vertex, project, report, opts)
	vertex.Complete(err)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (a *App) evaluate(
	ctx context.Context,
	vertex ports.Vertex,
	project *domain.Project,
	report *domain.Report,
	opts CheckOptions,
) error {
	refs := project.PackageReferences()

	// 2. Open and warm the repository
	repo, err := a.opener.Open(project.RepositoryPath)
	if err != nil {
		return err
	}
	if err := repo.Preload(ctx, refs); err != nil {
		return zerr.Wrap(err, "failed to preload packages")
	}

	// 3. Decide
	report.Decisions = a.decider.WithPolicy(project.Policy).Evaluate(report.Framework, refs, repo)
	for i := range report.Decisions {
		d := &report.Decisions[i]
		vertex.Log(fmt.Sprintf("%s %s: %s", d.Reference.ID, d.Reference.Version, d.Outcome))
		if d.Err != nil {
			a.logger.Warn(fmt.Sprintf("failed to look up %s %s: %v", d.Reference.ID, d.Reference.Version, d.Err))
		}
		if d.RequiresReinstall() {
			report.Reinstall = append(report.Reinstall, *d.Package)
		}
	}

	// 4. Fingerprint the inputs and compare with the last record
	fingerprint, err := a.hasher.ComputeFingerprint(
		report.Framework.ShortName(),
		[]string{opts.ConfigPath, project.RepositoryPath},
	)
	if err != nil {
		return zerr.Wrap(err, "failed to fingerprint inputs")
	}
	report.Fingerprint = fingerprint

	previous, err := a.store.Get(project.Name)
	if err != nil {
		return err
	}

	record := domain.ReportRecord{
		Project:     project.Name,
		Framework:   report.Framework.ShortName(),
		Reinstall:   report.ReinstallIDs(),
		Fingerprint: fingerprint,
		Timestamp:   a.now(),
	}
	if previous != nil {
		report.Changed = previous.Framework != record.Framework ||
			!slices.Equal(previous.Reinstall, record.Reinstall)
		if previous.Fingerprint == fingerprint {
			vertex.Cached()
		}
	}

	// 5. Record
	if opts.NoRecord {
		return nil
	}
	return a.store.Put(record)
}

// Watch checks the project, then checks it again whenever the project file or
// the package repository changes, until ctx is canceled.
//
//nolint:cyclop // orchestration function
func (a *App) Watch(ctx context.Context, opts CheckOptions) error {
	configPath, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	opts.ConfigPath = configPath

	if err := a.Check(ctx, opts); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, filepath.Dir(configPath)); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	var repoPath string
	if project, err := a.configLoader.Load(configPath); err == nil && project.RepositoryPath != "" {
		repoPath = project.RepositoryPath
		if err := a.watcher.Add(repoPath); err != nil {
			a.logger.Warn(fmt.Sprintf("not watching package repository %s: %v", repoPath, err))
		}
	}

	var (
		mu      sync.Mutex
		stopped bool
	)
	recheck := func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		if stopped || ctx.Err() != nil {
			return
		}
		a.logger.Info(fmt.Sprintf("change detected in %s", strings.Join(paths, ", ")))
		if err := a.Check(ctx, opts); err != nil {
			a.logger.Error(err)
		}
	}

	debouncer := watcher.NewDebouncer(a.debounce, recheck)
	for event := range a.watcher.Events() {
		if affects(event.Path, configPath, repoPath) {
			debouncer.Add(event.Path)
		}
	}

	if ctx.Err() == nil {
		debouncer.Flush()
	} else {
		debouncer.Stop()
	}

	mu.Lock()
	stopped = true
	mu.Unlock()
	return nil
}

// affects reports whether a change to path can alter the report.
func affects(path, configPath, repoPath string) bool {
	path = filepath.Clean(path)
	if path == configPath {
		return true
	}
	if repoPath == "" {
		return false
	}
	rel, err := filepath.Rel(repoPath, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
