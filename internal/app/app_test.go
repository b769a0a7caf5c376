package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/retarget/internal/app"
	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/retarget/internal/core/ports/mocks"
	"go.trai.ch/retarget/internal/engine/retarget"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

type fixture struct {
	loader    *mocks.MockConfigLoader
	opener    *mocks.MockRepositoryOpener
	repo      *mocks.MockPackageRepository
	store     *mocks.MockReportStore
	hasher    *mocks.MockHasher
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	renderer  *mocks.MockReportRenderer
	watcher   *mocks.MockWatcher
	logger    *mocks.MockLogger
	out       *bytes.Buffer
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		opener:    mocks.NewMockRepositoryOpener(ctrl),
		repo:      mocks.NewMockPackageRepository(ctrl),
		store:     mocks.NewMockReportStore(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
		renderer:  mocks.NewMockReportRenderer(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		out:       new(bytes.Buffer),
	}
	f.app = app.New(
		f.loader,
		retarget.NewDecider(),
		f.opener,
		f.store,
		f.hasher,
		f.telemetry,
		f.renderer,
		f.watcher,
		f.logger,
	).WithOutput(f.out).WithClock(func() time.Time { return now }).WithDebounceWindow(time.Hour)
	return f
}

func fw(s string) *domain.FrameworkName {
	f := domain.MustParseFrameworkName(s)
	return &f
}

func lib(id, version string, folders ...string) *domain.Package {
	p := &domain.Package{ID: id, Version: version}
	for _, folder := range folders {
		p.Assets = append(p.Assets, domain.Asset{Kind: domain.AssetAssemblyReference, Path: folder + "/" + id + ".dll"})
	}
	return p
}

func trackedProject() *domain.Project {
	return &domain.Project{
		Name:           "web",
		Kind:           domain.ProjectKindCSharp,
		Framework:      domain.MustParseFrameworkName("net45"),
		RepositoryPath: "/src/web/packages",
		Tracked:        true,
		Packages: []domain.PackageReference{
			{ID: "A", Version: "1.0", TargetFramework: fw("net40")},
			{ID: "B", Version: "2.0", TargetFramework: fw("net20")},
		},
	}
}

// expectEvaluation sets up a repository where A is unaffected and B must be reinstalled.
func (f *fixture) expectEvaluation(project *domain.Project) {
	packages := map[string]*domain.Package{
		"A": lib("A", "1.0", "net40"),
		"B": lib("B", "2.0", "net20", "net45"),
	}

	f.telemetry.EXPECT().Record(gomock.Any(), "check "+project.Name).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ports.ContextWithVertex(ctx, f.vertex), f.vertex
		})
	f.opener.EXPECT().Open(project.RepositoryPath).Return(f.repo, nil)
	f.repo.EXPECT().Preload(gomock.Any(), project.Packages).Return(nil)
	f.repo.EXPECT().FindPackage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(id, _ string) (*domain.Package, error) {
			return packages[id], nil
		}).Times(2)
	f.vertex.EXPECT().Log("A 1.0: unaffected")
	f.vertex.EXPECT().Log("B 2.0: reinstall")
}

func (f *fixture) captureReport(format ports.Format) *domain.Report {
	var report domain.Report
	f.renderer.EXPECT().Render(f.out, gomock.Any(), format).
		DoAndReturn(func(_ io.Writer, r *domain.Report, _ ports.Format) error {
			report = *r
			return nil
		})
	return &report
}

func TestApp_Check(t *testing.T) {
	f := newFixture(t)
	project := trackedProject()

	f.loader.EXPECT().Load("retarget.yaml").Return(project, nil)
	f.expectEvaluation(project)
	f.hasher.EXPECT().ComputeFingerprint("net45", []string{"retarget.yaml", project.RepositoryPath}).Return("fp", nil)
	f.store.EXPECT().Get("web").Return(nil, nil)
	f.store.EXPECT().Put(domain.ReportRecord{
		Project:     "web",
		Framework:   "net45",
		Reinstall:   []string{"B"},
		Fingerprint: "fp",
		Timestamp:   now,
	}).Return(nil)
	f.vertex.EXPECT().Complete(nil)
	report := f.captureReport(ports.FormatText)

	err := f.app.Check(context.Background(), app.CheckOptions{ConfigPath: "retarget.yaml"})
	require.NoError(t, err)

	assert.Equal(t, "web", report.Project)
	assert.Equal(t, "net45", report.Framework.ShortName())
	assert.Equal(t, []string{"B"}, report.ReinstallIDs())
	assert.Equal(t, "fp", report.Fingerprint)
	assert.False(t, report.Changed)
	require.Len(t, report.Decisions, 2)
	assert.Equal(t, domain.OutcomeUnaffected, report.Decisions[0].Outcome)
	assert.Equal(t, domain.OutcomeReinstall, report.Decisions[1].Outcome)
}

func TestApp_Check_ComparesWithLastRecord(t *testing.T) {
	tests := []struct {
		name     string
		previous domain.ReportRecord
		changed  bool
		cached   bool
	}{
		{
			name:     "same inputs",
			previous: domain.ReportRecord{Framework: "net45", Reinstall: []string{"B"}, Fingerprint: "fp"},
			cached:   true,
		},
		{
			name:     "inputs changed but result did not",
			previous: domain.ReportRecord{Framework: "net45", Reinstall: []string{"B"}, Fingerprint: "old"},
		},
		{
			name:     "reinstall set changed",
			previous: domain.ReportRecord{Framework: "net45", Reinstall: []string{"A", "B"}, Fingerprint: "old"},
			changed:  true,
		},
		{
			name:     "framework changed",
			previous: domain.ReportRecord{Framework: "net40", Reinstall: []string{"B"}, Fingerprint: "old"},
			changed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			project := trackedProject()

			f.loader.EXPECT().Load("retarget.yaml").Return(project, nil)
			f.expectEvaluation(project)
			f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp", nil)
			previous := tt.previous
			f.store.EXPECT().Get("web").Return(&previous, nil)
			if tt.cached {
				f.vertex.EXPECT().Cached()
			}
			f.vertex.EXPECT().Complete(nil)
			report := f.captureReport(ports.FormatJSON)

			err := f.app.Check(context.Background(), app.CheckOptions{
				ConfigPath: "retarget.yaml",
				JSON:       true,
				NoRecord:   true,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.changed, report.Changed)
		})
	}
}

func TestApp_Check_FrameworkOverride(t *testing.T) {
	f := newFixture(t)
	project := trackedProject()
	project.Framework = domain.FrameworkName{}

	f.loader.EXPECT().Load("retarget.yaml").Return(project, nil)
	f.expectEvaluation(project)
	f.hasher.EXPECT().ComputeFingerprint("net45", gomock.Any()).Return("fp", nil)
	f.store.EXPECT().Get("web").Return(nil, nil)
	f.vertex.EXPECT().Complete(nil)
	report := f.captureReport(ports.FormatText)

	err := f.app.Check(context.Background(), app.CheckOptions{
		ConfigPath: "retarget.yaml",
		Framework:  ".NETFramework, Version=v4.5",
		NoRecord:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "net45", report.Framework.ShortName())
}

func TestApp_Check_NoPackageRecord(t *testing.T) {
	f := newFixture(t)
	project := &domain.Project{Name: "db", Kind: "sqlproj", Tracked: true}

	f.loader.EXPECT().Load("retarget.yaml").Return(project, nil)
	f.logger.EXPECT().Info("project db has no package record")
	report := f.captureReport(ports.FormatText)

	require.NoError(t, f.app.Check(context.Background(), app.CheckOptions{ConfigPath: "retarget.yaml"}))
	assert.Empty(t, report.Decisions)
	assert.Empty(t, report.Reinstall)
}

func TestApp_Check_LookupFailure(t *testing.T) {
	f := newFixture(t)
	project := trackedProject()
	project.Packages = project.Packages[:1]

	f.loader.EXPECT().Load("retarget.yaml").Return(project, nil)
	f.telemetry.EXPECT().Record(gomock.Any(), "check web").Return(context.Background(), f.vertex)
	f.opener.EXPECT().Open(project.RepositoryPath).Return(f.repo, nil)
	f.repo.EXPECT().Preload(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().FindPackage("A", "1.0").Return(nil, errors.New("permission denied"))
	f.vertex.EXPECT().Log("A 1.0: lookup-failed")
	f.logger.EXPECT().Warn("failed to look up A 1.0: permission denied")
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp", nil)
	f.store.EXPECT().Get("web").Return(nil, nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)
	f.vertex.EXPECT().Complete(nil)
	report := f.captureReport(ports.FormatText)

	require.NoError(t, f.app.Check(context.Background(), app.CheckOptions{ConfigPath: "retarget.yaml"}))
	require.Len(t, report.Decisions, 1)
	assert.Equal(t, domain.OutcomeLookupFailed, report.Decisions[0].Outcome)
	assert.Empty(t, report.Reinstall)
}

func TestApp_Check_Errors(t *testing.T) {
	t.Run("load failure", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("retarget.yaml").Return(nil, errors.New("no such file"))

		err := f.app.Check(context.Background(), app.CheckOptions{ConfigPath: "retarget.yaml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load project")
		assert.Contains(t, err.Error(), "no such file")
	})

	t.Run("invalid framework override", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("retarget.yaml").Return(trackedProject(), nil)

		err := f.app.Check(context.Background(), app.CheckOptions{ConfigPath: "retarget.yaml", Framework: "portable-net45+win8"})
		assert.ErrorContains(t, err, "invalid framework name")
	})

	t.Run("no target framework", func(t *testing.T) {
		f := newFixture(t)
		project := trackedProject()
		project.Framework = domain.FrameworkName{}
		f.loader.EXPECT().Load("retarget.yaml").Return(project, nil)

		err := f.app.Check(context.Background(), app.CheckOptions{ConfigPath: "retarget.yaml"})
		assert.ErrorContains(t, err, "no target framework")
	})

	t.Run("repository missing", func(t *testing.T) {
		f := newFixture(t)
		project := trackedProject()
		openErr := errors.New("package repository not found")

		f.loader.EXPECT().Load("retarget.yaml").Return(project, nil)
		f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).Return(context.Background(), f.vertex)
		f.opener.EXPECT().Open(project.RepositoryPath).Return(nil, openErr)
		f.vertex.EXPECT().Complete(openErr)

		err := f.app.Check(context.Background(), app.CheckOptions{ConfigPath: "retarget.yaml"})
		assert.ErrorIs(t, err, openErr)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		project := trackedProject()
		putErr := errors.New("disk full")

		f.loader.EXPECT().Load("retarget.yaml").Return(project, nil)
		f.expectEvaluation(project)
		f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp", nil)
		f.store.EXPECT().Get("web").Return(nil, nil)
		f.store.EXPECT().Put(gomock.Any()).Return(putErr)
		f.vertex.EXPECT().Complete(putErr)

		err := f.app.Check(context.Background(), app.CheckOptions{ConfigPath: "retarget.yaml"})
		assert.ErrorIs(t, err, putErr)
	})
}

func untrackedProject(dir string) *domain.Project {
	return &domain.Project{
		Name:           "web",
		Kind:           domain.ProjectKindCSharp,
		RepositoryPath: filepath.Join(dir, "packages"),
	}
}

func TestApp_Watch(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	config := filepath.Join(dir, "retarget.yaml")
	project := untrackedProject(dir)

	f.loader.EXPECT().Load(config).Return(project, nil).Times(3)
	f.logger.EXPECT().Info("project web has no package record").Times(2)
	f.renderer.EXPECT().Render(f.out, gomock.Any(), ports.FormatText).Return(nil).Times(2)

	f.watcher.EXPECT().Start(gomock.Any(), dir).Return(nil)
	f.watcher.EXPECT().Add(project.RepositoryPath).Return(nil)
	f.watcher.EXPECT().Events().Return(slices.Values([]ports.WatchEvent{
		{Path: config, Operation: ports.OpWrite},
		{Path: filepath.Join(dir, "README.md"), Operation: ports.OpWrite},
		{Path: filepath.Join(project.RepositoryPath, "A.1.0"), Operation: ports.OpCreate},
		{Path: config, Operation: ports.OpWrite},
	}))
	f.watcher.EXPECT().Stop().Return(nil)

	var changed string
	f.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) { changed = msg })

	require.NoError(t, f.app.Watch(context.Background(), app.CheckOptions{ConfigPath: config}))

	assert.True(t, strings.HasPrefix(changed, "change detected in "), changed)
	assert.Contains(t, changed, config)
	assert.Contains(t, changed, filepath.Join(project.RepositoryPath, "A.1.0"))
	assert.NotContains(t, changed, "README.md")
}

func TestApp_Watch_Canceled(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	config := filepath.Join(dir, "retarget.yaml")
	project := untrackedProject(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.loader.EXPECT().Load(config).Return(project, nil).Times(2)
	f.logger.EXPECT().Info("project web has no package record")
	f.renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.watcher.EXPECT().Start(ctx, dir).Return(nil)
	f.watcher.EXPECT().Add(project.RepositoryPath).Return(errors.New("no such directory"))
	f.logger.EXPECT().Warn(gomock.Any())
	f.watcher.EXPECT().Events().Return(slices.Values([]ports.WatchEvent{
		{Path: config, Operation: ports.OpWrite},
	}))
	f.watcher.EXPECT().Stop().Return(nil)

	require.NoError(t, f.app.Watch(ctx, app.CheckOptions{ConfigPath: config}))
}

func TestApp_Watch_StartFailure(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	config := filepath.Join(dir, "retarget.yaml")
	checkErr := errors.New("broken config")

	f.loader.EXPECT().Load(config).Return(nil, checkErr)
	f.logger.EXPECT().Error(gomock.Any())
	f.watcher.EXPECT().Start(gomock.Any(), dir).Return(errors.New("too many open files"))

	err := f.app.Watch(context.Background(), app.CheckOptions{ConfigPath: config})
	assert.ErrorContains(t, err, "too many open files")
}

func TestApp_Check_WithoutTelemetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	opener := mocks.NewMockRepositoryOpener(ctrl)
	repo := mocks.NewMockPackageRepository(ctrl)
	store := mocks.NewMockReportStore(ctrl)
	hasher := mocks.NewMockHasher(ctrl)
	renderer := mocks.NewMockReportRenderer(ctrl)

	project := trackedProject()
	project.Packages = project.Packages[1:]

	loader.EXPECT().Load("retarget.yaml").Return(project, nil)
	opener.EXPECT().Open(project.RepositoryPath).Return(repo, nil)
	repo.EXPECT().Preload(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().FindPackage("B", "2.0").Return(lib("B", "2.0", "net20", "net45"), nil)
	hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp", nil)
	store.EXPECT().Get("web").Return(&domain.ReportRecord{Framework: "net45", Fingerprint: "fp"}, nil)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), ports.FormatText).Return(nil)

	a := app.New(loader, retarget.NewDecider(), opener, store, hasher, nil, renderer, nil, nil).
		WithOutput(io.Discard)

	err := a.Check(context.Background(), app.CheckOptions{ConfigPath: "retarget.yaml", NoRecord: true})
	require.NoError(t, err)
}
