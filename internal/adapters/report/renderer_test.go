package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/retarget/internal/adapters/report"
	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
)

func fw(s string) *domain.FrameworkName {
	f := domain.MustParseFrameworkName(s)
	return &f
}

func sampleReport() *domain.Report {
	return &domain.Report{
		Project:     "web",
		Framework:   domain.MustParseFrameworkName("net45"),
		Fingerprint: "00000000deadbeef",
		Changed:     true,
		Decisions: []domain.Decision{
			{
				Reference:      domain.PackageReference{ID: "A", Version: "1.0"},
				Outcome:        domain.OutcomeUnaffected,
				InstalledMatch: fw("net40"),
				TargetMatch:    fw("net40"),
			},
			{
				Reference:      domain.PackageReference{ID: "Bravo", Version: "2.0.0"},
				Outcome:        domain.OutcomeReinstall,
				InstalledMatch: fw("net20"),
				TargetMatch:    fw("net45"),
			},
			{
				Reference: domain.PackageReference{ID: "C", Version: "3.0"},
				Outcome:   domain.OutcomeLookupFailed,
				Err:       errors.New("permission denied"),
			},
		},
		Reinstall: []domain.Package{{ID: "Bravo", Version: "2.0.0"}},
	}
}

func TestRenderer_Text(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, report.NewRenderer().Render(&buf, sampleReport(), ports.FormatText))

	g := goldie.New(t)
	g.Assert(t, "text_report", buf.Bytes())
}

func TestRenderer_Text_NothingToReinstall(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	r := &domain.Report{Project: "web", Framework: domain.MustParseFrameworkName("net40")}

	var buf bytes.Buffer
	require.NoError(t, report.NewRenderer().Render(&buf, r, ""))
	g := goldie.New(t)
	g.Assert(t, "text_empty", buf.Bytes())
}

func TestRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewRenderer().Render(&buf, sampleReport(), ports.FormatJSON))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "web", doc["project"])
	assert.Equal(t, "net45", doc["framework"])
	assert.Equal(t, true, doc["changed"])
	assert.Equal(t, []any{"Bravo"}, doc["reinstall"])

	decisions, ok := doc["decisions"].([]any)
	require.True(t, ok)
	require.Len(t, decisions, 3)
	assert.Equal(t, map[string]any{
		"id":             "Bravo",
		"version":        "2.0.0",
		"outcome":        "reinstall",
		"installedMatch": "net20",
		"targetMatch":    "net45",
	}, decisions[1])
	assert.Equal(t, "permission denied", decisions[2].(map[string]any)["error"])
}

func TestRenderer_JSON_EmptyLists(t *testing.T) {
	var buf bytes.Buffer
	r := &domain.Report{Project: "web", Framework: domain.MustParseFrameworkName("net40")}
	require.NoError(t, report.NewRenderer().Render(&buf, r, ports.FormatJSON))

	assert.Contains(t, buf.String(), `"reinstall": []`)
	assert.Contains(t, buf.String(), `"decisions": []`)
	assert.NotContains(t, buf.String(), "fingerprint")
}

func TestRenderer_UnknownFormat(t *testing.T) {
	err := report.NewRenderer().Render(&bytes.Buffer{}, sampleReport(), "xml")
	assert.ErrorContains(t, err, "unknown report format")
}
