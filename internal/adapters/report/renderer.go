// Package report renders check reports as styled text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/retarget/internal/core/domain"
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/retarget/internal/ui/output"
	"go.trai.ch/retarget/internal/ui/style"
	"go.trai.ch/zerr"
)

var _ ports.ReportRenderer = (*Renderer)(nil)

// Renderer implements ports.ReportRenderer.
type Renderer struct{}

// NewRenderer creates a new report renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes report to w in the given format.
func (r *Renderer) Render(w io.Writer, report *domain.Report, format ports.Format) error {
	var err error
	switch format {
	case ports.FormatJSON:
		err = renderJSON(w, report)
	case ports.FormatText, "":
		err = renderText(w, report)
	default:
		return zerr.With(zerr.New("unknown report format"), "format", string(format))
	}
	if err != nil {
		return zerr.Wrap(err, domain.ErrRenderFailed.Error())
	}
	return nil
}

type reportJSON struct {
	Project     string         `json:"project"`
	Framework   string         `json:"framework"`
	Fingerprint string         `json:"fingerprint,omitempty"`
	Changed     bool           `json:"changed"`
	Reinstall   []string       `json:"reinstall"`
	Decisions   []decisionJSON `json:"decisions"`
}

type decisionJSON struct {
	ID             string `json:"id"`
	Version        string `json:"version"`
	Outcome        string `json:"outcome"`
	InstalledMatch string `json:"installedMatch,omitempty"`
	TargetMatch    string `json:"targetMatch,omitempty"`
	Error          string `json:"error,omitempty"`
}

func renderJSON(w io.Writer, report *domain.Report) error {
	doc := reportJSON{
		Project:     report.Project,
		Framework:   frameworkName(&report.Framework),
		Fingerprint: report.Fingerprint,
		Changed:     report.Changed,
		Reinstall:   report.ReinstallIDs(),
		Decisions:   make([]decisionJSON, 0, len(report.Decisions)),
	}
	for i := range report.Decisions {
		d := &report.Decisions[i]
		entry := decisionJSON{
			ID:             d.Reference.ID,
			Version:        d.Reference.Version,
			Outcome:        string(d.Outcome),
			InstalledMatch: frameworkName(d.InstalledMatch),
			TargetMatch:    frameworkName(d.TargetMatch),
		}
		if d.Err != nil {
			entry.Error = d.Err.Error()
		}
		doc.Decisions = append(doc.Decisions, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func renderText(w io.Writer, report *domain.Report) error {
	lipgloss.SetColorProfile(output.New(w).Profile)

	var b strings.Builder

	header := style.Title.Render(report.Project) + " " + style.Muted.Render(style.Arrow) + " " +
		style.Title.Render(frameworkName(&report.Framework))
	if report.Changed {
		header += " " + style.Caution.Render("(changed)")
	}
	b.WriteString(header + "\n\n")

	idWidth := 0
	for i := range report.Decisions {
		idWidth = max(idWidth, lipgloss.Width(label(&report.Decisions[i].Reference)))
	}
	column := lipgloss.NewStyle().Width(idWidth + 2)

	for i := range report.Decisions {
		d := &report.Decisions[i]
		icon, iconStyle := outcomeIcon(d.Outcome)
		line := "  " + iconStyle.Render(icon) + " " + column.Render(label(&d.Reference)) + style.Muted.Render(string(d.Outcome))
		if detail := outcomeDetail(d); detail != "" {
			line += "  " + style.Muted.Render(detail)
		}
		b.WriteString(line + "\n")
	}
	if len(report.Decisions) > 0 {
		b.WriteString("\n")
	}

	switch n := len(report.Reinstall); n {
	case 0:
		b.WriteString(style.Success.Render(style.Check+" No packages need to be reinstalled") + "\n")
	default:
		noun := "packages"
		if n == 1 {
			noun = "package"
		}
		summary := fmt.Sprintf("%s %d %s to reinstall: %s", style.Cross, n, noun, strings.Join(report.ReinstallIDs(), ", "))
		b.WriteString(style.Failure.Render(summary) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func label(ref *domain.PackageReference) string {
	return ref.ID + " " + ref.Version
}

func outcomeIcon(o domain.Outcome) (string, lipgloss.Style) {
	switch o {
	case domain.OutcomeReinstall:
		return style.Cross, style.Failure
	case domain.OutcomeUnaffected:
		return style.Check, style.Success
	case domain.OutcomePackageMissing, domain.OutcomeLookupFailed:
		return style.Warning, style.Caution
	default:
		return style.Circle, style.Muted
	}
}

func outcomeDetail(d *domain.Decision) string {
	switch d.Outcome {
	case domain.OutcomeReinstall:
		return frameworkOrNone(d.InstalledMatch) + " " + style.Arrow + " " + frameworkOrNone(d.TargetMatch)
	case domain.OutcomeUnaffected:
		if d.TargetMatch != nil {
			return frameworkName(d.TargetMatch)
		}
	case domain.OutcomeLookupFailed:
		if d.Err != nil {
			return d.Err.Error()
		}
	}
	return ""
}

func frameworkName(f *domain.FrameworkName) string {
	if f == nil || f.IsZero() {
		return ""
	}
	return f.ShortName()
}

func frameworkOrNone(f *domain.FrameworkName) string {
	if name := frameworkName(f); name != "" {
		return name
	}
	return "none"
}
