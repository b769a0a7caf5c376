package ports

import (
	"io"

	"go.trai.ch/retarget/internal/core/domain"
)

// Format selects how a report is rendered.
type Format string

const (
	// FormatText renders a styled, human-readable report.
	FormatText Format = "text"
	// FormatJSON renders the report as a JSON document.
	FormatJSON Format = "json"
)

// ReportRenderer writes check reports.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type ReportRenderer interface {
	Render(w io.Writer, report *domain.Report, format Format) error
}
