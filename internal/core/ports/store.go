package ports

import "go.trai.ch/retarget/internal/core/domain"

// ReportStore defines the interface for storing and retrieving the last report of a project.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReportStore interface {
	// Get retrieves the last report record for a project.
	// Returns nil, nil if not found.
	Get(project string) (*domain.ReportRecord, error)

	// Put stores the report record.
	Put(record domain.ReportRecord) error
}
