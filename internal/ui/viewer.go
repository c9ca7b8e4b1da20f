package ui

import "stepcov/internal/domain"

// Viewer displays a coverage report in an interactive TUI
type Viewer interface {
	View(report *domain.CoverageReport) error
}
