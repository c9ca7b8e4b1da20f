package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"stepcov/internal/config"
	"stepcov/internal/domain"
	"stepcov/internal/storage"
)

// gapEntry is one browsable coverage gap: either a missing step or an
// unused definition.
type gapEntry struct {
	missing *domain.MissingStep
	unused  *domain.UnusedDefinition
}

// GapViewer displays missing steps and unused definitions in an
// interactive TUI
type GapViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewGapViewer creates a new GapViewer
func NewGapViewer(cfg *config.Config, st storage.Storage) *GapViewer {
	return &GapViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays the report's coverage gaps in an interactive TUI.
// Acknowledging an entry persists back into the saved JSON report.
func (gv *GapViewer) View(report *domain.CoverageReport) error {
	if len(report.Missing) == 0 && len(report.Unused) == 0 {
		color.Green("✓ No coverage gaps found!")
		return nil
	}

	entries := make([]gapEntry, 0, len(report.Missing)+len(report.Unused))
	for i := range report.Missing {
		entries = append(entries, gapEntry{missing: &report.Missing[i]})
	}
	for i := range report.Unused {
		entries = append(entries, gapEntry{unused: &report.Unused[i]})
	}

	acknowledged := func(e gapEntry) bool {
		if e.missing != nil {
			return e.missing.Acknowledged
		}
		return e.unused.Acknowledged
	}
	toggle := func(e gapEntry) {
		if e.missing != nil {
			e.missing.Acknowledged = !e.missing.Acknowledged
		} else {
			e.unused.Acknowledged = !e.unused.Acknowledged
		}
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	itemText := func(i int) string {
		e := entries[i]
		var label string
		if e.missing != nil {
			label = fmt.Sprintf("[red]missing[white] %s %s", e.missing.Usage.Keyword, e.missing.Usage.Text)
		} else {
			label = fmt.Sprintf("[yellow]unused[white]  %s %s", e.unused.Definition.Keyword, e.unused.Definition.Pattern)
		}
		if acknowledged(e) {
			return fmt.Sprintf("[gray]✓ %d. %s", i+1, label)
		}
		return fmt.Sprintf("%d. %s", i+1, label)
	}

	for i := range entries {
		list.AddItem(itemText(i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	countOpen := func() int {
		n := 0
		for _, e := range entries {
			if !acknowledged(e) {
				n++
			}
		}
		return n
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Coverage Gaps (%d total, %d open) | ↑↓ navigate, [yellow]A[white] acknowledge, → details, ← back, Ctrl+C exit ",
			len(entries), countOpen()))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(entries) {
			detailsView.SetText(formatGapDetails(entries[index]))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'a' || event.Rune() == 'A' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(entries) {
					toggle(entries[index])
					list.SetItemText(index, itemText(index), "")
					updateHeader()
					updateDetails()
					_ = gv.storage.Save(report)
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatGapDetails formats one gap for the details pane using tview color
// tags ([red], [cyan], etc.)
func formatGapDetails(e gapEntry) string {
	var b strings.Builder

	if e.missing != nil {
		m := e.missing
		fmt.Fprintf(&b, "[red]✗ Missing step[white]\n\n")
		fmt.Fprintf(&b, "[cyan]Feature:[white] %s\n", m.Usage.Feature)
		fmt.Fprintf(&b, "[cyan]Scenario:[white] %s\n", m.Usage.Scenario)
		fmt.Fprintf(&b, "[yellow]Location:[white] %s:%d\n\n", m.Usage.FeatureFile, m.Usage.Line)
		fmt.Fprintf(&b, "[yellow]Step:[white]\n%s %s\n\n", m.Usage.Keyword, m.Usage.Text)
		fmt.Fprintf(&b, "[yellow]Suggested pattern:[white]\n%s\n\n", m.SuggestedPattern)
		if m.Skeleton != "" {
			fmt.Fprintf(&b, "[yellow]Skeleton:[white]\n%s\n", m.Skeleton)
		}
		return b.String()
	}

	d := e.unused.Definition
	fmt.Fprintf(&b, "[yellow]! Unused definition[white]\n\n")
	fmt.Fprintf(&b, "[yellow]Location:[white] %s:%d\n\n", d.File, d.Line)
	fmt.Fprintf(&b, "[yellow]Pattern:[white]\n%s %s\n\n", d.Keyword, d.Pattern)
	if len(d.Parameters) > 0 {
		fmt.Fprintf(&b, "[cyan]Parameters:[white] %s\n", strings.Join(d.Parameters, ", "))
	}
	if !d.Implemented {
		fmt.Fprintf(&b, "[red]Declared but not implemented[white]\n")
	}
	return b.String()
}
