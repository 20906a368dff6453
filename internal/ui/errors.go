package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"trp/internal/domain"
	"trp/internal/storage"
)

// FailureViewer displays the failed outcomes of a saved report in an
// interactive TUI. Toggling an entry resolved is persisted back into
// custom-report.json.
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View opens the interactive failure browser for the given report. The
// filter pattern (wildcards supported) narrows the listed failures.
func (fv *FailureViewer) View(report *domain.Report, pattern string) error {
	// Indices into report.Results for every failing outcome, so resolved
	// toggles mutate the report in place.
	var failureIdx []int
	for i, o := range report.Results {
		if !o.Status.IsFailure() {
			continue
		}
		failureIdx = append(failureIdx, i)
	}

	if pattern != "" {
		var kept []int
		for _, i := range failureIdx {
			if len(FilterFailures([]domain.TestOutcome{report.Results[i]}, pattern)) > 0 {
				kept = append(kept, i)
			}
		}
		failureIdx = kept
	}

	if len(failureIdx) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	saveResolved := func() error {
		return fv.storage.Save(report)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	itemText := func(pos int) string {
		o := report.Results[failureIdx[pos]]
		title := o.Title
		if title == "" {
			title = fmt.Sprintf("Test %d", pos+1)
		}
		if o.Resolved {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", pos+1, title)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", pos+1, title)
	}

	for pos := range failureIdx {
		list.AddItem(itemText(pos), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	countUnresolved := func() int {
		count := 0
		for _, i := range failureIdx {
			if !report.Results[i].Resolved {
				count++
			}
		}
		return count
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Test Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] toggle resolved, → details, ← back, Ctrl+C exit ",
			len(failureIdx), countUnresolved()))
	}
	updateHeader()

	updateDetails := func() {
		pos := list.GetCurrentItem()
		if pos < 0 || pos >= len(failureIdx) {
			return
		}
		o := report.Results[failureIdx[pos]]
		statsView.SetText(formatFailureStats(o, pos+1))
		detailsView.SetText(formatFailureDetails(o))
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
			if event.Rune() == 'r' || event.Rune() == 'R' {
				pos := list.GetCurrentItem()
				if pos >= 0 && pos < len(failureIdx) {
					i := failureIdx[pos]
					report.Results[i].Resolved = !report.Results[i].Resolved
					list.SetItemText(pos, itemText(pos), "")
					updateHeader()
					updateDetails()
					if err := saveResolved(); err != nil {
						_ = err
					}
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

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatFailureDetails formats one failed outcome using tview color tags
func formatFailureDetails(o domain.TestOutcome) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Test: %s[white]\n\n", strings.Join(o.TitlePath, " > "))

	if loc := o.Location(); loc != "" {
		fmt.Fprintf(w, "[yellow]Location: %s[white]\n", loc)
	}
	fmt.Fprintf(w, "[cyan]Status: %s (attempt %d, %dms)[white]\n\n", o.Status, o.RetryIndex+1, o.DurationMs)

	if len(o.Tags) > 0 {
		fmt.Fprintf(w, "[cyan]Tags: %s[white]\n\n", strings.Join(o.Tags, ", "))
	}

	if o.ErrorMessage != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n\n", o.ErrorMessage)
	}

	if o.ErrorStack != "" {
		fmt.Fprintf(w, "[yellow]Stack Trace:[white]\n")
		lines := strings.Split(o.ErrorStack, "\n")
		for i, line := range lines {
			if i < 10 {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
		if len(lines) > 10 {
			fmt.Fprintf(w, "  [gray]... and %d more lines[white]\n", len(lines)-10)
		}
		fmt.Fprintf(w, "\n")
	}

	if o.Stderr != "" {
		fmt.Fprintf(w, "[yellow]Stderr:[white]\n%s\n\n", o.Stderr)
	}

	if len(o.Attachments) > 0 {
		fmt.Fprintf(w, "[yellow]Attachments:[white]\n")
		for _, a := range o.Attachments {
			fmt.Fprintf(w, "  %s (%s): %s\n", a.Name, a.ContentType, a.Path)
		}
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the stats header for one failure
func formatFailureStats(o domain.TestOutcome, number int) string {
	title := o.Title
	if title == "" {
		title = fmt.Sprintf("Test %d", number)
	}

	path := o.File
	if path == "" {
		path = "Unknown path"
	}

	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%s[white]\n", path, title)
}
