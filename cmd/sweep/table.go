package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/mwheeler/stalesweep/internal/reconcile"
)

// Semantic status colors, adaptive light/dark.
var (
	colorReady = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorKeep  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorTag   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}

	readyStyle  = lipgloss.NewStyle().Foreground(colorReady).Bold(true)
	keepStyle   = lipgloss.NewStyle().Foreground(colorKeep)
	tagStyle    = lipgloss.NewStyle().Foreground(colorTag)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

func init() {
	// Plain output when not attached to a terminal.
	if termenv.NewOutput(os.Stdout).EnvColorProfile() == termenv.Ascii {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// renderTicketTable renders one row per ticket record. The size column
// appears only when at least one record carries a size.
func renderTicketTable(infos []reconcile.TicketInfo) string {
	withSize := false
	for _, info := range infos {
		if info.FolderSize != "" {
			withSize = true
			break
		}
	}

	headers := []string{"TICKET", "FOLDER", "CLOSED AT", "AGE", "CLOSED BY", "PICKUP"}
	if withSize {
		headers = append(headers, "SIZE")
	}
	headers = append(headers, "STATUS")

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		row := []string{
			string(info.TicketNumber),
			info.FolderName,
			info.ClosedAtLocal,
			closedAge(info),
			info.ClosedByUsername,
			pickupMarker(info),
		}
		if withSize {
			row = append(row, orDash(info.FolderSize))
		}
		row = append(row, statusMarker(info))
		rows = append(rows, row)
	}

	widths := columnWidths(headers, rows)

	var b strings.Builder
	b.WriteString(headerStyle.Render(formatRow(headers, widths)))
	b.WriteString("\n")
	for i, row := range rows {
		line := formatRow(row, widths)
		if infos[i].ReadyForDeletion {
			line = readyStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func closedAge(info reconcile.TicketInfo) string {
	if info.ClosedAt.IsZero() {
		return "-"
	}
	return humanize.Time(info.ClosedAt)
}

func pickupMarker(info reconcile.TicketInfo) string {
	if info.HasReadyForPickupTag {
		return tagStyle.Render("✓")
	}
	return "-"
}

func statusMarker(info reconcile.TicketInfo) string {
	if info.ReadyForDeletion {
		return "READY"
	}
	return keepStyle.Render("KEEP")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := widths[i] - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		parts[i] = cell + strings.Repeat(" ", pad)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// summarize prints the one-line batch summary under the table.
func summarize(infos []reconcile.TicketInfo) string {
	ready := 0
	for _, info := range infos {
		if info.ReadyForDeletion {
			ready++
		}
	}
	return fmt.Sprintf("%d ticket(s), %d ready for deletion\n", len(infos), ready)
}
