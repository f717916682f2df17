package main

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mwheeler/stalesweep/internal/reconcile"
)

func plainProfile(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func sampleInfos() []reconcile.TicketInfo {
	return []reconcile.TicketInfo{
		{
			TicketNumber:     "TKT0001234",
			FolderName:       "Widget_TKT0001234",
			ClosedAtLocal:    "2026-01-05 09:00:00 EST-0500",
			ClosedByUsername: "jdoe",
			ReadyForDeletion: true,
			ClosedAt:         time.Now().Add(-30 * 24 * time.Hour),
		},
		{
			TicketNumber:         "TKT0009999",
			FolderName:           "Order_TKT0009999",
			ClosedAtLocal:        reconcile.NotAvailable,
			ClosedByUsername:     reconcile.NotAvailable,
			HasReadyForPickupTag: true,
		},
	}
}

func TestRenderTicketTable(t *testing.T) {
	plainProfile(t)
	out := renderTicketTable(sampleInfos())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "TICKET") || !strings.Contains(lines[0], "STATUS") {
		t.Errorf("header missing columns: %q", lines[0])
	}
	if strings.Contains(lines[0], "SIZE") {
		t.Errorf("size column should be hidden when no record has a size: %q", lines[0])
	}
	if !strings.Contains(lines[1], "READY") {
		t.Errorf("stale row should be marked READY: %q", lines[1])
	}
	if !strings.Contains(lines[2], "KEEP") {
		t.Errorf("tagged row should be marked KEEP: %q", lines[2])
	}
}

func TestRenderTicketTableWithSize(t *testing.T) {
	plainProfile(t)
	infos := sampleInfos()
	infos[0].FolderSize = "1.50 KiB"

	out := renderTicketTable(infos)
	if !strings.Contains(out, "SIZE") || !strings.Contains(out, "1.50 KiB") {
		t.Errorf("expected size column with value:\n%s", out)
	}
	// The record without a size renders a dash.
	if !strings.Contains(out, " - ") {
		t.Errorf("expected dash placeholder for missing size:\n%s", out)
	}
}

func TestSummarize(t *testing.T) {
	got := summarize(sampleInfos())
	if !strings.Contains(got, "2 ticket(s)") || !strings.Contains(got, "1 ready") {
		t.Errorf("summarize = %q", got)
	}
}
