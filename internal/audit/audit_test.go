package audit

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppend_CreatesDailyFileAndWritesLines(t *testing.T) {
	tmp := t.TempDir()
	tr := New(tmp)
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	if err := tr.Append(Entry{Ticket: "TKT0001234", Folder: "Widget_TKT0001234"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := tr.Append(Entry{Ticket: "TKT0009999", Folder: "Order_TKT0009999"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	p := filepath.Join(tmp, "deleted_backups_2026_03_14.log")
	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Widget_TKT0001234") || !strings.Contains(lines[0], "TKT0001234") {
		t.Errorf("first line missing folder/ticket identity: %q", lines[0])
	}
	if !strings.HasPrefix(lines[0], "2026-03-14 09:30:00") {
		t.Errorf("first line missing timestamp prefix: %q", lines[0])
	}
}

func TestFileName_RollsPerDay(t *testing.T) {
	a := FileName(time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC))
	b := FileName(time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC))
	if a == b {
		t.Errorf("expected distinct files across days, got %q for both", a)
	}
}
